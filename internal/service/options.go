package service

import "time"

// EventPublisher sends booking lifecycle events. *rabbitmq.Publisher satisfies it.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now as the source of resolution and expiry times.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
