package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/Eursukkul/screening-service/internal/dto"
	"github.com/Eursukkul/screening-service/internal/service"
	amqp "github.com/rabbitmq/amqp091-go"
)

// BookingRequestConsumer turns booking.requested messages into submitted
// bookings.
type BookingRequestConsumer struct {
	svc service.BookingService
}

func NewBookingRequestConsumer(svc service.BookingService) *BookingRequestConsumer {
	return &BookingRequestConsumer{svc: svc}
}

func (bc *BookingRequestConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			bc.handleMessage(context.Background(), msg)
		}
		log.Println("[BookingConsumer] channel closed, stopping consumer")
	}()
}

func (bc *BookingRequestConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	var req dto.CreateBookingRequest
	if err := json.Unmarshal(msg.Body, &req); err != nil {
		log.Printf("[BookingConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	booking, err := bc.svc.Submit(ctx, req.ToInput())
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			log.Printf("[BookingConsumer] rejected booking request: %v", err)
			msg.Nack(false, false)
			return
		}
		log.Printf("[BookingConsumer] failed to submit booking request, requeueing: %v", err)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[BookingConsumer] submitted booking %s", booking.ID)
	msg.Ack(false)
}
