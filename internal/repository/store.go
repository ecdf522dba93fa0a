package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that take part in one unit of work.
type Store interface {
	Bookings() BookingRepository
	Whitelist() WhitelistRepository
	// Transaction runs fn inside a single database transaction. The Store
	// handed to fn is bound to that transaction; an error or panic from fn
	// rolls back every statement issued through it.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Bookings() BookingRepository {
	return NewBookingRepository(s.db)
}

func (s *store) Whitelist() WhitelistRepository {
	return NewWhitelistRepository(s.db)
}

func (s *store) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&store{db: tx})
	})
}
