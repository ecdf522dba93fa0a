package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Eursukkul/screening-service/internal/models"
	"github.com/Eursukkul/screening-service/internal/repository"
	"github.com/Eursukkul/screening-service/pkg/phone"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoutingKeySubmitted = "booking.submitted"
	RoutingKeyApproved  = "booking.approved"
	RoutingKeyDenied    = "booking.denied"
)

const bookingComponent = "BookingService"

type SubmitBookingInput struct {
	CallerName  string
	CallerPhone string
	CallerEmail *string
	CallReason  *string
}

type BookingService interface {
	Submit(ctx context.Context, in SubmitBookingInput) (*models.Booking, error)
	Resolve(ctx context.Context, id uuid.UUID, target models.BookingStatus) (*models.Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListBookings(ctx context.Context, status *models.BookingStatus) ([]models.Booking, error)
}

type bookingService struct {
	store     repository.Store
	publisher EventPublisher
	now       func() time.Time
}

// NewBookingService returns the booking workflow. A nil publisher disables
// lifecycle events.
func NewBookingService(store repository.Store, publisher EventPublisher, opts ...Option) BookingService {
	o := newOptions(opts)
	return &bookingService{
		store:     store,
		publisher: publisher,
		now:       o.now,
	}
}

func (s *bookingService) Submit(ctx context.Context, in SubmitBookingInput) (*models.Booking, error) {
	booking, err := s.submit(ctx, in)
	bookingsSubmittedCounter.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		return nil, err
	}

	s.publish(RoutingKeySubmitted, booking)
	return booking, nil
}

func (s *bookingService) submit(ctx context.Context, in SubmitBookingInput) (*models.Booking, error) {
	name := strings.TrimSpace(in.CallerName)
	if name == "" {
		return nil, newValidationError("caller_name", "caller_name is required")
	}

	number, err := phone.ParseNorthAmerican(in.CallerPhone)
	if err != nil {
		return nil, &ValidationError{Field: "caller_phone", Err: err}
	}

	// deliberately loose: anything with an @ is accepted
	if in.CallerEmail != nil && !strings.Contains(*in.CallerEmail, "@") {
		return nil, newValidationError("caller_email", "invalid email format")
	}

	booking := &models.Booking{
		CallerName:  name,
		CallerPhone: number,
		CallerEmail: in.CallerEmail,
		CallReason:  in.CallReason,
		Status:      models.StatusPending,
	}
	if err := s.store.Bookings().Create(ctx, booking); err != nil {
		return nil, newStorageError(bookingComponent, "insert booking", err)
	}
	return booking, nil
}

// Resolve moves a pending booking to approved or denied. Both transitions
// only touch rows still pending, so of two concurrent resolutions exactly one
// wins and the other gets ErrBookingAlreadyResolved.
func (s *bookingService) Resolve(ctx context.Context, id uuid.UUID, target models.BookingStatus) (*models.Booking, error) {
	booking, err := s.resolve(ctx, id, target)
	bookingsResolvedCounter.WithLabelValues(statusLabel(target), resultLabel(err)).Inc()
	if err != nil {
		return nil, err
	}

	if target == models.StatusApproved {
		s.publish(RoutingKeyApproved, booking)
	} else {
		s.publish(RoutingKeyDenied, booking)
	}
	return booking, nil
}

func (s *bookingService) resolve(ctx context.Context, id uuid.UUID, target models.BookingStatus) (*models.Booking, error) {
	switch target {
	case models.StatusApproved, models.StatusDenied:
	case models.StatusPending:
		return nil, newValidationError("status", "cannot set status to pending")
	default:
		return nil, newValidationError("status", fmt.Sprintf("invalid status %q", target))
	}

	existing, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != models.StatusPending {
		return nil, ErrBookingAlreadyResolved
	}

	resolvedAt := s.now().UTC()
	if target == models.StatusDenied {
		return s.deny(ctx, existing, resolvedAt)
	}
	return s.approve(ctx, existing, resolvedAt)
}

func (s *bookingService) deny(ctx context.Context, booking *models.Booking, resolvedAt time.Time) (*models.Booking, error) {
	n, err := s.store.Bookings().MarkDenied(ctx, booking.ID, resolvedAt)
	if err != nil {
		return nil, newStorageError(bookingComponent, fmt.Sprintf("deny booking %s", booking.ID), err)
	}
	if n == 0 {
		return nil, ErrBookingAlreadyResolved
	}

	denied := *booking
	denied.Status = models.StatusDenied
	denied.ResolvedAt = &resolvedAt
	return &denied, nil
}

// approve creates the whitelist entry and links it to the booking in one
// transaction. Nothing is kept if either write fails or another resolution
// got there first.
func (s *bookingService) approve(ctx context.Context, booking *models.Booking, resolvedAt time.Time) (*models.Booking, error) {
	var approved models.Booking

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		entry := &models.WhitelistEntry{
			PhoneNumber: booking.CallerPhone,
			Name:        booking.CallerName,
			Reason:      booking.CallReason,
			IsPermanent: false,
		}
		if err := tx.Whitelist().Create(ctx, entry); err != nil {
			return newStorageError(bookingComponent, fmt.Sprintf("insert whitelist entry for booking %s", booking.ID), err)
		}

		n, err := tx.Bookings().MarkApproved(ctx, booking.ID, entry.ID, resolvedAt)
		if err != nil {
			return newStorageError(bookingComponent, fmt.Sprintf("approve booking %s", booking.ID), err)
		}
		if n == 0 {
			return ErrBookingAlreadyResolved
		}

		approved = *booking
		approved.Status = models.StatusApproved
		approved.ResolvedAt = &resolvedAt
		approved.WhitelistEntryID = &entry.ID
		return nil
	})
	if err != nil {
		var serr *StorageError
		if errors.As(err, &serr) || errors.Is(err, ErrBookingAlreadyResolved) {
			return nil, err
		}
		return nil, newStorageError(bookingComponent, fmt.Sprintf("commit approval of booking %s", booking.ID), err)
	}

	return &approved, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.store.Bookings().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, newStorageError(bookingComponent, fmt.Sprintf("find booking %s", id), err)
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, status *models.BookingStatus) ([]models.Booking, error) {
	if status != nil && !status.Valid() {
		return nil, newValidationError("status", fmt.Sprintf("invalid status %q", *status))
	}
	bookings, err := s.store.Bookings().FindAll(ctx, status)
	if err != nil {
		return nil, newStorageError(bookingComponent, "list bookings", err)
	}
	return bookings, nil
}

// publish is best effort: the booking is already committed.
func (s *bookingService) publish(routingKey string, booking *models.Booking) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, booking); err != nil {
		log.Printf("[%s] failed to publish %s for booking %s: %v", bookingComponent, routingKey, booking.ID, err)
	}
}
