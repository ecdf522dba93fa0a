package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/screening-service/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	FindAll(ctx context.Context, status *models.BookingStatus) ([]models.Booking, error)
	MarkDenied(ctx context.Context, id uuid.UUID, resolvedAt time.Time) (int64, error)
	MarkApproved(ctx context.Context, id uuid.UUID, whitelistEntryID uuid.UUID, resolvedAt time.Time) (int64, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, status *models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// MarkDenied moves a pending booking to denied. It returns the number of rows
// changed: zero means the booking was no longer pending.
func (r *bookingRepository) MarkDenied(ctx context.Context, id uuid.UUID, resolvedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(map[string]any{
			"status":      models.StatusDenied,
			"resolved_at": resolvedAt,
		})
	return res.RowsAffected, res.Error
}

// MarkApproved moves a pending booking to approved and links the whitelist
// entry created for it. Same row-count contract as MarkDenied.
func (r *bookingRepository) MarkApproved(ctx context.Context, id uuid.UUID, whitelistEntryID uuid.UUID, resolvedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(map[string]any{
			"status":             models.StatusApproved,
			"resolved_at":        resolvedAt,
			"whitelist_entry_id": whitelistEntryID,
		})
	return res.RowsAffected, res.Error
}
