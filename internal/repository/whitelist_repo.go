package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/screening-service/internal/models"
	"github.com/Eursukkul/screening-service/pkg/phone"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WhitelistRepository interface {
	Create(ctx context.Context, entry *models.WhitelistEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.WhitelistEntry, error)
	FindPage(ctx context.Context, offset, limit int) ([]models.WhitelistEntry, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	FindActiveByPhone(ctx context.Context, number phone.Number, at time.Time) (*models.WhitelistEntry, error)
}

type whitelistRepository struct {
	db *gorm.DB
}

func NewWhitelistRepository(db *gorm.DB) WhitelistRepository {
	return &whitelistRepository{db: db}
}

func (r *whitelistRepository) Create(ctx context.Context, entry *models.WhitelistEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *whitelistRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.WhitelistEntry, error) {
	var entry models.WhitelistEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *whitelistRepository) FindPage(ctx context.Context, offset, limit int) ([]models.WhitelistEntry, error) {
	var entries []models.WhitelistEntry
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *whitelistRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WhitelistEntry{}).Count(&count).Error
	return count, err
}

func (r *whitelistRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.WhitelistEntry{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// FindActiveByPhone returns the newest entry for number that still permits
// calls at the given time.
func (r *whitelistRepository) FindActiveByPhone(ctx context.Context, number phone.Number, at time.Time) (*models.WhitelistEntry, error) {
	var entry models.WhitelistEntry
	err := r.db.WithContext(ctx).
		Where("phone_number = ?", number).
		Where("is_permanent = ? OR expires_at IS NULL OR expires_at > ?", true, at).
		Order("created_at DESC").
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
