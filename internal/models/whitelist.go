package models

import (
	"time"

	"github.com/Eursukkul/screening-service/pkg/phone"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WhitelistEntry lets a caller bypass screening. Entries created by approving
// a booking are not permanent and never expire.
type WhitelistEntry struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	PhoneNumber phone.Number `gorm:"type:varchar(12);not null;index" json:"phone_number"`
	Name        string       `gorm:"not null" json:"name"`
	Reason      *string      `json:"reason,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;index" json:"created_at"`
	ExpiresAt   *time.Time   `json:"expires_at,omitempty"`
	IsPermanent bool         `gorm:"not null;default:false" json:"is_permanent"`
}

func (WhitelistEntry) TableName() string {
	return "whitelist_entries"
}

func (e *WhitelistEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// ActiveAt reports whether the entry still permits calls at t.
func (e *WhitelistEntry) ActiveAt(t time.Time) bool {
	return e.IsPermanent || e.ExpiresAt == nil || e.ExpiresAt.After(t)
}
