package models

import (
	"time"

	"github.com/Eursukkul/screening-service/pkg/phone"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending  BookingStatus = "pending"
	StatusApproved BookingStatus = "approved"
	StatusDenied   BookingStatus = "denied"
)

// Valid reports whether s is one of the three known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied:
		return true
	}
	return false
}

// IsTerminal reports whether no transition is defined out of s.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusDenied
}

// Booking is a screening request from an unknown caller. ResolvedAt is set
// once the booking leaves pending; WhitelistEntryID only when it was approved.
type Booking struct {
	ID               uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	CallerName       string        `gorm:"not null" json:"caller_name"`
	CallerPhone      phone.Number  `gorm:"type:varchar(12);not null;index" json:"caller_phone"`
	CallerEmail      *string       `json:"caller_email,omitempty"`
	CallReason       *string       `json:"call_reason,omitempty"`
	Status           BookingStatus `gorm:"type:varchar(20);not null;default:'pending';check:chk_bookings_status,status IN ('pending','approved','denied')" json:"status"`
	CreatedAt        time.Time     `gorm:"not null;index" json:"created_at"`
	ResolvedAt       *time.Time    `json:"resolved_at,omitempty"`
	WhitelistEntryID *uuid.UUID    `gorm:"type:uuid" json:"whitelist_entry_id,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
