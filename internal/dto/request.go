package dto

import (
	"time"

	"github.com/Eursukkul/screening-service/internal/models"
	"github.com/Eursukkul/screening-service/internal/service"
)

type CreateBookingRequest struct {
	CallerName  string  `json:"caller_name" validate:"required"`
	CallerPhone string  `json:"caller_phone" validate:"required"`
	CallerEmail *string `json:"caller_email"`
	CallReason  *string `json:"call_reason"`
}

func (r CreateBookingRequest) ToInput() service.SubmitBookingInput {
	return service.SubmitBookingInput{
		CallerName:  r.CallerName,
		CallerPhone: r.CallerPhone,
		CallerEmail: r.CallerEmail,
		CallReason:  r.CallReason,
	}
}

type UpdateBookingStatusRequest struct {
	Status models.BookingStatus `json:"status" validate:"required"`
}

type CreateWhitelistEntryRequest struct {
	PhoneNumber string     `json:"phone_number" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	Reason      *string    `json:"reason"`
	ExpiresAt   *time.Time `json:"expires_at"`
	IsPermanent *bool      `json:"is_permanent"`
}
