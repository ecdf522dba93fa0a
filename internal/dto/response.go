package dto

import (
	"time"

	"github.com/Eursukkul/screening-service/internal/models"
	"github.com/Eursukkul/screening-service/internal/service"
	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                 uuid.UUID            `json:"id"`
	CallerName         string               `json:"caller_name"`
	CallerPhone        string               `json:"caller_phone"`
	CallerPhoneDisplay string               `json:"caller_phone_display"`
	CallerEmail        *string              `json:"caller_email,omitempty"`
	CallReason         *string              `json:"call_reason,omitempty"`
	Status             models.BookingStatus `json:"status"`
	CreatedAt          time.Time            `json:"created_at"`
	ResolvedAt         *time.Time           `json:"resolved_at,omitempty"`
	WhitelistEntryID   *uuid.UUID           `json:"whitelist_entry_id,omitempty"`
}

type WhitelistEntryResponse struct {
	ID                 uuid.UUID  `json:"id"`
	PhoneNumber        string     `json:"phone_number"`
	PhoneNumberDisplay string     `json:"phone_number_display"`
	Name               string     `json:"name"`
	Reason             *string    `json:"reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	IsPermanent        bool       `json:"is_permanent"`
}

type WhitelistPageResponse struct {
	Total   int64                    `json:"total"`
	Page    int                      `json:"page"`
	PerPage int                      `json:"per_page"`
	Data    []WhitelistEntryResponse `json:"data"`
}

type WhitelistCheckResponse struct {
	Phone       string                  `json:"phone"`
	Whitelisted bool                    `json:"whitelisted"`
	Entry       *WhitelistEntryResponse `json:"entry,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:                 b.ID,
		CallerName:         b.CallerName,
		CallerPhone:        b.CallerPhone.String(),
		CallerPhoneDisplay: b.CallerPhone.National(),
		CallerEmail:        b.CallerEmail,
		CallReason:         b.CallReason,
		Status:             b.Status,
		CreatedAt:          b.CreatedAt,
		ResolvedAt:         b.ResolvedAt,
		WhitelistEntryID:   b.WhitelistEntryID,
	}
}

func ToWhitelistEntryResponse(e *models.WhitelistEntry) WhitelistEntryResponse {
	return WhitelistEntryResponse{
		ID:                 e.ID,
		PhoneNumber:        e.PhoneNumber.String(),
		PhoneNumberDisplay: e.PhoneNumber.National(),
		Name:               e.Name,
		Reason:             e.Reason,
		CreatedAt:          e.CreatedAt,
		ExpiresAt:          e.ExpiresAt,
		IsPermanent:        e.IsPermanent,
	}
}

func ToWhitelistPageResponse(p *service.WhitelistPage) WhitelistPageResponse {
	data := make([]WhitelistEntryResponse, len(p.Entries))
	for i := range p.Entries {
		data[i] = ToWhitelistEntryResponse(&p.Entries[i])
	}
	return WhitelistPageResponse{
		Total:   p.Total,
		Page:    p.Page,
		PerPage: p.PerPage,
		Data:    data,
	}
}

func ToWhitelistCheckResponse(c *service.WhitelistCheck) WhitelistCheckResponse {
	resp := WhitelistCheckResponse{Phone: c.Phone.String()}
	if c.Entry != nil {
		entry := ToWhitelistEntryResponse(c.Entry)
		resp.Whitelisted = true
		resp.Entry = &entry
	}
	return resp
}
