package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Eursukkul/screening-service/internal/models"
	"github.com/Eursukkul/screening-service/internal/repository"
	"github.com/Eursukkul/screening-service/pkg/phone"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const whitelistComponent = "WhitelistService"

type CreateWhitelistEntryInput struct {
	PhoneNumber string
	Name        string
	Reason      *string
	ExpiresAt   *time.Time
	IsPermanent *bool
}

type WhitelistPage struct {
	Total   int64
	Page    int
	PerPage int
	Entries []models.WhitelistEntry
}

// WhitelistCheck is the outcome of a lookup. Entry is nil when the caller
// still has to be screened.
type WhitelistCheck struct {
	Phone phone.Number
	Entry *models.WhitelistEntry
}

type WhitelistService interface {
	CreateEntry(ctx context.Context, in CreateWhitelistEntryInput) (*models.WhitelistEntry, error)
	GetEntry(ctx context.Context, id uuid.UUID) (*models.WhitelistEntry, error)
	ListEntries(ctx context.Context, p models.Pagination) (*WhitelistPage, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	Check(ctx context.Context, rawPhone string) (*WhitelistCheck, error)
}

type whitelistService struct {
	store repository.Store
	now   func() time.Time
}

func NewWhitelistService(store repository.Store, opts ...Option) WhitelistService {
	o := newOptions(opts)
	return &whitelistService{store: store, now: o.now}
}

func (s *whitelistService) CreateEntry(ctx context.Context, in CreateWhitelistEntryInput) (*models.WhitelistEntry, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, newValidationError("name", "name is required")
	}

	number, err := phone.ParseNorthAmerican(in.PhoneNumber)
	if err != nil {
		return nil, &ValidationError{Field: "phone_number", Err: err}
	}

	entry := &models.WhitelistEntry{
		PhoneNumber: number,
		Name:        name,
		Reason:      in.Reason,
		ExpiresAt:   in.ExpiresAt,
		IsPermanent: in.IsPermanent != nil && *in.IsPermanent,
	}
	if err := s.store.Whitelist().Create(ctx, entry); err != nil {
		return nil, newStorageError(whitelistComponent, "insert whitelist entry", err)
	}
	return entry, nil
}

func (s *whitelistService) GetEntry(ctx context.Context, id uuid.UUID) (*models.WhitelistEntry, error) {
	entry, err := s.store.Whitelist().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWhitelistEntryNotFound
		}
		return nil, newStorageError(whitelistComponent, fmt.Sprintf("find whitelist entry %s", id), err)
	}
	return entry, nil
}

func (s *whitelistService) ListEntries(ctx context.Context, p models.Pagination) (*WhitelistPage, error) {
	p, err := p.Normalize()
	if err != nil {
		return nil, &ValidationError{Field: "pagination", Err: err}
	}

	total, err := s.store.Whitelist().Count(ctx)
	if err != nil {
		return nil, newStorageError(whitelistComponent, "count whitelist entries", err)
	}

	entries, err := s.store.Whitelist().FindPage(ctx, p.Offset(), p.Limit())
	if err != nil {
		return nil, newStorageError(whitelistComponent, "list whitelist entries", err)
	}

	return &WhitelistPage{
		Total:   total,
		Page:    p.Page,
		PerPage: p.PerPage,
		Entries: entries,
	}, nil
}

func (s *whitelistService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	n, err := s.store.Whitelist().Delete(ctx, id)
	if err != nil {
		return newStorageError(whitelistComponent, fmt.Sprintf("delete whitelist entry %s", id), err)
	}
	if n == 0 {
		return ErrWhitelistEntryNotFound
	}
	return nil
}

func (s *whitelistService) Check(ctx context.Context, rawPhone string) (*WhitelistCheck, error) {
	number, err := phone.ParseNorthAmerican(rawPhone)
	if err != nil {
		whitelistChecksCounter.WithLabelValues("invalid").Inc()
		return nil, &ValidationError{Field: "phone", Err: err}
	}

	entry, err := s.store.Whitelist().FindActiveByPhone(ctx, number, s.now().UTC())
	switch {
	case err == nil:
		whitelistChecksCounter.WithLabelValues("allowed").Inc()
		return &WhitelistCheck{Phone: number, Entry: entry}, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		whitelistChecksCounter.WithLabelValues("screened").Inc()
		return &WhitelistCheck{Phone: number}, nil
	default:
		whitelistChecksCounter.WithLabelValues("error").Inc()
		return nil, newStorageError(whitelistComponent, "find active whitelist entry", err)
	}
}
