package service

import (
	"errors"
	"log"
)

var (
	ErrBookingNotFound        = errors.New("booking not found")
	ErrBookingAlreadyResolved = errors.New("booking already resolved")
	ErrWhitelistEntryNotFound = errors.New("whitelist entry not found")
)

// ValidationError is a client-input problem. Its message is safe to return
// to the caller as-is.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Err: errors.New(msg)}
}

// StorageError hides a persistence failure from the caller. The cause is
// logged when the error is created and stays reachable through Unwrap.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "internal error"
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func newStorageError(component, op string, err error) *StorageError {
	log.Printf("[%s] %s: %v", component, op, err)
	return &StorageError{Op: op, Err: err}
}

// resultLabel classifies err for metrics.
func resultLabel(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrWhitelistEntryNotFound):
		return "not_found"
	case errors.Is(err, ErrBookingAlreadyResolved):
		return "conflict"
	default:
		return "error"
	}
}
