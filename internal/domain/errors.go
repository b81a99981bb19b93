package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
//
// Business-rule failures (ErrItemConflict, ErrNoCapacity, ErrInvalidCode,
// ErrInvalidRole, ErrStateConflict, ErrInvalidCancellation) must not be
// retried by callers without changing the request. ErrDependencyUnavailable
// marks infrastructure failures and is safe to retry.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrItemConflict: an item is already committed to another exchange.
	ErrItemConflict = errors.New("item already committed to another exchange")
	// ErrNoCapacity: no free box fits the aggregate item size.
	ErrNoCapacity = errors.New("no box with sufficient capacity")
	// ErrInvalidCode: access code is unknown, expired, or already consumed.
	ErrInvalidCode = errors.New("invalid access code")
	// ErrInvalidRole: the requested role does not match the next legal transition.
	ErrInvalidRole = errors.New("role does not match the next transition")
	// ErrStateConflict: the operation is illegal for the exchange's current status.
	ErrStateConflict = errors.New("operation not allowed in current status")
	// ErrInvalidCancellation: cancel was called on a terminal exchange.
	ErrInvalidCancellation = errors.New("exchange is already finished")
	// ErrDependencyUnavailable: a collaborator (storage, registry) could not be reached.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
