package service

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these onto HTTP status codes; anything else is
// treated as an infrastructure failure.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrStateConflict = errors.New("state conflict")
	ErrUnauthorized  = errors.New("unauthorized")
)

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError for field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ServiceError carries a user-facing message and the kind it belongs to.
type ServiceError struct {
	Kind    error
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func (e *ServiceError) Unwrap() error { return e.Kind }

func notFound(format string, args ...interface{}) error {
	return &ServiceError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func forbidden(format string, args ...interface{}) error {
	return &ServiceError{Kind: ErrForbidden, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...interface{}) error {
	return &ServiceError{Kind: ErrStateConflict, Message: fmt.Sprintf(format, args...)}
}

func unauthorized(format string, args ...interface{}) error {
	return &ServiceError{Kind: ErrUnauthorized, Message: fmt.Sprintf(format, args...)}
}
