package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrForbidden signals that the caller's role does not allow the action.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized signals a missing or unknown caller identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation signals invalid caller input.
	ErrValidation = errors.New("validation failed")
	// ErrUnsupportedFormat signals an upload that could not be turned into text.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrPayloadTooLarge signals an upload over the configured size limit.
	ErrPayloadTooLarge = errors.New("payload too large")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrAlreadyApplied signals a duplicate job application.
	ErrAlreadyApplied = errors.New("already applied")
)

// Field error codes reported to clients.
const (
	CodeFieldRequired = "FIELD_REQUIRED"
	CodeInvalidField  = "INVALID_FIELD"
)

// FieldError wraps ErrValidation with the offending input field.
type FieldError struct {
	Field   string
	Code    string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), e.Field, e.Message)
}

func (e *FieldError) Unwrap() error { return ErrValidation }

// NewFieldRequired creates a validation error for a missing field.
func NewFieldRequired(field string) error {
	return &FieldError{Field: field, Code: CodeFieldRequired, Message: field + " is required"}
}

// NewInvalidField creates a validation error for a malformed field.
func NewInvalidField(field, message string) error {
	return &FieldError{Field: field, Code: CodeInvalidField, Message: message}
}
