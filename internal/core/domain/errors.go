package domain

import (
	"errors"
	"fmt"
)

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("access forbidden")

	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords so callers cannot tell which one happened.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	ErrConflict            = errors.New("conflict")
	ErrEmailInUse          = fmt.Errorf("email already in use: %w", ErrConflict)
	ErrLookupCodeCollision = fmt.Errorf("lookup code collision: %w", ErrConflict)
)

// ValidationError reports caller input that is missing or malformed.
// Field names the first offending input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Field + " is invalid"
}

// Required builds the ValidationError for a missing field.
func Required(field string) *ValidationError {
	return &ValidationError{Field: field, Message: field + " is required"}
}

// Invalid builds a ValidationError with a custom message.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
