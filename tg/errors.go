package tg

import (
	"errors"
	"fmt"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNoChat        = errors.New("parkbot: update has no chat to reply to")
	ErrNoQuery       = errors.New("parkbot: update has no query to answer")
	ErrInvalidConfig = errors.New("parkbot: invalid configuration")
)

// ValidationError represents a request or configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("parkbot: validation: %s - %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrInvalidConfig) match any validation error.
func (e *ValidationError) Unwrap() error { return ErrInvalidConfig }

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
