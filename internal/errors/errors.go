package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = stderrors.New("not found")

// ValidationError describes a rejected submission. Message is what the
// shop's site shows to the visitor.
type ValidationError struct {
	Field   string            `json:"field"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: map[string]string{field: message},
	}
}

// WithDetail records an additional offending field.
func (e *ValidationError) WithDetail(field, message string) *ValidationError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[field] = message
	return e
}

// AsValidationError unwraps err into a *ValidationError when it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}
