package utils

import (
	"errors"
	"strings"
)

// ErrValidation is wrapped by every ValidationError so callers can use errors.Is.
var ErrValidation = errors.New("validation error")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError reports rejected input; nothing has been written when it is returned.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(flds ...FieldError) error {
	return &ValidationError{Fields: flds}
}

// FieldRequired is a shorthand for a single missing-field error.
func FieldRequired(field string) error {
	return NewValidationError(FieldError{Field: field, Error: "this field is required"})
}

func (err *ValidationError) Error() string {
	if len(err.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(err.Fields))
	for _, f := range err.Fields {
		parts = append(parts, f.Field+": "+f.Error)
	}
	return strings.Join(parts, "; ")
}

func (err *ValidationError) Unwrap() error { return ErrValidation }

// HasField reports whether field is among the rejected fields.
func (err *ValidationError) HasField(field string) bool {
	for _, f := range err.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
