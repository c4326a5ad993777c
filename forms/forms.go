// ABOUTME: Create and edit form drafts for contacts, deals, and tasks
// ABOUTME: Owns default-value inference and the required-field validation boundary
package forms

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRequired marks a missing mandatory field.
	ErrRequired = errors.New("is required")
	// ErrInvalid marks a field whose value is outside its allowed range or set.
	ErrInvalid = errors.New("is invalid")
)

// FieldError names the offending form field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Err: ErrRequired}
	}
	return nil
}

func invalid(field, format string, args ...any) error {
	return &FieldError{Field: field, Err: fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))}
}

// Mode tells whether a form creates a new entity or edits an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)
