// Package apperror defines the error categories shared by the repositories,
// services and HTTP handlers. Every error that reaches the HTTP layer is
// classified with errors.Is / errors.As against the values declared here.
package apperror

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound signals that no record matches the requested key.
	ErrNotFound = errors.New("Not found.")
	// ErrNotAuthenticated signals that the caller must present valid credentials.
	ErrNotAuthenticated = errors.New("Authentication credentials were not provided.")
	// ErrPermissionDenied signals an authenticated caller lacking rights for the action.
	ErrPermissionDenied = errors.New("You do not have permission to perform this action.")
	// ErrConflict signals a uniqueness violation detected by the store.
	ErrConflict = errors.New("Conflict.")
)

// kindError carries a client-facing message while still matching its category.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// New returns an error that matches kind under errors.Is and reports msg.
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// PublicMessage returns the message safe to show a client for err.
// Errors built with New keep their own message; anything else falls back to
// the text of the category it wraps.
func PublicMessage(err error) string {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.msg
	}
	for _, kind := range []error{ErrNotFound, ErrNotAuthenticated, ErrPermissionDenied, ErrConflict} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "A server error occurred."
}

// ValidationError aggregates per-field failures of a payload.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// FieldError is a shorthand for a ValidationError with a single message.
func FieldError(field, msg string) *ValidationError {
	v := NewValidationError()
	v.Add(field, msg)
	return v
}

// Add records msg against field.
func (v *ValidationError) Add(field, msg string) {
	v.Fields[field] = append(v.Fields[field], msg)
}

// Has reports whether field already has at least one failure.
func (v *ValidationError) Has(field string) bool {
	return len(v.Fields[field]) > 0
}

// HasErrors reports whether any field failed.
func (v *ValidationError) HasErrors() bool {
	return len(v.Fields) > 0
}

func (v *ValidationError) Error() string {
	names := make([]string, 0, len(v.Fields))
	for name := range v.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(v.Fields[name], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
