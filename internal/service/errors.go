package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials covers unknown login names and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid login/password")
	// ErrNotApproved is returned when the credentials are valid but an
	// administrator has not approved the account yet.
	ErrNotApproved = errors.New("account not approved")
	// ErrLoginTaken is returned when registering a login name already in use.
	ErrLoginTaken = errors.New("login already exists")

	errUnchanged = errors.New("unchanged")
)

// ValidationError reports malformed input for a single field.
type ValidationError struct {
	Field  string
	Reason string
}

const reasonRequired = "is required"

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Missing reports whether the field was absent rather than malformed.
func (e *ValidationError) Missing() bool {
	return e.Reason == reasonRequired
}

func missing(field string) error {
	return &ValidationError{Field: field, Reason: reasonRequired}
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
