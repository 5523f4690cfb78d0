// File: internal/services/user_services/errors.go
package user_services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers unknown identifier and wrong password
	// alike, so login failures do not reveal which part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrDuplicateIdentity = errors.New("username or email already in use")
	ErrWrongOldPassword  = errors.New("old password does not match")
	ErrUnauthenticated   = errors.New("missing or invalid session")
	ErrInvalidToken      = errors.New("invalid or expired verification token")
)

// ValidationError identifies which input field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotVerifiedError is returned when credentials are correct but the email
// has not been verified yet; it carries the email so the caller can offer
// a resend.
type NotVerifiedError struct {
	Email string
}

func (e *NotVerifiedError) Error() string {
	return "email address not verified"
}
