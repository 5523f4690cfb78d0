// File: internal/services/mail/errors.go
package mail

import "fmt"

type ErrorType string

const (
	ErrTypeNetwork  ErrorType = "NETWORK"
	ErrTypeProvider ErrorType = "PROVIDER"
)

type MailError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *MailError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("mail %s error: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("mail %s error: %s", e.Type, e.Message)
}

func (e *MailError) Unwrap() error { return e.Cause }
