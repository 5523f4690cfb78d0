// File: internal/services/chat/errors.go
package chat

import "fmt"

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeUpstream   ErrorType = "UPSTREAM"
)

type ChatError struct {
	Type      ErrorType
	Operation string
	Message   string
	ChatID    string
	UserID    uint
	Cause     error
}

func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Chat %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Chat %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ChatError) Unwrap() error { return e.Cause }

func NewValidationError(operation, msg string) *ChatError {
	return &ChatError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewStorageError(operation, msg string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeStorage, Operation: operation, Message: msg, Cause: cause}
}

// NewNotFoundError covers both a missing chat and a chat owned by someone
// else; the two are deliberately indistinguishable to the caller.
func NewNotFoundError(userID uint, chatID string) *ChatError {
	return &ChatError{
		Type:      ErrTypeNotFound,
		Operation: "authorization",
		Message:   "chat not found",
		UserID:    userID,
		ChatID:    chatID,
	}
}

// IsNotFound reports whether err is the ownership/existence failure.
func IsNotFound(err error) bool {
	chatErr, ok := err.(*ChatError)
	return ok && chatErr.Type == ErrTypeNotFound
}

// IsValidation reports whether err is an input validation failure.
func IsValidation(err error) bool {
	chatErr, ok := err.(*ChatError)
	return ok && chatErr.Type == ErrTypeValidation
}
