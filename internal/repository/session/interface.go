package session

import (
	"context"

	"github.com/ayazdoruck/pahiy-ai/internal/domain"
)

// SessionRepository handles session token storage.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	// FindValid returns the session only when it exists and is unexpired.
	FindValid(ctx context.Context, token string) (*domain.Session, error)
	// Delete is idempotent; revoking an unknown token is not an error.
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
