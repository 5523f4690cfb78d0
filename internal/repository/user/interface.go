package user

import (
	"context"

	"github.com/ayazdoruck/pahiy-ai/internal/domain"
)

// UserRepository handles user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByLogin matches the identifier against username OR email.
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	FindByVerificationToken(ctx context.Context, token string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, userID uint) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	UpdateVerificationToken(ctx context.Context, userID uint, token string) error
	MarkEmailVerified(ctx context.Context, userID uint) error
}
