package message

import (
	"context"

	"github.com/ayazdoruck/pahiy-ai/internal/domain"
)

// MessageRepository handles message data operations. Ownership is enforced
// one layer up; by the time a chat ID reaches this package it has already
// been validated against the requesting user.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	FindByChatID(ctx context.Context, chatID string, limit int) ([]domain.Message, error)
	FindRecentByChatID(ctx context.Context, chatID string, limit int) ([]domain.Message, error)
	CountByChatID(ctx context.Context, chatID string) (int64, error)
	DeleteByChatID(ctx context.Context, chatID string) error
}
