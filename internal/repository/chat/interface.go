package chat

import (
	"context"

	"github.com/ayazdoruck/pahiy-ai/internal/domain"
)

// ChatRepository handles chat data operations. Reads and mutations that take
// a userID are ownership-scoped: a chat owned by someone else behaves
// exactly like a chat that does not exist.
type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error)
	FindByIDAndUserID(ctx context.Context, chatID string, userID uint) (*domain.Chat, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Chat, error)
	UpdateTitle(ctx context.Context, chatID string, userID uint, title string) error
	Delete(ctx context.Context, chatID string, userID uint) error
	TouchUpdatedAt(ctx context.Context, chatID string) error
}
