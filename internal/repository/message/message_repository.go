// File: internal/repository/message/message_repository.go
package message

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/ayazdoruck/pahiy-ai/internal/domain"
)

// DefaultListLimit caps message listings when the caller passes no limit.
const DefaultListLimit = 100

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

func (r *gormMessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	if message == nil {
		return nil, errors.New("message cannot be nil")
	}
	if message.ChatID == "" {
		return nil, errors.New("chat ID is required")
	}
	if message.Role != domain.RoleUser && message.Role != domain.RoleAssistant {
		return nil, errors.New("invalid message role")
	}

	err := r.db.WithContext(ctx).Create(message).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error creating message for chat %s: %v", message.ChatID, err)
		return nil, errors.New("database error creating message")
	}
	return message, nil
}

// FindByChatID returns messages in strict timestamp-ascending order. The id
// tiebreak keeps same-timestamp appends in insertion order.
func (r *gormMessageRepository) FindByChatID(ctx context.Context, chatID string, limit int) ([]domain.Message, error) {
	if chatID == "" {
		return nil, errors.New("chat ID is required")
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&messages).Error

	if err != nil {
		log.Printf("[MessageRepository] Database error fetching messages for chat %s: %v", chatID, err)
		return nil, errors.New("database error fetching messages")
	}
	return messages, nil
}

// FindRecentByChatID returns the newest limit messages, still in
// timestamp-ascending order so callers can replay them as a transcript.
func (r *gormMessageRepository) FindRecentByChatID(ctx context.Context, chatID string, limit int) ([]domain.Message, error) {
	if chatID == "" {
		return nil, errors.New("chat ID is required")
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error

	if err != nil {
		log.Printf("[MessageRepository] Database error fetching recent messages for chat %s: %v", chatID, err)
		return nil, errors.New("database error fetching messages")
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *gormMessageRepository) CountByChatID(ctx context.Context, chatID string) (int64, error) {
	if chatID == "" {
		return 0, errors.New("chat ID is required")
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("chat_id = ?", chatID).
		Count(&count).Error

	if err != nil {
		log.Printf("[MessageRepository] Database error counting messages for chat %s: %v", chatID, err)
		return 0, errors.New("database error counting messages")
	}
	return count, nil
}

// DeleteByChatID removes every message but keeps the chat shell.
func (r *gormMessageRepository) DeleteByChatID(ctx context.Context, chatID string) error {
	if chatID == "" {
		return errors.New("chat ID is required")
	}

	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Delete(&domain.Message{}).Error

	if err != nil {
		log.Printf("[MessageRepository] Database error clearing messages for chat %s: %v", chatID, err)
		return errors.New("database error clearing messages")
	}
	return nil
}
