// File: internal/domain/message.go
package domain

import "time"

// Message roles. Assistant content is stored already HTML-formatted.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single message within a chat.
type Message struct {
	ID        uint      `json:"-" gorm:"primarykey"`
	ChatID    string    `json:"chat_id" gorm:"index;not null"`
	Role      string    `json:"role" gorm:"not null"` // "user" or "assistant"
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"timestamp"`
}
