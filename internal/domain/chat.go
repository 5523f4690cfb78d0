// File: internal/domain/chat.go
package domain

import "time"

// Chat represents a single conversation thread. The ID is an opaque token
// rather than an autoincrement so chat URLs are not enumerable.
type Chat struct {
	ID        string    `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"-" gorm:"index;not null"` // The ID of the user who owns the chat
	Title     string    `json:"title" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []Message `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
