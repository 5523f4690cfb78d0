// File: internal/domain/session.go
package domain

import "time"

// Session maps an opaque bearer token to a user. A token is valid iff the
// row exists and now < ExpiresAt; expiry is always checked at query time,
// the background sweeper only keeps the table from growing.
type Session struct {
	Token     string    `gorm:"primarykey"`
	UserID    uint      `gorm:"index;not null"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index;not null"`
}

// IsValid reports whether the session is still usable at time now.
func (s *Session) IsValid(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
