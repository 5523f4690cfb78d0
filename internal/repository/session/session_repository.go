// File: internal/repository/session/session_repository.go
package session

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/ayazdoruck/pahiy-ai/internal/domain"
)

var ErrSessionNotFound = errors.New("session not found")

type gormSessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &gormSessionRepository{db: db}
}

func (r *gormSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if session == nil || session.Token == "" || session.UserID == 0 {
		return errors.New("invalid session")
	}

	err := r.db.WithContext(ctx).Create(session).Error
	if err != nil {
		log.Printf("[SessionRepository] Database error creating session for user ID %d: %v", session.UserID, err)
		return errors.New("database error creating session")
	}
	return nil
}

// FindValid applies the expiry filter in the query itself, so an expired
// row that the sweeper has not reached yet is still invisible here.
func (r *gormSessionRepository) FindValid(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	var session domain.Session
	err := r.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&session).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		log.Printf("[SessionRepository] FindValid database error: %v", err)
		return nil, errors.New("database query failed")
	}
	return &session, nil
}

func (r *gormSessionRepository) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&domain.Session{}).Error

	if err != nil {
		log.Printf("[SessionRepository] Database error deleting session: %v", err)
		return errors.New("database error deleting session")
	}
	return nil
}

func (r *gormSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&domain.Session{})

	if result.Error != nil {
		log.Printf("[SessionRepository] Database error sweeping expired sessions: %v", result.Error)
		return 0, errors.New("database error sweeping sessions")
	}
	return result.RowsAffected, nil
}
