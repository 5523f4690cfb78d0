// File: internal/services/user_services/session_service.go
package user_services

import (
	"context"
	"fmt"
	"time"

	"github.com/ayazdoruck/pahiy-ai/internal/domain"
	"github.com/ayazdoruck/pahiy-ai/internal/repository/session"
)

// SessionTTL is the fixed validity window of a newly issued session.
const SessionTTL = 30 * 24 * time.Hour

type SessionService struct {
	sessionRepo session.SessionRepository
	ttl         time.Duration
	logger      Logger
}

func NewSessionService(sessionRepo session.SessionRepository, logger Logger) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		ttl:         SessionTTL,
		logger:      logger,
	}
}

// Issue creates and persists a new opaque session token for the user.
func (s *SessionService) Issue(ctx context.Context, userID uint) (string, error) {
	token, err := generateToken(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	sess := &domain.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return "", err
	}

	s.logger.Debug("session issued", "user_id", userID)
	return token, nil
}

// Validate resolves a bearer token to its user id. Expired or unknown
// tokens fail with ErrUnauthenticated.
func (s *SessionService) Validate(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, ErrUnauthenticated
	}

	sess, err := s.sessionRepo.FindValid(ctx, token)
	if err != nil {
		return 0, ErrUnauthenticated
	}
	return sess.UserID, nil
}

// Revoke invalidates the token immediately. Revoking an unknown or already
// revoked token succeeds.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	return s.sessionRepo.Delete(ctx, token)
}

// SweepLoop periodically deletes expired session rows so the table stays
// bounded. Validity never depends on it; FindValid filters on expiry.
func (s *SessionService) SweepLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed, err := s.sessionRepo.DeleteExpired(ctx)
			if err != nil {
				s.logger.Warn("session sweep failed", "error", err)
				continue
			}
			if removed > 0 {
				s.logger.Debug("session sweep removed expired rows", "count", removed)
			}
		case <-ctx.Done():
			return
		}
	}
}
