// File: internal/services/user_services/user_service.go
package user_services

import (
	"github.com/ayazdoruck/pahiy-ai/internal/repository/session"
	"github.com/ayazdoruck/pahiy-ai/internal/repository/user"
	"github.com/ayazdoruck/pahiy-ai/internal/services/mail"
)

// UserService is the main service that composes other user-related services
type UserService struct {
	*AuthService
	*SessionService
	*VerificationService
}

// NewUserService creates a new composite UserService
func NewUserService(
	userRepo user.UserRepository,
	sessionRepo session.SessionRepository,
	mailSender mail.Sender,
	frontendURL string,
	logger Logger,
) *UserService {
	return &UserService{
		AuthService:         NewAuthService(userRepo, logger),
		SessionService:      NewSessionService(sessionRepo, logger),
		VerificationService: NewVerificationService(userRepo, mailSender, frontendURL, logger),
	}
}
