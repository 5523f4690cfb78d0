// File: internal/services/user_services/verification_service.go
package user_services

import (
	"context"
	"fmt"

	"github.com/ayazdoruck/pahiy-ai/internal/domain"
	"github.com/ayazdoruck/pahiy-ai/internal/repository/user"
	"github.com/ayazdoruck/pahiy-ai/internal/services/mail"
)

// ResendResult tells the handler what happened without letting the HTTP
// response differ between known and unknown emails.
type ResendResult int

const (
	ResendSent ResendResult = iota
	ResendAlreadyVerified
	ResendUnknownEmail
)

type VerificationService struct {
	userRepo    user.UserRepository
	mailSender  mail.Sender
	frontendURL string
	logger      Logger
}

func NewVerificationService(userRepo user.UserRepository, mailSender mail.Sender, frontendURL string, logger Logger) *VerificationService {
	return &VerificationService{
		userRepo:    userRepo,
		mailSender:  mailSender,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// SendVerificationMail delivers the verification link best-effort: a mail
// failure is logged and swallowed so registration still succeeds.
func (s *VerificationService) SendVerificationMail(ctx context.Context, account *domain.User, token string) {
	link := fmt.Sprintf("%s/api/verify-email/%s", s.frontendURL, token)
	if err := s.mailSender.SendVerificationEmail(ctx, account.Email, account.Username, link); err != nil {
		s.logger.Error("verification email delivery failed",
			"user_id", account.ID, "email", mask(account.Email), "error", err)
		return
	}
	s.logger.Info("verification email sent", "user_id", account.ID)
}

// VerifyEmail marks the token's owner as verified and clears the token so
// the link is single-use.
func (s *VerificationService) VerifyEmail(ctx context.Context, token string) error {
	account, err := s.userRepo.FindByVerificationToken(ctx, token)
	if err != nil {
		return ErrInvalidToken
	}

	if err := s.userRepo.MarkEmailVerified(ctx, account.ID); err != nil {
		return err
	}

	s.logger.Info("email verified", "user_id", account.ID)
	return nil
}

// Resend issues a fresh token and re-sends the verification mail. The
// handler replies identically for ResendSent and ResendUnknownEmail to
// avoid account enumeration.
func (s *VerificationService) Resend(ctx context.Context, email string) (ResendResult, error) {
	account, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return ResendUnknownEmail, nil
	}
	if account.EmailVerified {
		return ResendAlreadyVerified, nil
	}

	token, err := generateToken(32)
	if err != nil {
		return ResendUnknownEmail, fmt.Errorf("failed to generate verification token: %w", err)
	}
	if err := s.userRepo.UpdateVerificationToken(ctx, account.ID, token); err != nil {
		return ResendUnknownEmail, err
	}

	s.SendVerificationMail(ctx, account, token)
	return ResendSent, nil
}
