// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/ayazdoruck/pahiy-ai/internal/domain"
	"github.com/ayazdoruck/pahiy-ai/internal/repository/user"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

const passwordMinLength = 6

type AuthService struct {
	userRepo user.UserRepository
	logger   Logger
}

func NewAuthService(userRepo user.UserRepository, logger Logger) *AuthService {
	return &AuthService{userRepo: userRepo, logger: logger}
}

// Register creates a new user with a hashed password and a fresh email
// verification token. Fails with ErrDuplicateIdentity when the username or
// email is already taken.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, username, email, password string) (*domain.User, string, error) {
	if err := s.validateRegistrationInput(firstName, lastName, username, email, password); err != nil {
		s.logger.Warn("registration validation failed",
			"username", mask(username), "error", err.Error())
		return nil, "", err
	}

	// Pre-check both identities for a friendly error; the unique indexes
	// remain the backstop when two registrations race.
	if existing, err := s.userRepo.FindByUsername(ctx, username); err == nil && existing != nil {
		s.logger.Warn("registration failed - username already exists", "username", mask(username))
		return nil, "", ErrDuplicateIdentity
	}
	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		s.logger.Warn("registration failed - email already exists", "email", mask(email))
		return nil, "", ErrDuplicateIdentity
	}

	verificationToken, err := generateToken(32)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate verification token: %w", err)
	}

	newUser := &domain.User{
		FirstName:         firstName,
		LastName:          lastName,
		Username:          username,
		Email:             email,
		VerificationToken: verificationToken,
	}
	if err := newUser.HashPassword(password); err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	createdUser, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateIdentity) {
			return nil, "", ErrDuplicateIdentity
		}
		s.logger.Error("user creation failed", "username", mask(username), "error", err)
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", createdUser.ID, "username", mask(username))
	return createdUser, verificationToken, nil
}

// Authenticate matches the identifier against username OR email and checks
// the password. On success it stamps last-login and returns the user; a
// correct login against an unverified account returns NotVerifiedError.
func (s *AuthService) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	if login == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		s.logger.Warn("login failed - user not found", "login", mask(login))
		return nil, ErrInvalidCredentials
	}

	if err := account.ValidatePassword(password); err != nil {
		s.logger.Warn("login failed - invalid password", "user_id", account.ID)
		return nil, ErrInvalidCredentials
	}

	if !account.EmailVerified {
		s.logger.Warn("login attempt by unverified user", "user_id", account.ID)
		return account, &NotVerifiedError{Email: account.Email}
	}

	// Only completed logins count; a rejected unverified attempt must not
	// move the stamp.
	if err := s.userRepo.UpdateLastLogin(ctx, account.ID); err != nil {
		// Non-fatal: the login itself succeeded.
		s.logger.Warn("failed to update last login", "user_id", account.ID, "error", err)
	}

	s.logger.Info("login successful", "user_id", account.ID)
	return account, nil
}

// GetUser returns the user record for an authenticated id.
func (s *AuthService) GetUser(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// ChangePassword replaces the stored hash only when oldPassword matches it.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if len(newPassword) < passwordMinLength {
		return &ValidationError{Field: "new_password", Message: fmt.Sprintf("password must be at least %d characters", passwordMinLength)}
	}

	account, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := account.ValidatePassword(oldPassword); err != nil {
		s.logger.Warn("password change failed - wrong old password", "user_id", userID)
		return ErrWrongOldPassword
	}

	if err := account.HashPassword(newPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, account.Password); err != nil {
		return err
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}

func (s *AuthService) validateRegistrationInput(firstName, lastName, username, email, password string) error {
	if !validName(firstName) {
		return &ValidationError{Field: "first_name", Message: "enter a valid first name (at least 2 letters)"}
	}
	if !validName(lastName) {
		return &ValidationError{Field: "last_name", Message: "enter a valid last name (at least 2 letters)"}
	}
	if !usernameRegex.MatchString(username) {
		return &ValidationError{Field: "username", Message: "username must be 3-20 characters, alphanumeric or underscore"}
	}
	if !emailRegex.MatchString(email) {
		return &ValidationError{Field: "email", Message: "enter a valid email address"}
	}
	if len(password) < passwordMinLength {
		return &ValidationError{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", passwordMinLength)}
	}
	return nil
}

// validName accepts unicode letters and spaces, at least 2 runes.
func validName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < 2 {
		return false
	}
	for _, r := range trimmed {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
