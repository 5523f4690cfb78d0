// File: internal/repository/user/gorm_user_repository.go
package user

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ayazdoruck/pahiy-ai/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateIdentity is returned when the username or email is taken.
var ErrDuplicateIdentity = errors.New("username or email already exists")

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user cannot be nil")
	}

	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		// SQLite reports uniqueness conflicts as constraint errors; the
		// service pre-checks too, but this is the race-free backstop.
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, ErrDuplicateIdentity
		}
		log.Printf("[UserRepository] Database error during user creation: %v", err)
		return nil, errors.New("database error creating user")
	}

	return user, nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if id == 0 {
		return nil, errors.New("invalid user ID")
	}
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	return r.handleFindError(err, &user, "FindByID")
}

func (r *gormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return r.handleFindError(err, &user, "FindByUsername")
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return r.handleFindError(err, &user, "FindByEmail")
}

func (r *gormUserRepository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, login).
		First(&user).Error
	return r.handleFindError(err, &user, "FindByLogin")
}

func (r *gormUserRepository) FindByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUserNotFound
	}
	var user domain.User
	err := r.db.WithContext(ctx).Where("verification_token = ?", token).First(&user).Error
	return r.handleFindError(err, &user, "FindByVerificationToken")
}

func (r *gormUserRepository) UpdateLastLogin(ctx context.Context, userID uint) error {
	now := time.Now()
	return r.updateColumns(ctx, userID, map[string]interface{}{"last_login": &now}, "UpdateLastLogin")
}

func (r *gormUserRepository) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	if passwordHash == "" {
		return errors.New("password hash is required")
	}
	return r.updateColumns(ctx, userID, map[string]interface{}{"password": passwordHash}, "UpdatePassword")
}

func (r *gormUserRepository) UpdateVerificationToken(ctx context.Context, userID uint, token string) error {
	return r.updateColumns(ctx, userID, map[string]interface{}{"verification_token": token}, "UpdateVerificationToken")
}

func (r *gormUserRepository) MarkEmailVerified(ctx context.Context, userID uint) error {
	return r.updateColumns(ctx, userID, map[string]interface{}{
		"email_verified":     true,
		"verification_token": "",
	}, "MarkEmailVerified")
}

func (r *gormUserRepository) updateColumns(ctx context.Context, userID uint, cols map[string]interface{}, operation string) error {
	if userID == 0 {
		return errors.New("invalid user ID")
	}

	result := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(cols)

	if result.Error != nil {
		log.Printf("[UserRepository] %s database error for user ID %d: %v", operation, userID, result.Error)
		return errors.New("database error updating user")
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// handleFindError maps lookup failures without leaking database detail.
func (r *gormUserRepository) handleFindError(err error, user *domain.User, operation string) (*domain.User, error) {
	if err == nil {
		return user, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	log.Printf("[UserRepository] %s database error: %v", operation, err)
	return nil, errors.New("database query failed")
}
