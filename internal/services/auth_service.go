package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dommaster/backend/internal/apperr"
	"github.com/dommaster/backend/internal/models"
	"github.com/dommaster/backend/internal/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// confirmTokenTTL bounds how long an email confirmation link stays
// valid.
const confirmTokenTTL = 48 * time.Hour

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

type RegisterInput struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

func (in RegisterInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || len(in.Name) > 100 {
		return apperr.Validation("name is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return apperr.Validation("a valid email is required")
	}
	if strings.TrimSpace(in.Phone) == "" || len(in.Phone) > 20 {
		return apperr.Validation("phone is required")
	}
	if len(in.Password) < 6 {
		return apperr.Validation("password must be at least 6 characters")
	}
	if in.Password != in.ConfirmPassword {
		return apperr.Validation("passwords do not match")
	}
	return nil
}

// Register creates an unconfirmed account and returns it together with
// the raw confirmation token. Building the confirmation link and
// sending the email is the caller's job.
func (s *AuthService) Register(in RegisterInput) (*models.User, string, error) {
	if err := in.validate(); err != nil {
		return nil, "", err
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, "", apperr.Conflict("a user with this email already exists")
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	token, err := generateConfirmToken()
	if err != nil {
		return nil, "", err
	}
	expiresAt := time.Now().UTC().Add(confirmTokenTTL)

	user := models.User{
		Name:                  in.Name,
		Email:                 in.Email,
		Phone:                 in.Phone,
		PasswordHash:          hash,
		Role:                  models.RoleUser,
		EmailConfirmed:        false,
		EmailConfirmToken:     &token,
		EmailConfirmExpiresAt: &expiresAt,
	}

	if err := s.db.Create(&user).Error; err != nil {
		// The unique index is the authoritative guard; the count above
		// only exists for the common path. A concurrent registration
		// losing the race lands here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperr.Conflict("a user with this email already exists")
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	return &user, token, nil
}

// Login verifies credentials and the confirmation state. The error
// message never reveals whether the email or the password was wrong.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Auth("invalid credentials")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !security.CheckPassword(user.PasswordHash, password) {
		return nil, apperr.Auth("invalid credentials")
	}

	if !user.EmailConfirmed {
		return nil, apperr.Auth("email not confirmed")
	}

	return &user, nil
}

// ConfirmEmail redeems a confirmation token. Confirming an already
// confirmed account is a success and mutates nothing.
func (s *AuthService) ConfirmEmail(userID uint, token string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user.EmailConfirmed {
		return &user, nil
	}

	if user.EmailConfirmToken == nil || *user.EmailConfirmToken != token {
		return nil, apperr.Validation("invalid confirmation link")
	}

	if user.EmailConfirmExpiresAt != nil && user.EmailConfirmExpiresAt.Before(time.Now().UTC()) {
		return nil, apperr.Expired("confirmation link has expired")
	}

	updates := map[string]interface{}{
		"email_confirmed":          true,
		"email_confirm_token":      nil,
		"email_confirm_expires_at": nil,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("confirm email: %w", err)
	}

	user.EmailConfirmed = true
	user.EmailConfirmToken = nil
	user.EmailConfirmExpiresAt = nil
	return &user, nil
}

// LoginWithGoogle signs in (or registers) a user asserted by Google.
// The provider has verified the email, so the account is confirmed on
// both paths and any pending confirmation token is dropped.
func (s *AuthService) LoginWithGoogle(email, name string) (*models.User, error) {
	if email == "" {
		return nil, apperr.Validation("the identity provider did not supply an email")
	}
	if name == "" {
		name = email
	}

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No local password for this account; store an unusable random
		// one so the hash column stays non-null.
		hash, hashErr := security.HashPassword(uuid.NewString())
		if hashErr != nil {
			return nil, fmt.Errorf("hash placeholder password: %w", hashErr)
		}
		user = models.User{
			Name:           name,
			Email:          email,
			PasswordHash:   hash,
			Role:           models.RoleUser,
			EmailConfirmed: true,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create google user: %w", err)
		}
		return &user, nil

	case err != nil:
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !user.EmailConfirmed {
		updates := map[string]interface{}{
			"email_confirmed":          true,
			"email_confirm_token":      nil,
			"email_confirm_expires_at": nil,
		}
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("confirm google user: %w", err)
		}
		user.EmailConfirmed = true
		user.EmailConfirmToken = nil
		user.EmailConfirmExpiresAt = nil
	}

	return &user, nil
}

func generateConfirmToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate confirmation token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
