// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/baankanom/bakery-backend/internal/infrastructure/storage"
	"github.com/baankanom/bakery-backend/internal/pkg/auth"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// Service handles account registration, login, and profiles
type Service struct {
	db           *gorm.DB
	jwt          *auth.JWTManager
	passwords    *auth.PasswordManager
	store        storage.ObjectStore
	avatarBucket string
}

// NewService creates a new user service
func NewService(db *gorm.DB, jwt *auth.JWTManager, passwords *auth.PasswordManager, store storage.ObjectStore, avatarBucket string) *Service {
	return &Service{
		db:           db,
		jwt:          jwt,
		passwords:    passwords,
		store:        store,
		avatarBucket: avatarBucket,
	}
}

// RegisterRequest creates a new account
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
}

// AuthResponse is returned after registration, login, and refresh
type AuthResponse struct {
	User   *User           `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// Register creates an account and signs the user in
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)

	if err := s.passwords.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:       email,
		Password:    hash,
		DisplayName: strings.TrimSpace(req.DisplayName),
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.authResponse(u)
}

// LoginRequest signs into an existing account
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues a token pair
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	var u User
	err := s.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(req.Email)).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.passwords.VerifyPassword(req.Password, u.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	u.LastLoginAt = &now
	if err := s.db.WithContext(ctx).Model(&u).Update("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	return s.authResponse(&u)
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	u, err := s.Get(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return s.authResponse(u)
}

// Get returns a user by ID
func (s *Service) Get(ctx context.Context, id uint) (*User, error) {
	var u User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// Avatar carries an uploaded profile picture
type Avatar struct {
	Filename string
	Content  io.Reader
}

// UpdateProfileRequest changes profile fields. Nil fields are left unchanged.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
}

// UpdateProfile changes the display name and, if an avatar is attached,
// replaces the stored profile picture
func (s *Service) UpdateProfile(ctx context.Context, userID uint, req *UpdateProfileRequest, avatar *Avatar) (*User, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		u.DisplayName = strings.TrimSpace(*req.DisplayName)
	}

	oldPath := u.AvatarPath
	if avatar != nil {
		name := storage.ObjectName(avatar.Filename)
		path, err := s.store.Put(ctx, s.avatarBucket, name, avatar.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store avatar: %w", err)
		}
		u.AvatarPath = path
		u.AvatarURL = s.store.PublicURL(s.avatarBucket, path)
	}

	if err := s.db.WithContext(ctx).Save(u).Error; err != nil {
		if avatar != nil && u.AvatarPath != "" {
			s.store.Delete(ctx, s.avatarBucket, u.AvatarPath)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if avatar != nil && oldPath != "" && oldPath != u.AvatarPath {
		s.store.Delete(ctx, s.avatarBucket, oldPath)
	}

	return u, nil
}

func (s *Service) authResponse(u *User) (*AuthResponse, error) {
	tokens, err := s.jwt.GenerateTokenPair(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return &AuthResponse{User: u, Tokens: tokens}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
