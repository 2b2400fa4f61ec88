package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/pkg/auth"
	"github.com/iamasit07/connect-four/pkg/uid"
)

const blockedTokenKeyPrefix = "blocked_token:"

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

type UserRepository interface {
	CreateUser(ctx context.Context, username, passwordHash string) (int64, error)
	CreateGuest(ctx context.Context, username string) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
}

type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// AuthService handles accounts and access tokens
type AuthService struct {
	users UserRepository
	cache CacheRepository // Optional, can be nil
}

func NewAuthService(users UserRepository, cache CacheRepository) *AuthService {
	return &AuthService{users: users, cache: cache}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (string, *domain.User, error) {
	if err := auth.ValidateUsername(username); err != nil {
		return "", nil, err
	}
	if err := auth.ValidatePasswordStrength(password); err != nil {
		return "", nil, err
	}

	existing, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.users.CreateUser(ctx, username, hash)
	if err != nil {
		return "", nil, err
	}
	log.Printf("[AUTH] Registered user %s (ID: %d)", username, userID)

	return s.issue(ctx, userID)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if user == nil || user.IsGuest || !auth.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateAccessToken(user.ID, user.Username, false)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, user, nil
}

// Guest creates a throwaway account and signs a token for it.
func (s *AuthService) Guest(ctx context.Context) (string, *domain.User, error) {
	userID, err := s.users.CreateGuest(ctx, uid.GenerateGuestName())
	if err != nil {
		return "", nil, err
	}
	return s.issue(ctx, userID)
}

func (s *AuthService) issue(ctx context.Context, userID int64) (string, *domain.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, fmt.Errorf("user %d vanished after insert", userID)
	}

	token, err := auth.GenerateAccessToken(user.ID, user.Username, user.IsGuest)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, user, nil
}

// ValidateToken checks the signature, expiry and the logout blocklist.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	claims, err := auth.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, err
	}
	if s.isTokenBlocked(ctx, claims.ID) {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Logout blocklists the token until it would have expired anyway. Without a
// cache tokens stay valid until expiry.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.ValidateToken(ctx, tokenString)
	if err != nil {
		return err
	}
	if s.cache == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, blockedTokenKeyPrefix+claims.ID, "1", ttl)
}

func (s *AuthService) isTokenBlocked(ctx context.Context, tokenID string) bool {
	if s.cache == nil {
		return false
	}
	val, err := s.cache.Get(ctx, blockedTokenKeyPrefix+tokenID)
	return err == nil && val != ""
}

func (s *AuthService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetUserByID(ctx, userID)
}
