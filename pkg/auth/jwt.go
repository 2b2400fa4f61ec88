package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iamasit07/connect-four/internal/config"
)

// Claims represents JWT claims for access tokens
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Guest    bool   `json:"guest,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a signed HS256 access token
func GenerateAccessToken(userID int64, username string, guest bool) (string, error) {
	secret := config.AppConfig.JWTSecret
	now := time.Now()

	claims := &Claims{
		UserID:   userID,
		Username: username,
		Guest:    guest,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        GenerateTokenID(),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.AppConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAccessToken validates a JWT access token and returns the claims
func ValidateAccessToken(tokenString string) (*Claims, error) {
	secret := config.AppConfig.JWTSecret

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
