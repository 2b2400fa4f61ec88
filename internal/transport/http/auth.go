package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/session"
	"github.com/iamasit07/connect-four/internal/transport/http/middleware"
	"github.com/iamasit07/connect-four/pkg/auth"
)

type Authenticator interface {
	Register(ctx context.Context, username, password string) (string, *domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Guest(ctx context.Context) (string, *domain.User, error)
	Logout(ctx context.Context, tokenString string) error
	ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error)
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

type AuthHandler struct {
	Auth Authenticator
}

func NewAuthHandler(a Authenticator) *AuthHandler {
	return &AuthHandler{Auth: a}
}

type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func tokenResponse(token string, user *domain.User) gin.H {
	return gin.H{"token": token, "user": user.UserResponse()}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	token, user, err := h.Auth.Register(c.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	switch {
	case errors.Is(err, session.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, auth.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		log.Printf("[AUTH] Register failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, tokenResponse(token, user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	token, user, err := h.Auth.Login(c.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	if errors.Is(err, session.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Printf("[AUTH] Login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, tokenResponse(token, user))
}

func (h *AuthHandler) Guest(c *gin.Context) {
	token, user, err := h.Auth.Guest(c.Request.Context())
	if err != nil {
		log.Printf("[AUTH] Guest login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create guest"})
		return
	}
	c.JSON(http.StatusCreated, tokenResponse(token, user))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Auth.Logout(c.Request.Context(), c.GetString(middleware.TokenKey)); err != nil {
		log.Printf("[AUTH] Logout failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.Auth.GetUser(c.Request.Context(), c.GetInt64(middleware.UserIDKey))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user.UserResponse())
}
