package http

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect-four/internal/repository/postgres"
)

type LeaderboardReader interface {
	GetLeaderboard(ctx context.Context, limit int) ([]postgres.PlayerStats, error)
}

type LeaderboardHandler struct {
	Users LeaderboardReader
}

func NewLeaderboardHandler(users LeaderboardReader) *LeaderboardHandler {
	return &LeaderboardHandler{Users: users}
}

func (h *LeaderboardHandler) Leaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
		return
	}

	leaderboard, err := h.Users.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		log.Printf("[LEADERBOARD] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}
	c.JSON(http.StatusOK, leaderboard)
}
