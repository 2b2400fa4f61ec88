package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
)

type SnapshotReader interface {
	GetSnapshot(ctx context.Context, gameID string) (*domain.Snapshot, error)
}

type WatchHandler struct {
	SessionManager *game.SessionManager
	Snapshots      SnapshotReader // nil without Redis
}

func NewWatchHandler(sm *game.SessionManager, snapshots SnapshotReader) *WatchHandler {
	return &WatchHandler{SessionManager: sm, Snapshots: snapshots}
}

type liveGameResponse struct {
	GameID    string `json:"gameId"`
	Mode      string `json:"mode"`
	Player1   string `json:"player1"`
	Player2   string `json:"player2"`
	MoveCount int    `json:"moveCount"`
	StartedAt string `json:"startedAt"`
}

// GetLiveGames returns all unfinished games available for spectating
func (h *WatchHandler) GetLiveGames(c *gin.Context) {
	activeGames := h.SessionManager.GetActiveGames()

	response := make([]liveGameResponse, 0, len(activeGames))
	for _, g := range activeGames {
		response = append(response, liveGameResponse{
			GameID:    g.GameID,
			Mode:      string(g.Mode),
			Player1:   g.Player1,
			Player2:   g.Player2,
			MoveCount: g.MoveCount,
			StartedAt: g.StartedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, response)
}

// GetGameSnapshot serves the live session when this instance hosts the game,
// otherwise the snapshot published to Redis.
func (h *WatchHandler) GetGameSnapshot(c *gin.Context) {
	gameID := c.Param("id")

	if session, ok := h.SessionManager.GetSessionByGameID(gameID); ok {
		c.JSON(http.StatusOK, session.Snapshot())
		return
	}

	if h.Snapshots != nil {
		snapshot, err := h.Snapshots.GetSnapshot(c.Request.Context(), gameID)
		if err != nil {
			log.Printf("[WATCH] Snapshot lookup for %s failed: %v", gameID, err)
		} else if snapshot != nil {
			c.JSON(http.StatusOK, snapshot)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
}
