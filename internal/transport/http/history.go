package http

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/transport/http/middleware"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type GameReader interface {
	GetUserGameHistory(ctx context.Context, userID int64, limit int) ([]domain.GameRecord, error)
	GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error)
}

type HistoryHandler struct {
	Games GameReader
}

func NewHistoryHandler(games GameReader) *HistoryHandler {
	return &HistoryHandler{Games: games}
}

type gameHistoryItem struct {
	ID               string    `json:"id"`
	Mode             string    `json:"mode"`
	OpponentUsername string    `json:"opponentUsername"`
	Result           string    `json:"result"` // "win", "loss", "draw"
	EndReason        string    `json:"endReason"`
	CreatedAt        time.Time `json:"createdAt"`
	MovesCount       int       `json:"movesCount"`
	DurationSeconds  int       `json:"durationSeconds"`
}

// resultFor describes a game from userID's side. Hot-seat games have no
// loser, so a decided one counts as "finished".
func resultFor(game domain.GameRecord, userID int64) string {
	switch {
	case game.Reason == domain.ReasonDraw:
		return "draw"
	case game.Mode == domain.ModeLocal:
		return "finished"
	case game.WinnerID != nil && *game.WinnerID == userID:
		return "win"
	default:
		return "loss"
	}
}

func (h *HistoryHandler) GetHistory(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDKey)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultHistoryLimit)))
	if err != nil || limit < 1 || limit > maxHistoryLimit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
		return
	}

	rawHistory, err := h.Games.GetUserGameHistory(c.Request.Context(), userID, limit)
	if err != nil {
		log.Printf("[HISTORY] Failed to fetch history for %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	history := make([]gameHistoryItem, 0, len(rawHistory))
	for _, game := range rawHistory {
		item := gameHistoryItem{
			ID:              game.GameID,
			Mode:            string(game.Mode),
			Result:          resultFor(game, userID),
			EndReason:       game.Reason,
			CreatedAt:       game.CreatedAt,
			MovesCount:      game.TotalMoves,
			DurationSeconds: game.DurationSeconds,
		}
		if game.Player1ID == userID {
			item.OpponentUsername = game.Player2Username
		} else {
			item.OpponentUsername = game.Player1Username
		}
		history = append(history, item)
	}

	c.JSON(http.StatusOK, history)
}

type gameDetails struct {
	ID              string              `json:"id"`
	Mode            string              `json:"mode"`
	Player1         string              `json:"player1"`
	Player2         string              `json:"player2"`
	Winner          string              `json:"winner,omitempty"`
	EndReason       string              `json:"endReason"`
	MovesCount      int                 `json:"movesCount"`
	DurationSeconds int                 `json:"durationSeconds"`
	CreatedAt       time.Time           `json:"createdAt"`
	FinishedAt      time.Time           `json:"finishedAt"`
	Board           [][]domain.PlayerID `json:"board"`
	WinningCells    []domain.Position   `json:"winningCells,omitempty"`
}

// GetGameDetails returns a finished game with its final board. Only the
// players of the game may read it.
func (h *HistoryHandler) GetGameDetails(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDKey)

	game, err := h.Games.GetGameByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("[HISTORY] Failed to fetch game %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game"})
		return
	}
	if game == nil || (game.Player1ID != userID && (game.Player2ID == nil || *game.Player2ID != userID)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	details := gameDetails{
		ID:              game.GameID,
		Mode:            string(game.Mode),
		Player1:         game.Player1Username,
		Player2:         game.Player2Username,
		EndReason:       game.Reason,
		MovesCount:      game.TotalMoves,
		DurationSeconds: game.DurationSeconds,
		CreatedAt:       game.CreatedAt,
		FinishedAt:      game.FinishedAt,
		Board:           game.Board,
	}
	if game.Reason != domain.ReasonDraw {
		details.Winner = game.WinnerUsername
	}
	if game.Reason == domain.ReasonConnectFour {
		details.WinningCells = winningCellsOf(game.Board)
	}

	c.JSON(http.StatusOK, details)
}

func winningCellsOf(board [][]domain.PlayerID) []domain.Position {
	for _, p := range []domain.PlayerID{domain.Player1, domain.Player2} {
		if cells := domain.WinningCells(board, p); cells != nil {
			return cells
		}
	}
	return nil
}
