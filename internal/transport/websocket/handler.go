package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/render"
	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/internal/service/matchmaking"
	"github.com/iamasit07/connect-four/pkg/auth"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error)
}

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	Matchmaking    *matchmaking.MatchmakingQueue
	SessionManager *game.SessionManager
	Auth           TokenValidator
	Upgrader       websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, mq *matchmaking.MatchmakingQueue, sm *game.SessionManager, tv TokenValidator, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager:    cm,
		Matchmaking:    mq,
		SessionManager: sm,
		Auth:           tv,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// originChecker accepts requests without an Origin header (native clients)
// and browser requests from an allowed origin.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == origin {
				return true
			}
		}
		log.Printf("[WS] Rejected origin %q", origin)
		return false
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go keepAlive(conn, done)

	userID, username, ok := h.authenticate(conn)
	if !ok {
		conn.Close()
		return
	}

	log.Printf("[WS] Connection initialized for user: %s (ID: %d)", username, userID)
	h.ConnManager.AddConnection(userID, conn, username)
	h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "connected", Message: username})

	defer func() {
		log.Printf("[WS] Connection closed for user %s", username)

		// a newer socket for the same user keeps the game alive
		if !h.ConnManager.IsCurrentConnection(userID, conn) {
			return
		}
		h.Matchmaking.RemovePlayer(userID)
		if gameSession, exists := h.SessionManager.GetSessionByUserID(userID); exists {
			gameSession.HandleDisconnect(userID, h.ConnManager)
		}
		h.ConnManager.RemoveConnectionIfMatching(userID, conn)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] User disconnected unexpectedly: %v", err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			h.sendError(userID, "Invalid message format")
			continue
		}

		h.processMessage(userID, msg)
	}
}

// keepAlive pings until done is closed. WriteControl may run concurrently
// with SendMessage.
func keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// authenticate expects the first frame to be an init message carrying a JWT.
func (h *Handler) authenticate(conn *websocket.Conn) (int64, string, bool) {
	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Printf("[WS] Read error during init: %v", err)
		return 0, "", false
	}

	var message domain.ClientMessage
	if err := json.Unmarshal(data, &message); err != nil || message.Type != "init" || message.JWT == "" {
		log.Printf("[WS] Missing initialization or token")
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "First message must be init with a token"})
		return 0, "", false
	}

	claims, err := h.Auth.ValidateToken(context.Background(), message.JWT)
	if err != nil {
		log.Printf("[WS] Invalid token during init: %v", err)
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "Invalid token or session expired"})
		return 0, "", false
	}
	return claims.UserID, claims.Username, true
}

func (h *Handler) sendError(userID int64, message string) {
	h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: message})
}

func (h *Handler) currentSession(userID int64) (*game.GameSession, bool) {
	gameSession, exists := h.SessionManager.GetSessionByUserID(userID)
	if !exists {
		h.sendError(userID, "Game not found")
	}
	return gameSession, exists
}

// processMessage routes specific actions
func (h *Handler) processMessage(userID int64, msg domain.ClientMessage) {
	username, _ := h.ConnManager.GetUsername(userID)

	switch msg.Type {
	case "find_match":
		if h.Matchmaking.IsWaiting(userID) {
			h.sendError(userID, "Already searching for a match")
			return
		}
		// If game is active, it's abandoned. If finished (restart window), it's cleaned up.
		h.SessionManager.ForceCleanupForUser(userID, h.ConnManager)
		h.Matchmaking.AddPlayerToQueue(userID, username, msg.Difficulty)
		h.ConnManager.SendMessage(userID, domain.ServerMessage{
			Type:       "queue_joined",
			TimeoutSec: int(h.Matchmaking.Timeout().Seconds()),
		})

	case "cancel_search":
		h.Matchmaking.RemovePlayer(userID)
		h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "queue_left"})

	case "start_local", "start_bot":
		h.Matchmaking.RemovePlayer(userID)
		h.SessionManager.ForceCleanupForUser(userID, h.ConnManager)

		mode := domain.ModeLocal
		if msg.Type == "start_bot" {
			mode = domain.ModeBot
		}
		p1 := game.Player{ID: &userID, Username: username}
		if _, err := h.SessionManager.CreateSession(mode, p1, game.Player{}, msg.Difficulty, h.ConnManager); err != nil {
			h.sendError(userID, err.Error())
		}

	case "make_move":
		column, ok := columnFor(msg)
		if !ok {
			h.sendError(userID, "make_move needs a column or an x position")
			return
		}
		gameSession, exists := h.currentSession(userID)
		if !exists {
			return
		}
		if err := gameSession.HandleMove(userID, column, h.ConnManager); err != nil {
			h.sendError(userID, err.Error())
		}

	case "restart_request":
		gameSession, exists := h.currentSession(userID)
		if !exists {
			return
		}
		if err := gameSession.HandleRestartRequest(userID, h.ConnManager); err != nil {
			h.sendError(userID, err.Error())
		}

	case "restart_response":
		gameSession, exists := h.currentSession(userID)
		if !exists {
			return
		}
		if err := gameSession.HandleRestartResponse(userID, msg.RestartResponse, h.ConnManager); err != nil {
			h.sendError(userID, err.Error())
		}

	case "abandon_game":
		gameSession, exists := h.SessionManager.GetSessionByUserID(userID)
		if !exists {
			return
		}
		gameSession.TerminateSessionByAbandonment(userID, h.ConnManager)
		h.SessionManager.RemoveSession(gameSession.GameID)

	default:
		h.sendError(userID, "Unknown message type: "+msg.Type)
	}
}

// columnFor prefers an explicit column and falls back to a pixel position on
// the board canvas.
func columnFor(msg domain.ClientMessage) (int, bool) {
	if msg.Column != nil {
		return *msg.Column, true
	}
	if msg.X != nil {
		return render.DefaultLayout().ColumnAt(*msg.X), true
	}
	return 0, false
}
