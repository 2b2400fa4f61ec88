package game

import (
	"fmt"
	"log"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
)

func (gs *GameSession) startPostGameTimer(conn ConnectionManagerInterface) {
	gameID := gs.GameID
	gs.postGameTimer = time.AfterFunc(gs.sm.timings.PostGameWindow, func() {
		gs.mu.Lock()
		gs.postGameTimer = nil
		gs.cancelRestartRequestLocked(conn)
		gs.stopTimersLocked()
		gs.mu.Unlock()

		log.Printf("[SESSION] Post-game window closed for %s", gameID)
		gs.sm.RemoveSession(gameID)
	})
}

// HandleRestartRequest starts a new game for hot-seat and bot sessions right
// away. In pvp the opponent has to accept a finished game's restart.
func (gs *GameSession) HandleRestartRequest(userID int64, conn ConnectionManagerInterface) error {
	gs.mu.Lock()

	if !gs.HasPlayer(userID) {
		gs.mu.Unlock()
		return fmt.Errorf("player not found in game")
	}

	if gs.Mode != domain.ModePvP {
		gs.mu.Unlock()
		return gs.restart(conn)
	}
	defer gs.mu.Unlock()

	if !gs.ended {
		return fmt.Errorf("cannot restart - game still in progress")
	}
	if gs.Reason == domain.ReasonDisconnect || gs.Reason == domain.ReasonSurrender {
		return fmt.Errorf("restart not available for this game")
	}
	if gs.restartRequester != nil {
		return fmt.Errorf("restart already requested")
	}

	requester := userID
	gs.restartRequester = &requester

	timeout := gs.sm.timings.RestartTimeout
	opponent := gs.Player1ID
	if userID == gs.Player1ID {
		opponent = *gs.Player2ID
	}
	conn.SendMessage(opponent, domain.ServerMessage{
		Type:       "restart_request",
		GameID:     gs.GameID,
		Requester:  gs.GetUsernameByUserID(userID),
		TimeoutSec: int(timeout.Seconds()),
	})
	conn.SendMessage(userID, domain.ServerMessage{
		Type:       "restart_pending",
		GameID:     gs.GameID,
		TimeoutSec: int(timeout.Seconds()),
	})

	gameID := gs.GameID
	gs.restartTimer = time.AfterFunc(timeout, func() {
		gs.mu.Lock()
		if gs.restartRequester == nil {
			gs.mu.Unlock()
			return
		}
		gs.restartRequester = nil
		gs.restartTimer = nil
		gs.broadcast(conn, domain.ServerMessage{
			Type:         "restart_timeout",
			GameID:       gameID,
			Message:      "Restart request timed out",
			AllowRestart: boolPtr(false),
		})
		gs.stopTimersLocked()
		gs.mu.Unlock()

		gs.sm.RemoveSession(gameID)
	})

	log.Printf("[RESTART] User %d requested restart of game %s", userID, gs.GameID)
	return nil
}

func (gs *GameSession) HandleRestartResponse(userID int64, response string, conn ConnectionManagerInterface) error {
	gs.mu.Lock()

	if gs.restartRequester == nil {
		gs.mu.Unlock()
		return fmt.Errorf("no pending restart request")
	}
	if !gs.HasPlayer(userID) || *gs.restartRequester == userID {
		gs.mu.Unlock()
		return fmt.Errorf("cannot respond to this restart request")
	}

	gs.restartRequester = nil
	gameID := gs.GameID

	if response == "accept" {
		gs.broadcast(conn, domain.ServerMessage{Type: "restart_accepted", GameID: gameID})
		gs.mu.Unlock()

		log.Printf("[RESTART] Restart of game %s accepted", gameID)
		return gs.restart(conn)
	}

	gs.broadcast(conn, domain.ServerMessage{
		Type:         "restart_declined",
		GameID:       gameID,
		AllowRestart: boolPtr(false),
	})
	gs.stopTimersLocked()
	gs.mu.Unlock()

	log.Printf("[RESTART] Restart of game %s declined", gameID)
	gs.sm.RemoveSession(gameID)
	return nil
}

// cancelRestartRequestLocked tells the requester nobody will answer.
func (gs *GameSession) cancelRestartRequestLocked(conn ConnectionManagerInterface) {
	if gs.restartRequester == nil {
		return
	}
	conn.SendMessage(*gs.restartRequester, domain.ServerMessage{
		Type:         "restart_cancelled",
		GameID:       gs.GameID,
		AllowRestart: boolPtr(false),
	})
	gs.restartRequester = nil
}

// restart replaces the session with a fresh one for the same players. The
// caller must not hold gs.mu.
func (gs *GameSession) restart(conn ConnectionManagerInterface) error {
	gs.mu.Lock()
	gs.stopTimersLocked()
	gs.restartRequester = nil
	gs.ended = true
	gameID := gs.GameID
	mode := gs.Mode
	p1ID := gs.Player1ID
	p1 := Player{ID: &p1ID, Username: gs.Player1Username}
	p2 := Player{ID: gs.Player2ID, Username: gs.Player2Username}
	difficulty := gs.BotDifficulty
	gs.mu.Unlock()

	gs.sm.RemoveSession(gameID)
	if _, err := gs.sm.CreateSession(mode, p1, p2, difficulty, conn); err != nil {
		return fmt.Errorf("failed to restart game: %w", err)
	}
	return nil
}
