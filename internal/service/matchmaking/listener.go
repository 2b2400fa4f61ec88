package matchmaking

import (
	"context"
	"log"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
)

func MatchMakingListener(ctx context.Context, queue *MatchmakingQueue, cm game.ConnectionManagerInterface, sm *game.SessionManager) {
	for {
		select {
		case <-ctx.Done():
			return
		case match := <-queue.MatchChannel:
			startMatch(match, cm, sm)
		}
	}
}

func startMatch(match Match, cm game.ConnectionManagerInterface, sm *game.SessionManager) {
	player1ID := match.Player1ID

	log.Printf("[MATCHMAKING] Match found: %s (ID: %d) vs %s (ID: %v)",
		match.Player1Username, player1ID, match.Player2Username, match.Player2ID)

	// Terminate any existing sessions for these users to prevent jagged state
	sm.ForceCleanupForUser(player1ID, cm)

	mode := domain.ModeBot
	if match.Player2ID != nil {
		mode = domain.ModePvP
		sm.ForceCleanupForUser(*match.Player2ID, cm)
	}

	if match.TimedOut {
		cm.SendMessage(player1ID, domain.ServerMessage{
			Type:    "queue_timeout",
			Message: "No opponent found, starting a game against the bot",
		})
	}

	p1 := game.Player{ID: &player1ID, Username: match.Player1Username}
	p2 := game.Player{ID: match.Player2ID, Username: match.Player2Username}

	// CreateSession will handle sending game_start messages
	session, err := sm.CreateSession(mode, p1, p2, match.BotDifficulty, cm)
	if err != nil {
		log.Printf("[MATCHMAKING] Failed to start match for %s: %v", match.Player1Username, err)
		cm.SendMessage(player1ID, domain.ServerMessage{Type: "error", Message: "Failed to start game"})
		return
	}

	log.Printf("[MATCHMAKING] Match started between %s and %s with game ID %s",
		session.Player1Username, session.Player2Username, session.GameID)
}
