package game

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
)

// Player identifies one side of a session. ID is nil for the bot and for
// the second color of a hot-seat game.
type Player struct {
	ID       *int64
	Username string
}

// SessionManager manages active game sessions
type SessionManager struct {
	sessions   map[string]*GameSession // gameID → GameSession
	userToGame map[int64]string        // userID → gameID (for quick lookup)
	mu         sync.RWMutex
	repo       GameRepository
	snapshots  SnapshotStore
	timings    Timings
}

// Timings groups the delays a session waits on.
type Timings struct {
	BotDelay       time.Duration
	PostGameWindow time.Duration
	RestartTimeout time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		BotDelay:       500 * time.Millisecond,
		PostGameWindow: 30 * time.Second,
		RestartTimeout: 10 * time.Second,
	}
}

func NewSessionManager(repo GameRepository, snapshots SnapshotStore, timings Timings) *SessionManager {
	return &SessionManager{
		sessions:   make(map[string]*GameSession),
		userToGame: make(map[int64]string),
		repo:       repo,
		snapshots:  snapshots,
		timings:    timings,
	}
}

func (sm *SessionManager) CreateSession(mode domain.GameMode, p1 Player, p2 Player, botDifficulty string, conn ConnectionManagerInterface) (*GameSession, error) {
	if p1.ID == nil {
		return nil, fmt.Errorf("player 1 must be a user")
	}
	if mode == domain.ModePvP && p2.ID == nil {
		return nil, fmt.Errorf("pvp game needs two users")
	}

	session := newGameSession(mode, *p1.ID, p1.Username, p2, botDifficulty, sm)

	sm.mu.Lock()
	sm.sessions[session.GameID] = session
	sm.userToGame[session.Player1ID] = session.GameID
	if session.Player2ID != nil {
		sm.userToGame[*session.Player2ID] = session.GameID
	}
	sm.mu.Unlock()

	log.Printf("[SESSION] Created %s session %s: %s (ID: %d) vs %s",
		mode, session.GameID, session.Player1Username, session.Player1ID, session.Player2Username)

	session.mu.Lock()
	session.announceStart(conn)
	session.publishSnapshot()
	session.mu.Unlock()

	return session, nil
}

func (sm *SessionManager) GetSessionByUserID(userID int64) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	gameID, exists := sm.userToGame[userID]
	if !exists {
		return nil, false
	}

	session, exists := sm.sessions[gameID]
	return session, exists
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.removeSessionLocked(gameID)
}

// removeSessionLocked removes session from maps without acquiring lock (caller must hold it)
func (sm *SessionManager) removeSessionLocked(gameID string) error {
	session, exists := sm.sessions[gameID]
	if !exists {
		return fmt.Errorf("session not found")
	}

	log.Printf("[SESSION] Removing session %s", gameID)

	// a user may already be mapped to a newer game
	if sm.userToGame[session.Player1ID] == gameID {
		delete(sm.userToGame, session.Player1ID)
	}
	if session.Player2ID != nil && sm.userToGame[*session.Player2ID] == gameID {
		delete(sm.userToGame, *session.Player2ID)
	}
	delete(sm.sessions, gameID)

	if session.snapshots != nil {
		session.snapshots.remove()
	}

	return nil
}

// ForceCleanupForUser ends whatever session the user is in before they
// start a new one. An active game counts as abandoned.
func (sm *SessionManager) ForceCleanupForUser(userID int64, conn ConnectionManagerInterface) {
	session, exists := sm.GetSessionByUserID(userID)
	if !exists {
		return
	}

	session.mu.Lock()
	finished := session.ended
	if finished {
		log.Printf("[SESSION] Cleaning up finished session %s for user %d", session.GameID, userID)
		session.stopTimersLocked()
	}
	session.mu.Unlock()

	if !finished {
		log.Printf("[SESSION] Abandoning active session %s for user %d", session.GameID, userID)
		session.TerminateSessionByAbandonment(userID, conn)
	}

	sm.RemoveSession(session.GameID)
}

// LiveGame describes an active game for the watch list.
type LiveGame struct {
	GameID    string
	Mode      domain.GameMode
	Player1   string
	Player2   string
	MoveCount int
	StartedAt time.Time
}

// GetActiveGames returns unfinished games, oldest first.
func (sm *SessionManager) GetActiveGames() []LiveGame {
	sm.mu.RLock()
	sessions := make([]*GameSession, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		sessions = append(sessions, s)
	}
	sm.mu.RUnlock()

	games := make([]LiveGame, 0, len(sessions))
	for _, s := range sessions {
		s.mu.Lock()
		if !s.ended {
			games = append(games, LiveGame{
				GameID:    s.GameID,
				Mode:      s.Mode,
				Player1:   s.Player1Username,
				Player2:   s.Player2Username,
				MoveCount: s.Game.MoveCount,
				StartedAt: s.CreatedAt,
			})
		}
		s.mu.Unlock()
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].StartedAt.Before(games[j].StartedAt)
	})
	return games
}

// CleanupOldSessions drops finished sessions after an hour and active ones
// after a day. It returns how many were removed.
func (sm *SessionManager) CleanupOldSessions(now time.Time) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	for gameID, session := range sm.sessions {
		session.mu.Lock()
		stale := false
		if session.ended {
			stale = now.Sub(session.FinishedAt) > 1*time.Hour
		} else {
			stale = now.Sub(session.CreatedAt) > 24*time.Hour
		}
		if stale {
			session.stopTimersLocked()
		}
		session.mu.Unlock()

		if stale {
			sm.removeSessionLocked(gameID)
			count++
		}
	}

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", count)
	}
	return count
}
