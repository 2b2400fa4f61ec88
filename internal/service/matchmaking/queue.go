package matchmaking

import (
	"sync"
	"time"
)

type Match struct {
	Player1ID       int64
	Player1Username string
	Player2ID       *int64 // nil for BOT
	Player2Username string
	BotDifficulty   string
	TimedOut        bool
}

type waitingPlayer struct {
	username   string
	difficulty string
	joinedAt   time.Time
}

type MatchmakingQueue struct {
	WaitingPlayers map[int64]waitingPlayer // userID → waiting entry
	Mux            *sync.Mutex
	MatchChannel   chan Match
	timers         map[int64]*time.Timer
	timeout        time.Duration
}

func NewMatchmakingQueue(timeout time.Duration) *MatchmakingQueue {
	return &MatchmakingQueue{
		WaitingPlayers: make(map[int64]waitingPlayer),
		MatchChannel:   make(chan Match, 100),
		Mux:            &sync.Mutex{},
		timers:         make(map[int64]*time.Timer),
		timeout:        timeout,
	}
}

// AddPlayerToQueue pairs userID with the longest waiting player, or parks
// them until the timeout hands them to the bot.
func (m *MatchmakingQueue) AddPlayerToQueue(userID int64, username, difficulty string) {
	m.Mux.Lock()
	defer m.Mux.Unlock()

	if _, exists := m.WaitingPlayers[userID]; exists {
		return
	}

	opponentID, opponent, found := m.oldestWaitingLocked()
	if !found {
		m.WaitingPlayers[userID] = waitingPlayer{username: username, difficulty: difficulty, joinedAt: time.Now()}
		m.timers[userID] = time.AfterFunc(m.timeout, func() {
			m.HandleTimeout(userID)
		})
		return
	}

	delete(m.WaitingPlayers, opponentID)
	m.stopAndDeleteTimer(opponentID)

	m.MatchChannel <- Match{
		Player1ID:       opponentID,
		Player1Username: opponent.username,
		Player2ID:       &userID,
		Player2Username: username,
	}
}

func (m *MatchmakingQueue) oldestWaitingLocked() (int64, waitingPlayer, bool) {
	var (
		bestID int64
		best   waitingPlayer
		found  bool
	)
	for id, p := range m.WaitingPlayers {
		if !found || p.joinedAt.Before(best.joinedAt) {
			bestID, best, found = id, p, true
		}
	}
	return bestID, best, found
}

func (m *MatchmakingQueue) HandleTimeout(userID int64) {
	m.Mux.Lock()
	defer m.Mux.Unlock()

	player, exists := m.WaitingPlayers[userID]
	if !exists {
		return
	}

	delete(m.WaitingPlayers, userID)
	m.stopAndDeleteTimer(userID)

	m.MatchChannel <- Match{
		Player1ID:       userID,
		Player1Username: player.username,
		Player2ID:       nil, // BOT
		BotDifficulty:   player.difficulty,
		TimedOut:        true,
	}
}

func (m *MatchmakingQueue) RemovePlayer(userID int64) bool {
	m.Mux.Lock()
	defer m.Mux.Unlock()

	_, exists := m.WaitingPlayers[userID]
	delete(m.WaitingPlayers, userID)
	m.stopAndDeleteTimer(userID)
	return exists
}

func (m *MatchmakingQueue) Timeout() time.Duration {
	return m.timeout
}

func (m *MatchmakingQueue) IsWaiting(userID int64) bool {
	m.Mux.Lock()
	defer m.Mux.Unlock()

	_, exists := m.WaitingPlayers[userID]
	return exists
}

func (m *MatchmakingQueue) stopAndDeleteTimer(userID int64) {
	if timer := m.timers[userID]; timer != nil {
		timer.Stop()
	}
	delete(m.timers, userID)
}
