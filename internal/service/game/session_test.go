package game

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect-four/internal/domain"
)

type fakeConn struct {
	mu       sync.Mutex
	messages map[int64][]domain.ServerMessage
}

func newFakeConn() *fakeConn {
	return &fakeConn{messages: make(map[int64][]domain.ServerMessage)}
}

func (c *fakeConn) SendMessage(userID int64, msg domain.ServerMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages[userID] = append(c.messages[userID], msg)
	return nil
}

func (c *fakeConn) ofType(userID int64, typ string) []domain.ServerMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []domain.ServerMessage
	for _, m := range c.messages[userID] {
		if m.Type == typ {
			out = append(out, m)
		}
	}
	return out
}

func (c *fakeConn) last(userID int64, typ string) (domain.ServerMessage, bool) {
	msgs := c.ofType(userID, typ)
	if len(msgs) == 0 {
		return domain.ServerMessage{}, false
	}
	return msgs[len(msgs)-1], true
}

type fakeRepo struct {
	mu    sync.Mutex
	saved []domain.GameRecord
}

func (r *fakeRepo) SaveGame(ctx context.Context, record domain.GameRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, record)
	return nil
}

func (r *fakeRepo) records() []domain.GameRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.GameRecord(nil), r.saved...)
}

type fakeSnapshots struct {
	mu      sync.Mutex
	latest  map[string]domain.Snapshot
	deleted map[string]bool
}

func newFakeSnapshots() *fakeSnapshots {
	return &fakeSnapshots{latest: make(map[string]domain.Snapshot), deleted: make(map[string]bool)}
}

func (s *fakeSnapshots) SaveSnapshot(ctx context.Context, snap domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.latest[snap.GameID]; !ok || snap.MoveCount >= prev.MoveCount {
		s.latest[snap.GameID] = snap
	}
	return nil
}

func (s *fakeSnapshots) DeleteSnapshot(ctx context.Context, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted[gameID] = true
	return nil
}

// slowSnapshots overwrites unconditionally and takes a random 0-2ms per
// call, like a remote store under load.
type slowSnapshots struct {
	mu                sync.Mutex
	stored            map[string]domain.Snapshot
	deleted           map[string]bool
	writesAfterDelete int
}

func newSlowSnapshots() *slowSnapshots {
	return &slowSnapshots{stored: make(map[string]domain.Snapshot), deleted: make(map[string]bool)}
}

func (s *slowSnapshots) SaveSnapshot(ctx context.Context, snap domain.Snapshot) error {
	time.Sleep(time.Duration(rand.Intn(2000)) * time.Microsecond)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleted[snap.GameID] {
		s.writesAfterDelete++
	}
	s.stored[snap.GameID] = snap
	return nil
}

func (s *slowSnapshots) DeleteSnapshot(ctx context.Context, gameID string) error {
	time.Sleep(time.Duration(rand.Intn(2000)) * time.Microsecond)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted[gameID] = true
	delete(s.stored, gameID)
	return nil
}

func (s *slowSnapshots) get(gameID string) (domain.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.stored[gameID]
	return snap, ok
}

func (s *slowSnapshots) isDeleted(gameID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleted[gameID]
}

func testTimings() Timings {
	return Timings{
		BotDelay:       5 * time.Millisecond,
		PostGameWindow: 300 * time.Millisecond,
		RestartTimeout: 100 * time.Millisecond,
	}
}

func user(id int64, name string) Player {
	return Player{ID: &id, Username: name}
}

const waitFor = time.Second
const tick = 5 * time.Millisecond

func newPvP(t *testing.T) (*SessionManager, *GameSession, *fakeConn, *fakeRepo) {
	t.Helper()
	repo := &fakeRepo{}
	sm := NewSessionManager(repo, nil, testTimings())
	conn := newFakeConn()
	gs, err := sm.CreateSession(domain.ModePvP, user(1, "alice"), user(2, "bob"), "", conn)
	require.NoError(t, err)
	return sm, gs, conn, repo
}

// playWinForRed drops red into columns 0-3 while yellow stacks on column 6.
func playWinForRed(t *testing.T, gs *GameSession, conn *fakeConn, red, yellow int64) {
	t.Helper()
	for col := 0; col < 3; col++ {
		require.NoError(t, gs.HandleMove(red, col, conn))
		require.NoError(t, gs.HandleMove(yellow, 6, conn))
	}
	require.NoError(t, gs.HandleMove(red, 3, conn))
}

func TestCreateSessionAnnouncesStart(t *testing.T) {
	sm, gs, conn, _ := newPvP(t)

	start, ok := conn.last(1, "game_start")
	require.True(t, ok)
	assert.Equal(t, gs.GameID, start.GameID)
	assert.Equal(t, 1, start.YourPlayer)
	assert.Equal(t, "bob", start.Opponent)
	assert.Equal(t, "Turn: Player 1 (Red)", start.TurnText)

	start, ok = conn.last(2, "game_start")
	require.True(t, ok)
	assert.Equal(t, 2, start.YourPlayer)
	assert.Equal(t, "alice", start.Opponent)

	found, exists := sm.GetSessionByUserID(2)
	require.True(t, exists)
	assert.Same(t, gs, found)
}

func TestCreateSessionValidatesPlayers(t *testing.T) {
	sm := NewSessionManager(nil, nil, testTimings())
	conn := newFakeConn()

	_, err := sm.CreateSession(domain.ModePvP, user(1, "alice"), Player{Username: "ghost"}, "", conn)
	assert.Error(t, err)

	_, err = sm.CreateSession(domain.ModeBot, Player{Username: "ghost"}, Player{}, "easy", conn)
	assert.Error(t, err)
}

func TestHandleMoveTurnOrder(t *testing.T) {
	_, gs, conn, _ := newPvP(t)

	assert.ErrorIs(t, gs.HandleMove(2, 3, conn), domain.ErrNotYourTurn)
	assert.Error(t, gs.HandleMove(99, 3, conn))
	assert.ErrorIs(t, gs.HandleMove(1, 7, conn), domain.ErrInvalidMove)

	require.NoError(t, gs.HandleMove(1, 3, conn))
	move, ok := conn.last(2, "move_made")
	require.True(t, ok)
	require.NotNil(t, move.Column)
	require.NotNil(t, move.Row)
	assert.Equal(t, 3, *move.Column)
	assert.Equal(t, 0, *move.Row)
	assert.Equal(t, 1, move.Player)
	assert.Equal(t, 2, move.NextTurn)
	require.NotNil(t, move.Drop)
	assert.Equal(t, palette.Red, move.Drop.Color)
	assert.NotEmpty(t, move.Drop.Frames)
}

func TestHandleMoveColumnFull(t *testing.T) {
	_, gs, conn, _ := newPvP(t)

	for i := 0; i < domain.Rows; i++ {
		player := int64(1 + i%2)
		require.NoError(t, gs.HandleMove(player, 0, conn))
	}
	assert.ErrorIs(t, gs.HandleMove(1, 0, conn), domain.ErrColumnFull)
	assert.Equal(t, domain.Player1, gs.Snapshot().CurrentPlayer)
}

func TestWinEndsGameAndSaves(t *testing.T) {
	_, gs, conn, repo := newPvP(t)
	playWinForRed(t, gs, conn, 1, 2)

	over, ok := conn.last(2, "game_over")
	require.True(t, ok)
	assert.Equal(t, "alice", over.Winner)
	assert.Equal(t, domain.ReasonConnectFour, over.Reason)
	assert.Len(t, over.WinningCells, 4)
	require.NotNil(t, over.WinLine)
	require.NotNil(t, over.Victory)
	assert.Equal(t, "RED PLAYER WINS!", over.Victory.Text)
	assert.Equal(t, 2000, over.WinDelayMS)
	require.NotNil(t, over.AllowRestart)
	assert.True(t, *over.AllowRestart)

	assert.ErrorIs(t, gs.HandleMove(2, 5, conn), domain.ErrGameOver)

	require.Eventually(t, func() bool { return len(repo.records()) == 1 }, waitFor, tick)
	rec := repo.records()[0]
	assert.Equal(t, gs.GameID, rec.GameID)
	require.NotNil(t, rec.WinnerID)
	assert.Equal(t, int64(1), *rec.WinnerID)
	assert.Equal(t, 7, rec.TotalMoves)
}

func TestPostGameWindowRemovesSession(t *testing.T) {
	sm, gs, conn, _ := newPvP(t)
	playWinForRed(t, gs, conn, 1, 2)

	require.Eventually(t, func() bool {
		_, exists := sm.GetSessionByGameID(gs.GameID)
		return !exists
	}, waitFor, tick)
}

func TestAbandonAwardsOpponent(t *testing.T) {
	sm, gs, conn, repo := newPvP(t)
	require.NoError(t, gs.HandleMove(1, 3, conn))

	gs.TerminateSessionByAbandonment(1, conn)
	sm.RemoveSession(gs.GameID)

	over, ok := conn.last(2, "game_over")
	require.True(t, ok)
	assert.Equal(t, "bob", over.Winner)
	assert.Equal(t, domain.ReasonSurrender, over.Reason)
	assert.False(t, *over.AllowRestart)
	assert.Nil(t, over.Victory)

	require.Eventually(t, func() bool { return len(repo.records()) == 1 }, waitFor, tick)
	assert.Equal(t, int64(2), *repo.records()[0].WinnerID)

	_, exists := sm.GetSessionByUserID(1)
	assert.False(t, exists)
}

func TestDisconnectEndsActiveGame(t *testing.T) {
	sm, gs, conn, _ := newPvP(t)

	gs.HandleDisconnect(2, conn)

	over, ok := conn.last(1, "game_over")
	require.True(t, ok)
	assert.Equal(t, domain.ReasonDisconnect, over.Reason)
	assert.Equal(t, "alice", over.Winner)

	_, exists := sm.GetSessionByGameID(gs.GameID)
	assert.False(t, exists)
}

func TestPvPRestartAccepted(t *testing.T) {
	sm, gs, conn, _ := newPvP(t)
	playWinForRed(t, gs, conn, 1, 2)

	require.NoError(t, gs.HandleRestartRequest(2, conn))
	assert.Error(t, gs.HandleRestartRequest(1, conn))

	req, ok := conn.last(1, "restart_request")
	require.True(t, ok)
	assert.Equal(t, "bob", req.Requester)

	assert.Error(t, gs.HandleRestartResponse(2, "accept", conn))
	require.NoError(t, gs.HandleRestartResponse(1, "accept", conn))

	next, exists := sm.GetSessionByUserID(1)
	require.True(t, exists)
	assert.NotEqual(t, gs.GameID, next.GameID)
	assert.Len(t, conn.ofType(1, "game_start"), 2)

	snap := next.Snapshot()
	assert.Equal(t, 0, snap.MoveCount)
	assert.Equal(t, domain.Player1, snap.CurrentPlayer)
	assert.Equal(t, domain.StatusActive, snap.Status)
}

func TestPvPRestartRejectedWhileActive(t *testing.T) {
	_, gs, conn, _ := newPvP(t)
	assert.Error(t, gs.HandleRestartRequest(1, conn))
}

func TestPvPRestartDeclined(t *testing.T) {
	sm, gs, conn, _ := newPvP(t)
	playWinForRed(t, gs, conn, 1, 2)

	require.NoError(t, gs.HandleRestartRequest(1, conn))
	require.NoError(t, gs.HandleRestartResponse(2, "decline", conn))

	_, ok := conn.last(1, "restart_declined")
	assert.True(t, ok)
	_, exists := sm.GetSessionByGameID(gs.GameID)
	assert.False(t, exists)
}

func TestPvPRestartTimesOut(t *testing.T) {
	sm, gs, conn, _ := newPvP(t)
	playWinForRed(t, gs, conn, 1, 2)

	require.NoError(t, gs.HandleRestartRequest(1, conn))

	require.Eventually(t, func() bool {
		_, ok := conn.last(1, "restart_timeout")
		return ok
	}, waitFor, tick)
	require.Eventually(t, func() bool {
		_, exists := sm.GetSessionByGameID(gs.GameID)
		return !exists
	}, waitFor, tick)
}

func TestLocalGameAlternatesColors(t *testing.T) {
	repo := &fakeRepo{}
	sm := NewSessionManager(repo, nil, testTimings())
	conn := newFakeConn()
	gs, err := sm.CreateSession(domain.ModeLocal, user(7, "carol"), Player{}, "", conn)
	require.NoError(t, err)
	assert.Equal(t, "Player 2", gs.Player2Username)

	playWinForRed(t, gs, conn, 7, 7)

	over, ok := conn.last(7, "game_over")
	require.True(t, ok)
	assert.Equal(t, "carol", over.Winner)
	assert.Equal(t, "RED PLAYER WINS!", over.Victory.Text)

	require.Eventually(t, func() bool { return len(repo.records()) == 1 }, waitFor, tick)
	assert.Nil(t, repo.records()[0].WinnerID)

	require.NoError(t, gs.HandleRestartRequest(7, conn))
	next, exists := sm.GetSessionByUserID(7)
	require.True(t, exists)
	assert.Equal(t, domain.ModeLocal, next.Mode)
	assert.Equal(t, 0, next.Snapshot().MoveCount)
}

func TestBotReplies(t *testing.T) {
	timings := testTimings()
	timings.BotDelay = 100 * time.Millisecond
	sm := NewSessionManager(nil, nil, timings)
	conn := newFakeConn()
	gs, err := sm.CreateSession(domain.ModeBot, user(3, "dave"), Player{}, "hard", conn)
	require.NoError(t, err)
	assert.Equal(t, "Charles", gs.Player2Username)

	require.NoError(t, gs.HandleMove(3, 3, conn))
	assert.ErrorIs(t, gs.HandleMove(3, 3, conn), domain.ErrNotYourTurn)

	require.Eventually(t, func() bool {
		return len(conn.ofType(3, "move_made")) == 2
	}, waitFor, tick)

	botMove := conn.ofType(3, "move_made")[1]
	assert.Equal(t, 2, botMove.Player)
	assert.Equal(t, domain.Player1, gs.Snapshot().CurrentPlayer)
}

func TestSnapshotsPublishedAndDeleted(t *testing.T) {
	snaps := newFakeSnapshots()
	sm := NewSessionManager(nil, snaps, testTimings())
	conn := newFakeConn()
	gs, err := sm.CreateSession(domain.ModePvP, user(1, "alice"), user(2, "bob"), "", conn)
	require.NoError(t, err)

	require.NoError(t, gs.HandleMove(1, 4, conn))
	require.Eventually(t, func() bool {
		snaps.mu.Lock()
		defer snaps.mu.Unlock()
		return snaps.latest[gs.GameID].MoveCount == 1
	}, waitFor, tick)

	require.NoError(t, sm.RemoveSession(gs.GameID))
	require.Eventually(t, func() bool {
		snaps.mu.Lock()
		defer snaps.mu.Unlock()
		return snaps.deleted[gs.GameID]
	}, waitFor, tick)
}

func TestSnapshotWritesStayOrdered(t *testing.T) {
	for i := 0; i < 20; i++ {
		store := newSlowSnapshots()
		sm := NewSessionManager(nil, store, testTimings())
		conn := newFakeConn()
		gs, err := sm.CreateSession(domain.ModeLocal, user(7, "carol"), Player{}, "", conn)
		require.NoError(t, err)

		for _, col := range []int{0, 1, 0, 1, 2, 3} {
			require.NoError(t, gs.HandleMove(7, col, conn))
		}
		require.Eventually(t, func() bool {
			snap, ok := store.get(gs.GameID)
			return ok && snap.MoveCount == 6
		}, waitFor, tick)
		time.Sleep(10 * time.Millisecond)
		snap, ok := store.get(gs.GameID)
		require.True(t, ok)
		assert.Equal(t, 6, snap.MoveCount, "game %d", i)

		gs.HandleDisconnect(7, conn)
		require.Eventually(t, func() bool { return store.isDeleted(gs.GameID) }, waitFor, tick)
		time.Sleep(10 * time.Millisecond)

		_, ok = store.get(gs.GameID)
		assert.False(t, ok, "game %d kept a snapshot after removal", i)
		assert.Zero(t, store.writesAfterDelete)
	}
}

func TestForceCleanupForUser(t *testing.T) {
	sm, gs, conn, _ := newPvP(t)

	sm.ForceCleanupForUser(1, conn)

	_, exists := sm.GetSessionByGameID(gs.GameID)
	assert.False(t, exists)
	over, ok := conn.last(2, "game_over")
	require.True(t, ok)
	assert.Equal(t, domain.ReasonSurrender, over.Reason)
}

func TestGetActiveGamesAndCleanup(t *testing.T) {
	sm, gs, conn, _ := newPvP(t)
	other, err := sm.CreateSession(domain.ModeBot, user(5, "erin"), Player{}, "easy", conn)
	require.NoError(t, err)

	games := sm.GetActiveGames()
	require.Len(t, games, 2)
	assert.Equal(t, gs.GameID, games[0].GameID)

	other.TerminateSessionByAbandonment(5, conn)
	assert.Len(t, sm.GetActiveGames(), 1)

	assert.Equal(t, 0, sm.CleanupOldSessions(time.Now()))
	assert.Equal(t, 1, sm.CleanupOldSessions(time.Now().Add(2*time.Hour)))
	assert.Equal(t, 1, sm.CleanupOldSessions(time.Now().Add(25*time.Hour)))

	_, exists := sm.GetSessionByGameID(gs.GameID)
	assert.False(t, exists)
}
