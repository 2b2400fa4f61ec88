package game

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/bot"
	"github.com/iamasit07/connect-four/pkg/uid"
)

const persistTimeout = 5 * time.Second

type GameSession struct {
	GameID          string
	Mode            domain.GameMode
	Player1ID       int64
	Player1Username string
	Player2ID       *int64 // nil for bot and local games
	Player2Username string
	BotDifficulty   string
	Game            *domain.Game
	Reason          string
	CreatedAt       time.Time
	FinishedAt      time.Time

	ended            bool
	postGameTimer    *time.Timer // window in which a pvp restart may be requested
	restartRequester *int64
	restartTimer     *time.Timer
	snapshots        *snapshotWriter // nil without a SnapshotStore
	mu               sync.Mutex
	sm               *SessionManager
}

func newGameSession(mode domain.GameMode, player1ID int64, player1Username string, p2 Player, botDifficulty string, sm *SessionManager) *GameSession {
	gs := &GameSession{
		GameID:          uid.GenerateGameID(),
		Mode:            mode,
		Player1ID:       player1ID,
		Player1Username: player1Username,
		Game:            domain.NewGame(),
		CreatedAt:       time.Now(),
		sm:              sm,
	}
	if sm.snapshots != nil {
		gs.snapshots = newSnapshotWriter(sm.snapshots, gs.GameID)
	}

	switch mode {
	case domain.ModePvP:
		id := *p2.ID
		gs.Player2ID = &id
		gs.Player2Username = p2.Username
	case domain.ModeBot:
		gs.BotDifficulty = bot.NormalizeDifficulty(botDifficulty)
		gs.Player2Username = bot.Name(gs.BotDifficulty)
	default:
		gs.Player2Username = p2.Username
		if gs.Player2Username == "" {
			gs.Player2Username = "Player 2"
		}
	}
	return gs
}

func (gs *GameSession) IsBot() bool {
	return gs.Mode == domain.ModeBot
}

func (gs *GameSession) IsLocal() bool {
	return gs.Mode == domain.ModeLocal
}

// recipients are the connected users that receive every update.
func (gs *GameSession) recipients() []int64 {
	ids := []int64{gs.Player1ID}
	if gs.Player2ID != nil {
		ids = append(ids, *gs.Player2ID)
	}
	return ids
}

func (gs *GameSession) broadcast(conn ConnectionManagerInterface, msg domain.ServerMessage) {
	for _, id := range gs.recipients() {
		conn.SendMessage(id, msg)
	}
}

func (gs *GameSession) HasPlayer(userID int64) bool {
	return userID == gs.Player1ID || (gs.Player2ID != nil && *gs.Player2ID == userID)
}

// playerFor resolves which color userID plays right now. In a hot-seat game
// the owner always plays the color on turn.
func (gs *GameSession) playerFor(userID int64) (domain.PlayerID, error) {
	switch {
	case userID == gs.Player1ID && gs.IsLocal():
		return gs.Game.CurrentPlayer, nil
	case userID == gs.Player1ID:
		return domain.Player1, nil
	case gs.Player2ID != nil && *gs.Player2ID == userID:
		return domain.Player2, nil
	default:
		return domain.Empty, fmt.Errorf("player not found in game")
	}
}

func (gs *GameSession) GetUsername(playerID domain.PlayerID) string {
	if playerID == domain.Player1 {
		return gs.Player1Username
	}
	return gs.Player2Username
}

func (gs *GameSession) GetUsernameByUserID(userID int64) string {
	if userID == gs.Player1ID {
		return gs.Player1Username
	}
	return gs.Player2Username
}

// userIDFor returns the account behind a color, nil for the bot and for the
// second color of a hot-seat game.
func (gs *GameSession) userIDFor(playerID domain.PlayerID) *int64 {
	if gs.IsLocal() {
		return nil
	}
	if playerID == domain.Player1 {
		id := gs.Player1ID
		return &id
	}
	return gs.Player2ID
}

func (gs *GameSession) opponentOf(userID int64) domain.PlayerID {
	if userID == gs.Player1ID {
		return domain.Player2
	}
	return domain.Player1
}

// HandleMove validates and applies a column choice from userID.
func (gs *GameSession) HandleMove(userID int64, column int, conn ConnectionManagerInterface) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	playerID, err := gs.playerFor(userID)
	if err != nil {
		return err
	}
	if gs.ended {
		return domain.ErrGameOver
	}
	if gs.Game.CurrentPlayer != playerID {
		return domain.ErrNotYourTurn
	}

	if err := gs.applyMoveLocked(playerID, column, conn); err != nil {
		return err
	}

	if gs.IsBot() && !gs.ended && gs.Game.CurrentPlayer == domain.Player2 {
		time.AfterFunc(gs.sm.timings.BotDelay, func() {
			if err := gs.HandleBotMove(conn); err != nil {
				log.Printf("[BOT] Error handling bot move: %v", err)
			}
		})
	}
	return nil
}

func (gs *GameSession) HandleBotMove(conn ConnectionManagerInterface) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	// the game may have ended or restarted while the bot was waiting
	if !gs.IsBot() || gs.ended || gs.Game.CurrentPlayer != domain.Player2 {
		return nil
	}

	column := bot.CalculateBestMove(gs.Game.Board, domain.Player2, gs.BotDifficulty)
	if column < 0 {
		return fmt.Errorf("bot found no playable column in game %s", gs.GameID)
	}
	return gs.applyMoveLocked(domain.Player2, column, conn)
}

func (gs *GameSession) applyMoveLocked(playerID domain.PlayerID, column int, conn ConnectionManagerInterface) error {
	row, err := gs.Game.MakeMove(playerID, column)
	if err != nil {
		return err
	}

	gs.broadcast(conn, moveMadeMessage(gs, playerID, column, row))

	if gs.Game.IsFinished() {
		gs.finishLocked(conn)
	}
	gs.publishSnapshot()
	return nil
}

// finishLocked handles a win or a draw reached on the board.
func (gs *GameSession) finishLocked(conn ConnectionManagerInterface) {
	gs.ended = true
	gs.FinishedAt = time.Now()

	var winnerID *int64
	winnerUsername := "draw"
	if gs.Game.Status == domain.StatusWon {
		gs.Reason = domain.ReasonConnectFour
		winnerID = gs.userIDFor(gs.Game.Winner)
		winnerUsername = gs.GetUsername(gs.Game.Winner)
		log.Printf("[GAME] Game %s won by %s after %d moves", gs.GameID, winnerUsername, gs.Game.MoveCount)
	} else {
		gs.Reason = domain.ReasonDraw
		log.Printf("[GAME] Game %s ended in a draw", gs.GameID)
	}

	gs.broadcast(conn, gameOverMessage(gs, winnerUsername, true))
	gs.saveGameAsync(winnerID, winnerUsername)

	if gs.Mode == domain.ModePvP {
		gs.startPostGameTimer(conn)
	}
}

// endByLeavingLocked ends an unfinished game because userID left; the other
// side wins.
func (gs *GameSession) endByLeavingLocked(userID int64, reason string, conn ConnectionManagerInterface) {
	gs.ended = true
	gs.FinishedAt = time.Now()
	gs.Reason = reason

	var winnerID *int64
	winnerUsername := ""
	if !gs.IsLocal() {
		winner := gs.opponentOf(userID)
		winnerID = gs.userIDFor(winner)
		winnerUsername = gs.GetUsername(winner)
	}

	log.Printf("[GAME] Game %s ended by %s from %s (ID: %d)",
		gs.GameID, reason, gs.GetUsernameByUserID(userID), userID)

	gs.broadcast(conn, gameOverMessage(gs, winnerUsername, false))
	gs.saveGameAsync(winnerID, winnerUsername)
	gs.stopTimersLocked()
	gs.publishSnapshot()
}

func (gs *GameSession) HandleDisconnect(userID int64, conn ConnectionManagerInterface) {
	gs.mu.Lock()
	if gs.ended {
		gs.cancelRestartRequestLocked(conn)
		gs.stopTimersLocked()
	} else {
		log.Printf("[DISCONNECT] User %d disconnected from game %s - ending by abandonment", userID, gs.GameID)
		gs.endByLeavingLocked(userID, domain.ReasonDisconnect, conn)
	}
	gameID := gs.GameID
	gs.mu.Unlock()

	gs.sm.RemoveSession(gameID)
}

// TerminateSessionByAbandonment surrenders an unfinished game. The caller
// removes the session.
func (gs *GameSession) TerminateSessionByAbandonment(userID int64, conn ConnectionManagerInterface) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.ended {
		return
	}
	gs.endByLeavingLocked(userID, domain.ReasonSurrender, conn)
}

func (gs *GameSession) record(winnerID *int64, winnerUsername string) domain.GameRecord {
	return domain.GameRecord{
		GameID:          gs.GameID,
		Mode:            gs.Mode,
		Player1ID:       gs.Player1ID,
		Player1Username: gs.Player1Username,
		Player2ID:       gs.Player2ID,
		Player2Username: gs.Player2Username,
		WinnerID:        winnerID,
		WinnerUsername:  winnerUsername,
		Reason:          gs.Reason,
		TotalMoves:      gs.Game.MoveCount,
		DurationSeconds: int(gs.FinishedAt.Sub(gs.CreatedAt).Seconds()),
		CreatedAt:       gs.CreatedAt,
		FinishedAt:      gs.FinishedAt,
		Board:           domain.CopyBoard(gs.Game.Board),
	}
}

// Saves game data in background to avoid blocking game_over messages
func (gs *GameSession) saveGameAsync(winnerID *int64, winnerUsername string) {
	if gs.sm.repo == nil {
		return
	}
	rec := gs.record(winnerID, winnerUsername)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		if err := gs.sm.repo.SaveGame(ctx, rec); err != nil {
			log.Printf("[GAME] Error saving game %s: %v", rec.GameID, err)
			return
		}
		log.Printf("[GAME] Game %s saved successfully", rec.GameID)
	}()
}

func (gs *GameSession) snapshotLocked() domain.Snapshot {
	return domain.Snapshot{
		GameID:          gs.GameID,
		Mode:            gs.Mode,
		Player1Username: gs.Player1Username,
		Player2Username: gs.Player2Username,
		Board:           domain.CopyBoard(gs.Game.Board),
		CurrentPlayer:   gs.Game.CurrentPlayer,
		Status:          gs.Game.Status,
		Winner:          gs.Game.Winner,
		WinningCells:    append([]domain.Position(nil), gs.Game.WinningCells...),
		MoveCount:       gs.Game.MoveCount,
		UpdatedAt:       time.Now(),
	}
}

// Snapshot returns a copy of the live state.
func (gs *GameSession) Snapshot() domain.Snapshot {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.snapshotLocked()
}

func (gs *GameSession) publishSnapshot() {
	if gs.snapshots == nil {
		return
	}
	gs.snapshots.publish(gs.snapshotLocked())
}

func (gs *GameSession) stopTimersLocked() {
	if gs.postGameTimer != nil {
		gs.postGameTimer.Stop()
		gs.postGameTimer = nil
	}
	if gs.restartTimer != nil {
		gs.restartTimer.Stop()
		gs.restartTimer = nil
	}
}
