package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/iamasit07/connect-four/internal/domain"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

const (
	updateStatsQuery = `UPDATE players SET games_played = games_played + 1, games_won = games_won + CASE WHEN $2 THEN 1 ELSE 0 END, games_drawn = games_drawn + CASE WHEN $3 THEN 1 ELSE 0 END WHERE id = $1;`

	selectRatingQuery = `SELECT rating FROM players WHERE id = $1 FOR UPDATE;`
	updateRatingQuery = `UPDATE players SET rating = $2 WHERE id = $1;`

	upsertGameQuery = `
	INSERT INTO game (game_id, mode, player1_id, player1_username, player2_id, player2_username, winner_id, winner_username, reason, total_moves, duration_seconds, created_at, finished_at, board_state)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (game_id) DO UPDATE SET
		winner_id = EXCLUDED.winner_id,
		winner_username = EXCLUDED.winner_username,
		reason = EXCLUDED.reason,
		total_moves = EXCLUDED.total_moves,
		duration_seconds = EXCLUDED.duration_seconds,
		finished_at = EXCLUDED.finished_at,
		board_state = EXCLUDED.board_state;
	`

	gameSelectFields = `game_id, mode, player1_id, player1_username, player2_id, player2_username, winner_id, winner_username, reason, total_moves, duration_seconds, created_at, finished_at`
)

// SaveGame saves a finished game and updates player stats transactionally.
// Hot-seat games are stored without touching stats.
func (r *GameRepo) SaveGame(ctx context.Context, rec domain.GameRecord) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if rec.Mode != domain.ModeLocal {
		for _, userID := range lockOrder(rec) {
			if err := r.updatePlayerStatsTx(ctx, tx, rec, userID); err != nil {
				return err
			}
		}
	}

	if rec.Rated() {
		if err := r.updateRatingsTx(ctx, tx, rec); err != nil {
			return err
		}
	}

	// Insert or update game record (UPSERT to handle race conditions)
	boardJSON, err := json.Marshal(domain.BoardToInts(rec.Board))
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %w", err)
	}

	_, err = tx.ExecContext(ctx, upsertGameQuery,
		rec.GameID, string(rec.Mode), rec.Player1ID, rec.Player1Username, rec.Player2ID, rec.Player2Username,
		rec.WinnerID, nullString(rec.WinnerUsername), rec.Reason, rec.TotalMoves, rec.DurationSeconds,
		rec.CreatedAt, rec.FinishedAt, boardJSON)
	if err != nil {
		return fmt.Errorf("failed to upsert game record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *GameRepo) updatePlayerStatsTx(ctx context.Context, tx *sql.Tx, rec domain.GameRecord, userID int64) error {
	won := rec.WinnerID != nil && *rec.WinnerID == userID
	drawn := rec.Reason == domain.ReasonDraw

	if _, err := tx.ExecContext(ctx, updateStatsQuery, userID, won, drawn); err != nil {
		return fmt.Errorf("failed to update player stats in transaction: %w", err)
	}
	return nil
}

func (r *GameRepo) updateRatingsTx(ctx context.Context, tx *sql.Tx, rec domain.GameRecord) error {
	ids := lockOrder(rec)

	ratings := make(map[int64]int, len(ids))
	for _, userID := range ids {
		var rating int
		if err := tx.QueryRowContext(ctx, selectRatingQuery, userID).Scan(&rating); err != nil {
			return fmt.Errorf("failed to read rating for player %d: %w", userID, err)
		}
		ratings[userID] = rating
	}

	new1, new2 := domain.NewRatings(ratings[rec.Player1ID], ratings[*rec.Player2ID], rec.Player1Score())
	updated := map[int64]int{rec.Player1ID: new1, *rec.Player2ID: new2}

	for _, userID := range ids {
		if _, err := tx.ExecContext(ctx, updateRatingQuery, userID, updated[userID]); err != nil {
			return fmt.Errorf("failed to update rating: %w", err)
		}
	}
	return nil
}

// lockOrder lists the players a save touches, lowest ID first. Player rows
// are always locked in this order so concurrent saves cannot deadlock.
func lockOrder(rec domain.GameRecord) []int64 {
	ids := []int64{rec.Player1ID}
	if rec.Player2ID != nil && *rec.Player2ID != rec.Player1ID {
		ids = append(ids, *rec.Player2ID)
	}
	slices.Sort(ids)
	return ids
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner, extra ...any) (domain.GameRecord, error) {
	var (
		rec            domain.GameRecord
		mode           string
		player2ID      sql.NullInt64
		winnerID       sql.NullInt64
		winnerUsername sql.NullString
	)

	dest := []any{
		&rec.GameID, &mode, &rec.Player1ID, &rec.Player1Username, &player2ID, &rec.Player2Username,
		&winnerID, &winnerUsername, &rec.Reason, &rec.TotalMoves, &rec.DurationSeconds,
		&rec.CreatedAt, &rec.FinishedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return rec, err
	}

	rec.Mode = domain.GameMode(mode)
	if player2ID.Valid {
		id := player2ID.Int64
		rec.Player2ID = &id
	}
	if winnerID.Valid {
		id := winnerID.Int64
		rec.WinnerID = &id
	}
	rec.WinnerUsername = winnerUsername.String
	return rec, nil
}

// GetGameByID retrieves a finished game with its final board. It returns
// nil when the game does not exist.
func (r *GameRepo) GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	query := `SELECT ` + gameSelectFields + `, board_state FROM game WHERE game_id = $1;`

	var boardJSON []byte
	rec, err := scanGame(r.DB.QueryRowContext(ctx, query, gameID), &boardJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}

	rec.Board = domain.NewBoard()
	if boardJSON != nil {
		var cells [][]int
		if err := json.Unmarshal(boardJSON, &cells); err != nil {
			return nil, fmt.Errorf("failed to unmarshal board state: %w", err)
		}
		rec.Board = domain.BoardFromInts(cells)
	}
	return &rec, nil
}

// GetUserGameHistory retrieves the latest games for a user (both as player1 and player2)
func (r *GameRepo) GetUserGameHistory(ctx context.Context, userID int64, limit int) ([]domain.GameRecord, error) {
	query := `SELECT ` + gameSelectFields + ` FROM game WHERE player1_id = $1 OR player2_id = $1 ORDER BY finished_at DESC LIMIT $2;`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %w", err)
	}
	defer rows.Close()

	games := make([]domain.GameRecord, 0)
	for rows.Next() {
		rec, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, rec)
	}
	return games, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
