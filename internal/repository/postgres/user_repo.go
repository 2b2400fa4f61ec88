package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iamasit07/connect-four/internal/domain"
)

type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

type PlayerStats struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Draws    int    `json:"draws"`
}

func (r *UserRepo) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	return r.insertPlayer(ctx, username, passwordHash, false)
}

// CreateGuest registers a throwaway account so guest games still have a
// player row to reference.
func (r *UserRepo) CreateGuest(ctx context.Context, username string) (int64, error) {
	return r.insertPlayer(ctx, username, "", true)
}

func (r *UserRepo) insertPlayer(ctx context.Context, username, passwordHash string, guest bool) (int64, error) {
	query := `INSERT INTO players (username, password_hash, is_guest) VALUES ($1, $2, $3) RETURNING id;`

	var userID int64
	if err := r.DB.QueryRowContext(ctx, query, username, passwordHash, guest).Scan(&userID); err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return userID, nil
}

// scanUser is a helper that scans a row into a User struct
func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.IsGuest,
		&user.GamesPlayed,
		&user.GamesWon,
		&user.GamesDrawn,
		&user.Rating,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

const userSelectFields = `id, username, password_hash, is_guest, games_played, games_won, games_drawn, rating, created_at`

// GetUserByUsername returns nil when no such user exists.
func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userSelectFields + ` FROM players WHERE username = $1;`
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *UserRepo) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT ` + userSelectFields + ` FROM players WHERE id = $1;`
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetLeaderboard ranks registered players; guests are left out.
func (r *UserRepo) GetLeaderboard(ctx context.Context, limit int) ([]PlayerStats, error) {
	query := `
	SELECT
		ROW_NUMBER() OVER (ORDER BY rating DESC, games_won DESC, username ASC) AS rank,
		username,
		rating,
		games_won,
		games_played - games_won - games_drawn AS losses,
		games_drawn
	FROM players
	WHERE is_guest = FALSE
	ORDER BY rating DESC, games_won DESC, username ASC
	LIMIT $1;
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	leaderboard := make([]PlayerStats, 0)
	for rows.Next() {
		var stats PlayerStats
		if err := rows.Scan(&stats.Rank, &stats.Username, &stats.Rating, &stats.Wins, &stats.Losses, &stats.Draws); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		leaderboard = append(leaderboard, stats)
	}

	return leaderboard, rows.Err()
}
