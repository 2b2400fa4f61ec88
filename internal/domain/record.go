package domain

import "time"

type GameMode string

const (
	ModePvP   GameMode = "pvp"
	ModeLocal GameMode = "local" // hot-seat: one user plays both colors
	ModeBot   GameMode = "bot"
)

// end reasons stored with a finished game
const (
	ReasonConnectFour = "connect_four"
	ReasonDraw        = "draw"
	ReasonDisconnect  = "disconnect"
	ReasonSurrender   = "surrender"
)

// GameRecord is a finished game as it is persisted.
type GameRecord struct {
	GameID          string
	Mode            GameMode
	Player1ID       int64
	Player1Username string
	Player2ID       *int64 // nil for bot and local games
	Player2Username string
	WinnerID        *int64
	WinnerUsername  string
	Reason          string
	TotalMoves      int
	DurationSeconds int
	CreatedAt       time.Time
	FinishedAt      time.Time
	Board           [][]PlayerID
}

// Snapshot is the live state of a game published for spectators.
type Snapshot struct {
	GameID          string       `json:"gameId"`
	Mode            GameMode     `json:"mode"`
	Player1Username string       `json:"player1"`
	Player2Username string       `json:"player2"`
	Board           [][]PlayerID `json:"board"`
	CurrentPlayer   PlayerID     `json:"currentPlayer"`
	Status          GameStatus   `json:"status"`
	Winner          PlayerID     `json:"winner,omitempty"`
	WinningCells    []Position   `json:"winningCells,omitempty"`
	MoveCount       int          `json:"moveCount"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}
