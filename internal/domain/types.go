package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1 // red, always moves first
	Player2 PlayerID = 2 // yellow
)

func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

// Opponent returns the other player. Empty has no opponent.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return Empty
	}
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// Position addresses a single cell. Row 0 is the bottom row.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// Outcome is the result of a single move.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeWin
	OutcomeDraw
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove   Error = "invalid move"
	ErrColumnFull    Error = "column is full"
	ErrCellOccupied  Error = "cell is already occupied"
	ErrOutOfBounds   Error = "position is outside the board"
	ErrInvalidPlayer Error = "invalid player"
	ErrGameOver      Error = "game is already over"
	ErrNotYourTurn   Error = "not your turn"
)
