package domain

type Game struct {
	Board         [][]PlayerID
	CurrentPlayer PlayerID
	Status        GameStatus
	Winner        PlayerID
	WinningCells  []Position
	MoveCount     int
}

func NewGame() *Game {
	g := &Game{}
	g.Reset()
	return g
}

// Reset puts the game back to an empty board with Player1 to move.
func (g *Game) Reset() {
	g.Board = NewBoard()
	g.CurrentPlayer = Player1
	g.Status = StatusActive
	g.Winner = Empty
	g.WinningCells = nil
	g.MoveCount = 0
}

// CanDrop reports whether the current player may drop into column.
func (g *Game) CanDrop(column int) bool {
	return g.Status == StatusActive && ColumnHasSpace(g.Board, column)
}

// MakeMove drops a disk for player and returns the row it landed on.
// On error the game is left untouched and the turn does not advance.
func (g *Game) MakeMove(player PlayerID, column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameOver
	}
	if player != g.CurrentPlayer {
		return -1, ErrNotYourTurn
	}

	row, err := DropDisk(g.Board, column, player)
	if err != nil {
		return -1, err
	}

	g.MoveCount++

	if cells := WinningCells(g.Board, player); cells != nil {
		g.Status = StatusWon
		g.Winner = player
		g.WinningCells = cells
		return row, nil
	}

	if IsBoardFull(g.Board) {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = player.Opponent()
	return row, nil
}

func (g *Game) Outcome() Outcome {
	switch g.Status {
	case StatusWon:
		return OutcomeWin
	case StatusDraw:
		return OutcomeDraw
	default:
		return OutcomeContinue
	}
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
