package domain

// NewBoard returns an empty grid. board[0] is the bottom row.
func NewBoard() [][]PlayerID {
	board := make([][]PlayerID, Rows)
	for i := range board {
		board[i] = make([]PlayerID, Columns)
	}
	return board
}

func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Columns
}

// ColumnHasSpace reports whether a disk can still be dropped into column.
func ColumnHasSpace(board [][]PlayerID, column int) bool {
	if column < 0 || column >= Columns {
		return false
	}
	return board[Rows-1][column] == Empty
}

// LowestOpenRow returns the first empty row of column scanning from the bottom.
// ok is false when the column is full or out of range.
func LowestOpenRow(board [][]PlayerID, column int) (row int, ok bool) {
	if column < 0 || column >= Columns {
		return -1, false
	}
	for r := 0; r < Rows; r++ {
		if board[r][column] == Empty {
			return r, true
		}
	}
	return -1, false
}

// PlacePiece writes player into an empty cell. Gravity is the caller's
// concern: use LowestOpenRow (or DropDisk) to pick the row.
func PlacePiece(board [][]PlayerID, row, column int, player PlayerID) error {
	if !player.Valid() {
		return ErrInvalidPlayer
	}
	if !InBounds(row, column) {
		return ErrOutOfBounds
	}
	if board[row][column] != Empty {
		return ErrCellOccupied
	}
	board[row][column] = player
	return nil
}

// DropDisk places player at the lowest open row of column and returns that row.
func DropDisk(board [][]PlayerID, column int, player PlayerID) (int, error) {
	if column < 0 || column >= Columns {
		return -1, ErrInvalidMove
	}
	if !ColumnHasSpace(board, column) {
		return -1, ErrColumnFull
	}

	row, ok := LowestOpenRow(board, column)
	if !ok {
		return -1, ErrColumnFull
	}
	if err := PlacePiece(board, row, column, player); err != nil {
		return -1, err
	}
	return row, nil
}

// IsBoardFull is true once every column's top cell is taken.
func IsBoardFull(board [][]PlayerID) bool {
	for c := 0; c < Columns; c++ {
		if board[Rows-1][c] == Empty {
			return false
		}
	}

	return true
}

// this creates a deep copy of the board
func CopyBoard(board [][]PlayerID) [][]PlayerID {
	newBoard := make([][]PlayerID, len(board))
	for i := range board {
		newBoard[i] = make([]PlayerID, len(board[i]))
		copy(newBoard[i], board[i])
	}
	return newBoard
}

// GetValidMoves lists the playable columns in ascending order.
func GetValidMoves(board [][]PlayerID) []int {
	validMoves := []int{}
	for col := 0; col < Columns; col++ {
		if ColumnHasSpace(board, col) {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}

// this will simulate a move on a copy and give the result to the caller
func SimulateMove(board [][]PlayerID, column int, player PlayerID) ([][]PlayerID, int, error) {
	newBoard := CopyBoard(board)
	row, err := DropDisk(newBoard, column, player)
	if err != nil {
		return nil, -1, err
	}
	return newBoard, row, nil
}

// BoardToInts converts the grid for JSON storage.
func BoardToInts(board [][]PlayerID) [][]int {
	intBoard := make([][]int, len(board))
	for i := range board {
		intBoard[i] = make([]int, len(board[i]))
		for j := range board[i] {
			intBoard[i][j] = int(board[i][j])
		}
	}
	return intBoard
}

// BoardFromInts is the inverse of BoardToInts. Unknown values become Empty.
func BoardFromInts(cells [][]int) [][]PlayerID {
	board := NewBoard()
	for r := 0; r < Rows && r < len(cells); r++ {
		for c := 0; c < Columns && c < len(cells[r]); c++ {
			if p := PlayerID(cells[r][c]); p.Valid() {
				board[r][c] = p
			}
		}
	}
	return board
}
