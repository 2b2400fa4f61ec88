package domain

// directions scanned for a run, in this order: horizontal, vertical,
// diagonal up-right, diagonal down-right.
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{-1, 1},
}

// WinningCells returns the first run of ToWin cells owned by player, or nil.
// Cells are scanned bottom row first, left to right, and each direction is
// tried in the order above, so the result is stable for a given board.
func WinningCells(board [][]PlayerID, player PlayerID) []Position {
	if !player.Valid() {
		return nil
	}

	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if board[r][c] != player {
				continue
			}
			for _, d := range directions {
				if run, ok := runFrom(board, r, c, d[0], d[1], player); ok {
					return run
				}
			}
		}
	}
	return nil
}

func runFrom(board [][]PlayerID, row, col, dRow, dCol int, player PlayerID) ([]Position, bool) {
	run := make([]Position, 0, ToWin)
	for k := 0; k < ToWin; k++ {
		r, c := row+k*dRow, col+k*dCol
		if !InBounds(r, c) || board[r][c] != player {
			return nil, false
		}
		run = append(run, Position{Row: r, Col: c})
	}
	return run, true
}

func HasWon(board [][]PlayerID, player PlayerID) bool {
	return WinningCells(board, player) != nil
}

// this counts the number of disks in a specific direction, excluding the start cell
func CountDiskInDirection(board [][]PlayerID, row, column int, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for InBounds(r, c) && board[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}

// ConnectsAt reports whether the disk at (row, column) completes a run for
// player. Only lines through that cell are checked, which makes it the cheap
// test to use right after a drop.
func ConnectsAt(board [][]PlayerID, row, column int, player PlayerID) bool {
	if !InBounds(row, column) || board[row][column] != player {
		return false
	}
	for _, d := range directions {
		total := 1 +
			CountDiskInDirection(board, row, column, d[0], d[1], player) +
			CountDiskInDirection(board, row, column, -d[0], -d[1], player)
		if total >= ToWin {
			return true
		}
	}
	return false
}
