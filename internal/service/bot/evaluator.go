package bot

import (
	"github.com/iamasit07/connect-four/internal/domain"
)

const (
	centerWeight = 6
	threeWeight  = 50
	twoWeight    = 10
	blockWeight  = 80
)

// evaluateBoard scores a non-terminal position from botPlayer's point of
// view by looking at every window of ToWin cells.
func evaluateBoard(board [][]domain.PlayerID, botPlayer, opponent domain.PlayerID) int {
	score := 0

	centerCol := domain.Columns / 2
	for row := 0; row < domain.Rows; row++ {
		switch board[row][centerCol] {
		case botPlayer:
			score += centerWeight
		case opponent:
			score -= centerWeight
		}
	}

	directions := [][2]int{{0, 1}, {1, 0}, {1, 1}, {-1, 1}}
	for row := 0; row < domain.Rows; row++ {
		for col := 0; col < domain.Columns; col++ {
			for _, d := range directions {
				endRow := row + d[0]*(domain.ToWin-1)
				endCol := col + d[1]*(domain.ToWin-1)
				if !domain.InBounds(endRow, endCol) {
					continue
				}
				score += scoreWindow(board, row, col, d[0], d[1], botPlayer, opponent)
			}
		}
	}

	return score
}

func scoreWindow(board [][]domain.PlayerID, row, col, dRow, dCol int, botPlayer, opponent domain.PlayerID) int {
	mine, theirs, empty := 0, 0, 0
	for k := 0; k < domain.ToWin; k++ {
		switch board[row+k*dRow][col+k*dCol] {
		case botPlayer:
			mine++
		case opponent:
			theirs++
		default:
			empty++
		}
	}

	switch {
	case mine == 3 && empty == 1:
		return threeWeight
	case mine == 2 && empty == 2:
		return twoWeight
	case theirs == 3 && empty == 1:
		return -blockWeight
	case theirs == 2 && empty == 2:
		return -twoWeight
	}
	return 0
}
