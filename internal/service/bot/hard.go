package bot

import (
	"math"

	"github.com/iamasit07/connect-four/internal/domain"
)

const (
	mediumDepth = 3
	hardDepth   = 6

	minimaxWin  = 1000000
	minimaxLoss = -1000000
)

// columnOrder searches the center first so alpha-beta cuts earlier.
var columnOrder = []int{3, 2, 4, 1, 5, 0, 6}

// CalculateBestMoveMinimax searches depth plies with alpha-beta pruning.
func CalculateBestMoveMinimax(board [][]domain.PlayerID, botPlayer domain.PlayerID, depth int) int {
	validColumns := orderedMoves(board)
	if len(validColumns) == 0 {
		return -1
	}

	opponent := botPlayer.Opponent()
	bestCol := validColumns[0]
	bestScore := math.MinInt32
	alpha := math.MinInt32
	beta := math.MaxInt32

	for _, col := range validColumns {
		testBoard, row, err := domain.SimulateMove(board, col, botPlayer)
		if err != nil {
			continue
		}

		// take an immediate win without searching further
		if domain.ConnectsAt(testBoard, row, col, botPlayer) {
			return col
		}

		score := minimax(testBoard, depth-1, depth, alpha, beta, false, botPlayer, opponent)
		if score > bestScore {
			bestScore = score
			bestCol = col
		}
		alpha = max(alpha, bestScore)
	}

	return bestCol
}

func minimax(board [][]domain.PlayerID, depth, maxDepth int, alpha, beta int, isMaximizing bool, botPlayer, opponent domain.PlayerID) int {
	validColumns := orderedMoves(board)

	if depth <= 0 || len(validColumns) == 0 {
		return evaluateBoard(board, botPlayer, opponent)
	}

	// plies already played in this search; quicker wins and slower losses score higher
	ply := maxDepth - depth

	if isMaximizing {
		maxEval := math.MinInt32
		for _, col := range validColumns {
			testBoard, row, _ := domain.SimulateMove(board, col, botPlayer)
			if domain.ConnectsAt(testBoard, row, col, botPlayer) {
				return minimaxWin - ply
			}

			eval := minimax(testBoard, depth-1, maxDepth, alpha, beta, false, botPlayer, opponent)
			maxEval = max(maxEval, eval)
			alpha = max(alpha, eval)
			if beta <= alpha {
				break
			}
		}
		return maxEval
	}

	minEval := math.MaxInt32
	for _, col := range validColumns {
		testBoard, row, _ := domain.SimulateMove(board, col, opponent)
		if domain.ConnectsAt(testBoard, row, col, opponent) {
			return minimaxLoss + ply
		}

		eval := minimax(testBoard, depth-1, maxDepth, alpha, beta, true, botPlayer, opponent)
		minEval = min(minEval, eval)
		beta = min(beta, eval)
		if beta <= alpha {
			break
		}
	}
	return minEval
}

func orderedMoves(board [][]domain.PlayerID) []int {
	moves := make([]int, 0, domain.Columns)
	for _, col := range columnOrder {
		if domain.ColumnHasSpace(board, col) {
			moves = append(moves, col)
		}
	}
	return moves
}
