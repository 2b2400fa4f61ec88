package bot

import (
	"math/rand"

	"github.com/iamasit07/connect-four/internal/domain"
)

// CalculateBestMoveEasy wins if it can, blocks if it must, otherwise plays
// a random column.
func CalculateBestMoveEasy(board [][]domain.PlayerID, botPlayer domain.PlayerID) int {
	validColumns := domain.GetValidMoves(board)
	if len(validColumns) == 0 {
		return -1
	}

	if col := findConnectingMove(board, validColumns, botPlayer); col >= 0 {
		return col
	}
	if col := findConnectingMove(board, validColumns, botPlayer.Opponent()); col >= 0 {
		return col
	}

	return validColumns[rand.Intn(len(validColumns))]
}

// findConnectingMove returns the first column where player would complete a run.
func findConnectingMove(board [][]domain.PlayerID, columns []int, player domain.PlayerID) int {
	for _, col := range columns {
		testBoard, row, err := domain.SimulateMove(board, col, player)
		if err != nil {
			continue
		}
		if domain.ConnectsAt(testBoard, row, col, player) {
			return col
		}
	}
	return -1
}
