package bot

import (
	"github.com/iamasit07/connect-four/internal/domain"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

var Names = map[string]string{
	DifficultyEasy:   "Alice",
	DifficultyMedium: "Bob",
	DifficultyHard:   "Charles",
}

func Name(difficulty string) string {
	if name, ok := Names[NormalizeDifficulty(difficulty)]; ok {
		return name
	}
	return "BOT"
}

// NormalizeDifficulty maps unknown or empty values to medium.
func NormalizeDifficulty(difficulty string) string {
	switch difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return difficulty
	default:
		return DifficultyMedium
	}
}

// CalculateBestMove selects a column for botPlayer. It returns -1 when the
// board has no playable column. The board is never modified.
func CalculateBestMove(board [][]domain.PlayerID, botPlayer domain.PlayerID, difficulty string) int {
	switch NormalizeDifficulty(difficulty) {
	case DifficultyEasy:
		return CalculateBestMoveEasy(board, botPlayer)
	case DifficultyHard:
		return CalculateBestMoveMinimax(board, botPlayer, hardDepth)
	default:
		return CalculateBestMoveMinimax(board, botPlayer, mediumDepth)
	}
}
