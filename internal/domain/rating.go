package domain

import "math"

const (
	InitialRating = 1000
	ratingK       = 32.0
)

// Rated reports whether a finished game moves the players' ratings. Only
// games between two accounts count.
func (r GameRecord) Rated() bool {
	return r.Mode == ModePvP && r.Player2ID != nil
}

// Player1Score is 1 for a player 1 win, 0 for a loss and 0.5 otherwise.
func (r GameRecord) Player1Score() float64 {
	switch {
	case r.WinnerID == nil:
		return 0.5
	case *r.WinnerID == r.Player1ID:
		return 1
	default:
		return 0
	}
}

// NewRatings applies one Elo update to both sides. Ratings never drop below 0.
func NewRatings(rating1, rating2 int, score1 float64) (int, int) {
	expected1 := 1 / (1 + math.Pow(10, float64(rating2-rating1)/400))
	return adjust(rating1, score1-expected1), adjust(rating2, expected1-score1)
}

func adjust(rating int, delta float64) int {
	r := math.Round(float64(rating) + ratingK*delta)
	return int(math.Max(r, 0))
}
