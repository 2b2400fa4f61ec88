package domain

import "time"

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	IsGuest      bool
	GamesPlayed  int
	GamesWon     int
	GamesDrawn   int
	Rating       int
	CreatedAt    time.Time
}

// UserResponse returns a consistent JSON-friendly map of user data
func (u *User) UserResponse() map[string]interface{} {
	return map[string]interface{}{
		"id":       u.ID,
		"username": u.Username,
		"guest":    u.IsGuest,
		"rating":   u.Rating,
		"wins":     u.GamesWon,
		"losses":   u.GamesPlayed - u.GamesWon - u.GamesDrawn,
		"draws":    u.GamesDrawn,
	}
}
