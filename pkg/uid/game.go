package uid

import (
	"crypto/rand"
	"encoding/hex"
)

func randomHex(n int) string {
	bytes := make([]byte, n)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// GenerateGameID returns a random 32 character game ID
func GenerateGameID() string {
	return randomHex(16)
}

// GenerateGuestName returns names like "guest-3fa9c1"
func GenerateGuestName() string {
	return "guest-" + randomHex(3)
}
