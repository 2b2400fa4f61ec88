package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateTokenID creates a random ID for a token's jti claim so a single
// token can be revoked
func GenerateTokenID() string {
	bytes := make([]byte, 16) // 16 bytes = 128 bits
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
