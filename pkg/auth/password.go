package auth

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidInput wraps every username and password validation failure.
var ErrInvalidInput = errors.New("invalid input")

// BcryptCost is lowered in tests.
var BcryptCost = 12

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePasswordStrength requires at least 8 characters with a letter and
// a digit.
func ValidatePasswordStrength(password string) error {
	var hasLetter, hasDigit bool
	for _, ch := range password {
		switch {
		case unicode.IsLetter(ch):
			hasLetter = true
		case unicode.IsDigit(ch):
			hasDigit = true
		}
	}

	var failures []string
	if len(password) < 8 {
		failures = append(failures, "at least 8 characters")
	}
	if !hasLetter {
		failures = append(failures, "at least 1 letter")
	}
	if !hasDigit {
		failures = append(failures, "at least 1 digit")
	}

	if len(failures) > 0 {
		return fmt.Errorf("%w: password must contain %s", ErrInvalidInput, strings.Join(failures, ", "))
	}
	return nil
}

// ValidateUsername allows 3 to 20 letters, digits and underscores. The
// "guest-" prefix is reserved.
func ValidateUsername(username string) error {
	if len(username) < 3 || len(username) > 20 {
		return fmt.Errorf("%w: username must be between 3 and 20 characters", ErrInvalidInput)
	}
	if strings.HasPrefix(strings.ToLower(username), "guest") {
		return fmt.Errorf("%w: username may not start with guest", ErrInvalidInput)
	}
	for _, ch := range username {
		if ch != '_' && !unicode.IsLetter(ch) && !unicode.IsDigit(ch) {
			return fmt.Errorf("%w: username may only contain letters, digits and underscores", ErrInvalidInput)
		}
	}
	return nil
}
