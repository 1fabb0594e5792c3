// Package auth implements password hashing and JWT session tokens.
package auth

import (
	"errors"

	"inkwell/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used when the configuration does not
// supply one.
const DefaultBcryptCost = 12

// HashPassword hashes a plaintext password with bcrypt at the given cost.
// A cost outside bcrypt's supported range falls back to DefaultBcryptCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", models.NewCredentialError(err)
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a stored bcrypt hash.
// A mismatch returns (false, nil); only a malformed stored hash is an error.
func CheckPassword(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, models.NewCredentialError(err)
}
