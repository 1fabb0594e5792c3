package service

import "strings"

// isUniqueConstraintError detects unique constraint violations across
// PostgreSQL and SQLite without importing driver-specific error types.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
