package db

import "strings"

// IsUniqueViolation reports whether the provided error references a unique
// constraint. When constraintName is given, the helper looks for that
// constraint in the error text; otherwise it matches the generic duplicate
// key wording emitted by Postgres and SQLite.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
