package database

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

const (
	pgUniqueViolation   = "23505"
	sqliteUniqueMessage = "UNIQUE constraint failed: "
)

// UniqueViolation reports whether err is a unique constraint violation and,
// when the driver tells us, which constraint or column was violated.
func UniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == pgUniqueViolation {
			return pqErr.Constraint, true
		}
		return "", false
	}

	msg := err.Error()
	if i := strings.Index(msg, sqliteUniqueMessage); i >= 0 {
		return strings.TrimSpace(msg[i+len(sqliteUniqueMessage):]), true
	}
	if strings.Contains(msg, "duplicate key value violates unique constraint") {
		return "", true
	}

	return "", false
}
