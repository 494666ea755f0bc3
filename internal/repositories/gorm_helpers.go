package repositories

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation reports whether err is a unique-constraint violation.
// The store constraint, not the service-layer pre-check, is the authoritative
// guard against duplicate usernames, emails and product names under
// concurrent writers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite (tests) reports constraint failures as plain strings.
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(strings.ToLower(err.Error()), "duplicate")
}
