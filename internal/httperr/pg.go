package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATEs raised when a constraint catches a write the application-level
// checks let through.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsExclusionConflict reports whether the error comes from the overlap
// EXCLUDE constraint on appointments. Together with the row lock it closes
// the race between the availability check and the insert.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}
