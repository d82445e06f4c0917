package infra

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the repositories translate into kinds.
const (
	pgCodeUniqueViolation    = "23505"
	pgCodeForeignKeyViolated = "23503"
	pgCodeExclusionViolation = "23P01"
)

// KindFromPgError maps a Postgres constraint violation to a repository
// error kind. The exclusion constraint on sponsorship_grants is the commit
// time overlap re-validation, so 23P01 becomes KindConflict.
func KindFromPgError(err error) (RepositoryErrorKind, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}

	switch pgErr.Code {
	case pgCodeExclusionViolation:
		return KindConflict, true
	case pgCodeUniqueViolation:
		return KindDuplicateKey, true
	case pgCodeForeignKeyViolated:
		return KindForeignKeyViolated, true
	default:
		return "", false
	}
}
