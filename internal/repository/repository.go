// Package repository is the data-access layer. Read views are assembled with
// the Pipeline builder; mutations are plain SQL, transactional where more
// than one row is touched.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/playtube/playtube-go/internal/apperr"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// mapFindErr converts pgx.ErrNoRows into the taxonomy's NotFound; anything
// else is a dependency failure.
func mapFindErr(err error, notFoundMsg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(notFoundMsg)
	}
	return apperr.Dependency("database query failed", err)
}

func mapWriteErr(err error, conflictMsg string) error {
	if isUniqueViolation(err) {
		return apperr.Conflict(conflictMsg)
	}
	return apperr.Dependency("database write failed", err)
}
