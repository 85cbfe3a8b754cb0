package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/ridoystarlord/schemato/errs"
)

// mapError wraps a driver error as an execution error, keeping the
// SQLSTATE code visible in the message when the server reported one.
func mapError(err error, msg string) *errs.Error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return errs.Wrap(errs.KindExecution, fmt.Sprintf("%s (SQLSTATE %s)", msg, pgErr.Code), err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return errs.Wrap(errs.KindExecution, fmt.Sprintf("%s (SQLSTATE %s)", msg, pqErr.Code), err)
	}

	return errs.Wrap(errs.KindExecution, msg, err)
}
