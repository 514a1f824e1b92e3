package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"

	"todo-list/internal/errors"
)

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// dbError classifies a driver error. Deadline and cancellation become
// timeouts so the caller can tell a slow disk from a broken one.
func dbError(operation string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return errors.NewTimeoutError(operation, err.Error())
	}
	return errors.NewDatabaseError(operation, err)
}

func exec(ctx context.Context, db execer, operation, query string, args ...any) (sql.Result, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(operation, err)
	}
	return res, nil
}

// touchedKey reports NotFound when a statement addressed to key changed
// no rows.
func touchedKey(res sql.Result, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return dbError("rows affected", err)
	}
	if n == 0 {
		return errors.NewNotFoundError("key", key)
	}
	return nil
}
