package dbutil

import (
	"context"
	"errors"

	"github.com/avast/retry-go/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mdayat/todo-app/internal/retryutil"
	"github.com/mdayat/todo-app/repository"
)

// CommitError wraps a failed commit. The transaction may or may not have been
// applied, so it is only retried when nothing reached the server.
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return "failed to commit transaction: " + e.Err.Error()
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// RetryableTx reports whether a transaction that failed with err can run again.
func RetryableTx(err error) bool {
	var commitErr *CommitError
	if errors.As(err, &commitErr) {
		return retryutil.Unsent(commitErr.Err)
	}
	return retryutil.Retryable(err)
}

func RetryableTxWithData[T any](
	ctx context.Context,
	conn *pgxpool.Pool,
	queries *repository.Queries,
	f func(qtx *repository.Queries) (T, error),
) (T, error) {
	retryableFunc := func() (zero T, err error) {
		var tx pgx.Tx
		tx, err = conn.Begin(ctx)
		if err != nil {
			return zero, err
		}

		defer func() {
			if err == nil {
				if commitErr := tx.Commit(ctx); commitErr != nil {
					err = &CommitError{Err: commitErr}
				}
			}

			if err != nil {
				tx.Rollback(ctx)
			}
		}()

		qtx := queries.WithTx(tx)
		return f(qtx)
	}

	return retry.DoWithData(retryableFunc, append(retryutil.Options(ctx), retry.RetryIf(RetryableTx))...)
}
