package retryutil

import (
	"context"
	"errors"

	"github.com/avast/retry-go/v4"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Options are shared by every retried database call. Retrying stops as soon
// as ctx is done.
func Options(ctx context.Context) []retry.Option {
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(3),
		retry.LastErrorOnly(true),
		retry.RetryIf(Retryable),
	}
}

// RetryWithData runs f until it succeeds or fails permanently. Only use it for
// statements that can safely run more than once.
func RetryWithData[T any](ctx context.Context, f func() (T, error)) (T, error) {
	return retry.DoWithData(f, Options(ctx)...)
}

// RetryUnsentWithData is for statements that must not run twice, such as
// inserts. It only retries failures that happened before the statement
// reached the server.
func RetryUnsentWithData[T any](ctx context.Context, f func() (T, error)) (T, error) {
	return retry.DoWithData(f, append(Options(ctx), retry.RetryIf(Unsent))...)
}

// Retryable reports whether running the same statement again could succeed.
// Missing rows, integrity violations and cancellation are permanent.
func Retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return false
	}

	return true
}

// Unsent reports whether err is retryable and known to have happened before
// anything was sent to the server.
func Unsent(err error) bool {
	return Retryable(err) && pgconn.SafeToRetry(err)
}
