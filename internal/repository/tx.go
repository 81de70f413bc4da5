package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WithTx runs fn inside a transaction and commits when fn succeeds. The
// transaction is rolled back when fn fails or panics; a panic is re-raised
// after the rollback.
func WithTx[T any](c context.Context, pool *pgxpool.Pool, q *Queries, fn func(q *Queries) (T, error)) (_ T, txErr error) {
	var zero T

	tx, err := pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		return zero, fmt.Errorf("failed beginning transaction with error=%w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(c)
			panic(p)
		}
		if txErr == nil {
			return
		}
		rollbackErr := tx.Rollback(c)
		if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			txErr = errors.Join(txErr, fmt.Errorf("failed rolling back transaction with error=%w", rollbackErr))
		}
	}()

	result, err := fn(q.WithTx(tx))
	if err != nil {
		return zero, err
	}

	if err = tx.Commit(c); err != nil {
		return zero, fmt.Errorf("failed committing transaction with error=%w", err)
	}
	return result, nil
}
