package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mealdrop/mealdrop/internal/logger"
)

// txCtxKey is the private context key under which an open *sql.Tx travels.
// Repositories resolve their executor through [DB.querier], so any repository
// call made inside [DB.RunInTransaction] automatically joins the transaction
// without a change to its signature.
type txCtxKey struct{}

// Querier is the subset of database/sql methods shared by *sql.DB and
// *sql.Tx that repositories use to execute statements.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// querier returns the transaction carried in ctx if one is open, and the
// connection pool otherwise.
func (db *DB) querier(ctx context.Context) Querier {
	if tx, ok := ctx.Value(txCtxKey{}).(*sql.Tx); ok {
		return tx
	}
	return db.DB
}

// RunInTransaction executes fn inside a database transaction. Every
// repository call made with the context passed to fn joins that transaction;
// if fn returns an error the transaction is rolled back, otherwise it is
// committed.
//
// Multi-step write sequences (user create + password create + token create,
// passkey finalize, password recovery) must run through this helper so that
// a mid-sequence failure never leaves a half-written account behind.
//
// Nested calls join the already-open transaction instead of starting a new
// one.
func (db *DB) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	log := logger.FromContext(ctx)

	if _, ok := ctx.Value(txCtxKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	txCtx := context.WithValue(ctx, txCtxKey{}, tx)

	if err := fn(txCtx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			log.Err(rollbackErr).Msg("error rolling back transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Msg("error commiting transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
