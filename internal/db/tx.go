package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
)

// Tx is a database transaction.
type Tx struct {
	*sqlx.Tx
	logger *log.Logger
}

type txContextKey struct{}

// TxFromContext returns the transaction carried by ctx, if any.
func TxFromContext(ctx context.Context) *Tx {
	if tx, ok := ctx.Value(txContextKey{}).(*Tx); ok {
		return tx
	}
	return nil
}

// WithTx returns a new context carrying tx.
func WithTx(ctx context.Context, tx *Tx) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TransactionContext runs fn inside a transaction. The context passed to fn
// carries the transaction, so a nested TransactionContext call joins it
// instead of opening a second one. An error returned by fn is passed back
// unchanged after the rollback.
func (d *DB) TransactionContext(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) error {
	if tx := TxFromContext(ctx); tx != nil {
		return fn(ctx, tx)
	}

	txx, err := d.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", WrapError(err))
	}

	tx := &Tx{txx, d.logger}
	if err := fn(WithTx(ctx, tx), tx); err != nil {
		d.rollback(tx, err)
		return err
	}

	if err := tx.Commit(); err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			// this is ok because whoever did finish the tx should have also written the error already.
			return nil
		}
		return fmt.Errorf("failed to commit transaction: %w", WrapError(err))
	}

	return nil
}

func (d *DB) rollback(tx *Tx, cause error) {
	if rerr := tx.Rollback(); rerr != nil && !errors.Is(rerr, sql.ErrTxDone) {
		if d.logger != nil {
			d.logger.Warn("rollback failed", "cause", cause, "err", rerr)
		}
	}
}
