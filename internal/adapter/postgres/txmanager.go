package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// rollbackTimeout bounds a rollback issued after the caller's context
// ended, which is the usual case when the gateway's per-call timeout fires.
const rollbackTimeout = 5 * time.Second

// TxManager runs functions in a transaction carried by the context, so
// repositories reached from fn join it through QuerierFromCtx. A RunInTx
// call nested inside another reuses the outer transaction.
type TxManager struct {
	db DB
}

// NewTxManager creates a TxManager over db.
func NewTxManager(db DB) *TxManager {
	return &TxManager{db: db}
}

// RunInTx runs fn in a READ COMMITTED transaction. It commits when fn
// returns nil and rolls back when fn fails or panics. fn's error is
// returned unwrapped, joined with the rollback error if that failed too, so
// Classify still sees the original cause (e.g. a serialization failure or
// an InsufficientStockError) and the gateway can decide on a retry.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if InTx(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = rollback(ctx, tx)
			panic(r)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := rollback(ctx, tx); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// rollback detaches from ctx's cancellation so the server is told to
// abort even when the request has already given up.
func rollback(ctx context.Context, tx pgx.Tx) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()
	return tx.Rollback(ctx)
}
