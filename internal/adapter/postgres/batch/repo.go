// Package batch implements production batch persistence. A batch, its inputs
// and the stock decrements they cause are written by the
// create_production_batch_atomic database function in one transaction.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/bizops-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bizops-backend/internal/domain"
)

var batchColumns = []string{
	"id", "batch_number", "production_date", "status", "total_input_cost",
	"output_volume", "cost_per_unit", "yield_percentage", "notes",
	"created_by", "created_at", "updated_at",
}

// Repo provides production batch persistence backed by PostgreSQL.
type Repo struct {
	gw *postgres.Gateway
}

// New creates a new batch repository.
func New(gw *postgres.Gateway) *Repo {
	return &Repo{gw: gw}
}

// ValidateInventory asks the database whether every input can be covered by
// its stock lot. Failures are not reported to the user because the caller
// falls back to per-lot checks.
func (r *Repo) ValidateInventory(ctx context.Context, inputs []domain.BatchInput) (*domain.InventoryValidation, error) {
	raw, err := r.gw.CallJSON(ctx, "validate_production_batch_inventory", postgres.RetryRead.Silently(), inputs)
	if err != nil {
		return nil, err
	}

	var v domain.InventoryValidation
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("batch.ValidateInventory: decode result: %w", err)
	}
	return &v, nil
}

// CreateAtomic writes the batch, its inputs and the stock decrements.
func (r *Repo) CreateAtomic(ctx context.Context, b domain.ProductionBatch, inputs []domain.BatchInput) (*domain.BatchWithInputs, error) {
	raw, err := r.gw.CallJSON(ctx, "create_production_batch_atomic", postgres.RetryWrite, b, inputs)
	if err != nil {
		return nil, err
	}

	var result domain.BatchWithInputs
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("batch.CreateAtomic: decode result: %w", err)
	}
	return &result, nil
}

// GetByID returns one batch.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProductionBatch, error) {
	query, args, err := postgres.Builder.
		Select(batchColumns...).
		From("production_batches").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("batch.GetByID: %w", err)
	}

	var b domain.ProductionBatch
	err = r.gw.ExecuteWithRetry(ctx, "batch.get", postgres.RetryRead, func(ctx context.Context) error {
		return postgres.Scan.Get(ctx, r.gw.Querier(ctx), &b, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Inputs returns the inputs consumed by a batch.
func (r *Repo) Inputs(ctx context.Context, batchID uuid.UUID) ([]domain.BatchInput, error) {
	b := postgres.Builder.
		Select("id", "batch_id", "material_intake_id", "quantity_used", "cost_attributed").
		From("batch_inputs").
		Where(sq.Eq{"batch_id": batchID}).
		OrderBy("id")

	return postgres.SelectAll[domain.BatchInput](ctx, r.gw, "batch.inputs", b)
}

// RolledBack reports whether a rollback of the batch has restored stock or
// queued a restoration in the outbox.
func (r *Repo) RolledBack(ctx context.Context, batchID uuid.UUID) (bool, error) {
	query, args, err := postgres.Builder.
		Select().
		Column(sq.Expr(
			"EXISTS (SELECT 1 FROM inventory_movements WHERE reference_type = ? AND reference_id = ?)"+
				" OR EXISTS (SELECT 1 FROM outbox_entries WHERE reference_type = ? AND reference_id = ?)",
			domain.ReferenceRollback, batchID, domain.ReferenceRollback, batchID,
		)).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("batch.RolledBack: %w", err)
	}

	var done bool
	err = r.gw.ExecuteWithRetry(ctx, "batch.rolled_back", postgres.RetryRead, func(ctx context.Context) error {
		return r.gw.Querier(ctx).QueryRow(ctx, query, args...).Scan(&done)
	})
	if err != nil {
		return false, err
	}
	return done, nil
}

// UpdateStatus moves the batch from one status to another. It fails with
// domain.ErrConflict when the stored status is no longer from.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.BatchStatus) (*domain.ProductionBatch, error) {
	query, args, err := postgres.Builder.
		Update("production_batches").
		Set("status", to).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "status": from}).
		Suffix("RETURNING " + strings.Join(batchColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("batch.UpdateStatus: %w", err)
	}

	var b domain.ProductionBatch
	err = r.gw.ExecuteWithRetry(ctx, "batch.update_status", postgres.RetryWrite, func(ctx context.Context) error {
		var rows []domain.ProductionBatch
		if err := postgres.Scan.Select(ctx, r.gw.Querier(ctx), &rows, query, args...); err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("batch %s is no longer %s: %w", id, from, domain.ErrConflict)
		}
		b = rows[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}
