// Package inventory implements the stock-lot ledger on PostgreSQL. Every
// quantity change is written together with an inventory_movements row that
// attributes it to a reference transaction.
package inventory

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/bizops-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bizops-backend/internal/domain"
)

const (
	lotsTable      = "material_intake_records"
	movementsTable = "inventory_movements"
)

// Ledger adjusts remaining quantities of stock lots.
type Ledger struct {
	gw *postgres.Gateway
	tm *postgres.TxManager
}

// New creates a Ledger.
func New(gw *postgres.Gateway, tm *postgres.TxManager) *Ledger {
	return &Ledger{gw: gw, tm: tm}
}

// Decrement removes qty from the lot. It fails with
// *domain.InsufficientStockError when the lot holds less than qty.
// Failures are not reported to the user; callers degrade them to warnings.
func (l *Ledger) Decrement(ctx context.Context, lotID uuid.UUID, qty decimal.Decimal, ref domain.MovementReference) error {
	return l.apply(ctx, domain.MovementDecrement, lotID, qty, ref)
}

// Increment returns qty to the lot.
func (l *Ledger) Increment(ctx context.Context, lotID uuid.UUID, qty decimal.Decimal, ref domain.MovementReference) error {
	return l.apply(ctx, domain.MovementIncrement, lotID, qty, ref)
}

// apply locks the lot, records the movement and then adjusts the quantity.
// A movement already recorded for the same reference, lot and direction
// makes the call a no-op, so replays never move stock twice.
func (l *Ledger) apply(ctx context.Context, dir domain.MovementDirection, lotID uuid.UUID, qty decimal.Decimal, ref domain.MovementReference) error {
	label := "inventory." + string(dir)
	if !qty.IsPositive() {
		return domain.NewValidationError("quantity", "must be positive")
	}

	return l.gw.ExecuteWithRetry(ctx, label, postgres.RetryWrite.Silently(), func(ctx context.Context) error {
		return l.tm.RunInTx(ctx, func(ctx context.Context) error {
			q := l.gw.Querier(ctx)

			query, args, err := postgres.Builder.
				Select("remaining_quantity").
				From(lotsTable).
				Where(sq.Eq{"id": lotID}).
				Suffix("FOR UPDATE").
				ToSql()
			if err != nil {
				return fmt.Errorf("build lock query: %w", err)
			}

			var remaining decimal.Decimal
			if err := q.QueryRow(ctx, query, args...).Scan(&remaining); err != nil {
				return fmt.Errorf("lot %s: %w", lotID, err)
			}

			query, args, err = postgres.Builder.
				Insert(movementsTable).
				Columns("id", "lot_id", "direction", "quantity", "reference_type", "reference_id", "note").
				Values(uuid.New(), lotID, dir, qty, ref.Type, ref.ID, ref.Note).
				Suffix("ON CONFLICT (reference_type, reference_id, lot_id, direction) DO NOTHING").
				ToSql()
			if err != nil {
				return fmt.Errorf("build movement insert: %w", err)
			}
			tag, err := q.Exec(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("insert movement for lot %s: %w", lotID, err)
			}
			if tag.RowsAffected() == 0 {
				return nil
			}

			next := remaining.Add(qty)
			if dir == domain.MovementDecrement {
				next = remaining.Sub(qty)
				if next.IsNegative() {
					return &domain.InsufficientStockError{Shortfalls: []domain.StockShortfall{{
						LotID:     lotID,
						Requested: qty,
						Available: remaining,
					}}}
				}
			}

			query, args, err = postgres.Builder.
				Update(lotsTable).
				Set("remaining_quantity", next).
				Where(sq.Eq{"id": lotID}).
				ToSql()
			if err != nil {
				return fmt.Errorf("build update: %w", err)
			}
			if _, err := q.Exec(ctx, query, args...); err != nil {
				return fmt.Errorf("update lot %s: %w", lotID, err)
			}
			return nil
		})
	})
}

// CheckStock compares requested with the lot's remaining quantity.
func (l *Ledger) CheckStock(ctx context.Context, lotID uuid.UUID, requested decimal.Decimal) (domain.StockCheck, error) {
	query, args, err := postgres.Builder.
		Select("remaining_quantity").
		From(lotsTable).
		Where(sq.Eq{"id": lotID}).
		ToSql()
	if err != nil {
		return domain.StockCheck{}, fmt.Errorf("inventory.CheckStock: %w", err)
	}

	check := domain.StockCheck{LotID: lotID, Requested: requested}
	err = l.gw.ExecuteWithRetry(ctx, "inventory.check_stock", postgres.RetryRead.Silently(), func(ctx context.Context) error {
		return l.gw.Querier(ctx).QueryRow(ctx, query, args...).Scan(&check.Available)
	})
	if err != nil {
		return domain.StockCheck{}, err
	}
	return check, nil
}

// GetLot returns one stock lot.
func (l *Ledger) GetLot(ctx context.Context, lotID uuid.UUID) (*domain.MaterialIntakeRecord, error) {
	b := postgres.Builder.
		Select("id", "supplier_id", "material_name", "original_quantity", "cost_per_unit",
			"remaining_quantity", "minimum_stock_level", "intake_date").
		From(lotsTable).
		Where(sq.Eq{"id": lotID})

	lots, err := postgres.SelectAll[domain.MaterialIntakeRecord](ctx, l.gw, "inventory.get_lot", b)
	if err != nil {
		return nil, err
	}
	if len(lots) == 0 {
		return nil, fmt.Errorf("lot %s: %w", lotID, domain.ErrNotFound)
	}
	return &lots[0], nil
}

// Movements returns the change history of a lot, oldest first.
func (l *Ledger) Movements(ctx context.Context, lotID uuid.UUID) ([]domain.InventoryMovement, error) {
	b := postgres.Builder.
		Select("id", "lot_id", "direction", "quantity", "reference_type", "reference_id", "note", "created_at").
		From(movementsTable).
		Where(sq.Eq{"lot_id": lotID}).
		OrderBy("created_at ASC")

	return postgres.SelectAll[domain.InventoryMovement](ctx, l.gw, "inventory.movements", b)
}
