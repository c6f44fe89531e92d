// Package order implements order and invoice persistence. The order/invoice
// pair is written by the create_order_with_invoice database function in one
// transaction.
package order

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/bizops-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bizops-backend/internal/domain"
)

var orderColumns = []string{
	"id", "order_number", "customer_id", "order_date", "status", "payment_status",
	"total_amount", "tax_amount", "discount_amount", "net_amount", "notes",
	"created_by", "created_at", "updated_at",
}

var invoiceColumns = []string{
	"id", "invoice_number", "order_id", "issue_date", "due_date",
	"total_amount", "paid_amount", "status", "created_at",
}

// Repo provides order persistence backed by PostgreSQL.
type Repo struct {
	gw *postgres.Gateway
}

// New creates a new order repository.
func New(gw *postgres.Gateway) *Repo {
	return &Repo{gw: gw}
}

// CountInYear returns the number of orders dated within the given year.
func (r *Repo) CountInYear(ctx context.Context, year int) (int, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	query, args, err := postgres.Builder.
		Select("COUNT(*)").
		From("orders").
		Where(sq.GtOrEq{"order_date": start}).
		Where(sq.Lt{"order_date": start.AddDate(1, 0, 0)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("order.CountInYear: %w", err)
	}

	var count int
	err = r.gw.ExecuteWithRetry(ctx, "order.count_in_year", postgres.RetryRead, func(ctx context.Context) error {
		return r.gw.Querier(ctx).QueryRow(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CreateWithInvoice writes the order, its items and its invoice atomically.
func (r *Repo) CreateWithInvoice(ctx context.Context, o domain.Order, items []domain.OrderItem, inv domain.Invoice) (*domain.OrderWithInvoice, error) {
	raw, err := r.gw.CallJSON(ctx, "create_order_with_invoice", postgres.RetryWrite, o, items, inv)
	if err != nil {
		return nil, err
	}

	var result domain.OrderWithInvoice
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("order.CreateWithInvoice: decode result: %w", err)
	}
	return &result, nil
}

// GetByID returns one order.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query, args, err := postgres.Builder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("order.GetByID: %w", err)
	}

	var o domain.Order
	err = r.gw.ExecuteWithRetry(ctx, "order.get", postgres.RetryRead, func(ctx context.Context) error {
		return postgres.Scan.Get(ctx, r.gw.Querier(ctx), &o, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetInvoiceByOrder returns the invoice billing orderID.
func (r *Repo) GetInvoiceByOrder(ctx context.Context, orderID uuid.UUID) (*domain.Invoice, error) {
	query, args, err := postgres.Builder.
		Select(invoiceColumns...).
		From("invoices").
		Where(sq.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("order.GetInvoiceByOrder: %w", err)
	}

	var inv domain.Invoice
	err = r.gw.ExecuteWithRetry(ctx, "order.get_invoice", postgres.RetryRead, func(ctx context.Context) error {
		return postgres.Scan.Get(ctx, r.gw.Querier(ctx), &inv, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// UpdateStatus moves the order from one status to another. It fails with
// domain.ErrConflict when the stored status is no longer from.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) (*domain.Order, error) {
	query, args, err := postgres.Builder.
		Update("orders").
		Set("status", to).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "status": from}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("order.UpdateStatus: %w", err)
	}

	var o domain.Order
	err = r.gw.ExecuteWithRetry(ctx, "order.update_status", postgres.RetryWrite, func(ctx context.Context) error {
		var rows []domain.Order
		if err := postgres.Scan.Select(ctx, r.gw.Querier(ctx), &rows, query, args...); err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("order %s is no longer %s: %w", id, from, domain.ErrConflict)
		}
		o = rows[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}
