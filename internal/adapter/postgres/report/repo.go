// Package report reads the reporting views.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/bizops-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bizops-backend/internal/domain"
)

// Repo reads vw_batch_yield, vw_invoice_aging and vw_customer_metrics.
type Repo struct {
	gw *postgres.Gateway
}

// New creates a new report repository.
func New(gw *postgres.Gateway) *Repo {
	return &Repo{gw: gw}
}

// BatchYield returns batches produced within [from, to], newest first.
func (r *Repo) BatchYield(ctx context.Context, from, to time.Time) ([]domain.BatchYield, error) {
	return postgres.QueryByDateRange[domain.BatchYield](ctx, r.gw, "vw_batch_yield", "production_date", from, to,
		postgres.OrderBy{Column: "production_date", Desc: true})
}

// InvoiceAging returns open and settled invoices, most overdue first. An
// empty bucket returns every bucket.
func (r *Repo) InvoiceAging(ctx context.Context, bucket string) ([]domain.InvoiceAging, error) {
	var filters postgres.Filters
	if bucket != "" {
		filters = postgres.Filters{"aging_bucket": bucket}
	}
	return postgres.Query[domain.InvoiceAging](ctx, r.gw, "vw_invoice_aging", filters,
		postgres.OrderBy{Column: "days_overdue", Desc: true},
		postgres.OrderBy{Column: "due_date"})
}

// CustomerMetrics returns the order summary of one customer.
func (r *Repo) CustomerMetrics(ctx context.Context, customerID uuid.UUID) (*domain.CustomerMetrics, error) {
	rows, err := postgres.Query[domain.CustomerMetrics](ctx, r.gw, "vw_customer_metrics",
		postgres.Filters{"customer_id": customerID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("customer %s has no orders: %w", customerID, domain.ErrNotFound)
	}
	return &rows[0], nil
}
