// Package report serves read-only views over production, invoicing,
// customers and stock lots.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/pkg/ctxutil"
)

const (
	defaultYieldWindow = 30 * 24 * time.Hour
	maxYieldWindow     = 366 * 24 * time.Hour
)

type reportRepo interface {
	BatchYield(ctx context.Context, from, to time.Time) ([]domain.BatchYield, error)
	InvoiceAging(ctx context.Context, bucket string) ([]domain.InvoiceAging, error)
	CustomerMetrics(ctx context.Context, customerID uuid.UUID) (*domain.CustomerMetrics, error)
}

type lotLedger interface {
	GetLot(ctx context.Context, lotID uuid.UUID) (*domain.MaterialIntakeRecord, error)
	Movements(ctx context.Context, lotID uuid.UUID) ([]domain.InventoryMovement, error)
}

// Service builds reports.
type Service struct {
	log     *slog.Logger
	reports reportRepo
	lots    lotLedger
	now     func() time.Time
}

// NewService creates a new report service instance.
func NewService(logger *slog.Logger, reports reportRepo, lots lotLedger) *Service {
	return &Service{
		log:     logger.With("service", "report"),
		reports: reports,
		lots:    lots,
		now:     time.Now,
	}
}

// YieldRange bounds the batch yield report. A missing To is now, a missing
// From is thirty days before To.
type YieldRange struct {
	From *time.Time
	To   *time.Time
}

// BatchYield returns batches produced in the range and flags those whose
// stored cost per unit or yield no longer match their inputs.
func (s *Service) BatchYield(ctx context.Context, r YieldRange) ([]domain.BatchYield, error) {
	if _, err := requireRole(ctx, allRoles...); err != nil {
		return nil, err
	}

	to := s.now().UTC()
	if r.To != nil {
		to = r.To.UTC()
	}
	from := to.Add(-defaultYieldWindow)
	if r.From != nil {
		from = r.From.UTC()
	}
	switch {
	case to.Before(from):
		return nil, domain.NewValidationError("to", "must not be before from")
	case to.Sub(from) > maxYieldWindow:
		return nil, domain.NewValidationError("from", "range must not exceed 366 days")
	}

	rows, err := s.reports.BatchYield(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("report.BatchYield: %w", err)
	}

	drifted := 0
	for i := range rows {
		cpu, yield := domain.BatchMetrics(rows[i].TotalInputCost, rows[i].OutputVolume, rows[i].TotalInputQuantity)
		rows[i].MetricsConsistent = cpu.Equal(rows[i].CostPerUnit) && yield.Equal(rows[i].YieldPercentage)
		if !rows[i].MetricsConsistent {
			drifted++
		}
	}
	if drifted > 0 {
		s.log.WarnContext(ctx, "batch metrics drifted from inputs",
			slog.Int("batches", drifted),
			slog.Time("from", from),
			slog.Time("to", to),
		)
	}
	if rows == nil {
		rows = []domain.BatchYield{}
	}
	return rows, nil
}

// InvoiceAging returns invoice balances, optionally limited to one bucket,
// with totals per bucket.
func (s *Service) InvoiceAging(ctx context.Context, bucket string) (*domain.InvoiceAgingReport, error) {
	if _, err := requireRole(ctx, domain.ElevatedRoles...); err != nil {
		return nil, err
	}
	if bucket != "" && !slices.Contains(domain.AgingBuckets, bucket) {
		return nil, domain.NewValidationError("bucket", "must be one of: "+strings.Join(domain.AgingBuckets, " "))
	}

	rows, err := s.reports.InvoiceAging(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("report.InvoiceAging: %w", err)
	}

	rep := &domain.InvoiceAgingReport{
		Invoices: rows,
		ByBucket: make(map[string]decimal.Decimal),
	}
	if rep.Invoices == nil {
		rep.Invoices = []domain.InvoiceAging{}
	}
	for _, inv := range rows {
		rep.OutstandingTotal = rep.OutstandingTotal.Add(inv.OutstandingAmount)
		rep.ByBucket[inv.AgingBucket] = rep.ByBucket[inv.AgingBucket].Add(inv.OutstandingAmount)
	}
	return rep, nil
}

// CustomerMetrics returns the order summary of one customer.
func (s *Service) CustomerMetrics(ctx context.Context, customerID uuid.UUID) (*domain.CustomerMetrics, error) {
	if _, err := requireRole(ctx, domain.ElevatedRoles...); err != nil {
		return nil, err
	}

	m, err := s.reports.CustomerMetrics(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("report.CustomerMetrics: %w", err)
	}
	return m, nil
}

// Lot returns a stock lot and its movement history.
func (s *Service) Lot(ctx context.Context, lotID uuid.UUID) (*domain.LotDetail, error) {
	if _, err := requireRole(ctx, allRoles...); err != nil {
		return nil, err
	}

	lot, err := s.lots.GetLot(ctx, lotID)
	if err != nil {
		return nil, fmt.Errorf("report.Lot: %w", err)
	}
	movements, err := s.lots.Movements(ctx, lotID)
	if err != nil {
		return nil, fmt.Errorf("report.Lot: movements: %w", err)
	}
	if movements == nil {
		movements = []domain.InventoryMovement{}
	}

	return &domain.LotDetail{
		Lot:          *lot,
		BelowMinimum: lot.RemainingQuantity.LessThan(lot.MinimumStockLevel),
		Movements:    movements,
	}, nil
}

var allRoles = []domain.UserRole{
	domain.UserRoleAdmin, domain.UserRoleManager, domain.UserRoleOperator, domain.UserRoleViewer,
}

// requireRole returns the caller when it holds one of roles.
func requireRole(ctx context.Context, roles ...domain.UserRole) (uuid.UUID, error) {
	actor, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	if !ctxutil.HasRole(ctx, names...) {
		return uuid.Nil, domain.ErrForbidden
	}
	return actor, nil
}
