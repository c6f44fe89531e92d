package integrity

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/internal/metrics"
)

// issueRepo defines the detection and persistence queries of the auditor.
type issueRepo interface {
	FindOrphanedOrders(ctx context.Context) ([]domain.Finding, error)
	FindOrphanedInvoices(ctx context.Context) ([]domain.Finding, error)
	FindOrphanedBatches(ctx context.Context) ([]domain.Finding, error)
	FindNegativeInventory(ctx context.Context) ([]domain.Finding, error)
	FindInventoryDiscrepancies(ctx context.Context) ([]domain.Finding, error)
	FindLowStock(ctx context.Context, fallback decimal.Decimal) ([]domain.Finding, error)
	FindOrphanedLedgerEntries(ctx context.Context) ([]domain.Finding, error)
	FindInvoicesWithoutLedgerEntries(ctx context.Context) ([]domain.Finding, error)

	InsertIssues(ctx context.Context, issues []domain.DataIntegrityIssue) error
	ResolveIssue(ctx context.Context, id, actor uuid.UUID, resolution string) (*domain.DataIntegrityIssue, error)
	ListIssues(ctx context.Context, f domain.IssueFilter) ([]domain.DataIntegrityIssue, error)
}

// alertRepo defines alert configuration and alert persistence.
type alertRepo interface {
	AlertConfigs(ctx context.Context) (map[domain.IssueType]domain.AlertConfig, error)
	UpsertAlert(ctx context.Context, a domain.DataIntegrityAlert) (*domain.DataIntegrityAlert, bool, error)
	AcknowledgeAlert(ctx context.Context, id, actor uuid.UUID) (*domain.DataIntegrityAlert, error)
	ListAlerts(ctx context.Context, unacknowledgedOnly bool, limit int) ([]domain.DataIntegrityAlert, error)
}

// notificationRepo persists role-targeted system notifications.
type notificationRepo interface {
	Create(ctx context.Context, n domain.SystemNotification) error
}

type notifier interface {
	Success(ctx context.Context, title, message string)
	Warning(ctx context.Context, title, message string)
	Error(ctx context.Context, title, message string)
}

// Service runs consistency checks over stored data and raises alerts.
type Service struct {
	log              *slog.Logger
	issues           issueRepo
	alerts           alertRepo
	notifications    notificationRepo
	notify           notifier
	metrics          *metrics.Metrics
	lowStockFallback decimal.Decimal
	now              func() time.Time
}

// NewService creates a new integrity service instance.
func NewService(
	logger *slog.Logger,
	issues issueRepo,
	alerts alertRepo,
	notifications notificationRepo,
	notify notifier,
	m *metrics.Metrics,
	lowStockFallback decimal.Decimal,
) *Service {
	return &Service{
		log:              logger.With("service", "integrity"),
		issues:           issues,
		alerts:           alerts,
		notifications:    notifications,
		notify:           notify,
		metrics:          m,
		lowStockFallback: lowStockFallback,
		now:              time.Now,
	}
}
