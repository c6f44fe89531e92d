package production

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/internal/metrics"
)

// batchRepo defines the batch persistence needed by the production service.
type batchRepo interface {
	ValidateInventory(ctx context.Context, inputs []domain.BatchInput) (*domain.InventoryValidation, error)
	CreateAtomic(ctx context.Context, b domain.ProductionBatch, inputs []domain.BatchInput) (*domain.BatchWithInputs, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProductionBatch, error)
	Inputs(ctx context.Context, batchID uuid.UUID) ([]domain.BatchInput, error)
	RolledBack(ctx context.Context, batchID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.BatchStatus) (*domain.ProductionBatch, error)
}

// stockLedger reads and restores stock lots.
type stockLedger interface {
	CheckStock(ctx context.Context, lotID uuid.UUID, requested decimal.Decimal) (domain.StockCheck, error)
	Increment(ctx context.Context, lotID uuid.UUID, qty decimal.Decimal, ref domain.MovementReference) error
}

// outboxRepo queues dependent writes that failed for a background retry.
type outboxRepo interface {
	Enqueue(ctx context.Context, e domain.OutboxEntry) error
}

type notifier interface {
	Success(ctx context.Context, title, message string)
	Warning(ctx context.Context, title, message string)
	Error(ctx context.Context, title, message string)
}

// Service implements production batch creation, rollback and lifecycle.
type Service struct {
	log               *slog.Logger
	batches           batchRepo
	ledger            stockLedger
	outbox            outboxRepo
	notify            notifier
	metrics           *metrics.Metrics
	outboxMaxAttempts int
	now               func() time.Time
}

// NewService creates a new production service instance.
func NewService(
	logger *slog.Logger,
	batches batchRepo,
	ledger stockLedger,
	outbox outboxRepo,
	notify notifier,
	m *metrics.Metrics,
	outboxMaxAttempts int,
) *Service {
	return &Service{
		log:               logger.With("service", "production"),
		batches:           batches,
		ledger:            ledger,
		outbox:            outbox,
		notify:            notify,
		metrics:           m,
		outboxMaxAttempts: outboxMaxAttempts,
		now:               time.Now,
	}
}
