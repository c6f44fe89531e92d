package order

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/internal/metrics"
)

// orderRepo defines the order persistence needed by the order service.
type orderRepo interface {
	CountInYear(ctx context.Context, year int) (int, error)
	CreateWithInvoice(ctx context.Context, o domain.Order, items []domain.OrderItem, inv domain.Invoice) (*domain.OrderWithInvoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetInvoiceByOrder(ctx context.Context, orderID uuid.UUID) (*domain.Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) (*domain.Order, error)
}

// stockLedger applies the per-item stock decrements after the atomic write.
type stockLedger interface {
	Decrement(ctx context.Context, lotID uuid.UUID, qty decimal.Decimal, ref domain.MovementReference) error
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

// Config holds order defaults.
type Config struct {
	InvoiceDueDays    int
	OutboxMaxAttempts int
}

// Service implements order creation and the order lifecycle.
type Service struct {
	log     *slog.Logger
	orders  orderRepo
	ledger  stockLedger
	outbox  outboxRepo
	notify  notifier
	metrics *metrics.Metrics
	cfg     Config
	now     func() time.Time
}

// NewService creates a new order service instance.
func NewService(
	logger *slog.Logger,
	orders orderRepo,
	ledger stockLedger,
	outbox outboxRepo,
	notify notifier,
	m *metrics.Metrics,
	cfg Config,
) *Service {
	return &Service{
		log:     logger.With("service", "order"),
		orders:  orders,
		ledger:  ledger,
		outbox:  outbox,
		notify:  notify,
		metrics: m,
		cfg:     cfg,
		now:     time.Now,
	}
}
