package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/bizops-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/bizops-backend/internal/adapter/postgres/audit"
	batchrepo "github.com/heartmarshall/bizops-backend/internal/adapter/postgres/batch"
	integrityrepo "github.com/heartmarshall/bizops-backend/internal/adapter/postgres/integrity"
	"github.com/heartmarshall/bizops-backend/internal/adapter/postgres/inventory"
	"github.com/heartmarshall/bizops-backend/internal/adapter/postgres/notification"
	orderrepo "github.com/heartmarshall/bizops-backend/internal/adapter/postgres/order"
	outboxrepo "github.com/heartmarshall/bizops-backend/internal/adapter/postgres/outbox"
	reportrepo "github.com/heartmarshall/bizops-backend/internal/adapter/postgres/report"
	userrepo "github.com/heartmarshall/bizops-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/bizops-backend/internal/config"
	"github.com/heartmarshall/bizops-backend/internal/metrics"
	"github.com/heartmarshall/bizops-backend/internal/notify"
	"github.com/heartmarshall/bizops-backend/internal/service/audittrail"
	"github.com/heartmarshall/bizops-backend/internal/service/integrity"
	"github.com/heartmarshall/bizops-backend/internal/service/order"
	"github.com/heartmarshall/bizops-backend/internal/service/outbox"
	"github.com/heartmarshall/bizops-backend/internal/service/production"
	"github.com/heartmarshall/bizops-backend/internal/service/report"
)

// Core holds the storage stack and the services built on it. The server
// and the operator CLI share it.
type Core struct {
	Pool    *pgxpool.Pool
	Gateway *postgres.Gateway
	Metrics *metrics.Metrics

	Orders     *order.Service
	Production *production.Service
	AuditTrail *audittrail.Service
	Integrity  *integrity.Service
	Outbox     *outbox.Processor
	Reports    *report.Service
}

// NewCore connects to PostgreSQL and wires repositories into services.
func NewCore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Core, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("database connected", slog.Int("max_conns", int(cfg.Database.MaxConns)))

	m := metrics.New()
	notifier := notify.New(logger)

	gw := postgres.NewGateway(pool, cfg.Gateway, logger, notifier, m)
	txm := postgres.NewTxManager(pool)

	ledger := inventory.New(gw, txm)
	outboxRepo := outboxrepo.New(gw)
	integrityRepo := integrityrepo.New(gw, txm)

	return &Core{
		Pool:    pool,
		Gateway: gw,
		Metrics: m,

		Orders: order.NewService(logger, orderrepo.New(gw), ledger, outboxRepo, notifier, m, order.Config{
			InvoiceDueDays:    cfg.Orders.InvoiceDueDays,
			OutboxMaxAttempts: cfg.Outbox.MaxAttempts,
		}),
		Production: production.NewService(logger, batchrepo.New(gw), ledger, outboxRepo, notifier, m, cfg.Outbox.MaxAttempts),
		AuditTrail: audittrail.NewService(logger, auditrepo.New(gw), userrepo.New(gw), txm, notifier, audittrail.RoleGuard{
			MaxChanges: cfg.RoleGuard.MaxChanges,
			Window:     cfg.RoleGuard.Window,
		}),
		Integrity: integrity.NewService(logger, integrityRepo, integrityRepo, notification.New(gw), notifier, m,
			decimal.NewFromFloat(cfg.Audit.LowStockFallback)),
		Outbox:  outbox.NewProcessor(logger, outboxRepo, ledger, m, cfg.Outbox.BatchSize, cfg.Outbox.Interval),
		Reports: report.NewService(logger, reportrepo.New(gw), ledger),
	}, nil
}

// Close releases the database pool.
func (c *Core) Close() {
	c.Pool.Close()
}
