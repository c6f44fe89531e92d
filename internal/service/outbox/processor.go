// Package outbox replays dependent writes that failed during a request.
// Entries are claimed in batches, applied to the stock ledger and marked
// done, or returned to pending until their attempt budget runs out.
package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/internal/metrics"
)

type outboxRepo interface {
	ClaimBatch(ctx context.Context, limit int) ([]domain.OutboxEntry, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
	MarkAttemptFailed(ctx context.Context, id uuid.UUID, reason string) error
	RetryAllFailed(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (domain.OutboxStats, error)
}

type stockLedger interface {
	Decrement(ctx context.Context, lotID uuid.UUID, qty decimal.Decimal, ref domain.MovementReference) error
	Increment(ctx context.Context, lotID uuid.UUID, qty decimal.Decimal, ref domain.MovementReference) error
}

// DrainResult summarises one Drain call.
type DrainResult struct {
	Claimed int `json:"claimed"`
	Done    int `json:"done"`
	Failed  int `json:"failed"`
}

// Processor applies claimed outbox entries to the stock ledger.
type Processor struct {
	log       *slog.Logger
	repo      outboxRepo
	ledger    stockLedger
	metrics   *metrics.Metrics
	batchSize int
	interval  time.Duration
}

// NewProcessor creates a Processor.
func NewProcessor(logger *slog.Logger, repo outboxRepo, ledger stockLedger, m *metrics.Metrics, batchSize int, interval time.Duration) *Processor {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Processor{
		log:       logger.With("component", "outbox_processor"),
		repo:      repo,
		ledger:    ledger,
		metrics:   m,
		batchSize: batchSize,
		interval:  interval,
	}
}

// Drain claims one batch and applies every entry in it. A failing entry
// does not stop the rest.
func (p *Processor) Drain(ctx context.Context) (DrainResult, error) {
	entries, err := p.repo.ClaimBatch(ctx, p.batchSize)
	if err != nil {
		return DrainResult{}, fmt.Errorf("outbox.Drain: claim: %w", err)
	}

	res := DrainResult{Claimed: len(entries)}
	for _, e := range entries {
		if err := p.apply(ctx, e); err != nil {
			res.Failed++
			p.metrics.RecordOutbox(string(e.Kind), "failed")
			p.log.WarnContext(ctx, "outbox entry failed",
				slog.String("entry_id", e.ID.String()),
				slog.String("kind", string(e.Kind)),
				slog.Int("attempt", e.Attempts+1),
				slog.Int("max_attempts", e.MaxAttempts),
				slog.String("error", err.Error()),
			)
			if markErr := p.repo.MarkAttemptFailed(ctx, e.ID, err.Error()); markErr != nil {
				p.log.ErrorContext(ctx, "record outbox failure",
					slog.String("entry_id", e.ID.String()),
					slog.String("error", markErr.Error()),
				)
			}
			continue
		}

		if err := p.repo.MarkDone(ctx, e.ID); err != nil {
			// The ledger change is applied; the entry stays processing and
			// needs manual attention rather than a second replay.
			p.log.ErrorContext(ctx, "mark outbox entry done",
				slog.String("entry_id", e.ID.String()),
				slog.String("error", err.Error()),
			)
		}
		res.Done++
		p.metrics.RecordOutbox(string(e.Kind), "done")
	}

	if res.Claimed > 0 {
		p.log.InfoContext(ctx, "outbox drained",
			slog.Int("claimed", res.Claimed),
			slog.Int("done", res.Done),
			slog.Int("failed", res.Failed),
		)
	}
	return res, nil
}

func (p *Processor) apply(ctx context.Context, e domain.OutboxEntry) error {
	switch e.Kind {
	case domain.OutboxInventoryDecrement:
		return p.ledger.Decrement(ctx, e.LotID, e.Quantity, e.Reference)
	case domain.OutboxInventoryIncrement:
		return p.ledger.Increment(ctx, e.LotID, e.Quantity, e.Reference)
	default:
		return fmt.Errorf("unknown outbox kind %q", e.Kind)
	}
}

// RetryFailed returns every failed entry to pending.
func (p *Processor) RetryFailed(ctx context.Context) (int64, error) {
	n, err := p.repo.RetryAllFailed(ctx)
	if err != nil {
		return 0, fmt.Errorf("outbox.RetryFailed: %w", err)
	}
	p.log.InfoContext(ctx, "failed outbox entries reset", slog.Int64("count", n))
	return n, nil
}

// Stats returns entry counts by status.
func (p *Processor) Stats(ctx context.Context) (domain.OutboxStats, error) {
	stats, err := p.repo.Stats(ctx)
	if err != nil {
		return domain.OutboxStats{}, fmt.Errorf("outbox.Stats: %w", err)
	}
	return stats, nil
}

// Run drains on every tick until ctx is cancelled.
func (p *Processor) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.InfoContext(ctx, "outbox processor started", slog.Duration("interval", p.interval))
	for {
		select {
		case <-ctx.Done():
			p.log.InfoContext(ctx, "outbox processor stopped")
			return
		case <-ticker.C:
			if _, err := p.Drain(ctx); err != nil {
				p.log.ErrorContext(ctx, "outbox drain failed", slog.String("error", err.Error()))
			}
		}
	}
}
