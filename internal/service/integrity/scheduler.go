package integrity

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/heartmarshall/bizops-backend/internal/domain"
)

// LockKey is the distributed lock taken around a scheduled run.
const LockKey = "integrity:run"

// locker hands out a cross-instance lock. It returns an error wrapping
// domain.ErrConflict when another instance holds the key.
type locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error)
}

// Scheduler runs the full audit periodically. Only the instance holding
// the lock runs a given tick.
type Scheduler struct {
	log      *slog.Logger
	svc      *Service
	locker   locker
	interval time.Duration
	lockTTL  time.Duration
}

// NewScheduler creates a scheduler for svc.
func NewScheduler(logger *slog.Logger, svc *Service, l locker, interval, lockTTL time.Duration) *Scheduler {
	return &Scheduler{
		log:      logger.With("component", "integrity_scheduler"),
		svc:      svc,
		locker:   l,
		interval: interval,
		lockTTL:  lockTTL,
	}
}

// Run ticks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.InfoContext(ctx, "integrity scheduler started", slog.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.log.InfoContext(ctx, "integrity scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs one audit if the lock can be taken. It reports whether it ran.
func (s *Scheduler) tick(ctx context.Context) bool {
	release, err := s.locker.Obtain(ctx, LockKey, s.lockTTL)
	if errors.Is(err, domain.ErrConflict) {
		s.log.DebugContext(ctx, "integrity run skipped, lock held elsewhere")
		return false
	}
	if err != nil {
		s.log.WarnContext(ctx, "integrity run skipped, lock unavailable", slog.String("error", err.Error()))
		return false
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.log.WarnContext(ctx, "release integrity lock", slog.String("error", err.Error()))
		}
	}()

	if _, err := s.svc.run(ctx, TriggerScheduled, s.svc.allChecks()); err != nil {
		s.log.ErrorContext(ctx, "scheduled integrity run failed", slog.String("error", err.Error()))
	}
	return true
}
