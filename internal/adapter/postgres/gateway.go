package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/heartmarshall/bizops-backend/internal/config"
	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/internal/metrics"
)

// Policy decides which classified failures are retried and whether a final
// failure is reported to the end user.
type Policy struct {
	// Idempotent operations retry every retryable kind. Non-idempotent
	// writes retry only failures that prove the statement never ran.
	Idempotent bool
	// Silent suppresses the user-facing error notification. Callers that
	// degrade the failure to a warning report it themselves.
	Silent bool
}

var (
	// RetryRead is the policy for reads.
	RetryRead = Policy{Idempotent: true}
	// RetryWrite is the policy for compound and dependent writes.
	RetryWrite = Policy{}
)

// Silently returns a copy of p that does not notify the user.
func (p Policy) Silently() Policy {
	p.Silent = true
	return p
}

func (p Policy) shouldRetry(kind domain.ErrorKind, retryable bool, err error) bool {
	if !retryable {
		return false
	}
	if p.Idempotent {
		return true
	}
	switch kind {
	case domain.ErrorKindRateLimit:
		return true
	case domain.ErrorKindConnection:
		return safeToRetry(err)
	}
	return false
}

type errorNotifier interface {
	Error(ctx context.Context, title, message string)
}

// Gateway is the single entry point for storage calls. Every call runs under
// a per-attempt timeout, passes through a circuit breaker and is retried with
// exponential backoff according to its Policy.
type Gateway struct {
	db       DB
	cfg      config.GatewayConfig
	breaker  *gobreaker.CircuitBreaker
	notifier errorNotifier
	metrics  *metrics.Metrics
	log      *slog.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

// NewGateway creates a Gateway over db.
func NewGateway(db DB, cfg config.GatewayConfig, logger *slog.Logger, notifier errorNotifier, m *metrics.Metrics) *Gateway {
	g := &Gateway{
		db:       db,
		cfg:      cfg,
		notifier: notifier,
		metrics:  m,
		log:      logger.With("component", "storage_gateway"),
		sleep:    sleepCtx,
	}

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	g.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "postgres",
		MaxRequests: cfg.BreakerHalfOpen,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			g.log.Warn("circuit breaker state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			g.metrics.SetBreakerState(int(to))
		},
	})

	return g
}

// DB returns the underlying database handle.
func (g *Gateway) DB() DB { return g.db }

// Querier returns the transaction in ctx, or the pool.
func (g *Gateway) Querier(ctx context.Context) Querier {
	return QuerierFromCtx(ctx, g.db)
}

// ValidateConnection pings the database through the retry loop.
func (g *Gateway) ValidateConnection(ctx context.Context) error {
	return g.ExecuteWithRetry(ctx, "validate_connection", RetryRead, func(ctx context.Context) error {
		var one int
		return g.Querier(ctx).QueryRow(ctx, "SELECT 1").Scan(&one)
	})
}

// ExecuteWithRetry runs op until it succeeds, fails with an error the policy
// does not retry, or MaxAttempts is reached. Inside a caller's transaction op
// runs once: a failed statement aborts the transaction, and the caller owns
// the retry of the whole unit. The returned error is always a
// *domain.StorageError.
func (g *Gateway) ExecuteWithRetry(ctx context.Context, label string, policy Policy, op func(ctx context.Context) error) error {
	maxAttempts := g.cfg.MaxAttempts
	if maxAttempts < 1 || InTx(ctx) {
		maxAttempts = 1
	}

	for attempt := 1; ; attempt++ {
		start := time.Now()
		err := g.attempt(ctx, op)
		g.metrics.RecordStorageAttempt(label, time.Since(start))
		if err == nil {
			g.metrics.RecordStorageOutcome(label, "ok")
			return nil
		}

		kind, retryable := Classify(err)
		g.log.WarnContext(ctx, "storage attempt failed",
			slog.String("op", label),
			slog.String("kind", kind.String()),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)

		if attempt >= maxAttempts || !policy.shouldRetry(kind, retryable, err) {
			return g.fail(ctx, label, policy, kind, retryable, attempt, err)
		}

		g.metrics.RecordStorageRetry(label, kind.String())
		if sleepErr := g.sleep(ctx, g.backoff(attempt)); sleepErr != nil {
			return g.fail(ctx, label, policy, kind, false, attempt, errors.Join(err, sleepErr))
		}
	}
}

// attempt runs op once under the call timeout and the circuit breaker.
func (g *Gateway) attempt(ctx context.Context, op func(ctx context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, g.cfg.CallTimeout)
	defer cancel()

	var opErr error
	_, cbErr := g.breaker.Execute(func() (any, error) {
		done := make(chan error, 1)
		go func() { done <- op(callCtx) }()

		select {
		case opErr = <-done:
		case <-callCtx.Done():
			opErr = fmt.Errorf("call exceeded %s: %w", g.cfg.CallTimeout, callCtx.Err())
		}
		if opErr == nil {
			return nil, nil
		}
		if callCtx.Err() != nil && ctx.Err() == nil && !errors.Is(opErr, context.DeadlineExceeded) {
			opErr = fmt.Errorf("%w: %w", context.DeadlineExceeded, opErr)
		}
		if countsAgainstBreaker(opErr) {
			return nil, opErr
		}
		return nil, nil
	})

	if errors.Is(cbErr, gobreaker.ErrOpenState) || errors.Is(cbErr, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrBreakerOpen, cbErr)
	}
	return opErr
}

// countsAgainstBreaker reports whether err indicates the database itself is
// unhealthy, as opposed to a rejected request.
func countsAgainstBreaker(err error) bool {
	kind, _ := Classify(err)
	switch kind {
	case domain.ErrorKindConnection, domain.ErrorKindTimeout, domain.ErrorKindService, domain.ErrorKindRateLimit:
		return true
	}
	return false
}

func (g *Gateway) fail(ctx context.Context, label string, policy Policy, kind domain.ErrorKind, retryable bool, attempts int, err error) error {
	serr := &domain.StorageError{
		Op:        label,
		Kind:      kind,
		Retryable: retryable,
		Attempts:  attempts,
		Err:       err,
	}

	g.log.ErrorContext(ctx, "storage operation failed",
		slog.String("op", label),
		slog.String("kind", kind.String()),
		slog.Int("attempts", attempts),
		slog.String("error", err.Error()),
	)
	g.metrics.RecordStorageOutcome(label, kind.String())

	if !policy.Silent && g.notifier != nil {
		g.notifier.Error(ctx, "Database error", kind.UserMessage())
	}
	return serr
}

// backoff returns BaseDelay × 2^(attempt-1).
func (g *Gateway) backoff(attempt int) time.Duration {
	return g.cfg.BaseDelay << (attempt - 1)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
