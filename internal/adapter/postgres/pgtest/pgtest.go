// Package pgtest builds storage gateways over pgxmock pools for repository
// unit tests.
package pgtest

import (
	"io"
	"log/slog"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/require"

	postgres "github.com/heartmarshall/bizops-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bizops-backend/internal/config"
)

// Option adjusts the gateway configuration used by NewGateway.
type Option func(c *config.GatewayConfig)

// WithAttempts sets the maximum number of attempts per storage call.
func WithAttempts(n int) Option {
	return func(c *config.GatewayConfig) { c.MaxAttempts = n }
}

// NewGateway returns a Gateway over a fresh pgxmock pool, a TxManager over the
// same pool, and the mock. Retries are disabled and backoff is zero unless
// overridden. Unmet expectations fail the test on cleanup.
func NewGateway(t *testing.T, opts ...Option) (*postgres.Gateway, *postgres.TxManager, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	cfg := config.GatewayConfig{
		CallTimeout:     5 * time.Second,
		MaxAttempts:     1,
		BreakerFailures: 1000,
		BreakerTimeout:  time.Minute,
		BreakerHalfOpen: 1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return postgres.NewGateway(mock, cfg, logger, nil, nil), postgres.NewTxManager(mock), mock
}
