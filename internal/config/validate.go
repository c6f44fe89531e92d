package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.MaxFailedLogins <= 0 {
		return fmt.Errorf("auth.max_failed_logins must be > 0 (got %d)", c.Auth.MaxFailedLogins)
	}

	if err := c.Gateway.validate(); err != nil {
		return fmt.Errorf("gateway: %w", err)
	}

	if c.Audit.Enabled && c.Audit.Interval <= 0 {
		return fmt.Errorf("audit.interval must be > 0 when the audit is enabled")
	}
	if c.Audit.LowStockFallback < 0 {
		return fmt.Errorf("audit.low_stock_fallback must be >= 0 (got %v)", c.Audit.LowStockFallback)
	}

	if c.Orders.InvoiceDueDays < 0 {
		return fmt.Errorf("orders.invoice_due_days must be >= 0 (got %d)", c.Orders.InvoiceDueDays)
	}

	if c.RoleGuard.MaxChanges <= 0 {
		return fmt.Errorf("role_guard.max_changes must be > 0 (got %d)", c.RoleGuard.MaxChanges)
	}
	if c.RoleGuard.Window <= 0 {
		return fmt.Errorf("role_guard.window must be > 0")
	}

	if c.Outbox.BatchSize <= 0 || c.Outbox.BatchSize > 1000 {
		return fmt.Errorf("outbox.batch_size must be in 1..1000 (got %d)", c.Outbox.BatchSize)
	}
	if c.Outbox.MaxAttempts <= 0 {
		return fmt.Errorf("outbox.max_attempts must be > 0 (got %d)", c.Outbox.MaxAttempts)
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (g *GatewayConfig) validate() error {
	if g.CallTimeout <= 0 {
		return fmt.Errorf("call_timeout must be > 0")
	}
	if g.MaxAttempts < 1 || g.MaxAttempts > 10 {
		return fmt.Errorf("max_attempts must be in 1..10 (got %d)", g.MaxAttempts)
	}
	if g.BaseDelay < 0 {
		return fmt.Errorf("base_delay must be >= 0")
	}
	if g.BreakerFailures == 0 {
		return fmt.Errorf("breaker_failures must be > 0")
	}
	return nil
}
