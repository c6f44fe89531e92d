package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	CORS      CORSConfig      `yaml:"cors"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Gateway   GatewayConfig   `yaml:"gateway"`
	Audit     AuditConfig     `yaml:"audit"`
	Orders    OrdersConfig    `yaml:"orders"`
	RoleGuard RoleGuardConfig `yaml:"role_guard"`
	Outbox    OutboxConfig    `yaml:"outbox"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RateLimit       int           `yaml:"rate_limit"       env:"SERVER_RATE_LIMIT"       env-default:"600"`
	WriteRateLimit  int           `yaml:"write_rate_limit" env:"SERVER_WRITE_RATE_LIMIT" env-default:"120"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"     env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
}

// AuthConfig holds bearer-token and login-lockout settings.
type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"         env:"AUTH_JWT_SECRET"         env-required:"true"`
	JWTIssuer       string        `yaml:"jwt_issuer"         env:"AUTH_JWT_ISSUER"         env-default:"bizops"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"   env:"AUTH_ACCESS_TOKEN_TTL"   env-default:"15m"`
	MaxFailedLogins int           `yaml:"max_failed_logins"  env:"AUTH_MAX_FAILED_LOGINS"  env-default:"5"`
	LockoutWindow   time.Duration `yaml:"lockout_window"     env:"AUTH_LOCKOUT_WINDOW"     env-default:"15m"`
}

// GatewayConfig controls the storage gateway retry loop and circuit breaker.
type GatewayConfig struct {
	CallTimeout     time.Duration `yaml:"call_timeout"       env:"GATEWAY_CALL_TIMEOUT"       env-default:"10s"`
	MaxAttempts     int           `yaml:"max_attempts"       env:"GATEWAY_MAX_ATTEMPTS"       env-default:"3"`
	BaseDelay       time.Duration `yaml:"base_delay"         env:"GATEWAY_BASE_DELAY"         env-default:"500ms"`
	BreakerFailures uint32        `yaml:"breaker_failures"   env:"GATEWAY_BREAKER_FAILURES"   env-default:"5"`
	BreakerTimeout  time.Duration `yaml:"breaker_timeout"    env:"GATEWAY_BREAKER_TIMEOUT"    env-default:"30s"`
	BreakerHalfOpen uint32        `yaml:"breaker_half_open"  env:"GATEWAY_BREAKER_HALF_OPEN"  env-default:"1"`
}

// AuditConfig controls the scheduled data integrity audit.
type AuditConfig struct {
	Enabled          bool          `yaml:"enabled"            env:"AUDIT_ENABLED"            env-default:"true"`
	Interval         time.Duration `yaml:"interval"           env:"AUDIT_INTERVAL"           env-default:"1h"`
	LockTTL          time.Duration `yaml:"lock_ttl"           env:"AUDIT_LOCK_TTL"           env-default:"10m"`
	LowStockFallback float64       `yaml:"low_stock_fallback" env:"AUDIT_LOW_STOCK_FALLBACK" env-default:"10"`
}

// OrdersConfig holds order and invoice defaults.
type OrdersConfig struct {
	InvoiceDueDays int `yaml:"invoice_due_days" env:"ORDERS_INVOICE_DUE_DAYS" env-default:"30"`
}

// RoleGuardConfig limits how often one user's role may change.
type RoleGuardConfig struct {
	MaxChanges int           `yaml:"max_changes" env:"ROLE_GUARD_MAX_CHANGES" env-default:"3"`
	Window     time.Duration `yaml:"window"      env:"ROLE_GUARD_WINDOW"      env-default:"24h"`
}

// OutboxConfig controls the dependent-write retry worker.
type OutboxConfig struct {
	BatchSize   int           `yaml:"batch_size"   env:"OUTBOX_BATCH_SIZE"   env-default:"50"`
	Interval    time.Duration `yaml:"interval"     env:"OUTBOX_INTERVAL"     env-default:"30s"`
	MaxAttempts int           `yaml:"max_attempts" env:"OUTBOX_MAX_ATTEMPTS" env-default:"5"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
