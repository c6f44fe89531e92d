package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/bsm/redislock"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/bizops-backend/internal/adapter/redis"
	"github.com/heartmarshall/bizops-backend/internal/auth"
	"github.com/heartmarshall/bizops-backend/internal/config"
	"github.com/heartmarshall/bizops-backend/internal/service/integrity"
	"github.com/heartmarshall/bizops-backend/internal/transport/middleware"
	"github.com/heartmarshall/bizops-backend/internal/transport/rest"
)

// Run is the server entry point. It wires storage, Redis, services and the
// HTTP layer, starts the background workers and blocks until ctx is
// cancelled, then shuts everything down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log, os.Stderr, "server")
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	core, err := NewCore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer core.Close()

	rdb, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()
	logger.Info("redis connected", slog.String("addr", cfg.Redis.Addr))

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	guard := middleware.NewAuthGuard(
		redis.NewAttemptCounter(rdb, cfg.Auth.LockoutWindow),
		cfg.Auth.MaxFailedLogins, cfg.Auth.LockoutWindow, logger,
	)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	api := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.Server.RateLimit, cfg.Server.WriteRateLimit),
		middleware.Auth(jwtManager, guard),
		middleware.Metrics(core.Metrics),
	)

	handler := rest.NewRouter(rest.Handlers{
		Orders:     rest.NewOrderHandler(core.Orders, logger),
		Production: rest.NewProductionHandler(core.Production, logger),
		Users:      rest.NewUserHandler(core.AuditTrail, logger),
		Integrity:  rest.NewIntegrityHandler(core.Integrity, logger),
		Outbox:     rest.NewOutboxHandler(core.Outbox, logger),
		Reports:    rest.NewReportHandler(core.Reports, logger),
		Health: rest.NewHealthHandler(map[string]rest.Pinger{
			"database": rest.PingFunc(core.Gateway.ValidateConnection),
			"redis":    rest.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		}, BuildVersion()),
		Metrics: core.Metrics.Handler(),
	}, api)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		core.Outbox.Run(gctx)
		return nil
	})

	if cfg.Audit.Enabled {
		scheduler := integrity.NewScheduler(logger, core.Integrity,
			redis.NewLocker(redislock.New(rdb)), cfg.Audit.Interval, cfg.Audit.LockTTL)
		g.Go(func() error {
			scheduler.Run(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("application stopped")
	return nil
}
