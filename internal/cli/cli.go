// Package cli implements the opsctl subcommands.
package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/bizops-backend/internal/app"
	"github.com/heartmarshall/bizops-backend/internal/config"
	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/pkg/ctxutil"
)

// session is what a subcommand gets once configuration is loaded and the
// database is reachable.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	core   *app.Core
}

// withCore loads configuration, connects and runs fn, closing the core
// afterwards. SIGINT cancels the context.
func withCore(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath(cmd))
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log, cmd.ErrOrStderr(), "opsctl")

	core, err := app.NewCore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer core.Close()

	return fn(ctx, &session{cfg: cfg, logger: logger, core: core})
}

// configPath returns the root --config flag, or "" when the command runs
// detached from the root (tests) or the flag was not given.
func configPath(cmd *cobra.Command) string {
	if f := cmd.Flag("config"); f != nil {
		return f.Value.String()
	}
	return ""
}

// asOperator marks ctx as acting for actor with the admin role, the way
// the auth middleware would for an API caller.
func asOperator(ctx context.Context, actor uuid.UUID) context.Context {
	return ctxutil.WithActor(ctx, actor, domain.UserRoleAdmin.String())
}

func parseActor(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, domain.NewValidationError("actor", "must be a user UUID")
	}
	return id, nil
}
