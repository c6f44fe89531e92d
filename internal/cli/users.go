package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/bizops-backend/internal/auth"
	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/internal/service/audittrail"
)

// promoteSQL raises one user to admin and returns the previous role. It
// matches nothing when the user is already an admin.
const promoteSQL = `
UPDATE users u
   SET role = 'admin', updated_at = now()
  FROM (SELECT id, role FROM users WHERE lower(email) = lower($1) FOR UPDATE) prev
 WHERE u.id = prev.id AND prev.role <> 'admin'
RETURNING u.id, prev.role`

const lookupSQL = `SELECT id, role FROM users WHERE lower(email) = lower($1)`

// UsersCmd returns the users command.
func UsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User administration that cannot go through the API",
	}

	var email string
	promote := &cobra.Command{
		Use:   "promote",
		Short: "Make a user admin by email; used to bootstrap the first admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email = strings.TrimSpace(email)
			if email == "" {
				return errors.New("--email is required")
			}
			return withCore(cmd, func(ctx context.Context, s *session) error {
				var (
					id      uuid.UUID
					oldRole string
				)
				err := s.core.Pool.QueryRow(ctx, promoteSQL, email).Scan(&id, &oldRole)
				if errors.Is(err, pgx.ErrNoRows) {
					return fmt.Errorf("no user with email %q, or already admin", email)
				}
				if err != nil {
					return fmt.Errorf("promote %s: %w", email, err)
				}

				_, err = s.core.AuditTrail.CreateAuditLog(ctx, audittrail.CreateAuditLogInput{
					Subject:     id,
					Action:      domain.AuditActionRoleChange,
					OldValues:   map[string]any{"role": oldRole},
					NewValues:   map[string]any{"role": domain.UserRoleAdmin.String()},
					PerformedBy: id,
					Metadata:    map[string]any{"source": "opsctl"},
				})
				if err != nil {
					// The role change has already been committed.
					s.logger.WarnContext(ctx, "promote: audit entry not written",
						slog.String("user_id", id.String()),
						slog.String("error", err.Error()),
					)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "user %s promoted to admin (was %s)\n", email, oldRole)
				return nil
			})
		},
	}
	promote.Flags().StringVar(&email, "email", "", "email of the user to promote")
	cmd.AddCommand(promote)
	cmd.AddCommand(tokenCmd())

	return cmd
}

// tokenCmd mints an access token for an existing user with the role they
// currently hold. Users are provisioned outside this service, so this is
// how operators and integrations obtain bearer tokens.
func tokenCmd() *cobra.Command {
	var (
		email string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a user by email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email = strings.TrimSpace(email)
			if email == "" {
				return errors.New("--email is required")
			}
			if ttl < 0 {
				return errors.New("--ttl must not be negative")
			}
			return withCore(cmd, func(ctx context.Context, s *session) error {
				var (
					id   uuid.UUID
					role string
				)
				err := s.core.Pool.QueryRow(ctx, lookupSQL, email).Scan(&id, &role)
				if errors.Is(err, pgx.ErrNoRows) {
					return fmt.Errorf("no user with email %q", email)
				}
				if err != nil {
					return fmt.Errorf("look up %s: %w", email, err)
				}

				if ttl == 0 {
					ttl = s.cfg.Auth.AccessTokenTTL
				}
				jwtManager := auth.NewJWTManager(s.cfg.Auth.JWTSecret, s.cfg.Auth.JWTIssuer, s.cfg.Auth.AccessTokenTTL)
				token, err := jwtManager.GenerateAccessTokenTTL(id, role, ttl)
				if err != nil {
					return err
				}

				s.logger.InfoContext(ctx, "access token issued",
					slog.String("user_id", id.String()),
					slog.String("role", role),
					slog.Duration("ttl", ttl),
				)
				fmt.Fprintln(cmd.OutOrStdout(), token)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the user")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default auth.access_token_ttl)")
	return cmd
}
