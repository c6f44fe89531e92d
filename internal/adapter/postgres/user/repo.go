// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/bizops-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bizops-backend/internal/domain"
)

var userColumns = []string{"id", "email", "name", "role", "designation", "created_at", "updated_at"}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	gw *postgres.Gateway
}

// New creates a new user repository.
func New(gw *postgres.Gateway) *Repo {
	return &Repo{gw: gw}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query, args, err := postgres.Builder.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("user.GetByID: %w", err)
	}

	var u domain.User
	err = r.gw.ExecuteWithRetry(ctx, "user.get", postgres.RetryRead, func(ctx context.Context) error {
		return postgres.Scan.Get(ctx, r.gw.Querier(ctx), &u, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CountByRole returns the number of users holding role.
func (r *Repo) CountByRole(ctx context.Context, role domain.UserRole) (int, error) {
	query, args, err := postgres.Builder.
		Select("COUNT(*)").
		From("users").
		Where(sq.Eq{"role": role}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("user.CountByRole: %w", err)
	}

	var n int
	err = r.gw.ExecuteWithRetry(ctx, "user.count_by_role", postgres.RetryRead, func(ctx context.Context) error {
		return r.gw.Querier(ctx).QueryRow(ctx, query, args...).Scan(&n)
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// UpdateRole sets the user's role and returns the updated user.
func (r *Repo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
	return r.update(ctx, "user.update_role", id, "role", role)
}

// UpdateDesignation sets or clears the user's designation.
func (r *Repo) UpdateDesignation(ctx context.Context, id uuid.UUID, designation *string) (*domain.User, error) {
	return r.update(ctx, "user.update_designation", id, "designation", designation)
}

func (r *Repo) update(ctx context.Context, label string, id uuid.UUID, column string, value any) (*domain.User, error) {
	query, args, err := postgres.Builder.
		Update("users").
		Set(column, value).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}

	var u domain.User
	err = r.gw.ExecuteWithRetry(ctx, label, postgres.RetryWrite, func(ctx context.Context) error {
		return postgres.Scan.Get(ctx, r.gw.Querier(ctx), &u, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}
