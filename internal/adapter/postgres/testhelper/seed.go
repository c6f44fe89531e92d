package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/bizops-backend/internal/domain"
)

func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser inserts a user holding role.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:        uuid.New(),
		Email:     "user-" + suffix + "@example.com",
		Name:      "Test User " + suffix,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, name, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Name, string(user.Role), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return user
}

// SeedLot inserts a material intake record with qty remaining and returns its id.
func SeedLot(t *testing.T, pool *pgxpool.Pool, qty, minimum decimal.Decimal) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO material_intake_records
		   (id, material_name, original_quantity, cost_per_unit, remaining_quantity, minimum_stock_level)
		 VALUES ($1, $2, $3, 1, $3, $4)`,
		id, "material-"+uniqueSuffix(), qty, minimum,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLot: %v", err)
	}
	return id
}
