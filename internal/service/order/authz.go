package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/pkg/ctxutil"
)

// requireRole returns the caller when it holds one of roles.
func requireRole(ctx context.Context, roles ...domain.UserRole) (uuid.UUID, error) {
	actor, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	if !ctxutil.HasRole(ctx, names...) {
		return uuid.Nil, domain.ErrForbidden
	}
	return actor, nil
}
