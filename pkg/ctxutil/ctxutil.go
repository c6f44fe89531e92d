// Package ctxutil carries the caller's identity and the request id through
// context. The auth middleware and opsctl set them; services read them to
// authorize and to attribute audit entries and stock movements.
package ctxutil

import (
	"context"
	"slices"

	"github.com/google/uuid"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	userRoleKey
	requestIDKey
)

// WithActor stores the acting user and their role.
func WithActor(ctx context.Context, id uuid.UUID, role string) context.Context {
	return WithUserRole(WithUserID(ctx, id), role)
}

// WithUserID stores the user ID in the context.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx returns the acting user, or false when the caller is
// anonymous. A stored uuid.Nil counts as anonymous.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithUserRole stores the caller's role in the context.
func WithUserRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, userRoleKey, role)
}

// UserRoleFromCtx returns the caller's role, or "" if absent.
func UserRoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}

// HasRole reports whether the caller holds one of roles.
func HasRole(ctx context.Context, roles ...string) bool {
	role := UserRoleFromCtx(ctx)
	return role != "" && slices.Contains(roles, role)
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx returns the request ID, or "" if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
