package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"

	"github.com/heartmarshall/bizops-backend/internal/domain"
)

// ErrLockHeld is returned by Locker.Obtain when another holder owns the key.
var ErrLockHeld = fmt.Errorf("lock held by another instance: %w", domain.ErrConflict)

// Locker hands out short-lived distributed locks.
type Locker struct {
	client *redislock.Client
}

// NewLocker creates a Locker over a redislock client.
func NewLocker(client *redislock.Client) *Locker {
	return &Locker{client: client}
}

// Obtain takes the lock for key without waiting. The returned release func
// frees it early; otherwise it expires after ttl.
func (l *Locker) Obtain(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrLockHeld
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}

	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return fmt.Errorf("release lock %s: %w", key, err)
		}
		return nil
	}, nil
}
