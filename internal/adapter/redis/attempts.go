package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const attemptKeyPrefix = "auth_failures"

// counterStore is the subset of the Redis client used by AttemptCounter.
type counterStore interface {
	TxPipelined(ctx context.Context, fn func(goredis.Pipeliner) error) ([]goredis.Cmder, error)
	Get(ctx context.Context, key string) *goredis.StringCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

// AttemptCounter counts failed authentication attempts per identity and
// origin. Each counter expires window after its first failure.
type AttemptCounter struct {
	store  counterStore
	window time.Duration
}

// NewAttemptCounter creates an AttemptCounter.
func NewAttemptCounter(store counterStore, window time.Duration) *AttemptCounter {
	return &AttemptCounter{store: store, window: window}
}

func attemptKey(identity, origin string) string {
	return fmt.Sprintf("%s:%s:%s", attemptKeyPrefix, identity, origin)
}

// RecordFailure increments the counter and returns the new count. INCR and
// EXPIRE NX run in one MULTI/EXEC, so a counter never outlives its window
// and later failures do not extend it.
func (c *AttemptCounter) RecordFailure(ctx context.Context, identity, origin string) (int64, error) {
	key := attemptKey(identity, origin)

	var incr *goredis.IntCmd
	_, err := c.store.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, c.window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	return incr.Val(), nil
}

// Failures returns the current count, or 0 when no counter exists.
func (c *AttemptCounter) Failures(ctx context.Context, identity, origin string) (int64, error) {
	key := attemptKey(identity, origin)

	n, err := c.store.Get(ctx, key).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", key, err)
	}
	return n, nil
}

// Reset clears the counter after a successful authentication.
func (c *AttemptCounter) Reset(ctx context.Context, identity, origin string) error {
	key := attemptKey(identity, origin)
	if err := c.store.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}
