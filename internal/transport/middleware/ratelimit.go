package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// bucketIdleTTL is how long an untouched bucket is kept before cleanup.
const bucketIdleTTL = 10 * time.Minute

// RateLimiter is a per-client-IP token bucket limiter with separate budgets
// for reads and writes, so a burst of order or batch submissions cannot
// starve the same client's dashboards. Buckets are per process.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[bucketKey]*bucket
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

type bucketKey struct {
	ip    string
	write bool
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewRateLimiter creates a limiter that drops idle buckets every
// cleanupInterval. Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[bucketKey]*bucket),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go rl.cleanup(cleanupInterval)
	return rl
}

// Stop terminates the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Limit returns middleware allowing readsPerMinute safe requests and
// writesPerMinute mutating requests per client IP. A non-positive budget
// leaves that class unlimited. CORS preflights are never limited.
func (rl *RateLimiter) Limit(readsPerMinute, writesPerMinute int) Middleware {
	return func(next http.Handler) http.Handler {
		if readsPerMinute <= 0 && writesPerMinute <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			write := isWrite(r.Method)
			perMinute := readsPerMinute
			if write {
				perMinute = writesPerMinute
			}
			if perMinute > 0 {
				if ok, wait := rl.take(bucketKey{ip: clientIP(r), write: write}, perMinute); !ok {
					w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
					writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// take spends one token from key's bucket, refilling it first. When the
// bucket is empty it reports how long until the next token.
func (rl *RateLimiter) take(key bucketKey, perMinute int) (bool, time.Duration) {
	capacity := float64(perMinute)
	perSecond := capacity / 60

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: capacity, last: now}
		rl.buckets[key] = b
	}

	b.tokens = math.Min(capacity, b.tokens+now.Sub(b.last).Seconds()*perSecond)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	return false, time.Duration((1 - b.tokens) / perSecond * float64(time.Second))
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-bucketIdleTTL)
	for key, b := range rl.buckets {
		if b.last.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}
