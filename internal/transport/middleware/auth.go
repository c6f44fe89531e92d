package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizops-backend/internal/auth"
	"github.com/heartmarshall/bizops-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, string, error)
}

// failureCounter is backed by Redis so lockouts hold across instances.
type failureCounter interface {
	RecordFailure(ctx context.Context, identity, origin string) (int64, error)
	Failures(ctx context.Context, identity, origin string) (int64, error)
	Reset(ctx context.Context, identity, origin string) error
}

// AuthGuard locks out a caller after too many invalid tokens from the same
// identity and origin. Counter errors never block a request.
type AuthGuard struct {
	counter     failureCounter
	maxFailures int64
	window      time.Duration
	log         *slog.Logger
}

// NewAuthGuard creates an AuthGuard. A maxFailures of zero disables it.
func NewAuthGuard(counter failureCounter, maxFailures int, window time.Duration, logger *slog.Logger) *AuthGuard {
	return &AuthGuard{
		counter:     counter,
		maxFailures: int64(maxFailures),
		window:      window,
		log:         logger.With("component", "auth_guard"),
	}
}

// Auth authenticates bearer tokens and stores the user id and role in the
// request context. Requests without a token pass through anonymously; the
// services decide what anonymous callers may do. guard may be nil.
func Auth(validator tokenValidator, guard *AuthGuard) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			identity := auth.UnverifiedSubject(token)
			if identity == "" {
				identity = "anonymous"
			}
			origin := clientIP(r)

			prior, locked := guard.check(ctx, identity, origin)
			if locked {
				w.Header().Set("Retry-After", strconv.Itoa(int(guard.window.Seconds())))
				writeError(w, http.StatusTooManyRequests, "too many failed authentication attempts")
				return
			}

			userID, role, err := validator.ValidateAccessToken(token)
			if err != nil {
				guard.fail(ctx, identity, origin)
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if prior > 0 {
				guard.reset(ctx, identity, origin)
			}

			noteUser(ctx, userID)
			ctx = ctxutil.WithActor(ctx, userID, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// check returns the current failure count and whether the caller is locked out.
func (g *AuthGuard) check(ctx context.Context, identity, origin string) (int64, bool) {
	if g == nil || g.maxFailures <= 0 {
		return 0, false
	}
	n, err := g.counter.Failures(ctx, identity, origin)
	if err != nil {
		g.log.WarnContext(ctx, "read auth failures", slog.String("error", err.Error()))
		return 0, false
	}
	return n, n >= g.maxFailures
}

func (g *AuthGuard) fail(ctx context.Context, identity, origin string) {
	if g == nil || g.maxFailures <= 0 {
		return
	}
	n, err := g.counter.RecordFailure(ctx, identity, origin)
	if err != nil {
		g.log.WarnContext(ctx, "record auth failure", slog.String("error", err.Error()))
		return
	}
	if n == g.maxFailures {
		g.log.WarnContext(ctx, "caller locked out",
			slog.String("identity", identity),
			slog.String("origin", origin),
			slog.Duration("window", g.window),
		)
	}
}

func (g *AuthGuard) reset(ctx context.Context, identity, origin string) {
	if err := g.counter.Reset(ctx, identity, origin); err != nil {
		g.log.WarnContext(ctx, "reset auth failures", slog.String("error", err.Error()))
	}
}

func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
