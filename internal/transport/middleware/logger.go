package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizops-backend/pkg/ctxutil"
)

type accessKey struct{}

// accessRecord collects request facts discovered further down the chain.
// Auth runs inside Logger, so it reports the caller here instead of through
// the request context, which Logger never sees again.
type accessRecord struct {
	userID uuid.UUID
}

// noteUser records the authenticated caller for the access log, if a
// Logger is installed.
func noteUser(ctx context.Context, id uuid.UUID) {
	if rec, ok := ctx.Value(accessKey{}).(*accessRecord); ok {
		rec.userID = id
	}
}

// Logger writes one access log line per request: 5xx at error level, 4xx
// at warn, everything else at info.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &accessRecord{}
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), accessKey{}, rec)))

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int("bytes", sw.bytes),
				slog.Duration("duration", time.Since(start)),
				slog.String("client_ip", clientIP(r)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			if rec.userID != uuid.Nil {
				attrs = append(attrs, slog.String("user_id", rec.userID.String()))
			}

			level := slog.LevelInfo
			switch {
			case sw.status >= 500:
				level = slog.LevelError
			case sw.status >= 400:
				level = slog.LevelWarn
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}
