package middleware

import (
	"net/http"
	"time"

	"github.com/heartmarshall/bizops-backend/internal/metrics"
)

// Metrics records request counts and latency by route pattern. It must wrap
// the ServeMux directly so the pattern the mux sets is visible here.
// Requests that matched no route are recorded as "unmatched".
func Metrics(m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			pattern := r.Pattern
			if pattern == "" {
				pattern = "unmatched"
			}
			m.RecordHTTPRequest(r.Method, pattern, sw.status, time.Since(start))
		})
	}
}
