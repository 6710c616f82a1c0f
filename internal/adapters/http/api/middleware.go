package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/okian/rexbot/pkg/metrics"
)

// MetricsMiddleware wraps an ops handler to record request metrics.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		metrics.RecordOpsRequest(endpoint, r.Method, strconv.Itoa(wrapped.statusCode))
		metrics.RecordOpsRequestDuration(endpoint, r.Method, float64(time.Since(start).Milliseconds()))
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
