package middleware

import (
	"net/http"

	"lending-metrics-api/internal/infrastructure/logging"
	"lending-metrics-api/internal/infrastructure/ratelimit"

	"github.com/jonboulle/clockwork"
)

// responseWriter captures the status code and response size
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// RequestTracing assigns a request id and echoes it back. The id, client IP and
// user agent travel in the context so every log line of the request carries them.
func RequestTracing(clock clockwork.Clock) func(http.Handler) http.Handler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info := logging.RequestInfo{
				ID:        logging.ResolveRequestID(r.Header.Get(logging.RequestIDHeader)),
				Start:     clock.Now(),
				ClientIP:  ratelimit.ClientIP(r),
				UserAgent: r.UserAgent(),
			}
			ctx := logging.WithRequest(r.Context(), info)

			w.Header().Set(logging.RequestIDHeader, info.ID)
			wrapped := &responseWriter{ResponseWriter: w}

			r = r.WithContext(ctx)
			next.ServeHTTP(wrapped, r)

			if wrapped.statusCode == 0 {
				wrapped.statusCode = http.StatusOK
			}
			durationMs := float64(clock.Since(info.Start).Microseconds()) / 1e3
			if wrapped.statusCode >= http.StatusInternalServerError {
				logging.HTTP().RequestFailed(ctx, r.Method, r.URL.Path, wrapped.statusCode, nil, durationMs)
				return
			}
			logging.HTTP().RequestCompleted(ctx, r.Method, r.URL.Path, wrapped.statusCode, durationMs)
		})
	}
}
