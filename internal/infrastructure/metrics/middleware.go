package metrics

import (
	"net/http"
	"strings"
	"time"
)

// HTTPMetricsMiddleware collects HTTP metrics for Prometheus
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		// Wrap response writer to capture metrics
		wrapped := &responseWriterMetrics{
			ResponseWriter: w,
			statusCode:     200, // Default to 200 if WriteHeader is not called
			written:        0,
		}

		// Extract normalized path (to avoid high cardinality)
		normalizedPath := normalizePath(r.URL.Path)
		method := r.Method

		// Process request
		next.ServeHTTP(wrapped, r)

		// Calculate metrics
		duration := time.Since(startTime).Seconds()
		statusCode := wrapped.statusCode
		responseSize := wrapped.written

		RecordHTTPRequest(method, normalizedPath, statusCode, duration, responseSize)
	})
}

// responseWriterMetrics wraps http.ResponseWriter to capture metrics
type responseWriterMetrics struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

// WriteHeader captures the status code
func (rw *responseWriterMetrics) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Write captures the response size
func (rw *responseWriterMetrics) Write(b []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = 200
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

var knownAPIRoutes = map[string]bool{
	"/api/v1/metrics":                  true,
	"/api/v1/loans":                    true,
	"/api/v1/loans/distribution":       true,
	"/api/v1/staking":                  true,
	"/api/v1/staking/hbb/users":        true,
	"/api/v1/staking/usdh/users":       true,
	"/api/v1/circulating-supply":       true,
	"/api/v1/circulating-supply-value": true,
	"/api/v1/history":                  true,
	"/api/v1/config":                   true,
	"/api/v1/maintenance-mode":         true,
	"/api/v1/borrowing-version":        true,
}

// normalizePath normalizes URL paths to avoid high cardinality in metrics
// This is important to prevent metrics explosion from dynamic paths
func normalizePath(path string) string {
	// Handle root path
	if path == "/" {
		return "/"
	}

	// Remove trailing slash
	path = strings.TrimSuffix(path, "/")

	// Handle common API patterns
	switch {
	case path == "/health":
		return "/health"
	case path == "/ready":
		return "/ready"
	case path == "/version":
		return "/version"
	case path == "/metrics/prometheus":
		return "/metrics/prometheus"
	case strings.HasPrefix(path, "/api/v1/owners/") && strings.HasSuffix(path, "/loans"):
		// owner keys would explode cardinality
		return "/api/v1/owners/{pubkey}/loans"
	case knownAPIRoutes[path]:
		return path
	case strings.HasPrefix(path, "/swagger/"):
		return "/swagger/*"
	case strings.HasPrefix(path, "/api/v1/"):
		return "/api/v1/*"
	case strings.HasPrefix(path, "/api/"):
		return "/api/*"
	default:
		// For unknown paths, use a generic label
		return "/unknown"
	}
}
