package middleware

import (
	"net/http"
	"strings"

	"lending-metrics-api/internal/infrastructure/logging"
)

// suspiciousPatterns son patrones comunes de ataques en path o query
var suspiciousPatterns = []string{
	"../",
	"<script",
	"select ",
	"union ",
	"drop ",
	"exec(",
	"eval(",
}

// LoggingMiddleware registra el request recibido y marca requests sospechosos.
// Complementa RequestTracing, que registra la finalización.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		logging.HTTP().RequestReceived(ctx, r.Method, r.URL.Path)
		logging.Debug(ctx, "Processing HTTP request", logging.Fields{
			"headers": extractImportantHeaders(r),
			"query":   r.URL.RawQuery,
		})

		if isSuspiciousRequest(r) {
			logging.Security().InvalidRequest(ctx, "unusual_request_pattern")
		}

		next.ServeHTTP(w, r)
	})
}

// extractImportantHeaders evita registrar headers sensibles
func extractImportantHeaders(r *http.Request) map[string]string {
	headers := make(map[string]string)
	for _, header := range []string{"Accept", "Accept-Encoding", "Cache-Control", "X-Forwarded-For", "X-Real-IP"} {
		if value := r.Header.Get(header); value != "" {
			headers[header] = value
		}
	}
	return headers
}

func isSuspiciousRequest(r *http.Request) bool {
	target := strings.ToLower(r.URL.Path + "?" + r.URL.RawQuery)
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(target, pattern) {
			return true
		}
	}
	return false
}
