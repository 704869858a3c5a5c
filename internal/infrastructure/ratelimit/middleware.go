package ratelimit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"lending-metrics-api/internal/infrastructure/config"
	"lending-metrics-api/internal/infrastructure/logging"
	"lending-metrics-api/internal/infrastructure/metrics"

	"github.com/jonboulle/clockwork"
)

// RateLimitMiddleware limits requests per client IP
type RateLimitMiddleware struct {
	limiter   *RateLimiterCollection
	skipPaths map[string]bool
	enabled   bool
}

// NewRateLimitMiddleware builds the middleware from configuration. Health and
// scrape endpoints are never limited.
func NewRateLimitMiddleware(cfg config.RateLimitConfig, clock clockwork.Clock) *RateLimitMiddleware {
	rlm := &RateLimitMiddleware{
		skipPaths: map[string]bool{
			"/health":             true,
			"/version":            true,
			"/metrics/prometheus": true,
		},
		enabled: cfg.Enabled,
	}
	if cfg.Enabled {
		rlm.limiter = NewRateLimiterCollection(cfg.Capacity, cfg.RefillRate, clock)
	}
	return rlm
}

// Handler returns the HTTP middleware handler
func (rlm *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rlm.enabled || rlm.skipPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		clientID := ClientIP(r)
		allowed := rlm.limiter.Allow(clientID)
		metrics.RecordRateLimitResult(allowed)

		if !allowed {
			logging.Security().RateLimitExceeded(r.Context(), r.URL.Path)
			writeRateLimitError(w)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(rlm.limiter.Tokens(clientID)))
		next.ServeHTTP(w, r)
	})
}

// ClientIP returns the first forwarded address, falling back to the peer address without port
func ClientIP(r *http.Request) string {
	if xForwardedFor := r.Header.Get("X-Forwarded-For"); xForwardedFor != "" {
		first, _, _ := strings.Cut(xForwardedFor, ",")
		return strings.TrimSpace(first)
	}
	if xRealIP := r.Header.Get("X-Real-IP"); xRealIP != "" {
		return xRealIP
	}

	remoteAddr := r.RemoteAddr
	if idx := strings.LastIndex(remoteAddr, ":"); idx != -1 {
		return remoteAddr[:idx]
	}
	return remoteAddr
}

func writeRateLimitError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusTooManyRequests)

	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   "RATE_LIMIT_EXCEEDED",
		"message": "Rate limit exceeded. Please slow down your requests.",
		"code":    strconv.Itoa(http.StatusTooManyRequests),
	})
}
