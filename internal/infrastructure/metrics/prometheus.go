package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the lending metrics API
var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lending_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lending_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPResponseSizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lending_http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000},
		},
		[]string{"method", "path"},
	)

	// Read-through cache metrics
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lending_cache_operations_total",
			Help: "Total number of read-through cache operations",
		},
		[]string{"resource", "operation", "result"}, // operation: get/recheck/set/expire, result: hit/miss/success/error/skipped
	)

	LockWaitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lending_lock_wait_seconds",
			Help:    "Time spent waiting for a cache key lock",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"tier", "result"}, // tier: local/distributed, result: acquired/timeout/error
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lending_fetch_duration_seconds",
			Help:    "Duration of cache-miss recomputations",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"resource", "result"},
	)

	// External API Metrics
	ExternalAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lending_external_api_requests_total",
			Help: "Total number of external API requests",
		},
		[]string{"service", "endpoint", "status_code"},
	)

	ExternalAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lending_external_api_request_duration_seconds",
			Help:    "External API request duration in seconds",
			Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"service", "endpoint"},
	)

	ExternalAPIRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lending_external_api_retries_total",
			Help: "Total number of external API retry attempts",
		},
		[]string{"service", "endpoint", "attempt"},
	)

	// Protocol Metrics
	TotalValueLocked = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lending_total_value_locked_usd",
			Help: "Total value locked in the protocol at the last computation",
		},
		[]string{"cluster"},
	)

	CollateralRatio = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lending_collateral_ratio",
			Help: "Market-wide collateral ratio at the last computation",
		},
		[]string{"cluster"},
	)

	OraclePrices = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lending_oracle_price_usd",
			Help: "Last oracle price observed per token",
		},
		[]string{"token", "source"},
	)

	SnapshotsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lending_snapshots_total",
			Help: "Total number of metrics snapshots captured",
		},
		[]string{"cluster", "result"},
	)

	// Rate Limiting Metrics
	RateLimitRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lending_rate_limit_requests_total",
			Help: "Total number of requests processed by rate limiter",
		},
		[]string{"result"}, // result: allowed/blocked
	)

	// Application Metrics
	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lending_application_info",
			Help: "Application information",
		},
		[]string{"version", "build_time", "go_version"},
	)

	UptimeSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lending_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)

	// Streaming oracle metrics
	FallbackActivationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lending_fallback_activations_total",
			Help: "Total number of fallback activations from the price stream to REST",
		},
		[]string{"reason", "token"}, // reason: missing/stale/disconnected
	)

	WebSocketConnectionStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lending_websocket_connection_status",
			Help: "WebSocket connection status (1=connected, 0=disconnected)",
		},
		[]string{"provider"},
	)

	WebSocketReconnectionAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lending_websocket_reconnection_attempts_total",
			Help: "Total number of WebSocket reconnection attempts",
		},
		[]string{"provider"},
	)
)

// Helper functions for common metric operations

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, path string, statusCode int, duration float64, responseSize int64) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)

	if responseSize > 0 {
		HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordCacheOperation records read-through cache operation metrics
func RecordCacheOperation(resource, operation, result string) {
	CacheOperationsTotal.WithLabelValues(resource, operation, result).Inc()
}

// RecordLockWait records how long a lock tier took to grant or refuse a key
func RecordLockWait(tier, result string, seconds float64) {
	LockWaitDuration.WithLabelValues(tier, result).Observe(seconds)
}

// RecordFetch records a recomputation on cache miss
func RecordFetch(resource string, success bool, seconds float64) {
	result := "success"
	if !success {
		result = "error"
	}
	FetchDuration.WithLabelValues(resource, result).Observe(seconds)
}

// RecordExternalAPICall records external API call metrics
func RecordExternalAPICall(service, endpoint string, statusCode int, duration float64) {
	ExternalAPIRequestsTotal.WithLabelValues(service, endpoint, strconv.Itoa(statusCode)).Inc()
	ExternalAPIRequestDuration.WithLabelValues(service, endpoint).Observe(duration)
}

// RecordExternalAPIRetry records external API retry attempts
func RecordExternalAPIRetry(service, endpoint string, attempt int) {
	ExternalAPIRetries.WithLabelValues(service, endpoint, strconv.Itoa(attempt)).Inc()
}

// UpdateProtocolGauges publishes headline numbers of the last metrics computation
func UpdateProtocolGauges(cluster string, tvl, collateralRatio float64) {
	TotalValueLocked.WithLabelValues(cluster).Set(tvl)
	CollateralRatio.WithLabelValues(cluster).Set(collateralRatio)
}

// UpdateOraclePrice updates the oracle price gauge
func UpdateOraclePrice(token, source string, price float64) {
	OraclePrices.WithLabelValues(token, source).Set(price)
}

// RecordSnapshot records the outcome of one snapshot capture
func RecordSnapshot(cluster string, success bool) {
	result := "success"
	if !success {
		result = "error"
	}
	SnapshotsTotal.WithLabelValues(cluster, result).Inc()
}

// RecordRateLimitResult records rate limiting results
func RecordRateLimitResult(allowed bool) {
	result := "blocked"
	if allowed {
		result = "allowed"
	}
	RateLimitRequestsTotal.WithLabelValues(result).Inc()
}

// SetApplicationInfo sets application information
func SetApplicationInfo(version, buildTime, goVersion string) {
	ApplicationInfo.WithLabelValues(version, buildTime, goVersion).Set(1)
}

// UpdateUptime updates application uptime
func UpdateUptime(seconds float64) {
	UptimeSeconds.Set(seconds)
}

// RecordFallbackActivation records when a streamed quote is replaced by a REST lookup
func RecordFallbackActivation(reason, token string) {
	FallbackActivationsTotal.WithLabelValues(reason, token).Inc()
}

// UpdateWebSocketConnectionStatus updates WebSocket connection status
func UpdateWebSocketConnectionStatus(provider string, connected bool) {
	status := 0.0
	if connected {
		status = 1.0
	}
	WebSocketConnectionStatus.WithLabelValues(provider).Set(status)
}

// RecordWebSocketReconnectionAttempt records WebSocket reconnection attempts
func RecordWebSocketReconnectionAttempt(provider string) {
	WebSocketReconnectionAttempts.WithLabelValues(provider).Inc()
}
