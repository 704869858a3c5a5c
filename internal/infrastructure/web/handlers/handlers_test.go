package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"lending-metrics-api/internal/application/services"
	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/finance"
	"lending-metrics-api/internal/domain/interfaces"
	"lending-metrics-api/internal/infrastructure/repositories/snapshot"

	"github.com/stretchr/testify/assert"
)

func TestCacheControl(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
		want string
	}{
		{name: "remaining ttl", ttl: 30 * time.Second, want: "public, max-age=30, stale-if-error=300"},
		{name: "fractional seconds are floored", ttl: 29900 * time.Millisecond, want: "public, max-age=29, stale-if-error=300"},
		{name: "expired", ttl: -5 * time.Second, want: "public, max-age=0, stale-if-error=300"},
		{name: "no expiry uses fallback", ttl: interfaces.NoExpiry, want: "public, max-age=60, stale-if-error=300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CacheControl(tt.ttl, 300*time.Second, 60*time.Second))
		})
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{err: fmt.Errorf("%w: bins", services.ErrInvalidInput), status: http.StatusBadRequest, code: "INVALID_PARAMETER"},
		{err: entities.ErrUnsupportedCluster, status: http.StatusBadRequest, code: "INVALID_PARAMETER"},
		{err: fmt.Errorf("local lock: %w", interfaces.ErrLockTimeout), status: http.StatusServiceUnavailable, code: "LOCK_TIMEOUT"},
		{err: fmt.Errorf("get: %w", interfaces.ErrStoreUnavailable), status: http.StatusServiceUnavailable, code: "CACHE_UNAVAILABLE"},
		{err: fmt.Errorf("%w: pyth", interfaces.ErrUpstreamUnavailable), status: http.StatusBadGateway, code: "UPSTREAM_UNAVAILABLE"},
		{err: fmt.Errorf("%w: no quote for HBB", interfaces.ErrPriceUnavailable), status: http.StatusBadGateway, code: "PRICE_UNAVAILABLE"},
		{err: services.ErrHistoryUnavailable, status: http.StatusBadGateway, code: "UPSTREAM_UNAVAILABLE"},
		{err: fmt.Errorf("%w: devnet", services.ErrSettingsUnavailable), status: http.StatusBadGateway, code: "UPSTREAM_UNAVAILABLE"},
		{err: fmt.Errorf("%w: range query: sql: database is closed", snapshot.ErrDatabaseUnavailable), status: http.StatusBadGateway, code: "UPSTREAM_UNAVAILABLE"},
		{err: finance.ErrDivisionByZero, status: http.StatusInternalServerError, code: "INVALID_COMPUTATION"},
		{err: context.Canceled, status: http.StatusServiceUnavailable, code: "REQUEST_CANCELED"},
		{err: errors.New("boom"), status: http.StatusInternalServerError, code: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, code := errorStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}
