package handlers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"lending-metrics-api/internal/application/readthrough"
	"lending-metrics-api/internal/domain/interfaces"
	"lending-metrics-api/internal/infrastructure/config"
	"lending-metrics-api/internal/infrastructure/logging"
)

// CacheControl builds the header value for a response whose cached entry has ttl left.
// A key without expiry advertises fallback instead.
func CacheControl(ttl, grace, fallback time.Duration) string {
	if ttl == interfaces.NoExpiry {
		ttl = fallback
	}
	return fmt.Sprintf("public, max-age=%d, stale-if-error=%d", seconds(ttl), seconds(grace))
}

// seconds floors d to whole seconds, never below zero
func seconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(math.Floor(d.Seconds()))
}

// Freshness sets Cache-Control from the remaining lifetime of a cache key
type Freshness struct {
	engine   *readthrough.Engine
	grace    time.Duration
	fallback time.Duration
}

func NewFreshness(engine *readthrough.Engine, cfg config.HTTPConfig) *Freshness {
	return &Freshness{engine: engine, grace: cfg.StaleIfError, fallback: cfg.FallbackMaxAge}
}

// Apply must run before the body is written
func (f *Freshness) Apply(ctx context.Context, w http.ResponseWriter, key readthrough.Key) {
	ttl, err := f.engine.TTL(ctx, key)
	switch {
	case errors.Is(err, interfaces.ErrKeyNotFound):
		// served uncached, e.g. an expiry that had already passed
		ttl = 0
	case err != nil:
		logging.WarnWithError(ctx, "Could not read cache ttl", err, logging.Fields{
			logging.FieldCacheKey: key.String(),
		})
		w.Header().Set("Cache-Control", "no-cache")
		return
	}
	w.Header().Set("Cache-Control", CacheControl(ttl, f.grace, f.fallback))
}

// ApplyFixed is for responses that change only on redeploy
func (f *Freshness) ApplyFixed(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", CacheControl(interfaces.NoExpiry, f.grace, f.fallback))
}
