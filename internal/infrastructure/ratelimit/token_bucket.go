package ratelimit

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	cleanupInterval = 10 * time.Minute
	idleBucketAge   = 30 * time.Minute
)

// TokenBucket implements a simple token bucket rate limiter
type TokenBucket struct {
	mu         sync.Mutex
	clock      clockwork.Clock
	capacity   int       // Maximum number of tokens
	tokens     int       // Current number of tokens
	refillRate int       // Tokens per second
	lastRefill time.Time // Last refill time
}

// NewTokenBucket creates a full bucket. refillRate is tokens added per second.
func NewTokenBucket(capacity, refillRate int, clock clockwork.Clock) *TokenBucket {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TokenBucket{
		clock:      clock,
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: clock.Now(),
	}
}

// Allow consumes a token when one is available
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// Tokens returns the current number of available tokens
func (tb *TokenBucket) Tokens() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	return tb.tokens
}

// idle reports a full bucket untouched since cutoff
func (tb *TokenBucket) idle(cutoff time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	last := tb.lastRefill
	tb.refill()
	return tb.tokens == tb.capacity && last.Before(cutoff)
}

// refill must be called with the lock held
func (tb *TokenBucket) refill() {
	now := tb.clock.Now()
	tokensToAdd := int(now.Sub(tb.lastRefill).Seconds() * float64(tb.refillRate))
	if tokensToAdd <= 0 {
		return
	}

	tb.tokens += tokensToAdd
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
	tb.lastRefill = now
}

// RateLimiterCollection keeps one bucket per client
type RateLimiterCollection struct {
	mu          sync.RWMutex
	clock       clockwork.Clock
	buckets     map[string]*TokenBucket
	capacity    int
	refillRate  int
	lastCleanup time.Time
}

func NewRateLimiterCollection(capacity, refillRate int, clock clockwork.Clock) *RateLimiterCollection {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RateLimiterCollection{
		clock:       clock,
		buckets:     make(map[string]*TokenBucket),
		capacity:    capacity,
		refillRate:  refillRate,
		lastCleanup: clock.Now(),
	}
}

// Allow checks if a request from the given client is allowed
func (rlc *RateLimiterCollection) Allow(clientID string) bool {
	return rlc.getBucket(clientID).Allow()
}

// Tokens returns available tokens for the given client
func (rlc *RateLimiterCollection) Tokens(clientID string) int {
	return rlc.getBucket(clientID).Tokens()
}

// Len returns the number of tracked clients
func (rlc *RateLimiterCollection) Len() int {
	rlc.mu.RLock()
	defer rlc.mu.RUnlock()
	return len(rlc.buckets)
}

func (rlc *RateLimiterCollection) getBucket(clientID string) *TokenBucket {
	rlc.mu.RLock()
	bucket, exists := rlc.buckets[clientID]
	rlc.mu.RUnlock()
	if exists {
		return bucket
	}

	rlc.mu.Lock()
	defer rlc.mu.Unlock()

	if bucket, exists := rlc.buckets[clientID]; exists {
		return bucket
	}

	rlc.maybeCleanup()
	bucket = NewTokenBucket(rlc.capacity, rlc.refillRate, rlc.clock)
	rlc.buckets[clientID] = bucket
	return bucket
}

// maybeCleanup drops idle buckets. Must be called with the write lock held.
func (rlc *RateLimiterCollection) maybeCleanup() {
	now := rlc.clock.Now()
	if now.Sub(rlc.lastCleanup) < cleanupInterval {
		return
	}

	cutoff := now.Add(-idleBucketAge)
	for clientID, bucket := range rlc.buckets {
		if bucket.idle(cutoff) {
			delete(rlc.buckets, clientID)
		}
	}
	rlc.lastCleanup = now
}
