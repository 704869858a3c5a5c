// Package readthrough serves computed values from a shared store and recomputes a
// missing value at most once across the fleet. Concurrent misses for a key first
// queue on a process-local lock, then on a distributed lock, re-reading the store
// after each so only the first caller runs the fetch.
package readthrough

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lending-metrics-api/internal/domain/interfaces"
	"lending-metrics-api/internal/infrastructure/logging"
	"lending-metrics-api/internal/infrastructure/metrics"

	"github.com/jonboulle/clockwork"
)

const (
	tierLocal       = "local"
	tierDistributed = "distributed"
)

// Options configures lock bounds and persistence
type Options struct {
	// InnerTimeout bounds the wait for the process-local key lock. It must exceed
	// OuterTimeout since a local waiter queues behind a holder's distributed acquisition.
	InnerTimeout time.Duration

	// OuterTimeout bounds the distributed lock acquisition
	OuterTimeout time.Duration

	// LockLease is how long a distributed lock is held before the store frees it
	LockLease time.Duration

	// AtomicPersist writes value and expiry in one call when the store supports it
	AtomicPersist bool

	Clock clockwork.Clock
}

// DefaultOptions returns the production lock bounds
func DefaultOptions() Options {
	return Options{
		InnerTimeout: 15 * time.Second,
		OuterTimeout: 10 * time.Second,
		LockLease:    30 * time.Second,
		Clock:        clockwork.NewRealClock(),
	}
}

func (o Options) validate() error {
	if o.OuterTimeout <= 0 {
		return fmt.Errorf("%w: outer timeout must be positive", ErrInvalidOptions)
	}
	if o.InnerTimeout <= o.OuterTimeout {
		return fmt.Errorf("%w: inner timeout %s must exceed outer timeout %s", ErrInvalidOptions, o.InnerTimeout, o.OuterTimeout)
	}
	if o.LockLease <= 0 {
		return fmt.Errorf("%w: lock lease must be positive", ErrInvalidOptions)
	}
	return nil
}

// Engine coordinates the store and both lock tiers
type Engine struct {
	store       interfaces.Store
	local       interfaces.KeyLocker
	distributed interfaces.DistributedLocker
	opts        Options
	clock       clockwork.Clock
	log         logging.CacheLogger
}

// NewEngine wires the collaborators. Their lifecycle stays with the caller.
func NewEngine(store interfaces.Store, local interfaces.KeyLocker, distributed interfaces.DistributedLocker, opts Options) (*Engine, error) {
	if store == nil || local == nil || distributed == nil {
		return nil, fmt.Errorf("%w: store and both lockers are required", ErrInvalidOptions)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Engine{
		store:       store,
		local:       local,
		distributed: distributed,
		opts:        opts,
		clock:       clock,
		log:         logging.Cache(),
	}, nil
}

// FetchOrCompute returns the cached value for key, or runs fetch under both lock
// tiers and caches its result according to policy.
//
// fetch runs detached from ctx cancellation: once started it completes. Its error is
// returned unchanged and nothing is cached.
func FetchOrCompute[T any](ctx context.Context, e *Engine, key Key, policy ExpiryPolicy, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if !policy.Valid() {
		return zero, fmt.Errorf("%w for key %s", ErrInvalidPolicy, key)
	}

	if value, found, err := load[T](ctx, e, key, "get"); err != nil || found {
		return value, err
	}

	release, err := e.lockLocal(ctx, key)
	if err != nil {
		return zero, err
	}
	defer release()

	if value, found, err := load[T](ctx, e, key, "recheck_local"); err != nil || found {
		return value, err
	}

	lock, err := e.lockDistributed(ctx, key)
	if err != nil {
		return zero, err
	}
	defer e.unlockDistributed(ctx, key, lock)

	if value, found, err := load[T](ctx, e, key, "recheck_distributed"); err != nil || found {
		return value, err
	}

	value, err := compute(ctx, e, key, fetch)
	if err != nil {
		return zero, err
	}

	if err := e.persist(ctx, key, policy, value); err != nil {
		return zero, err
	}
	return value, nil
}

// TTL is the remaining lifetime of key: interfaces.NoExpiry for a key without
// expiry, interfaces.ErrKeyNotFound when absent.
func (e *Engine) TTL(ctx context.Context, key Key) (time.Duration, error) {
	ttl, err := e.store.TTL(ctx, key.String())
	if err != nil && !errors.Is(err, interfaces.ErrKeyNotFound) {
		return 0, storeError("ttl", key, err)
	}
	return ttl, err
}

func load[T any](ctx context.Context, e *Engine, key Key, operation string) (T, bool, error) {
	var value T

	raw, found, err := e.store.Get(ctx, key.String())
	if err != nil {
		metrics.RecordCacheOperation(key.Resource(), operation, "error")
		e.log.CacheError(ctx, operation, key.String(), err)
		return value, false, storeError(operation, key, err)
	}
	if !found {
		metrics.RecordCacheOperation(key.Resource(), operation, "miss")
		e.log.Miss(ctx, key.String(), operation)
		return value, false, nil
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		metrics.RecordCacheOperation(key.Resource(), operation, "error")
		e.log.CacheError(ctx, operation, key.String(), err)
		return value, false, fmt.Errorf("%w (%w) for key %s: %v", ErrDecode, ErrStoreUnavailable, key, err)
	}

	metrics.RecordCacheOperation(key.Resource(), operation, "hit")
	e.log.Hit(ctx, key.String(), operation)
	return value, true, nil
}

func compute[T any](ctx context.Context, e *Engine, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	start := e.clock.Now()
	value, err := fetch(context.WithoutCancel(ctx))
	elapsed := e.clock.Since(start)

	metrics.RecordFetch(key.Resource(), err == nil, elapsed.Seconds())
	if err != nil {
		logging.WarnWithError(ctx, "Recomputation failed, nothing cached", err, logging.Fields{
			logging.FieldCacheKey: key.String(),
			logging.FieldDuration: float64(elapsed.Milliseconds()),
		})
		return value, err
	}

	e.log.Recomputed(ctx, key.String(), float64(elapsed.Milliseconds()))
	return value, nil
}

func (e *Engine) lockLocal(ctx context.Context, key Key) (func(), error) {
	waitCtx, cancel := context.WithTimeout(ctx, e.opts.InnerTimeout)
	defer cancel()

	start := e.clock.Now()
	release, err := e.local.Acquire(waitCtx, key.String())
	waited := e.clock.Since(start)
	if err != nil {
		return nil, e.lockFailure(ctx, key, tierLocal, waited, err)
	}

	metrics.RecordLockWait(tierLocal, "acquired", waited.Seconds())
	return release, nil
}

func (e *Engine) lockDistributed(ctx context.Context, key Key) (interfaces.Lock, error) {
	waitCtx, cancel := context.WithTimeout(ctx, e.opts.OuterTimeout)
	defer cancel()

	start := e.clock.Now()
	lock, err := e.distributed.Acquire(waitCtx, lockName(key), e.opts.LockLease)
	waited := e.clock.Since(start)
	if err != nil {
		return nil, e.lockFailure(ctx, key, tierDistributed, waited, err)
	}

	metrics.RecordLockWait(tierDistributed, "acquired", waited.Seconds())
	return lock, nil
}

// lockFailure keeps caller cancellation distinct from a timeout
func (e *Engine) lockFailure(ctx context.Context, key Key, tier string, waited time.Duration, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		metrics.RecordLockWait(tier, "canceled", waited.Seconds())
		return fmt.Errorf("waiting for %s lock on %s: %w", tier, key, ctxErr)
	}

	if errors.Is(err, ErrStoreUnavailable) {
		metrics.RecordLockWait(tier, "error", waited.Seconds())
		e.log.CacheError(ctx, "lock_"+tier, key.String(), err)
		return fmt.Errorf("%s lock on %s: %w", tier, key, err)
	}

	metrics.RecordLockWait(tier, "timeout", waited.Seconds())
	metrics.RecordCacheOperation(key.Resource(), "lock_"+tier, "timeout")
	e.log.LockTimeout(ctx, key.String(), tier, float64(waited.Milliseconds()))
	if errors.Is(err, ErrLockTimeout) {
		return fmt.Errorf("%s lock on %s: %w", tier, key, err)
	}
	return fmt.Errorf("%s lock on %s: %w: %v", tier, key, ErrLockTimeout, err)
}

func (e *Engine) unlockDistributed(ctx context.Context, key Key, lock interfaces.Lock) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.opts.OuterTimeout)
	defer cancel()

	if err := lock.Release(releaseCtx); err != nil {
		// the lease frees the lock eventually
		logging.WarnWithError(ctx, "Failed to release distributed lock", err, logging.Fields{
			logging.FieldCacheKey: key.String(),
		})
	}
}

func (e *Engine) persist(ctx context.Context, key Key, policy ExpiryPolicy, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w for key %s: %v", ErrEncode, key, err)
	}

	// the write happens after a possibly long fetch, so evaluate the policy now
	now := e.clock.Now()
	ttl, expires := policy.TTLAt(now)
	if policy.kind == expiryAt && !expires {
		metrics.RecordCacheOperation(key.Resource(), "set", "skipped")
		logging.Warn(ctx, "Expiry already passed, value served uncached", logging.Fields{
			logging.FieldCacheKey: key.String(),
			"expire_at":           policy.at.UTC().Format(time.RFC3339),
		})
		return nil
	}

	if atomic, ok := e.store.(interfaces.AtomicStore); ok && e.opts.AtomicPersist && policy.Expires() {
		if policy.kind == expiryAt {
			_, err = atomic.SetIfAbsentUntil(ctx, key.String(), payload, policy.at)
		} else {
			_, err = atomic.SetIfAbsentWithTTL(ctx, key.String(), payload, ttl)
		}
		if err != nil {
			return e.persistFailure(ctx, key, "set", err)
		}
		e.recordSet(ctx, key, ttl)
		return nil
	}

	stored, err := e.store.SetIfAbsent(ctx, key.String(), payload)
	if err != nil {
		return e.persistFailure(ctx, key, "set", err)
	}
	if !stored {
		// a peer whose lease outlived ours wrote first; the expiry below still bounds it
		logging.Debug(ctx, "Key already present when persisting", logging.Fields{
			logging.FieldCacheKey: key.String(),
		})
	}

	switch policy.kind {
	case expiryIn:
		err = e.store.ExpireIn(ctx, key.String(), ttl)
	case expiryAt:
		err = e.store.ExpireAt(ctx, key.String(), policy.at)
	}
	if err != nil {
		return e.persistFailure(ctx, key, "expire", err)
	}

	e.recordSet(ctx, key, ttl)
	return nil
}

func (e *Engine) persistFailure(ctx context.Context, key Key, operation string, err error) error {
	metrics.RecordCacheOperation(key.Resource(), operation, "error")
	e.log.CacheError(ctx, operation, key.String(), err)
	return storeError(operation, key, err)
}

func (e *Engine) recordSet(ctx context.Context, key Key, ttl time.Duration) {
	metrics.RecordCacheOperation(key.Resource(), "set", "success")
	e.log.Stored(ctx, key.String(), ttl.Seconds())
}

func storeError(operation string, key Key, err error) error {
	if errors.Is(err, ErrStoreUnavailable) {
		return fmt.Errorf("%s %s: %w", operation, key, err)
	}
	return fmt.Errorf("%s %s: %w: %w", operation, key, ErrStoreUnavailable, err)
}

func lockName(key Key) string {
	return "lock:" + key.String()
}
