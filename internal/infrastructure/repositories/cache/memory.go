package cache

import (
	"context"
	"sync"
	"time"

	"lending-metrics-api/internal/domain/interfaces"

	"github.com/jonboulle/clockwork"
)

// memoryItem holds a value and its expiry; a zero expiresAt never expires
type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

func (item *memoryItem) expired(now time.Time) bool {
	return !item.expiresAt.IsZero() && !now.Before(item.expiresAt)
}

// MemoryStore implements interfaces.AtomicStore in process memory. It follows Redis
// semantics for expiry so the engine behaves identically on both backends.
type MemoryStore struct {
	items map[string]*memoryItem
	mu    sync.Mutex
	clock clockwork.Clock
}

// NewMemoryStore creates an in-memory store reading time from clock
func NewMemoryStore(clock clockwork.Clock) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore{
		items: make(map[string]*memoryItem),
		clock: clock,
	}
}

// lookup returns a live item, evicting it when expired. Callers hold mu.
func (c *MemoryStore) lookup(key string) (*memoryItem, bool) {
	item, exists := c.items[key]
	if !exists {
		return nil, false
	}
	if item.expired(c.clock.Now()) {
		delete(c.items, key)
		return nil, false
	}
	return item, true
}

// Get returns a copy of the stored value
func (c *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.lookup(key)
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(item.value))
	copy(out, item.value)
	return out, true, nil
}

// SetIfAbsent stores value without expiry unless a live value exists
func (c *MemoryStore) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	return c.setIfAbsent(key, value, time.Time{})
}

// SetIfAbsentWithTTL stores value expiring after ttl
func (c *MemoryStore) SetIfAbsentWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	return c.setIfAbsent(key, value, c.clock.Now().Add(ttl))
}

// SetIfAbsentUntil stores value expiring at the given instant
func (c *MemoryStore) SetIfAbsentUntil(ctx context.Context, key string, value []byte, at time.Time) (bool, error) {
	return c.setIfAbsent(key, value, at)
}

func (c *MemoryStore) setIfAbsent(key string, value []byte, expiresAt time.Time) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lookup(key); ok {
		return false, nil
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	c.items[key] = &memoryItem{value: stored, expiresAt: expiresAt}
	return true, nil
}

// ExpireIn sets a relative TTL; a non-positive ttl deletes the key
func (c *MemoryStore) ExpireIn(ctx context.Context, key string, ttl time.Duration) error {
	return c.ExpireAt(ctx, key, c.clock.Now().Add(ttl))
}

// ExpireAt sets an absolute expiry; a past instant deletes the key
func (c *MemoryStore) ExpireAt(ctx context.Context, key string, at time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.lookup(key)
	if !ok {
		return ErrKeyNotFound
	}
	if !at.After(c.clock.Now()) {
		delete(c.items, key)
		return nil
	}
	item.expiresAt = at
	return nil
}

// TTL returns the remaining lifetime truncated to whole seconds, like Redis
func (c *MemoryStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.lookup(key)
	if !ok {
		return 0, ErrKeyNotFound
	}
	if item.expiresAt.IsZero() {
		return interfaces.NoExpiry, nil
	}
	return item.expiresAt.Sub(c.clock.Now()).Truncate(time.Second), nil
}

// Ping always succeeds
func (c *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close drops every item
func (c *MemoryStore) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*memoryItem)
	return nil
}

// Size returns the number of stored items, expired ones included
func (c *MemoryStore) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Cleanup evicts expired items
func (c *MemoryStore) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	for key, item := range c.items {
		if item.expired(now) {
			delete(c.items, key)
		}
	}
}

// RunJanitor evicts expired items every interval until ctx is done
func (c *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := c.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			c.Cleanup()
		}
	}
}
