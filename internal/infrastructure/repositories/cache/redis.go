package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lending-metrics-api/internal/domain/interfaces"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of go-redis the store uses
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	SetArgs(ctx context.Context, key string, value interface{}, a redis.SetArgs) *redis.StatusCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	ExpireAt(ctx context.Context, key string, tm time.Time) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// RedisStore implements interfaces.AtomicStore on Redis
type RedisStore struct {
	client RedisClient
}

// NewRedisStore wraps an existing client. The caller owns the client's lifecycle
// unless it hands it over through Close.
func NewRedisStore(client RedisClient) *RedisStore {
	return &RedisStore{client: client}
}

// Get retrieves a value from Redis
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, unavailable("get", err)
	}
	return val, true, nil
}

// SetIfAbsent stores value with SETNX and no expiry
func (r *RedisStore) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	stored, err := r.client.SetNX(ctx, key, value, 0).Result()
	if err != nil {
		return false, unavailable("setnx", err)
	}
	return stored, nil
}

// SetIfAbsentWithTTL stores value and its TTL in one SET NX EX
func (r *RedisStore) SetIfAbsentWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	return r.setArgs(ctx, key, value, redis.SetArgs{Mode: "NX", TTL: ttl})
}

// SetIfAbsentUntil stores value and its absolute expiry in one SET NX EXAT
func (r *RedisStore) SetIfAbsentUntil(ctx context.Context, key string, value []byte, at time.Time) (bool, error) {
	return r.setArgs(ctx, key, value, redis.SetArgs{Mode: "NX", ExpireAt: at})
}

func (r *RedisStore) setArgs(ctx context.Context, key string, value []byte, args redis.SetArgs) (bool, error) {
	err := r.client.SetArgs(ctx, key, value, args).Err()
	if errors.Is(err, redis.Nil) {
		// NX refused the write
		return false, nil
	}
	if err != nil {
		return false, unavailable("set", err)
	}
	return true, nil
}

// ExpireIn sets a relative TTL
func (r *RedisStore) ExpireIn(ctx context.Context, key string, ttl time.Duration) error {
	ok, err := r.client.Expire(ctx, key, ttl).Result()
	if err != nil {
		return unavailable("expire", err)
	}
	if !ok {
		return fmt.Errorf("expire %s: %w", key, ErrKeyNotFound)
	}
	return nil
}

// ExpireAt sets an absolute expiry
func (r *RedisStore) ExpireAt(ctx context.Context, key string, at time.Time) error {
	ok, err := r.client.ExpireAt(ctx, key, at).Result()
	if err != nil {
		return unavailable("expireat", err)
	}
	if !ok {
		return fmt.Errorf("expireat %s: %w", key, ErrKeyNotFound)
	}
	return nil
}

// TTL maps the Redis -1/-2 replies to interfaces.NoExpiry and ErrKeyNotFound
func (r *RedisStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, unavailable("ttl", err)
	}
	switch ttl {
	case -2:
		return 0, ErrKeyNotFound
	case -1:
		return interfaces.NoExpiry, nil
	}
	return ttl, nil
}

// Ping checks if Redis connection is alive
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// Close closes the Redis connection
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: redis %s: %v", ErrStoreUnavailable, op, err)
}
