package cache

import (
	"context"
	"fmt"
	"time"

	"lending-metrics-api/internal/domain/interfaces"
	"lending-metrics-api/internal/infrastructure/logging"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
)

// BackendType represents the type of store implementation
type BackendType string

const (
	BackendMemory BackendType = "memory"
	BackendRedis  BackendType = "redis"
)

const janitorInterval = time.Minute

// Config holds store configuration options
type Config struct {
	Type        BackendType
	RedisAddr   string
	RedisDB     int
	Password    string
	DialTimeout time.Duration
}

// Backend is a constructed store. Client is set for the redis backend so the
// distributed locker can share the connection pool.
type Backend struct {
	Store  interfaces.Store
	Client *redis.Client

	stop context.CancelFunc
}

// Close stops background work and closes the store
func (b *Backend) Close() error {
	if b.stop != nil {
		b.stop()
	}
	return b.Store.Close()
}

// Factory provides methods to create store instances
type Factory struct {
	clock clockwork.Clock
}

// NewFactory creates a new store factory
func NewFactory(clock clockwork.Clock) *Factory {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Factory{clock: clock}
}

// CreateBackend creates a store based on configuration
func (f *Factory) CreateBackend(ctx context.Context, config Config) (*Backend, error) {
	switch config.Type {
	case BackendMemory:
		logging.Info(ctx, "Creating memory store", logging.Fields{
			"type": "memory",
		})
		store := NewMemoryStore(f.clock)
		janitorCtx, stop := context.WithCancel(context.Background())
		go store.RunJanitor(janitorCtx, janitorInterval)
		return &Backend{Store: store, stop: stop}, nil

	case BackendRedis:
		logging.Info(ctx, "Creating Redis store", logging.Fields{
			"type":     "redis",
			"addr":     config.RedisAddr,
			"database": config.RedisDB,
		})
		client, err := f.createRedisClient(ctx, config)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: NewRedisStore(client), Client: client}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, config.Type)
	}
}

// createRedisClient creates and tests the Redis connection
func (f *Factory) createRedisClient(ctx context.Context, config Config) (*redis.Client, error) {
	dialTimeout := config.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 3 * time.Second
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        config.RedisAddr,
		Password:    config.Password,
		DB:          config.RedisDB,
		DialTimeout: dialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%w: failed to connect to Redis at %s: %v", ErrStoreUnavailable, config.RedisAddr, err)
	}

	logging.Info(ctx, "Redis connection established successfully", logging.Fields{
		"addr":     config.RedisAddr,
		"database": config.RedisDB,
	})
	return rdb, nil
}
