package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"lending-metrics-api/internal/domain/interfaces"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRedisClient es un mock del cliente Redis
type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	cmd := redis.NewStringCmd(ctx, "get", key)
	if args.Error(1) != nil {
		cmd.SetErr(args.Error(1))
	} else {
		cmd.SetVal(args.String(0))
	}
	return cmd
}

func (m *MockRedisClient) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	args := m.Called(ctx, key, value, expiration)
	cmd := redis.NewBoolCmd(ctx, "setnx", key, value)
	if args.Error(1) != nil {
		cmd.SetErr(args.Error(1))
	} else {
		cmd.SetVal(args.Bool(0))
	}
	return cmd
}

func (m *MockRedisClient) SetArgs(ctx context.Context, key string, value interface{}, a redis.SetArgs) *redis.StatusCmd {
	args := m.Called(ctx, key, value, a)
	cmd := redis.NewStatusCmd(ctx, "set", key, value)
	if args.Error(0) != nil {
		cmd.SetErr(args.Error(0))
	} else {
		cmd.SetVal("OK")
	}
	return cmd
}

func (m *MockRedisClient) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	args := m.Called(ctx, key, expiration)
	cmd := redis.NewBoolCmd(ctx, "expire", key)
	if args.Error(1) != nil {
		cmd.SetErr(args.Error(1))
	} else {
		cmd.SetVal(args.Bool(0))
	}
	return cmd
}

func (m *MockRedisClient) ExpireAt(ctx context.Context, key string, tm time.Time) *redis.BoolCmd {
	args := m.Called(ctx, key, tm)
	cmd := redis.NewBoolCmd(ctx, "expireat", key)
	if args.Error(1) != nil {
		cmd.SetErr(args.Error(1))
	} else {
		cmd.SetVal(args.Bool(0))
	}
	return cmd
}

func (m *MockRedisClient) TTL(ctx context.Context, key string) *redis.DurationCmd {
	args := m.Called(ctx, key)
	cmd := redis.NewDurationCmd(ctx, time.Second, "ttl", key)
	if args.Error(1) != nil {
		cmd.SetErr(args.Error(1))
	} else {
		cmd.SetVal(args.Get(0).(time.Duration))
	}
	return cmd
}

func (m *MockRedisClient) Ping(ctx context.Context) *redis.StatusCmd {
	args := m.Called(ctx)
	cmd := redis.NewStatusCmd(ctx, "ping")
	if args.Error(0) != nil {
		cmd.SetErr(args.Error(0))
	} else {
		cmd.SetVal("PONG")
	}
	return cmd
}

func (m *MockRedisClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

var errConnRefused = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

func TestRedisStore_Get(t *testing.T) {
	tests := []struct {
		name      string
		mockValue string
		mockErr   error
		wantFound bool
		wantValue string
		wantErr   error
	}{
		{name: "hit", mockValue: `{"tvl":"1"}`, wantFound: true, wantValue: `{"tvl":"1"}`},
		{name: "miss", mockErr: redis.Nil},
		{name: "connection_error", mockErr: errConnRefused, wantErr: ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			client := new(MockRedisClient)
			client.On("Get", ctx, "metrics:devnet").Return(tt.mockValue, tt.mockErr)

			value, found, err := NewRedisStore(client).Get(ctx, "metrics:devnet")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.wantValue, string(value))
			}
			client.AssertExpectations(t)
		})
	}
}

func TestRedisStore_SetIfAbsent(t *testing.T) {
	ctx := context.Background()
	client := new(MockRedisClient)
	payload := []byte(`"v"`)
	client.On("SetNX", ctx, "k", payload, time.Duration(0)).Return(true, nil).Once()
	client.On("SetNX", ctx, "k", payload, time.Duration(0)).Return(false, nil).Once()

	store := NewRedisStore(client)

	stored, err := store.SetIfAbsent(ctx, "k", payload)
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = store.SetIfAbsent(ctx, "k", payload)
	require.NoError(t, err)
	assert.False(t, stored)

	client.AssertExpectations(t)
}

func TestRedisStore_AtomicWrites(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2022, 5, 1, 13, 1, 0, 0, time.UTC)
	payload := []byte(`"v"`)

	client := new(MockRedisClient)
	client.On("SetArgs", ctx, "ttl", payload, redis.SetArgs{Mode: "NX", TTL: 30 * time.Second}).Return(nil)
	client.On("SetArgs", ctx, "until", payload, redis.SetArgs{Mode: "NX", ExpireAt: at}).Return(redis.Nil)
	client.On("SetArgs", ctx, "down", payload, redis.SetArgs{Mode: "NX", TTL: time.Second}).Return(errConnRefused)

	store := NewRedisStore(client)

	stored, err := store.SetIfAbsentWithTTL(ctx, "ttl", payload, 30*time.Second)
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = store.SetIfAbsentUntil(ctx, "until", payload, at)
	require.NoError(t, err)
	assert.False(t, stored, "NX refusal is not an error")

	_, err = store.SetIfAbsentWithTTL(ctx, "down", payload, time.Second)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	client.AssertExpectations(t)
}

func TestRedisStore_Expire(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2022, 5, 1, 13, 1, 0, 0, time.UTC)

	client := new(MockRedisClient)
	client.On("Expire", ctx, "k", 30*time.Second).Return(true, nil)
	client.On("Expire", ctx, "gone", 30*time.Second).Return(false, nil)
	client.On("ExpireAt", ctx, "k", at).Return(true, nil)
	client.On("ExpireAt", ctx, "down", at).Return(false, errConnRefused)

	store := NewRedisStore(client)

	assert.NoError(t, store.ExpireIn(ctx, "k", 30*time.Second))
	assert.ErrorIs(t, store.ExpireIn(ctx, "gone", 30*time.Second), ErrKeyNotFound)
	assert.NoError(t, store.ExpireAt(ctx, "k", at))
	assert.ErrorIs(t, store.ExpireAt(ctx, "down", at), ErrStoreUnavailable)

	client.AssertExpectations(t)
}

func TestRedisStore_TTL(t *testing.T) {
	tests := []struct {
		name    string
		reply   time.Duration
		mockErr error
		want    time.Duration
		wantErr error
	}{
		{name: "remaining", reply: 42 * time.Second, want: 42 * time.Second},
		{name: "no_expiry", reply: -1, want: interfaces.NoExpiry},
		{name: "missing", reply: -2, wantErr: ErrKeyNotFound},
		{name: "connection_error", mockErr: errConnRefused, wantErr: ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			client := new(MockRedisClient)
			client.On("TTL", ctx, "k").Return(tt.reply, tt.mockErr)

			ttl, err := NewRedisStore(client).TTL(ctx, "k")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ttl)
		})
	}
}

func TestRedisStore_PingAndClose(t *testing.T) {
	ctx := context.Background()
	client := new(MockRedisClient)
	client.On("Ping", ctx).Return(nil).Once()
	client.On("Ping", ctx).Return(errConnRefused).Once()
	client.On("Close").Return(nil)

	store := NewRedisStore(client)
	assert.NoError(t, store.Ping(ctx))
	assert.ErrorIs(t, store.Ping(ctx), ErrStoreUnavailable)
	assert.NoError(t, store.Close())

	client.AssertExpectations(t)
}

func TestRedisStore_ImplementsAtomicStore(t *testing.T) {
	var _ interfaces.AtomicStore = NewRedisStore(new(MockRedisClient))
	var _ interfaces.AtomicStore = NewMemoryStore(nil)
}
