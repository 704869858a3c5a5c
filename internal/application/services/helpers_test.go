package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"lending-metrics-api/internal/application/readthrough"
	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"
	"lending-metrics-api/internal/infrastructure/chain"
	"lending-metrics-api/internal/infrastructure/lock"
	"lending-metrics-api/internal/infrastructure/oracle"
	"lending-metrics-api/internal/infrastructure/repositories/cache"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2022, 5, 1, 12, 30, 0, 0, time.UTC)

// MockSnapshotRepository is a testify mock of interfaces.SnapshotRepository
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Save(ctx context.Context, snapshot entities.MetricsSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) Range(ctx context.Context, cluster entities.Cluster, from, to time.Time) ([]entities.MetricsSnapshot, error) {
	args := m.Called(ctx, cluster, from, to)
	snapshots, _ := args.Get(0).([]entities.MetricsSnapshot)
	return snapshots, args.Error(1)
}

func (m *MockSnapshotRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// countingChain counts account state reads
type countingChain struct {
	inner interfaces.ChainClient
	calls int32
}

func (c *countingChain) FetchAccountState(ctx context.Context, cluster entities.Cluster) (*entities.RawAccountState, error) {
	atomic.AddInt32(&c.calls, 1)
	return c.inner.FetchAccountState(ctx, cluster)
}

func (c *countingChain) Calls() int {
	return int(atomic.LoadInt32(&c.calls))
}

type fixture struct {
	clock  *clockwork.FakeClock
	store  *cache.MemoryStore
	engine *readthrough.Engine
	chain  *countingChain
	prices *oracle.StaticProvider
	repo   *MockSnapshotRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := clockwork.NewFakeClockAt(testNow)
	store := cache.NewMemoryStore(clock)
	engine, err := readthrough.NewEngine(store, lock.NewLocalLocker(), lock.NewMemoryLocker(clock), readthrough.Options{
		InnerTimeout: 2 * time.Second,
		OuterTimeout: time.Second,
		LockLease:    30 * time.Second,
		Clock:        clock,
	})
	require.NoError(t, err)

	return &fixture{
		clock:  clock,
		store:  store,
		engine: engine,
		chain:  &countingChain{inner: chain.NewStaticClient(chain.SampleStates(testNow))},
		prices: oracle.NewStaticProviderFromPrices(testPrices(), clock),
		repo:   &MockSnapshotRepository{},
	}
}

func testPrices() map[entities.Token]decimal.Decimal {
	return map[entities.Token]decimal.Decimal{
		entities.TokenSOL:  d("40"),
		entities.TokenETH:  d("1800"),
		entities.TokenBTC:  d("30000"),
		entities.TokenSRM:  d("1"),
		entities.TokenRAY:  d("1"),
		entities.TokenFTT:  d("25"),
		entities.TokenMSOL: d("42"),
		entities.TokenUSDH: d("1"),
		entities.TokenHBB:  d("0.5"),
	}
}

func (f *fixture) metricsService() *MetricsService {
	return NewMetricsService(f.engine, f.chain, f.prices, f.clock)
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr(v decimal.Decimal) *decimal.Decimal {
	return &v
}
