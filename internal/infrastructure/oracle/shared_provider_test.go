package oracle

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowProvider blocks every call until release is closed
type slowProvider struct {
	calls   int32
	release chan struct{}
	err     error
}

func (p *slowProvider) Name() string { return "slow" }

func (p *slowProvider) GetPrices(_ context.Context, tokens []entities.Token) (entities.PriceBook, error) {
	atomic.AddInt32(&p.calls, 1)
	<-p.release
	if p.err != nil {
		return nil, p.err
	}
	book := entities.PriceBook{}
	for _, token := range tokens {
		book[token] = quote(token, "1", "slow")
	}
	return book, nil
}

func TestSharedPriceProvider_CollapsesConcurrentCalls(t *testing.T) {
	inner := &slowProvider{release: make(chan struct{})}
	shared := NewSharedPriceProvider(inner)

	const callers = 20
	var wg sync.WaitGroup
	results := make([]entities.PriceBook, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// order differs per caller, the key does not
			tokens := []entities.Token{entities.TokenSOL, entities.TokenHBB}
			if i%2 == 0 {
				tokens = []entities.Token{entities.TokenHBB, entities.TokenSOL}
			}
			results[i], errs[i] = shared.GetPrices(context.Background(), tokens)
		}(i)
	}

	require.Eventually(t, func() bool { return atomic.LoadInt32(&inner.calls) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(inner.release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&inner.calls))
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Len(t, results[i], 2)
	}

	// each caller owns its map
	delete(results[0], entities.TokenSOL)
	assert.Len(t, results[1], 2)
}

func TestSharedPriceProvider_PropagatesError(t *testing.T) {
	inner := &slowProvider{release: make(chan struct{}), err: interfaces.ErrPriceUnavailable}
	close(inner.release)
	shared := NewSharedPriceProvider(inner)

	_, err := shared.GetPrices(context.Background(), []entities.Token{entities.TokenSOL})
	assert.ErrorIs(t, err, interfaces.ErrPriceUnavailable)
}

func TestSharedPriceProvider_CallerCancel(t *testing.T) {
	inner := &slowProvider{release: make(chan struct{})}
	shared := NewSharedPriceProvider(inner)
	defer close(inner.release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := shared.GetPrices(ctx, []entities.Token{entities.TokenSOL})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRequestKey(t *testing.T) {
	assert.Equal(t, "HBB,SOL", requestKey([]entities.Token{entities.TokenSOL, entities.TokenHBB}))
	assert.Equal(t, "HBB,SOL", requestKey([]entities.Token{entities.TokenHBB, entities.TokenSOL}))
}
