package oracle

import (
	"context"
	"fmt"
	"testing"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouting(t *testing.T, pyth interfaces.PriceProvider) *RoutingProvider {
	t.Helper()
	static := NewStaticProviderFromPrices(map[entities.Token]decimal.Decimal{
		entities.TokenHBB:  decimal.RequireFromString("0.5"),
		entities.TokenUSDH: decimal.NewFromInt(1),
	}, nil)

	routing, err := NewRoutingProvider(
		map[string]interfaces.PriceProvider{SourcePyth: pyth, SourceStatic: static},
		SourcePyth,
		map[entities.Token]string{entities.TokenHBB: SourceStatic, entities.TokenUSDH: SourceStatic},
	)
	require.NoError(t, err)
	return routing
}

func TestRoutingProvider_SplitsTokensBySource(t *testing.T) {
	pyth := new(MockProvider)
	pyth.On("GetPrices", mock.Anything, []entities.Token{entities.TokenSOL, entities.TokenETH}).
		Return(entities.PriceBook{
			entities.TokenSOL: quote(entities.TokenSOL, "40", SourcePyth),
			entities.TokenETH: quote(entities.TokenETH, "1800", SourcePyth),
		}, nil).Once()

	book, err := newTestRouting(t, pyth).GetPrices(context.Background(),
		[]entities.Token{entities.TokenSOL, entities.TokenHBB, entities.TokenETH})
	require.NoError(t, err)

	require.Len(t, book, 3)
	assert.Equal(t, SourcePyth, book[entities.TokenSOL].Source)
	assert.Equal(t, SourcePyth, book[entities.TokenETH].Source)
	assert.Equal(t, SourceStatic, book[entities.TokenHBB].Source)
	pyth.AssertExpectations(t)
}

func TestRoutingProvider_OnlyRoutedSourceCalled(t *testing.T) {
	pyth := new(MockProvider)

	book, err := newTestRouting(t, pyth).GetPrices(context.Background(), []entities.Token{entities.TokenHBB})
	require.NoError(t, err)
	assert.True(t, book[entities.TokenHBB].Price.Equal(decimal.RequireFromString("0.5")))
	pyth.AssertNotCalled(t, "GetPrices", mock.Anything, mock.Anything)
}

func TestRoutingProvider_SourceFailure(t *testing.T) {
	tests := []struct {
		name    string
		book    entities.PriceBook
		err     error
		wantErr error
	}{
		{
			name:    "source error",
			err:     fmt.Errorf("%w: hermes 503", interfaces.ErrUpstreamUnavailable),
			wantErr: interfaces.ErrUpstreamUnavailable,
		},
		{
			name:    "partial book",
			book:    entities.PriceBook{entities.TokenSOL: quote(entities.TokenSOL, "40", SourcePyth)},
			wantErr: interfaces.ErrPriceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pyth := new(MockProvider)
			pyth.On("GetPrices", mock.Anything, mock.Anything).Return(tt.book, tt.err)

			_, err := newTestRouting(t, pyth).GetPrices(context.Background(),
				[]entities.Token{entities.TokenSOL, entities.TokenBTC, entities.TokenHBB})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewRoutingProvider_UnknownSource(t *testing.T) {
	sources := map[string]interfaces.PriceProvider{SourcePyth: new(MockProvider)}

	_, err := NewRoutingProvider(sources, SourceJupiter, nil)
	assert.ErrorIs(t, err, ErrUnknownProvider)

	_, err = NewRoutingProvider(sources, SourcePyth, map[entities.Token]string{entities.TokenHBB: SourceJupiter})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestRoutingProvider_CloseClosesStreams(t *testing.T) {
	stream := new(MockStream)
	stream.On("Close").Return(nil).Once()

	routing, err := NewRoutingProvider(map[string]interfaces.PriceProvider{
		SourcePythStream: stream,
		SourcePyth:       new(MockProvider),
	}, SourcePythStream, nil)
	require.NoError(t, err)

	assert.NoError(t, routing.Close())
	stream.AssertExpectations(t)
}
