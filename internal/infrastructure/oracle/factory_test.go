package oracle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_CreateProvider(t *testing.T) {
	defaults := config.GetDefaultConfig().Oracle

	tests := []struct {
		provider string
		wantName string
		wantErr  bool
	}{
		{provider: ProviderPyth, wantName: SourcePyth},
		{provider: ProviderJupiter, wantName: SourceJupiter},
		{provider: ProviderStatic, wantName: SourceStatic},
		{provider: "STATIC", wantName: SourceStatic},
		{provider: ProviderRouted, wantName: SourceRouted},
		{provider: "coingecko", wantErr: true},
	}

	factory := NewFactory(nil)
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := defaults
			cfg.Provider = tt.provider

			provider, err := factory.CreateProvider(context.Background(), cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownProvider)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, provider.Name())
			assert.NoError(t, provider.Close())
		})
	}
}

func TestFactory_CreateProvider_RoutedBuildsEachSourceOnce(t *testing.T) {
	cfg := config.GetDefaultConfig().Oracle
	cfg.Provider = ProviderRouted

	provider, err := NewFactory(nil).CreateProvider(context.Background(), cfg)
	require.NoError(t, err)
	defer provider.Close()

	routed, ok := provider.inner.(*RoutingProvider)
	require.True(t, ok)
	assert.Equal(t, []string{SourceJupiter, SourcePyth, SourceStatic}, routed.Sources())
	assert.Equal(t, SourcePyth, routed.fallback)
	assert.Equal(t, SourceJupiter, routed.routes[entities.TokenHBB])
	assert.Equal(t, SourceStatic, routed.routes[entities.TokenFTT])
}

func TestFactory_CreateProvider_RoutedQuotesPerToken(t *testing.T) {
	cfg := testOracleConfig("")
	hbbMint := cfg.Jupiter.Mints["hbb"]
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, hbbMint, r.URL.Query().Get("ids"), "only HBB is routed to jupiter")
		_, _ = w.Write([]byte(`{"data":{"` + hbbMint + `":{"id":"` + hbbMint + `","type":"derivedPrice","price":"0.25"}}}`))
	}))
	defer server.Close()

	cfg = testOracleConfig(server.URL)
	cfg.Provider = ProviderRouted
	cfg.Static = config.StaticConfig{Prices: map[string]string{"sol": "40"}}
	cfg.Routing = config.RoutingConfig{Default: ProviderStatic, Tokens: map[string]string{"HBB": "Jupiter"}}

	provider, err := NewFactory(nil).CreateProvider(context.Background(), cfg)
	require.NoError(t, err)
	defer provider.Close()

	book, err := provider.GetPrices(context.Background(), []entities.Token{entities.TokenSOL, entities.TokenHBB})
	require.NoError(t, err)
	assert.Equal(t, SourceStatic, book[entities.TokenSOL].Source)
	assert.Equal(t, "40", book[entities.TokenSOL].Price.String())
	assert.Equal(t, SourceJupiter, book[entities.TokenHBB].Source)
	assert.Equal(t, "0.25", book[entities.TokenHBB].Price.String())
}

func TestFactory_CreateProvider_RoutedUnknownSource(t *testing.T) {
	cfg := config.GetDefaultConfig().Oracle
	cfg.Provider = ProviderRouted
	cfg.Routing.Tokens["hbb"] = "orca"

	_, err := NewFactory(nil).CreateProvider(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
