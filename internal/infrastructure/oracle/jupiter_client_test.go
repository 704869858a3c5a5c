package oracle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJupiterClient_GetPrices(t *testing.T) {
	now := time.Date(2022, 5, 1, 12, 0, 0, 0, time.UTC)
	cfg := testOracleConfig("")
	solMint := cfg.Jupiter.Mints["sol"]
	hbbMint := cfg.Jupiter.Mints["hbb"]

	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{
			name: "todos los tokens cotizados",
			body: `{"data":{"` + solMint + `":{"id":"` + solMint + `","type":"derivedPrice","price":"41.5"},"` +
				hbbMint + `":{"id":"` + hbbMint + `","type":"derivedPrice","price":"0.25"}},"timeTaken":0.01}`,
		},
		{
			name:    "mint sin precio",
			body:    `{"data":{"` + solMint + `":{"id":"` + solMint + `","type":"derivedPrice","price":"41.5"},"` + hbbMint + `":null}}`,
			wantErr: interfaces.ErrPriceUnavailable,
		},
		{
			name:    "precio invalido",
			body:    `{"data":{"` + solMint + `":{"id":"` + solMint + `","price":"-1"},"` + hbbMint + `":{"id":"` + hbbMint + `","price":"0.25"}}}`,
			wantErr: interfaces.ErrPriceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ids := strings.Split(r.URL.Query().Get("ids"), ",")
				assert.ElementsMatch(t, []string{solMint, hbbMint}, ids)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			cfg := testOracleConfig(server.URL)
			client := NewJupiterClient(cfg, clockwork.NewFakeClockAt(now))
			book, err := client.GetPrices(context.Background(), []entities.Token{entities.TokenSOL, entities.TokenHBB})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "41.5", book[entities.TokenSOL].Price.String())
			assert.Equal(t, "0.25", book[entities.TokenHBB].Price.String())
			assert.Equal(t, now, book[entities.TokenHBB].Timestamp)
			assert.Equal(t, SourceJupiter, book[entities.TokenHBB].Source)
		})
	}
}

func TestJupiterClient_ServerDown(t *testing.T) {
	server := createMockServer(http.StatusServiceUnavailable, nil, nil)
	defer server.Close()

	client := NewJupiterClient(testOracleConfig(server.URL), nil)
	_, err := client.GetPrices(context.Background(), []entities.Token{entities.TokenSOL})

	assert.ErrorIs(t, err, interfaces.ErrUpstreamUnavailable)
}
