package oracle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPythRestClient_GetPrices_Success(t *testing.T) {
	var query []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, latestPricesPath, r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("parsed"))
		query = r.URL.Query()["ids[]"]
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"parsed":[
			{"id":"` + solFeed + `","price":{"price":"4012000000","conf":"1","expo":-8,"publish_time":1651406400}},
			{"id":"` + hbbFeed + `","price":{"price":"52","conf":"1","expo":-2,"publish_time":1651406401}}
		]}`))
	}))
	defer server.Close()

	client := NewPythRestClient(testOracleConfig(server.URL))
	book, err := client.GetPrices(context.Background(), []entities.Token{entities.TokenSOL, entities.TokenHBB})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{solFeed, "0x" + hbbFeed}, query)
	require.Len(t, book, 2)
	assert.Equal(t, "40.12", book[entities.TokenSOL].Price.String())
	assert.Equal(t, "0.52", book[entities.TokenHBB].Price.String())
	assert.Equal(t, SourcePyth, book[entities.TokenHBB].Source)
}

func TestPythRestClient_GetPrices_MissingFeed(t *testing.T) {
	response := HermesLatestResponse{Parsed: []HermesPriceFeed{hermesFeed(solFeed, "4000000000", -8, 1651406400)}}
	server := createMockServer(http.StatusOK, response, nil)
	defer server.Close()

	client := NewPythRestClient(testOracleConfig(server.URL))
	book, err := client.GetPrices(context.Background(), []entities.Token{entities.TokenSOL, entities.TokenHBB})

	assert.Nil(t, book)
	assert.ErrorIs(t, err, interfaces.ErrPriceUnavailable)
	assert.Contains(t, err.Error(), "HBB")
}

func TestPythRestClient_GetPrices_UnknownToken(t *testing.T) {
	var calls int32
	server := createMockServer(http.StatusOK, HermesLatestResponse{}, &calls)
	defer server.Close()

	client := NewPythRestClient(testOracleConfig(server.URL))
	_, err := client.GetPrices(context.Background(), []entities.Token{entities.TokenFTT})

	assert.ErrorIs(t, err, interfaces.ErrPriceUnavailable)
	assert.ErrorIs(t, err, ErrUnknownToken)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestPythRestClient_GetPrices_HTTPErrors(t *testing.T) {
	tests := []struct {
		name          string
		statusCode    int
		expectedCalls int32
	}{
		{name: "server error se reintenta", statusCode: http.StatusInternalServerError, expectedCalls: 2},
		{name: "rate limited se reintenta", statusCode: http.StatusTooManyRequests, expectedCalls: 2},
		{name: "client error no se reintenta", statusCode: http.StatusBadRequest, expectedCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := createMockServer(tt.statusCode, nil, &calls)
			defer server.Close()

			client := NewPythRestClient(testOracleConfig(server.URL))
			_, err := client.GetPrices(context.Background(), []entities.Token{entities.TokenSOL})

			assert.ErrorIs(t, err, interfaces.ErrUpstreamUnavailable)
			assert.NotErrorIs(t, err, interfaces.ErrPriceUnavailable)
			assert.Equal(t, tt.expectedCalls, atomic.LoadInt32(&calls))
		})
	}
}

func TestPythRestClient_GetPrices_Empty(t *testing.T) {
	client := NewPythRestClient(testOracleConfig("http://127.0.0.1:1"))
	book, err := client.GetPrices(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, book)
}
