package oracle

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	"lending-metrics-api/internal/infrastructure/config"
)

const (
	solFeed = "ef0d8b6fda2ceba41da15d4095d1da392a0d2f8ed0c6c7bc0f4cfac8c280b56d"
	hbbFeed = "aa11"
)

func testOracleConfig(restURL string) config.OracleConfig {
	return config.OracleConfig{
		Provider:       ProviderPyth,
		Timeout:        2 * time.Second,
		RequestTimeout: time.Second,
		MaxRetries:     2,
		MaxPriceAge:    time.Minute,
		Pyth: config.PythConfig{
			RestURL: restURL,
			Feeds:   map[string]string{"sol": solFeed, "hbb": "0x" + hbbFeed},
		},
		Jupiter: config.JupiterConfig{
			URL:   restURL,
			Mints: map[string]string{"sol": "So11111111111111111111111111111111111111112", "hbb": "HBB111SCo9jkCejsZfz8Ec8nH7T6THF8KEKSnvwT6XK"},
		},
	}
}

// createMockServer answers every request with statusCode and response, counting calls
func createMockServer(statusCode int, response interface{}, calls *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		if response != nil {
			_ = json.NewEncoder(w).Encode(response)
		}
	}))
}

func hermesFeed(id, price string, expo int32, publish int64) HermesPriceFeed {
	return HermesPriceFeed{
		ID:    id,
		Price: HermesPrice{Price: price, Conf: "1000", Expo: expo, PublishTime: publish},
	}
}
