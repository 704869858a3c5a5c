package oracle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHermesServer accepts one subscription per connection and pushes the queued feeds
type mockHermesServer struct {
	server   *httptest.Server
	upgrader websocket.Upgrader

	mu         sync.Mutex
	subscribed [][]string
	feeds      []HermesPriceFeed
	conns      []*websocket.Conn
}

func newMockHermesServer(feeds ...HermesPriceFeed) *mockHermesServer {
	m := &mockHermesServer{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		feeds:    feeds,
	}
	m.server = httptest.NewServer(http.HandlerFunc(m.handle))
	return m
}

func (m *mockHermesServer) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	var req HermesSubscribeRequest
	if err := conn.ReadJSON(&req); err != nil {
		return
	}

	m.mu.Lock()
	m.subscribed = append(m.subscribed, req.IDs)
	m.conns = append(m.conns, conn)
	feeds := append([]HermesPriceFeed(nil), m.feeds...)
	m.mu.Unlock()

	_ = conn.WriteJSON(HermesStreamMessage{Type: "response", Status: "success"})
	for i := range feeds {
		_ = conn.WriteJSON(HermesStreamMessage{Type: "price_update", PriceFeed: &feeds[i]})
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (m *mockHermesServer) wsURL() string {
	return "ws" + strings.TrimPrefix(m.server.URL, "http")
}

func (m *mockHermesServer) subscriptions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subscribed)
}

// dropConnections simulates the server closing every client
func (m *mockHermesServer) dropConnections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.conns {
		_ = c.Close()
	}
	m.conns = nil
}

func (m *mockHermesServer) Close() {
	m.dropConnections()
	m.server.Close()
}

func TestPythStreamClient_ReceivesUpdates(t *testing.T) {
	publish := time.Date(2022, 5, 1, 12, 0, 0, 0, time.UTC)
	server := newMockHermesServer(
		hermesFeed("0x"+solFeed, "4012000000", -8, publish.Unix()),
		hermesFeed(hbbFeed, "50", -2, publish.Unix()),
	)
	defer server.Close()

	cfg := testOracleConfig("")
	cfg.Pyth.WebSocketURL = server.wsURL()
	clock := clockwork.NewFakeClockAt(publish.Add(10 * time.Second))
	client := NewPythStreamClient(cfg, clock)
	defer client.Close()

	require.NoError(t, client.Connect())
	assert.True(t, client.IsConnected())

	tokens := []entities.Token{entities.TokenSOL, entities.TokenHBB}
	assert.Eventually(t, func() bool {
		_, err := client.GetPrices(context.Background(), tokens)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	book, err := client.GetPrices(context.Background(), tokens)
	require.NoError(t, err)
	assert.Equal(t, "40.12", book[entities.TokenSOL].Price.String())
	assert.Equal(t, "0.5", book[entities.TokenHBB].Price.String())
	assert.Equal(t, SourcePythStream, book[entities.TokenSOL].Source)
	assert.Equal(t, 1, server.subscriptions())
}

func TestPythStreamClient_StaleQuotesAreUnavailable(t *testing.T) {
	publish := time.Date(2022, 5, 1, 12, 0, 0, 0, time.UTC)
	server := newMockHermesServer(hermesFeed(solFeed, "4000000000", -8, publish.Unix()))
	defer server.Close()

	cfg := testOracleConfig("")
	cfg.Pyth.WebSocketURL = server.wsURL()
	clock := clockwork.NewFakeClockAt(publish)
	client := NewPythStreamClient(cfg, clock)
	defer client.Close()

	require.NoError(t, client.Connect())
	require.Eventually(t, func() bool {
		_, ok := client.Quote(entities.TokenSOL)
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	clock.Advance(cfg.MaxPriceAge + time.Second)
	_, err := client.GetPrices(context.Background(), []entities.Token{entities.TokenSOL})
	assert.ErrorIs(t, err, interfaces.ErrPriceUnavailable)
}

func TestPythStreamClient_OlderUpdateIgnored(t *testing.T) {
	client := NewPythStreamClient(testOracleConfig(""), nil)

	require.NoError(t, client.applyUpdate(hermesFeed(solFeed, "41", 0, 1651406460)))
	require.NoError(t, client.applyUpdate(hermesFeed(solFeed, "39", 0, 1651406400)))

	quote, ok := client.Quote(entities.TokenSOL)
	require.True(t, ok)
	assert.Equal(t, "41", quote.Price.String())
}

func TestPythStreamClient_HandleMessage(t *testing.T) {
	client := NewPythStreamClient(testOracleConfig(""), nil)

	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{name: "subscription ok", payload: `{"type":"response","status":"success"}`},
		{name: "subscription error", payload: `{"type":"response","status":"error","error":"unknown id"}`, wantErr: true},
		{name: "update sin feed", payload: `{"type":"price_update"}`, wantErr: true},
		{name: "feed desconocido se ignora", payload: `{"type":"price_update","price_feed":{"id":"ffff","price":{"price":"1","expo":0,"publish_time":1}}}`},
		{name: "json invalido", payload: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.handleMessage([]byte(tt.payload))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPythStreamClient_ReconnectsAfterDrop(t *testing.T) {
	server := newMockHermesServer()
	defer server.Close()

	cfg := testOracleConfig("")
	cfg.Pyth.WebSocketURL = server.wsURL()
	client := NewPythStreamClient(cfg, nil)
	defer client.Close()

	require.NoError(t, client.Connect())
	require.Eventually(t, func() bool { return server.subscriptions() == 1 }, 2*time.Second, 10*time.Millisecond)

	server.dropConnections()

	// first reconnect is scheduled one second after the drop
	assert.Eventually(t, func() bool {
		return server.subscriptions() == 2 && client.IsConnected()
	}, 5*time.Second, 20*time.Millisecond)

	reconnecting, attempts := client.GetReconnectionStatus()
	assert.False(t, reconnecting)
	assert.Zero(t, attempts)
}

func TestPythStreamClient_ConnectFailure(t *testing.T) {
	cfg := testOracleConfig("")
	cfg.Pyth.WebSocketURL = "ws://127.0.0.1:1"
	client := NewPythStreamClient(cfg, nil)

	err := client.Connect()
	assert.ErrorIs(t, err, ErrConnectionFailed)
	assert.False(t, client.IsConnected())

	require.NoError(t, client.Close())
	assert.ErrorIs(t, client.Connect(), ErrStreamClosed)
}
