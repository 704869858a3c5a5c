package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"
	"lending-metrics-api/internal/infrastructure/config"
	"lending-metrics-api/internal/infrastructure/logging"
	"lending-metrics-api/internal/infrastructure/metrics"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
)

const (
	SourcePythStream = "pyth-stream"

	PingInterval         = 30 * time.Second
	WriteWait            = 10 * time.Second
	PongWait             = 60 * time.Second
	ReadBufferSize       = 1024
	WriteBufferSize      = 1024
	MaxReconnectAttempts = 10
	MaxReconnectDelay    = 60 * time.Second
)

// PythStreamClient keeps the latest quote of every configured feed from the Hermes
// websocket. GetPrices never blocks on the network: it serves what the stream has
// delivered so far.
type PythStreamClient struct {
	url         string
	feeds       map[entities.Token]string
	byFeed      map[string]entities.Token
	maxPriceAge time.Duration
	clock       clockwork.Clock

	mu             sync.RWMutex
	conn           *websocket.Conn
	latest         map[entities.Token]entities.PriceQuote
	isConnected    bool
	isReconnecting bool
	reconnectCount int
	reconnectTimer *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup // espera a las goroutines de lectura y ping al cerrar
}

// NewPythStreamClient creates a stream client; Connect starts it
func NewPythStreamClient(cfg config.OracleConfig, clock clockwork.Clock) *PythStreamClient {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	feeds := tokenMap(cfg.Pyth.Feeds)
	byFeed := make(map[string]entities.Token, len(feeds))
	for token, id := range feeds {
		byFeed[normalizeFeedID(id)] = token
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &PythStreamClient{
		url:         cfg.Pyth.WebSocketURL,
		feeds:       feeds,
		byFeed:      byFeed,
		maxPriceAge: cfg.MaxPriceAge,
		clock:       clock,
		latest:      make(map[entities.Token]entities.PriceQuote),
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (c *PythStreamClient) Name() string {
	return SourcePythStream
}

// Connect dials Hermes and subscribes to every configured feed
func (c *PythStreamClient) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isConnected {
		return nil
	}
	if c.ctx.Err() != nil {
		return ErrStreamClosed
	}

	u, err := url.Parse(c.url)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	dialer := websocket.Dialer{
		ReadBufferSize:   ReadBufferSize,
		WriteBufferSize:  WriteBufferSize,
		HandshakeTimeout: WriteWait,
	}
	conn, _, err := dialer.DialContext(c.ctx, u.String(), nil)
	if err != nil {
		metrics.UpdateWebSocketConnectionStatus(SourcePythStream, false)
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	ids := make([]string, 0, len(c.feeds))
	for _, id := range c.feeds {
		ids = append(ids, id)
	}
	_ = conn.SetWriteDeadline(time.Now().Add(WriteWait))
	if err := conn.WriteJSON(HermesSubscribeRequest{Type: "subscribe", IDs: ids}); err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: subscribe: %v", ErrConnectionFailed, err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(PongWait))
	})

	c.conn = conn
	c.isConnected = true
	c.isReconnecting = false
	c.reconnectCount = 0
	metrics.UpdateWebSocketConnectionStatus(SourcePythStream, true)

	c.wg.Add(2)
	go c.readMessages(conn)
	go c.pingHandler(conn)

	logging.Info(c.ctx, "Subscribed to Pyth price stream", logging.Fields{
		"feeds": len(ids),
		"url":   c.url,
	})
	return nil
}

// Close stops the stream and waits for its goroutines
func (c *PythStreamClient) Close() error {
	c.mu.Lock()
	c.cancel()
	c.isConnected = false
	c.isReconnecting = false
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	var err error
	if conn != nil {
		_ = conn.SetWriteDeadline(time.Now().Add(WriteWait))
		err = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	}

	c.wg.Wait()
	metrics.UpdateWebSocketConnectionStatus(SourcePythStream, false)
	return err
}

// GetPrices returns streamed quotes; missing or stale ones yield ErrPriceUnavailable
func (c *PythStreamClient) GetPrices(_ context.Context, tokens []entities.Token) (entities.PriceBook, error) {
	now := c.clock.Now()
	c.mu.RLock()
	defer c.mu.RUnlock()

	book := make(entities.PriceBook, len(tokens))
	for _, token := range tokens {
		quote, ok := c.latest[token]
		if !ok || isStale(quote, c.maxPriceAge, now) {
			continue
		}
		book[token] = quote
	}
	return complete(book, tokens)
}

// Quote returns the latest streamed quote for token regardless of age
func (c *PythStreamClient) Quote(token entities.Token) (entities.PriceQuote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.latest[token]
	return q, ok
}

func (c *PythStreamClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isConnected
}

// GetReconnectionStatus retorna información sobre el estado de reconexión
func (c *PythStreamClient) GetReconnectionStatus() (isReconnecting bool, attemptCount int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isReconnecting, c.reconnectCount
}

func (c *PythStreamClient) readMessages(conn *websocket.Conn) {
	defer c.wg.Done()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if c.ctx.Err() != nil {
				return
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Error(c.ctx, "Pyth stream unexpected close", logging.Fields{
					"error": err.Error(),
					"url":   c.url,
				})
			}
			c.scheduleReconnect(conn)
			return
		}

		if err := c.handleMessage(payload); err != nil {
			logging.Warn(c.ctx, "Error handling Pyth stream message", logging.Fields{
				"error": err.Error(),
				"url":   c.url,
			})
		}
	}
}

func (c *PythStreamClient) handleMessage(payload []byte) error {
	var msg HermesStreamMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}

	switch msg.Type {
	case "price_update":
		if msg.PriceFeed == nil {
			return fmt.Errorf("price_update without price_feed")
		}
		return c.applyUpdate(*msg.PriceFeed)
	case "response":
		if msg.Status == "error" {
			return fmt.Errorf("subscription error: %s", msg.Error)
		}
	}
	return nil
}

func (c *PythStreamClient) applyUpdate(feed HermesPriceFeed) error {
	token, ok := c.byFeed[normalizeFeedID(feed.ID)]
	if !ok {
		return nil
	}
	quote, err := feed.Quote(token, SourcePythStream)
	if err != nil {
		return err
	}

	c.mu.Lock()
	// updates can arrive out of order after a resubscribe
	if prev, ok := c.latest[token]; !ok || !quote.Timestamp.Before(prev.Timestamp) {
		c.latest[token] = quote
	}
	c.mu.Unlock()

	metrics.UpdateOraclePrice(string(token), SourcePythStream, quote.Price.InexactFloat64())
	return nil
}

// pingHandler envía pings periódicos para mantener la conexión activa
func (c *PythStreamClient) pingHandler(conn *websocket.Conn) {
	defer c.wg.Done()
	ticker := time.NewTicker(PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.mu.RLock()
			current := c.conn == conn
			c.mu.RUnlock()
			if !current {
				return
			}
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(WriteWait)); err != nil {
				c.scheduleReconnect(conn)
				return
			}
		}
	}
}

// scheduleReconnect programa un intento de reconexión con backoff lineal
func (c *PythStreamClient) scheduleReconnect(failed *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Prevenir múltiples reconexiones concurrentes
	if c.ctx.Err() != nil || c.isReconnecting || (failed != nil && c.conn != failed) {
		return
	}

	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.isConnected = false
	c.isReconnecting = true
	c.reconnectCount++
	metrics.UpdateWebSocketConnectionStatus(SourcePythStream, false)

	if c.reconnectCount > MaxReconnectAttempts {
		logging.Error(c.ctx, "Maximum Pyth stream reconnection attempts reached", logging.Fields{
			"max_attempts": MaxReconnectAttempts,
			"url":          c.url,
		})
		c.isReconnecting = false
		return
	}

	delay := time.Duration(c.reconnectCount) * time.Second
	if delay > MaxReconnectDelay {
		delay = MaxReconnectDelay
	}

	logging.Info(c.ctx, "Scheduling Pyth stream reconnection", logging.Fields{
		"delay_seconds": delay.Seconds(),
		"attempt":       c.reconnectCount,
		"url":           c.url,
	})
	c.reconnectTimer = time.AfterFunc(delay, c.performReconnect)
}

func (c *PythStreamClient) performReconnect() {
	c.mu.Lock()
	if !c.isReconnecting || c.ctx.Err() != nil {
		c.mu.Unlock()
		return
	}
	attempt := c.reconnectCount
	c.isReconnecting = false
	c.mu.Unlock()

	metrics.RecordWebSocketReconnectionAttempt(SourcePythStream)

	if err := c.Connect(); err != nil {
		logging.Warn(c.ctx, "Pyth stream reconnection attempt failed", logging.Fields{
			"attempt": attempt,
			"error":   err.Error(),
			"url":     c.url,
		})
		c.scheduleReconnect(nil)
		return
	}

	logging.Info(c.ctx, "Pyth stream reconnected", logging.Fields{
		"attempts_taken": attempt,
		"url":            c.url,
	})
}

var _ interfaces.PriceProvider = (*PythStreamClient)(nil)
