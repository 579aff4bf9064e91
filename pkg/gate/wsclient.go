package gate

import (
	"errors"
	"sync"
	"time"

	"gateparser/internal/gate/memorystore"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ConnState is the lifecycle state of the WebSocket connection.
type ConnState int

const (
	StateClosed ConnState = iota
	StateConnecting
	StateOpen
	StateClosing
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	default:
		return "closed"
	}
}

var errConnNotOpen = errors.New("connection no longer open")

// WSClient handles the WebSocket connection to the Gate.io ticker stream:
// it connects, subscribes, keeps the connection alive with periodic pings
// and reconnects with a two-tier delay schedule for as long as the process
// runs. At most one transport connection is live at a time.
type WSClient struct {
	url       string
	pairStore *memorystore.MemoryPairStore
	handler   func([]byte)
	logger    *zap.Logger
	dialer    *websocket.Dialer

	keepaliveEvery  time.Duration
	shortRetryDelay time.Duration
	longRetryDelay  time.Duration

	mu             sync.Mutex
	state          ConnState
	conn           *websocket.Conn
	attempts       int
	ignored        map[string]struct{}
	keepaliveStop  chan struct{}
	reconnectTimer *time.Timer
	closed         bool
}

// NewWSClient creates a client for the given stream URL. The pairs to
// subscribe are read from the store on every connection attempt.
func NewWSClient(url string, store *memorystore.MemoryPairStore, logger *zap.Logger) *WSClient {
	return &WSClient{
		url:             url,
		pairStore:       store,
		logger:          logger,
		dialer:          &websocket.Dialer{HandshakeTimeout: defaultHandshakeTimeout},
		keepaliveEvery:  defaultKeepaliveInterval,
		shortRetryDelay: defaultShortRetryDelay,
		longRetryDelay:  defaultLongRetryDelay,
		state:           StateClosed,
		attempts:        minReconnectAttempts,
	}
}

// SetMessageHandler sets the function to handle incoming messages.
// Must be called before Start.
func (c *WSClient) SetMessageHandler(h func([]byte)) {
	c.handler = h
}

// SetIgnoredPairs excludes pairs from the subscription payload. Nothing
// populates this in the shipped configuration; the hook exists for
// embedding code.
func (c *WSClient) SetIgnoredPairs(pairs []string) {
	ignored := make(map[string]struct{}, len(pairs))
	for _, p := range pairs {
		ignored[p] = struct{}{}
	}
	c.mu.Lock()
	c.ignored = ignored
	c.mu.Unlock()
}

// SetHandshakeTimeout overrides the dial handshake timeout.
func (c *WSClient) SetHandshakeTimeout(d time.Duration) {
	if d > 0 {
		c.dialer.HandshakeTimeout = d
	}
}

// State returns the current connection state.
func (c *WSClient) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start fires the first connection attempt without blocking the caller.
// Dial failures never surface here: every failure path schedules the
// next attempt until Close is called.
func (c *WSClient) Start() {
	go c.connect()
}

func (c *WSClient) connect() {
	c.mu.Lock()
	if c.closed || c.state == StateConnecting || c.state == StateOpen {
		c.mu.Unlock()
		return
	}
	c.state = StateConnecting
	c.mu.Unlock()

	c.logger.Info("Connecting to WebSocket", zap.String("url", c.url))

	// Attempt to connect to the WebSocket server
	conn, _, err := c.dialer.Dial(c.url, nil)
	if err != nil {
		c.logger.Error("Failed to connect to WebSocket", zap.String("url", c.url), zap.Error(err))
		c.mu.Lock()
		if !c.closed {
			c.state = StateClosed
			c.scheduleReconnectLocked()
		}
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	if c.closed {
		// Close arrived while the dial was in flight
		c.mu.Unlock()
		conn.Close()
		return
	}
	c.conn = conn
	c.state = StateOpen
	c.attempts = minReconnectAttempts // a successful open resets the failure streak
	c.startKeepaliveLocked(conn)
	c.mu.Unlock()

	c.logger.Info("WebSocket connected", zap.String("url", c.url))

	c.subscribe(conn)
	go c.readLoop(conn)
}

// subscribe sends the single per-connection subscription request listing
// every stored pair not in the ignore set.
func (c *WSClient) subscribe(conn *websocket.Conn) {
	pairs := c.subscriptionPairs()
	if len(pairs) == 0 {
		c.logger.Error("No pairs to subscribe", zap.String("channel", ChannelSpotTickers))
		return
	}

	req := SubscribeRequest{
		Time:    time.Now().UnixMilli(),
		Channel: ChannelSpotTickers,
		Event:   EventSubscribe,
		Payload: pairs,
	}

	if err := conn.WriteJSON(req); err != nil {
		c.logger.Error("Failed to send subscription", zap.Error(err))
		c.dropConnection(conn, err)
		return
	}
	c.logger.Info("Subscription sent", zap.Int("pairs", len(pairs)))
}

// subscriptionPairs returns the stored pair list minus the ignore set.
func (c *WSClient) subscriptionPairs() []string {
	all := c.pairStore.GetAll()

	c.mu.Lock()
	ignored := c.ignored
	c.mu.Unlock()

	if len(ignored) == 0 {
		return all
	}
	pairs := make([]string, 0, len(all))
	for _, p := range all {
		if _, skip := ignored[p]; skip {
			continue
		}
		pairs = append(pairs, p)
	}
	return pairs
}

// readLoop delivers frames to the handler one at a time until the
// connection dies, then hands over to the reconnect path.
func (c *WSClient) readLoop(conn *websocket.Conn) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			c.logger.Warn("WebSocket read error", zap.Error(err))
			c.dropConnection(conn, err)
			return
		}

		if c.handler != nil {
			// c.logger.Debug("message received", zap.Int("bytes", len(msg)))
			c.handler(msg)
		}
	}
}

// keepaliveLoop pings the connection on a fixed period while it is open.
// A failed ping means the transport is gone: tear down and reconnect
// right away instead of waiting for the read side to notice.
func (c *WSClient) keepaliveLoop(conn *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(c.keepaliveEvery)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			open := c.state == StateOpen && c.conn == conn
			c.mu.Unlock()
			if !open {
				c.dropConnection(conn, errConnNotOpen)
				return
			}

			deadline := time.Now().Add(pingWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				c.logger.Warn("Keepalive ping failed", zap.Error(err))
				c.dropConnection(conn, err)
				return
			}
		}
	}
}

func (c *WSClient) startKeepaliveLocked(conn *websocket.Conn) {
	c.stopKeepaliveLocked()
	stop := make(chan struct{})
	c.keepaliveStop = stop
	go c.keepaliveLoop(conn, stop)
}

func (c *WSClient) stopKeepaliveLocked() {
	if c.keepaliveStop != nil {
		close(c.keepaliveStop)
		c.keepaliveStop = nil
	}
}

// dropConnection tears down conn when it is still the active transport
// and schedules a reconnect. Late calls from loops of an already replaced
// connection are no-ops.
func (c *WSClient) dropConnection(conn *websocket.Conn, cause error) {
	c.mu.Lock()
	if c.conn != conn {
		c.mu.Unlock()
		return
	}
	c.state = StateClosing
	c.stopKeepaliveLocked()
	c.conn = nil
	c.state = StateClosed
	if c.closed {
		c.mu.Unlock()
		conn.Close()
		return
	}
	c.scheduleReconnectLocked()
	c.mu.Unlock()

	conn.Close()
	c.logger.Info("WebSocket connection dropped", zap.String("cause", cause.Error()))
}

// scheduleReconnectLocked arms the reconnect timer with the delay for the
// current attempt, then advances the attempt counter. Caller must hold mu.
func (c *WSClient) scheduleReconnectLocked() {
	delay := c.retryDelay()
	c.logger.Info("Scheduling reconnect",
		zap.Int("attempt", c.attempts),
		zap.Duration("delay", delay))

	if c.attempts < maxReconnectAttempts {
		c.attempts++
	}
	c.reconnectTimer = time.AfterFunc(delay, c.connect)
}

// retryDelay picks the delay for the current attempt: short for the first
// shortRetryAttempts of a failure streak, long for every attempt after.
func (c *WSClient) retryDelay() time.Duration {
	if c.attempts > shortRetryAttempts {
		return c.longRetryDelay
	}
	return c.shortRetryDelay
}

// Close shuts the client down for good: the pending reconnect is
// cancelled, the keepalive stops and the connection closes. Safe to call
// more than once.
func (c *WSClient) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
	c.stopKeepaliveLocked()
	conn := c.conn
	c.conn = nil
	c.state = StateClosed
	c.mu.Unlock()

	c.logger.Info("WebSocket client closed")
	if conn == nil {
		return nil
	}
	return conn.Close()
}
