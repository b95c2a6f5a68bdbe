package wsapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"

	"github.com/toolrelay/toolrelay/internal/errors"
	"github.com/toolrelay/toolrelay/internal/rpc"
)

// Manager owns every live websocket channel. Each connection runs its own
// read loop; connections share nothing mutable with one another, so one
// channel failing or closing never disturbs the rest.
type Manager struct {
	log        *slog.Logger
	dispatcher *rpc.Dispatcher
	upgrader   websocket.Upgrader

	mu    sync.Mutex
	conns map[string]*conn
}

// NewManager creates a websocket manager over the given dispatcher.
//
// Cross-origin upgrades are allowed; origin policy is enforced by the CORS
// layer in front of the router, matching the REST endpoints.
func NewManager(log *slog.Logger, dispatcher *rpc.Dispatcher) *Manager {
	return &Manager{
		log:        log.With("component", "wsapi"),
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		conns: make(map[string]*conn, 8),
	}
}

// ActiveConnections returns the number of live channels.
func (m *Manager) ActiveConnections() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.conns)
}

// ServeHTTP upgrades the request and serves the channel until it closes.
func (m *Manager) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error to the client.
		m.log.Warn("Websocket upgrade failed", "error", err)

		return
	}

	c := &conn{
		id: ulid.Make().String(),
		ws: ws,
	}

	m.add(c)
	m.log.Info("Connection established", "conn_id", c.id, "active", m.ActiveConnections())

	// Cancelled when the read loop exits so abandoned in-flight calls can
	// observe the disconnect.
	ctx, cancel := context.WithCancel(r.Context())

	m.readLoop(ctx, cancel, c)

	m.remove(c)
	c.close()
	m.log.Info("Connection closed", "conn_id", c.id, "active", m.ActiveConnections())
}

// readLoop reads frames until the channel dies. Each message is dispatched
// in its own goroutine so a slow tool cannot stall the loop; responses
// correlate by JSON-RPC id, not by completion order.
func (m *Manager) readLoop(ctx context.Context, cancel context.CancelFunc, c *conn) {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				m.log.Debug("Read failed", "conn_id", c.id, "error", err)
			}

			break
		}

		c.wg.Add(1)

		go func() {
			defer c.wg.Done()

			resp := m.dispatcher.Handle(ctx, data)
			if err := c.send(resp); err != nil {
				m.log.Debug("Failed to send response", "conn_id", c.id, "error", err)
			}
		}()
	}

	// Cancel before waiting so a handler blocked on the context cannot
	// stall the teardown, then let in-flight responses finish writing.
	cancel()
	c.wg.Wait()
}

func (m *Manager) add(c *conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.conns[c.id] = c
}

func (m *Manager) remove(c *conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.conns, c.id)
}

// CloseAll force-closes every live channel. Called during server shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	conns := make([]*conn, 0, len(m.conns))

	for _, c := range m.conns {
		conns = append(conns, c)
	}

	m.mu.Unlock()

	for _, c := range conns {
		c.close()
	}
}

// conn is one persistent channel. Lifecycle is connected then closed, with
// closed terminal. The write mutex serializes frames from the per-message
// goroutines; gorilla/websocket permits only one concurrent writer.
type conn struct {
	id string
	ws *websocket.Conn
	wg sync.WaitGroup

	writeMu sync.Mutex
	closed  bool
}

func (c *conn) send(resp *rpc.Response) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.closed {
		return errors.ErrConnClosed
	}

	return c.ws.WriteJSON(resp)
}

func (c *conn) close() {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	_ = c.ws.Close()
}
