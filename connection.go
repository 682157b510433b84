package main

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// socket is the slice of *websocket.Conn the gateway needs. Tests substitute
// a recording implementation.
type socket interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Conn manages a single WebSocket session. The connection ID doubles as the
// player ID for the session's lifetime.
type Conn struct {
	ID     string
	ws     socket
	mu     sync.Mutex // serializes writes and guards closed
	closed bool
}

// NewConn wraps a socket with a fresh connection identity.
func NewConn(ws socket) *Conn {
	return &Conn{ID: uuid.NewString(), ws: ws}
}

// Send serializes msg to JSON and writes it to the socket.
func (c *Conn) Send(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return c.sendRaw(data)
}

func (c *Conn) sendRaw(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Close marks the connection closed and closes the socket.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.ws.Close()
}

// ConnManager tracks live connections and implements Gateway. Transport
// errors are logged here and never surface into game state; a failed send to
// one recipient does not stop delivery to the rest.
type ConnManager struct {
	mu    sync.RWMutex
	conns map[string]*Conn
	log   *slog.Logger
}

// NewConnManager creates an empty connection manager.
func NewConnManager(log *slog.Logger) *ConnManager {
	return &ConnManager{conns: make(map[string]*Conn), log: log}
}

// Add registers a connection.
func (m *ConnManager) Add(c *Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conns[c.ID] = c
}

// Remove unregisters a connection.
func (m *ConnManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, id)
}

// Count returns the number of active connections.
func (m *ConnManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

func (m *ConnManager) snapshot() []*Conn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]*Conn, 0, len(m.conns))
	for _, c := range m.conns {
		list = append(list, c)
	}
	return list
}

// SendTo unicasts msg to one connection. Unknown IDs are ignored: bots and
// just-departed players have no socket.
func (m *ConnManager) SendTo(id string, msg any) {
	m.mu.RLock()
	c, ok := m.conns[id]
	m.mu.RUnlock()
	if !ok {
		return
	}
	if err := c.Send(msg); err != nil {
		m.log.Warn("unicast failed", "conn", id, "err", err)
	}
}

// SendAll broadcasts msg to every connection, marshaling once.
func (m *ConnManager) SendAll(msg any) {
	m.sendAllExcept("", msg)
}

// SendAllExcept broadcasts msg to every connection but one.
func (m *ConnManager) SendAllExcept(id string, msg any) {
	m.sendAllExcept(id, msg)
}

func (m *ConnManager) sendAllExcept(skip string, msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		m.log.Error("broadcast marshal failed", "err", err)
		return
	}
	for _, c := range m.snapshot() {
		if c.ID == skip {
			continue
		}
		if err := c.sendRaw(data); err != nil {
			m.log.Warn("broadcast send failed", "conn", c.ID, "err", err)
		}
	}
}

// ReadLoop pumps inbound messages into the game until the client goes away,
// then runs the disconnect transition. Blocks for the connection's lifetime.
func (c *Conn) ReadLoop(m *ConnManager, game *Game, log *slog.Logger) {
	defer func() {
		m.Remove(c.ID)
		game.HandleDisconnect(c.ID)
		c.Close()
	}()

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("read failed", "conn", c.ID, "err", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Warn("bad message", "conn", c.ID, "err", err)
			continue
		}
		game.Dispatch(c.ID, msg)
	}
}
