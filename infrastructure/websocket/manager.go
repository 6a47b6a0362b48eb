package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"heritage-archive/domain/services"
	"heritage-archive/pkg/logger"
)

// Text frame type, same value as websocket.TextMessage.
const textMessage = 1

// Conn is the part of a websocket connection the manager needs.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type client struct {
	conn   Conn
	userID string
	mu     sync.Mutex // one writer at a time per connection
}

// Manager tracks admin feed connections and fans moderation events out to them.
type Manager struct {
	mu      sync.RWMutex
	clients map[Conn]*client
	onCount func(n int)
}

func NewManager() *Manager {
	return &Manager{clients: make(map[Conn]*client)}
}

// OnClientCountChange registers a hook called with the new client count.
func (m *Manager) OnClientCountChange(fn func(n int)) {
	m.mu.Lock()
	m.onCount = fn
	m.mu.Unlock()
}

func (m *Manager) RegisterClient(conn Conn, userID string) {
	m.mu.Lock()
	m.clients[conn] = &client{conn: conn, userID: userID}
	n, hook := len(m.clients), m.onCount
	m.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	logger.WebSocket("client_registered", "Admin feed client connected", map[string]interface{}{
		"user_id": userID,
		"clients": n,
	})
}

func (m *Manager) UnregisterClient(conn Conn) {
	m.mu.Lock()
	c, ok := m.clients[conn]
	if ok {
		delete(m.clients, conn)
	}
	n, hook := len(m.clients), m.onCount
	m.mu.Unlock()

	if !ok {
		return
	}
	if hook != nil {
		hook(n)
	}
	logger.WebSocket("client_unregistered", "Admin feed client disconnected", map[string]interface{}{
		"user_id": c.userID,
		"clients": n,
	})
}

func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// Publish sends event to every connected client. Clients that fail a write are dropped.
func (m *Manager) Publish(event services.ModerationEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.WebSocketError("encode_event", "Failed to encode moderation event", err, map[string]interface{}{"type": event.Type})
		return
	}

	m.mu.RLock()
	targets := make([]*client, 0, len(m.clients))
	for _, c := range m.clients {
		targets = append(targets, c)
	}
	m.mu.RUnlock()

	for _, c := range targets {
		c.mu.Lock()
		err := c.conn.WriteMessage(textMessage, payload)
		c.mu.Unlock()

		if err != nil {
			logger.WebSocketError("write_event", "Dropping client after failed write", err, map[string]interface{}{"user_id": c.userID})
			m.UnregisterClient(c.conn)
			_ = c.conn.Close()
		}
	}
}

var _ services.EventPublisher = (*Manager)(nil)
