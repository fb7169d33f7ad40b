package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"gamerverse/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBuffer     = 16
)

// Client is one WebSocket connection. Each client owns the cancel func of the
// subscription feeding it, so removing the client stops its listener.
type Client struct {
	ID     string
	UserID string
	Conn   *websocket.Conn

	send   chan []byte
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

func NewClient(userID string, conn *websocket.Conn, cancel context.CancelFunc) *Client {
	if cancel == nil {
		cancel = func() {}
	}
	return &Client{
		ID:     uuid.NewString(),
		UserID: userID,
		Conn:   conn,
		send:   make(chan []byte, sendBuffer),
		cancel: cancel,
	}
}

// Push queues message without blocking. It returns false once the client is
// closed or its buffer is full; a full buffer closes the client.
func (c *Client) Push(message []byte) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	select {
	case c.send <- message:
		c.mu.Unlock()
		return true
	default:
		c.mu.Unlock()
		logger.Warn("WebSocket client %s is too slow, closing", c.ID)
		c.close()
		return false
	}
}

func (c *Client) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
	close(c.send)
}

type Manager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Start runs the manager loop until ctx ends, then closes every client.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		defer close(m.done)
		for {
			select {
			case client := <-m.register:
				m.mutex.Lock()
				m.clients[client.ID] = client
				m.mutex.Unlock()
				logger.Debug("WebSocket client registered: %s (user %s)", client.ID, client.UserID)

			case client := <-m.unregister:
				m.mutex.Lock()
				delete(m.clients, client.ID)
				m.mutex.Unlock()
				client.close()
				logger.Debug("WebSocket client unregistered: %s (user %s)", client.ID, client.UserID)

			case <-ctx.Done():
				m.mutex.Lock()
				for id, client := range m.clients {
					client.close()
					delete(m.clients, id)
				}
				m.mutex.Unlock()
				return
			}
		}
	}()
}

// Register returns false when the manager has already stopped.
func (m *Manager) Register(c *Client) bool {
	select {
	case m.register <- c:
		return true
	case <-m.done:
		c.close()
		return false
	}
}

func (m *Manager) Unregister(c *Client) {
	select {
	case m.unregister <- c:
	case <-m.done:
		c.close()
	}
}

func (m *Manager) SendToUser(userID string, message []byte) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	sent := 0
	for _, client := range m.clients {
		if client.UserID == userID && client.Push(message) {
			sent++
		}
	}
	return sent
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// Done is closed once the manager loop has exited.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// ReadPump drains the connection until it closes, answering pings. On exit the
// client is unregistered, which cancels its subscription.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error for %s: %v", c.ID, err)
			}
			return
		}

		if reply, ok := HandleIncoming(message); ok {
			c.Push(reply)
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("WebSocket write error for %s: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
