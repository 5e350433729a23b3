package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tigerlife/internal/domain"
	"tigerlife/internal/pkg/logger"
)

const sendBuffer = 64

// Event is the frame pushed to websocket clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

const (
	EventNotification  = "notification"
	EventNotifications = "notifications"
	EventUnreadCount   = "unread_count"
	EventConversations = "conversations"
	EventMessages      = "messages"
	EventError         = "error"
)

type client struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte

	mu     sync.Mutex
	closed bool
}

// push queues data without blocking. A slow client loses the frame.
func (c *client) push(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Hub tracks every open connection per user. A user may hold several
// connections (one per tab).
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*client]struct{}
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[int64]map[*client]struct{}),
		log:     logger.OrNop(log),
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.userID]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[c.userID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if set, ok := h.clients[c.userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.userID)
		}
	}
	h.mu.Unlock()
	c.close()
}

func (h *Hub) pushTo(c *client, e *Event) {
	data, err := json.Marshal(e)
	if err != nil {
		h.log.Warn("failed to encode realtime event", zap.String("type", e.Type), zap.Error(err))
		return
	}
	c.push(data)
}

// SendToUser pushes e to every connection of userID and returns how many
// accepted it.
func (h *Hub) SendToUser(userID int64, e *Event) int {
	data, err := json.Marshal(e)
	if err != nil {
		h.log.Warn("failed to encode realtime event", zap.String("type", e.Type), zap.Error(err))
		return 0
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range targets {
		if c.push(data) {
			delivered++
		}
	}
	return delivered
}

// Deliver pushes a freshly created notification to its recipient. Offline
// users simply pick it up on their next poll.
func (h *Hub) Deliver(_ context.Context, n *domain.Notification) error {
	h.SendToUser(n.UserID, &Event{Type: EventNotification, Payload: n})
	return nil
}

func (h *Hub) IsOnline(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close drops every connection; their write pumps exit and close the sockets.
func (h *Hub) Close() {
	h.mu.Lock()
	all := h.clients
	h.clients = make(map[int64]map[*client]struct{})
	h.mu.Unlock()

	for _, set := range all {
		for c := range set {
			c.close()
		}
	}
}
