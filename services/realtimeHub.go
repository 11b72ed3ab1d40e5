package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Ayush-478/Veggio/models"
)

const writeWait = 10 * time.Second

// Event kinds pushed to websocket clients.
const (
	EventOrderStatus  = "order.status"
	EventChatResponse = "chatbot.response"
)

type OrderStatusEvent struct {
	Kind    string             `json:"kind"`
	OrderID string             `json:"orderId"`
	Status  models.OrderStatus `json:"status"`
}

type ChatResponseEvent struct {
	Kind string `json:"kind"`
	*Exchange
}

// WSClient is one websocket connection of a user. Writes are serialised
// because a gorilla connection allows a single concurrent writer.
type WSClient struct {
	UserID string
	Conn   *websocket.Conn
	mu     sync.Mutex
}

func (c *WSClient) WriteJSON(payload interface{}) error {
	msg, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.write(websocket.TextMessage, msg)
}

func (c *WSClient) Ping() error {
	return c.write(websocket.PingMessage, nil)
}

func (c *WSClient) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Conn.WriteMessage(messageType, data)
}

// RealtimeHub fans events out to every connection of a user.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
	logger  *zap.Logger
}

func NewRealtimeHub(logger *zap.Logger) *RealtimeHub {
	return &RealtimeHub{
		clients: make(map[string]map[*WSClient]struct{}),
		logger:  logger.Named("realtime"),
	}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("client connected", zap.String("user", c.UserID))
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
	h.logger.Debug("client disconnected", zap.String("user", c.UserID))
}

// Connections reports how many sockets the user has open.
func (h *RealtimeHub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *RealtimeHub) Broadcast(userID string, payload interface{}) {
	h.mu.RLock()
	clients := make([]*WSClient, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.WriteJSON(payload); err != nil {
			h.logger.Warn("push failed", zap.String("user", userID), zap.Error(err))
		}
	}
}

// OrderStatusChanged pushes the order's current status to its owner.
func (h *RealtimeHub) OrderStatusChanged(order *models.Order) {
	h.Broadcast(order.User_id, OrderStatusEvent{
		Kind:    EventOrderStatus,
		OrderID: order.ID.Hex(),
		Status:  order.OrderStatus,
	})
}
