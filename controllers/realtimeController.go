package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Ayush-478/Veggio/services"
)

const (
	pingPeriod      = 25 * time.Second
	defaultPongWait = 60 * time.Second
	maxInboundSize  = 8 << 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// inbound is a message sent by a websocket client.
type inbound struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type socketError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Realtime upgrades the request and keeps the socket registered with the hub
// until the client goes away.
func (c *Controller) Realtime(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.Logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	conn.SetReadLimit(maxInboundSize)

	// Clients that stop answering pings are dropped once the deadline passes.
	ping, wait := c.socketTimings()
	_ = conn.SetReadDeadline(time.Now().Add(wait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wait))
	})

	client := &services.WSClient{UserID: user.ID.Hex(), Conn: conn}
	c.Hub.Register(client)
	defer c.Hub.Unregister(client)

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(ping)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := client.Ping(); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(wait))
		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type != "chatbot_message" {
			continue
		}

		ctx, cancel := c.socketContext()
		exchange, err := c.Chat.SendMessage(ctx, user, msg.Message, msg.SessionID)
		cancel()
		if err != nil {
			reply := socketError{Kind: "error", Message: "Server error"}
			if services.KindOf(err) == services.KindValidation {
				reply.Message = err.Error()
			} else {
				c.Logger.Error("websocket chat failed", zap.String("user", client.UserID), zap.Error(err))
			}
			_ = client.WriteJSON(reply)
			continue
		}
		_ = client.WriteJSON(services.ChatResponseEvent{Kind: services.EventChatResponse, Exchange: exchange})
	}
}

func (c *Controller) socketTimings() (ping, wait time.Duration) {
	wait = c.PongWait
	if wait <= 0 {
		wait = defaultPongWait
	}
	ping = pingPeriod
	if ping >= wait {
		ping = wait / 2
	}
	return ping, wait
}

func (c *Controller) socketContext() (context.Context, context.CancelFunc) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}
