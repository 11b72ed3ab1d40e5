package controller

import (
	"net/http"
)

type chatMessageRequest struct {
	Message   string `json:"message" validate:"max=2000"`
	SessionID string `json:"sessionId" validate:"max=100"`
}

func (c *Controller) SendChatMessage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	var req chatMessageRequest
	if err := decode(r, &req); err != nil {
		c.handleError(w, r, err)
		return
	}
	exchange, err := c.Chat.SendMessage(ctx, currentUser(r), req.Message, req.SessionID)
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exchange)
}

func (c *Controller) GetChatHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	messages, err := c.Chat.History(ctx, currentUser(r).ID.Hex(), r.URL.Query().Get("sessionId"))
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (c *Controller) ClearChatHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	deleted, err := c.Chat.Clear(ctx, currentUser(r).ID.Hex(), r.URL.Query().Get("sessionId"))
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Chat history cleared",
		"deleted": deleted,
	})
}
