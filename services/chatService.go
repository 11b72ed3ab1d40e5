package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ayush-478/Veggio/models"
	"github.com/Ayush-478/Veggio/store"
)

// Exchange is one user message together with the assistant's answer.
type Exchange struct {
	UserMessage *models.ChatMessage `json:"userMessage"`
	BotMessage  *models.ChatMessage `json:"botMessage"`
	SessionID   string              `json:"sessionId"`
}

// ChatService keeps the conversation history around the Assistant.
type ChatService struct {
	messages  store.ChatStore
	assistant *Assistant
	now       func() time.Time
}

func NewChatService(st store.ChatStore, assistant *Assistant) *ChatService {
	return &ChatService{messages: st, assistant: assistant, now: time.Now}
}

func NewSessionID() string {
	return "session_" + uuid.NewString()
}

// SendMessage stores the user's message, asks the assistant and stores the
// reply. A new session is opened when sessionID is empty.
func (s *ChatService) SendMessage(ctx context.Context, user *models.User, message, sessionID string) (*Exchange, error) {
	if strings.TrimSpace(message) == "" {
		return nil, Validation("Message is required")
	}
	if sessionID == "" {
		sessionID = NewSessionID()
	}
	userID := user.ID.Hex()

	userMessage := &models.ChatMessage{
		User_id:          userID,
		Message:          message,
		Sender:           models.SenderUser,
		Timestamp:        s.now(),
		RelatedFoodItems: []string{},
		SessionID:        sessionID,
	}
	if err := s.messages.AppendMessage(ctx, userMessage); err != nil {
		return nil, Internal("save chat message", err)
	}

	reply := s.assistant.Respond(ctx, message, user)

	botMessage := &models.ChatMessage{
		User_id:          userID,
		Message:          reply.Text,
		Sender:           models.SenderBot,
		Timestamp:        s.now(),
		RelatedFoodItems: reply.RelatedFoodItems,
		Intent:           string(reply.Intent),
		SessionID:        sessionID,
	}
	if err := s.messages.AppendMessage(ctx, botMessage); err != nil {
		return nil, Internal("save chat reply", err)
	}

	return &Exchange{UserMessage: userMessage, BotMessage: botMessage, SessionID: sessionID}, nil
}

func (s *ChatService) History(ctx context.Context, userID, sessionID string) ([]models.ChatMessage, error) {
	messages, err := s.messages.ListMessages(ctx, userID, sessionID)
	if err != nil {
		return nil, Internal("list chat messages", err)
	}
	return messages, nil
}

// Clear removes the user's messages in sessionID, or in every session when
// sessionID is empty.
func (s *ChatService) Clear(ctx context.Context, userID, sessionID string) (int64, error) {
	deleted, err := s.messages.ClearMessages(ctx, userID, sessionID)
	if err != nil {
		return 0, Internal("clear chat messages", err)
	}
	return deleted, nil
}
