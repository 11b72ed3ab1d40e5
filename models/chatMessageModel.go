package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

type ChatMessage struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User_id          string             `bson:"user_id" json:"user"`
	Message          string             `bson:"message" json:"message"`
	Sender           string             `bson:"sender" json:"sender"`
	Timestamp        time.Time          `bson:"timestamp" json:"timestamp"`
	RelatedFoodItems []string           `bson:"related_food_items" json:"relatedFoodItems"`
	Intent           string             `bson:"intent" json:"intent"`
	SessionID        string             `bson:"session_id" json:"sessionId"`
}
