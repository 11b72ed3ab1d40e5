package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ayush-478/Veggio/models"
)

func chatQuery(userID, sessionID string) bson.M {
	query := bson.M{"user_id": userID}
	if sessionID != "" {
		query["session_id"] = sessionID
	}
	return query
}

func (s *MongoStore) AppendMessage(ctx context.Context, msg *models.ChatMessage) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	if msg.RelatedFoodItems == nil {
		msg.RelatedFoodItems = []string{}
	}
	_, err := s.chatCollection.InsertOne(ctx, msg)
	return translate(err)
}

func (s *MongoStore) ListMessages(ctx context.Context, userID, sessionID string) ([]models.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.chatCollection.Find(ctx, chatQuery(userID, sessionID), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []models.ChatMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *MongoStore) ClearMessages(ctx context.Context, userID, sessionID string) (int64, error) {
	result, err := s.chatCollection.DeleteMany(ctx, chatQuery(userID, sessionID))
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
