package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ayush-478/Veggio/models"
)

func (s *MongoStore) InsertOrder(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	_, err := s.orderCollection.InsertOne(ctx, order)
	return translate(err)
}

func (s *MongoStore) FindOrder(ctx context.Context, id string) (*models.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var order models.Order
	if err := s.orderCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *MongoStore) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.orderCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *MongoStore) LatestOrder(ctx context.Context, userID string) (*models.Order, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	var order models.Order
	if err := s.orderCollection.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *MongoStore) TransitionOrder(ctx context.Context, id string, from models.OrderStatus, entry models.StatusEntry) (*models.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"order_status": entry.Status, "updated_at": entry.Timestamp}
	if entry.Status == models.StatusDelivered {
		set["actual_delivery_time"] = entry.Timestamp
	}
	update := bson.M{
		"$set":  set,
		"$push": bson.M{"status_history": entry},
	}
	filter := bson.M{"_id": oid, "order_status": from}

	return s.conditionalOrderUpdate(ctx, oid, filter, update)
}

func (s *MongoStore) SetOrderFeedback(ctx context.Context, id string, rating int, feedback string, at time.Time) (*models.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	filter := bson.M{
		"_id":          oid,
		"order_status": models.StatusDelivered,
		"rating":       bson.M{"$exists": false},
	}
	update := bson.M{"$set": bson.M{"rating": rating, "feedback": feedback, "updated_at": at}}

	return s.conditionalOrderUpdate(ctx, oid, filter, update)
}

// conditionalOrderUpdate applies update when filter still matches and tells
// a missing order apart from one in the wrong state.
func (s *MongoStore) conditionalOrderUpdate(ctx context.Context, oid primitive.ObjectID, filter, update bson.M) (*models.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	err := s.orderCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	if err == nil {
		return &order, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	count, err := s.orderCollection.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}
	return nil, ErrConflict
}
