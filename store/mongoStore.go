package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	database "github.com/Ayush-478/Veggio/config"
)

// MongoStore implements Store on top of a MongoDB database.
type MongoStore struct {
	client          *mongo.Client
	userCollection  *mongo.Collection
	foodCollection  *mongo.Collection
	cartCollection  *mongo.Collection
	orderCollection *mongo.Collection
	chatCollection  *mongo.Collection
	calorieTrackers *mongo.Collection
	expenseTrackers *mongo.Collection
	now             func() time.Time
}

var _ Store = (*MongoStore)(nil)

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{
		client:          client,
		userCollection:  database.OpenCollection(client, dbName, "users"),
		foodCollection:  database.OpenCollection(client, dbName, "food_items"),
		cartCollection:  database.OpenCollection(client, dbName, "carts"),
		orderCollection: database.OpenCollection(client, dbName, "orders"),
		chatCollection:  database.OpenCollection(client, dbName, "chat_messages"),
		calorieTrackers: database.OpenCollection(client, dbName, "calorie_trackers"),
		expenseTrackers: database.OpenCollection(client, dbName, "expense_trackers"),
		now:             time.Now,
	}
}

// EnsureIndexes creates the unique keys the ledger upserts rely on.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		coll  *mongo.Collection
		model mongo.IndexModel
	}{
		{s.userCollection, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{s.cartCollection, mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{s.orderCollection, mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}}},
		{s.chatCollection, mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "session_id", Value: 1}, {Key: "timestamp", Value: 1}}}},
		{s.calorieTrackers, mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{s.expenseTrackers, mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "year", Value: 1}, {Key: "month", Value: 1}}, Options: options.Index().SetUnique(true)}},
	}
	for _, idx := range indexes {
		if _, err := idx.coll.Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("create index on %s: %w", idx.coll.Name(), err)
		}
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}

// upsertWithRetry runs an upsert and retries once when a concurrent upsert
// on the same unique key won the insert race.
func upsertWithRetry(ctx context.Context, coll *mongo.Collection, filter, update interface{}) error {
	opts := options.Update().SetUpsert(true)
	_, err := coll.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		_, err = coll.UpdateOne(ctx, filter, update, opts)
	}
	return translate(err)
}
