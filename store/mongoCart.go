package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ayush-478/Veggio/models"
)

func (s *MongoStore) FindCart(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := s.cartCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

// SaveCart replaces the user's cart, creating it on first save.
func (s *MongoStore) SaveCart(ctx context.Context, cart *models.Cart) error {
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	opts := options.Replace().SetUpsert(true)
	_, err := s.cartCollection.ReplaceOne(ctx, bson.M{"user_id": cart.User_id}, cart, opts)
	return translate(err)
}
