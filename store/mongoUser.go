package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ayush-478/Veggio/models"
)

func (s *MongoStore) InsertUser(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := s.userCollection.InsertOne(ctx, user)
	return translate(err)
}

func (s *MongoStore) FindUser(ctx context.Context, id string) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := s.userCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.userCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *MongoStore) SetCalorieGoal(ctx context.Context, id string, goal int) error {
	return s.setUserFields(ctx, id, bson.M{"calorie_goal": goal})
}

func (s *MongoStore) SetDietaryPreferences(ctx context.Context, id string, preferences []string) error {
	return s.setUserFields(ctx, id, bson.M{"dietary_preferences": preferences})
}

func (s *MongoStore) setUserFields(ctx context.Context, id string, fields bson.M) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	fields["updated_at"] = s.now()
	result, err := s.userCollection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
