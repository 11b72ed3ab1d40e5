package store

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ayush-478/Veggio/models"
)

func foodQuery(f FoodFilter) bson.M {
	query := bson.M{}
	if f.AvailableOnly {
		query["is_available"] = true
	}
	if f.Vegetarian {
		query["is_vegetarian"] = true
	}
	if f.Vegan {
		query["is_vegan"] = true
	}
	if f.GlutenFree {
		query["is_gluten_free"] = true
	}
	if f.Popular {
		query["is_popular"] = true
	}
	if f.Recommended {
		query["is_recommended"] = true
	}
	if len(f.Categories) > 0 {
		query["category"] = bson.M{"$in": f.Categories}
	}
	if f.MaxCalories != nil {
		query["nutritional_info.calories"] = bson.M{"$lt": *f.MaxCalories}
	}
	if f.MinProtein != nil {
		query["nutritional_info.protein"] = bson.M{"$gt": *f.MinProtein}
	}
	if f.NameContains != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.NameContains), Options: "i"}
	}
	if f.ExcludeIngredient != "" {
		query["ingredients"] = bson.M{"$not": primitive.Regex{Pattern: regexp.QuoteMeta(f.ExcludeIngredient), Options: "i"}}
	}
	return query
}

func (s *MongoStore) InsertFood(ctx context.Context, food *models.Food) error {
	if food.ID.IsZero() {
		food.ID = primitive.NewObjectID()
	}
	if food.Ratings == nil {
		food.Ratings = []models.Rating{}
	}
	_, err := s.foodCollection.InsertOne(ctx, food)
	return translate(err)
}

func (s *MongoStore) FindFood(ctx context.Context, id string) (*models.Food, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var food models.Food
	if err := s.foodCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&food); err != nil {
		return nil, translate(err)
	}
	return &food, nil
}

func (s *MongoStore) FindFoods(ctx context.Context, ids []string) ([]models.Food, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	cursor, err := s.foodCollection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	foods := []models.Food{}
	if err := cursor.All(ctx, &foods); err != nil {
		return nil, err
	}
	return foods, nil
}

func (s *MongoStore) ListFoods(ctx context.Context, filter FoodFilter) ([]models.Food, error) {
	opts := options.Find()
	if filter.SortByRating {
		opts.SetSort(bson.D{{Key: "average_rating", Value: -1}, {Key: "_id", Value: 1}})
	} else {
		opts.SetSort(bson.D{{Key: "_id", Value: 1}})
	}
	if filter.Skip > 0 {
		opts.SetSkip(int64(filter.Skip))
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := s.foodCollection.Find(ctx, foodQuery(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	foods := []models.Food{}
	if err := cursor.All(ctx, &foods); err != nil {
		return nil, err
	}
	return foods, nil
}

func (s *MongoStore) CountFoods(ctx context.Context, filter FoodFilter) (int64, error) {
	return s.foodCollection.CountDocuments(ctx, foodQuery(filter))
}

func (s *MongoStore) UpdateFood(ctx context.Context, food *models.Food) error {
	update := bson.M{"$set": bson.M{
		"name":             food.Name,
		"description":      food.Description,
		"price":            food.Price,
		"image":            food.Image,
		"category":         food.Category,
		"is_vegetarian":    food.IsVegetarian,
		"is_vegan":         food.IsVegan,
		"is_gluten_free":   food.IsGlutenFree,
		"nutritional_info": food.NutritionalInfo,
		"ingredients":      food.Ingredients,
		"preparation_time": food.PreparationTime,
		"spicy_level":      food.SpicyLevel,
		"is_available":     food.IsAvailable,
		"is_popular":       food.IsPopular,
		"is_recommended":   food.IsRecommended,
		"discount":         food.Discount,
		"updated_at":       food.Updated_at,
	}}
	result, err := s.foodCollection.UpdateOne(ctx, bson.M{"_id": food.ID}, update)
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteFood(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	result, err := s.foodCollection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) AddRating(ctx context.Context, id string, rating models.Rating) (*models.Food, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": oid, "ratings.user_id": bson.M{"$ne": rating.User_id}}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "ratings", Value: bson.D{{Key: "$concatArrays", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$ratings", bson.A{}}}},
				bson.A{bson.D{{Key: "$literal", Value: rating}}},
			}}}},
		}}},
		{{Key: "$set", Value: bson.D{
			{Key: "average_rating", Value: bson.D{{Key: "$avg", Value: "$ratings.rating"}}},
			{Key: "updated_at", Value: s.now()},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var food models.Food
	err = s.foodCollection.FindOneAndUpdate(ctx, filter, pipeline, opts).Decode(&food)
	if err == nil {
		return &food, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}
	if _, findErr := s.FindFood(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, ErrConflict
}
