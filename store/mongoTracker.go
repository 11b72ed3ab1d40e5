package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ayush-478/Veggio/models"
)

func (s *MongoStore) AddMeal(ctx context.Context, userID string, day time.Time, meal models.Meal, nutrition models.NutritionSummary) error {
	inc := bson.M{"total_calories": meal.TotalCalories}
	for key, value := range nutrition.Fields() {
		inc["nutrition_summary."+key] = value
	}
	now := s.now()
	update := bson.M{
		"$setOnInsert": bson.M{"created_at": now},
		"$set":         bson.M{"updated_at": now},
		"$push":        bson.M{"meals": meal},
		"$inc":         inc,
	}
	return upsertWithRetry(ctx, s.calorieTrackers, bson.M{"user_id": userID, "date": day}, update)
}

func (s *MongoStore) FindCalorieTracker(ctx context.Context, userID string, day time.Time) (*models.CalorieTracker, error) {
	var tracker models.CalorieTracker
	err := s.calorieTrackers.FindOne(ctx, bson.M{"user_id": userID, "date": day}).Decode(&tracker)
	if err != nil {
		return nil, translate(err)
	}
	return &tracker, nil
}

func (s *MongoStore) ListCalorieTrackers(ctx context.Context, userID string, from, to time.Time) ([]models.CalorieTracker, error) {
	filter := bson.M{"user_id": userID, "date": bson.M{"$gte": from, "$lt": to}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := s.calorieTrackers.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	trackers := []models.CalorieTracker{}
	if err := cursor.All(ctx, &trackers); err != nil {
		return nil, err
	}
	return trackers, nil
}

func (s *MongoStore) AddExpense(ctx context.Context, userID string, year, month int, expense models.Expense) error {
	now := s.now()
	update := bson.M{
		"$setOnInsert": bson.M{"created_at": now, "budget": 0.0, "savings": 0.0},
		"$set":         bson.M{"updated_at": now},
		"$push":        bson.M{"expenses": expense},
		"$inc": bson.M{
			"total_expense":                  expense.Amount,
			"categories." + expense.Category: expense.Amount,
		},
	}
	filter := bson.M{"user_id": userID, "year": year, "month": month}
	return upsertWithRetry(ctx, s.expenseTrackers, filter, update)
}

func (s *MongoStore) FindExpenseTracker(ctx context.Context, userID string, year, month int) (*models.ExpenseTracker, error) {
	var tracker models.ExpenseTracker
	filter := bson.M{"user_id": userID, "year": year, "month": month}
	if err := s.expenseTrackers.FindOne(ctx, filter).Decode(&tracker); err != nil {
		return nil, translate(err)
	}
	return &tracker, nil
}

func (s *MongoStore) ListExpenseTrackers(ctx context.Context, userID string, fromYear, fromMonth, toYear, toMonth int) ([]models.ExpenseTracker, error) {
	period := bson.D{{Key: "$add", Value: bson.A{
		bson.D{{Key: "$multiply", Value: bson.A{"$year", 12}}},
		"$month",
		-1,
	}}}
	filter := bson.M{
		"user_id": userID,
		"$expr": bson.M{"$and": bson.A{
			bson.M{"$gte": bson.A{period, MonthIndex(fromYear, fromMonth)}},
			bson.M{"$lte": bson.A{period, MonthIndex(toYear, toMonth)}},
		}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}})
	cursor, err := s.expenseTrackers.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	trackers := []models.ExpenseTracker{}
	if err := cursor.All(ctx, &trackers); err != nil {
		return nil, err
	}
	return trackers, nil
}

func (s *MongoStore) SetBudget(ctx context.Context, userID string, year, month int, budget float64) (*models.ExpenseTracker, error) {
	now := s.now()
	totalExpense := bson.D{{Key: "$ifNull", Value: bson.A{"$total_expense", 0.0}}}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "budget", Value: budget},
			{Key: "total_expense", Value: totalExpense},
			{Key: "savings", Value: bson.D{{Key: "$max", Value: bson.A{
				bson.D{{Key: "$subtract", Value: bson.A{budget, totalExpense}}},
				0.0,
			}}}},
			{Key: "expenses", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$expenses", bson.A{}}}}},
			{Key: "created_at", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$created_at", now}}}},
			{Key: "updated_at", Value: now},
		}}},
	}
	filter := bson.M{"user_id": userID, "year": year, "month": month}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var tracker models.ExpenseTracker
	err := s.expenseTrackers.FindOneAndUpdate(ctx, filter, pipeline, opts).Decode(&tracker)
	if mongo.IsDuplicateKeyError(err) {
		err = s.expenseTrackers.FindOneAndUpdate(ctx, filter, pipeline, opts).Decode(&tracker)
	}
	if err != nil {
		return nil, translate(err)
	}
	return &tracker, nil
}
