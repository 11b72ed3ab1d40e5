package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

var MealTypes = []string{MealBreakfast, MealLunch, MealDinner, MealSnack}

type MealFoodItem struct {
	Food_id  string  `bson:"food_item" json:"foodItem"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Calories float64 `bson:"calories" json:"calories"`
}

type Meal struct {
	Order_id      string         `bson:"order" json:"order"`
	FoodItems     []MealFoodItem `bson:"food_items" json:"foodItems"`
	MealType      string         `bson:"meal_type" json:"mealType"`
	TotalCalories float64        `bson:"total_calories" json:"totalCalories"`
	Time          time.Time      `bson:"time" json:"time"`
}

// CalorieTracker is the calorie ledger of one user for one calendar day.
type CalorieTracker struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	User_id          string             `bson:"user_id" json:"user"`
	Date             time.Time          `bson:"date" json:"date"`
	TotalCalories    float64            `bson:"total_calories" json:"totalCalories"`
	CalorieGoal      int                `bson:"calorie_goal,omitempty" json:"calorieGoal,omitempty"`
	Meals            []Meal             `bson:"meals" json:"meals"`
	NutritionSummary NutritionSummary   `bson:"nutrition_summary" json:"nutritionSummary"`
	Created_at       time.Time          `bson:"created_at" json:"createdAt"`
	Updated_at       time.Time          `bson:"updated_at" json:"updatedAt"`
}

// MealTypeCalories sums meal calories per meal type.
func (t *CalorieTracker) MealTypeCalories() map[string]float64 {
	out := map[string]float64{MealBreakfast: 0, MealLunch: 0, MealDinner: 0, MealSnack: 0}
	for _, m := range t.Meals {
		out[m.MealType] += m.TotalCalories
	}
	return out
}
