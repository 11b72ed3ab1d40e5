package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Food_id  string             `bson:"food_item" json:"foodItem"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

type Cart struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User_id          string             `bson:"user_id" json:"user"`
	Items            []CartItem         `bson:"items" json:"items"`
	TotalAmount      float64            `bson:"total_amount" json:"totalAmount"`
	TotalCalories    float64            `bson:"total_calories" json:"totalCalories"`
	NutritionSummary NutritionSummary   `bson:"nutrition_summary" json:"nutritionSummary"`
	Created_at       time.Time          `bson:"created_at" json:"createdAt"`
	Updated_at       time.Time          `bson:"updated_at" json:"updatedAt"`
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
