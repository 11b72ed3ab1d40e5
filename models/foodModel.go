package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Menu categories a food item can belong to.
const (
	CategoryAppetizer  = "appetizer"
	CategoryMainCourse = "main course"
	CategoryDessert    = "dessert"
	CategoryBeverage   = "beverage"
	CategorySide       = "side"
	CategoryBreakfast  = "breakfast"
	CategoryLunch      = "lunch"
	CategoryDinner     = "dinner"
	CategorySnack      = "snack"
)

var FoodCategories = []string{
	CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage,
	CategorySide, CategoryBreakfast, CategoryLunch, CategoryDinner, CategorySnack,
}

func IsFoodCategory(category string) bool {
	for _, c := range FoodCategories {
		if c == category {
			return true
		}
	}
	return false
}

type NutritionalInfo struct {
	Calories      float64 `bson:"calories" json:"calories" validate:"gte=0"`
	Protein       float64 `bson:"protein" json:"protein" validate:"gte=0"`
	Carbohydrates float64 `bson:"carbohydrates" json:"carbohydrates" validate:"gte=0"`
	Fat           float64 `bson:"fat" json:"fat" validate:"gte=0"`
	Fiber         float64 `bson:"fiber" json:"fiber" validate:"gte=0"`
	Sugar         float64 `bson:"sugar" json:"sugar" validate:"gte=0"`
	Sodium        float64 `bson:"sodium" json:"sodium" validate:"gte=0"`
}

type Rating struct {
	User_id string    `bson:"user_id" json:"userId"`
	Rating  int       `bson:"rating" json:"rating"`
	Review  string    `bson:"review,omitempty" json:"review,omitempty"`
	Date    time.Time `bson:"date" json:"date"`
}

type Food struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name            string             `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Description     string             `bson:"description" json:"description" validate:"required"`
	Price           float64            `bson:"price" json:"price" validate:"gte=0"`
	Image           string             `bson:"image" json:"image"`
	Category        string             `bson:"category" json:"category" validate:"required"`
	IsVegetarian    bool               `bson:"is_vegetarian" json:"isVegetarian"`
	IsVegan         bool               `bson:"is_vegan" json:"isVegan"`
	IsGlutenFree    bool               `bson:"is_gluten_free" json:"isGlutenFree"`
	NutritionalInfo NutritionalInfo    `bson:"nutritional_info" json:"nutritionalInfo"`
	Ingredients     []string           `bson:"ingredients" json:"ingredients"`
	PreparationTime int                `bson:"preparation_time" json:"preparationTime" validate:"gte=0"`
	SpicyLevel      int                `bson:"spicy_level" json:"spicyLevel" validate:"gte=0,lte=5"`
	Ratings         []Rating           `bson:"ratings" json:"ratings"`
	AverageRating   float64            `bson:"average_rating" json:"averageRating"`
	IsAvailable     bool               `bson:"is_available" json:"isAvailable"`
	IsPopular       bool               `bson:"is_popular" json:"isPopular"`
	IsRecommended   bool               `bson:"is_recommended" json:"isRecommended"`
	Discount        float64            `bson:"discount" json:"discount" validate:"gte=0,lte=100"`
	Created_at      time.Time          `bson:"created_at" json:"createdAt"`
	Updated_at      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// NutritionFor returns the nutrition of quantity servings.
func (f *Food) NutritionFor(quantity int) NutritionSummary {
	q := float64(quantity)
	n := f.NutritionalInfo
	return NutritionSummary{
		Protein:       n.Protein * q,
		Carbohydrates: n.Carbohydrates * q,
		Fat:           n.Fat * q,
		Fiber:         n.Fiber * q,
		Sugar:         n.Sugar * q,
		Sodium:        n.Sodium * q,
	}
}

// AverageOf recomputes the derived average rating.
func AverageOf(ratings []Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	total := 0
	for _, r := range ratings {
		total += r.Rating
	}
	return float64(total) / float64(len(ratings))
}
