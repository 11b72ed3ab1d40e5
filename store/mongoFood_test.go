package store

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFoodQuery(t *testing.T) {
	maxCalories := 500.0
	q := foodQuery(FoodFilter{
		AvailableOnly:     true,
		Vegan:             true,
		Categories:        []string{"dessert"},
		MaxCalories:       &maxCalories,
		NameContains:      "crème (brûlée)",
		ExcludeIngredient: "nut",
	})

	if q["is_available"] != true || q["is_vegan"] != true {
		t.Errorf("flags missing: %v", q)
	}
	if _, ok := q["is_vegetarian"]; ok {
		t.Errorf("unset flag present: %v", q)
	}
	if got := q["nutritional_info.calories"].(bson.M)["$lt"]; got != 500.0 {
		t.Errorf("calories bound = %v", got)
	}
	name := q["name"].(primitive.Regex)
	if name.Pattern != `crème \(brûlée\)` || name.Options != "i" {
		t.Errorf("name regex = %+v", name)
	}
	if _, ok := q["ingredients"].(bson.M)["$not"].(primitive.Regex); !ok {
		t.Errorf("ingredient exclusion = %v", q["ingredients"])
	}

	if len(foodQuery(FoodFilter{})) != 0 {
		t.Errorf("empty filter should match everything")
	}
}
