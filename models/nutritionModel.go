package models

// NutritionSummary is the macro breakdown carried by carts, orders and the
// calorie ledger. Vitamins and minerals are not tracked.
type NutritionSummary struct {
	Protein       float64 `bson:"protein" json:"protein"`
	Carbohydrates float64 `bson:"carbohydrates" json:"carbohydrates"`
	Fat           float64 `bson:"fat" json:"fat"`
	Fiber         float64 `bson:"fiber" json:"fiber"`
	Sugar         float64 `bson:"sugar" json:"sugar"`
	Sodium        float64 `bson:"sodium" json:"sodium"`
}

func (n NutritionSummary) Add(o NutritionSummary) NutritionSummary {
	return NutritionSummary{
		Protein:       n.Protein + o.Protein,
		Carbohydrates: n.Carbohydrates + o.Carbohydrates,
		Fat:           n.Fat + o.Fat,
		Fiber:         n.Fiber + o.Fiber,
		Sugar:         n.Sugar + o.Sugar,
		Sodium:        n.Sodium + o.Sodium,
	}
}

func (n NutritionSummary) Divide(by float64) NutritionSummary {
	if by == 0 {
		return NutritionSummary{}
	}
	return NutritionSummary{
		Protein:       n.Protein / by,
		Carbohydrates: n.Carbohydrates / by,
		Fat:           n.Fat / by,
		Fiber:         n.Fiber / by,
		Sugar:         n.Sugar / by,
		Sodium:        n.Sodium / by,
	}
}

// Fields lists each nutrient under its bson key.
func (n NutritionSummary) Fields() map[string]float64 {
	return map[string]float64{
		"protein":       n.Protein,
		"carbohydrates": n.Carbohydrates,
		"fat":           n.Fat,
		"fiber":         n.Fiber,
		"sugar":         n.Sugar,
		"sodium":        n.Sodium,
	}
}
