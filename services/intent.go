package services

import "regexp"

type Intent string

const (
	IntentGreeting           Intent = "greeting"
	IntentFoodRecommendation Intent = "food_recommendation"
	IntentOrderStatus        Intent = "order_status"
	IntentNutritionInfo      Intent = "nutrition_info"
	IntentDietaryQuestion    Intent = "dietary_question"
	IntentGeneralQuery       Intent = "general_query"
	IntentFeedback           Intent = "feedback"
	IntentHelp               Intent = "help"
	IntentOther              Intent = "other"
)

type intentPatterns struct {
	intent   Intent
	patterns []*regexp.Regexp
}

func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		out[i] = regexp.MustCompile("(?i)" + expr)
	}
	return out
}

// intentTable is evaluated top to bottom and the first intent with a matching
// pattern wins. Several patterns overlap ("vegan", "diet", "suggestion"), so
// the order is part of the behavior.
var intentTable = []intentPatterns{
	{IntentGreeting, patterns(
		`^hi$`, `^hello$`, `^hey$`, `^howdy$`, `^greetings$`,
		`^good morning$`, `^good afternoon$`, `^good evening$`,
		`^hi there$`, `^hello there$`, `^hey there$`,
	)},
	{IntentFoodRecommendation, patterns(
		`recommend`, `suggestion`, `what should i eat`, `what can i eat`,
		`what's good`, `whats good`, `popular`, `best seller`,
		`special`, `chef's choice`, `chefs choice`, `signature`,
		`healthy option`, `diet`, `low calorie`, `high protein`,
		`vegetarian`, `vegan`, `gluten free`,
	)},
	{IntentOrderStatus, patterns(
		`where is my order`, `order status`, `track order`, `delivery status`,
		`when will my order arrive`, `how long`, `eta`, `estimated time`,
		`order arrived`, `order delivered`, `order delayed`,
	)},
	{IntentNutritionInfo, patterns(
		`calorie`, `nutrition`, `protein`, `carb`, `fat`,
		`how many calories`, `nutritional information`, `healthy`,
		`diet`, `macro`, `vitamin`, `mineral`, `sodium`, `sugar`,
	)},
	{IntentDietaryQuestion, patterns(
		`allergy`, `allergic`, `intolerance`, `vegetarian`, `vegan`,
		`gluten free`, `dairy free`, `nut free`, `soy free`,
		`keto`, `paleo`, `low carb`, `low fat`, `low sodium`,
	)},
	{IntentHelp, patterns(
		`help`, `assist`, `support`, `guide`, `how to`,
		`how do i`, `what can you do`, `what do you do`,
	)},
	{IntentFeedback, patterns(
		`feedback`, `review`, `rate`, `rating`, `comment`,
		`complain`, `complaint`, `suggest`, `suggestion`,
	)},
}

// DetectIntent classifies a chat message. Messages no pattern recognises are
// general queries.
func DetectIntent(message string) Intent {
	for _, entry := range intentTable {
		for _, p := range entry.patterns {
			if p.MatchString(message) {
				return entry.intent
			}
		}
	}
	return IntentGeneralQuery
}
