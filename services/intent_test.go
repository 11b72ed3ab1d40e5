package services

import "testing"

func TestDetectIntent(t *testing.T) {
	cases := []struct {
		message string
		want    Intent
	}{
		{"hello", IntentGreeting},
		{"Hi there", IntentGreeting},
		{"hello, what is on the menu", IntentGeneralQuery},
		{"order status please", IntentOrderStatus},
		{"Where is my order?", IntentOrderStatus},
		{"Can you recommend something?", IntentFoodRecommendation},
		{"anything vegan?", IntentFoodRecommendation},
		{"How many calories in the Caesar Salad?", IntentNutritionInfo},
		{"I am allergic to peanuts.", IntentDietaryQuestion},
		{"help", IntentHelp},
		{"I want to leave a review", IntentFeedback},
		{"xyz123", IntentGeneralQuery},
		{"", IntentGeneralQuery},
	}
	for _, tc := range cases {
		if got := DetectIntent(tc.message); got != tc.want {
			t.Errorf("DetectIntent(%q) = %q, want %q", tc.message, got, tc.want)
		}
	}
}
