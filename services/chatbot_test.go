package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Ayush-478/Veggio/models"
	"github.com/Ayush-478/Veggio/store"
)

func TestGreetingUsesAKnownTemplate(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "Dana", models.RoleUser)
	ctx := WithRand(f.ctx, rand.New(rand.NewSource(7)))

	for i := 0; i < 10; i++ {
		reply := f.assistant.Respond(ctx, "hello", user)
		if reply.Intent != IntentGreeting {
			t.Fatalf("intent = %q", reply.Intent)
		}
		known := false
		for _, tpl := range GreetingTemplates {
			if reply.Text == fmt.Sprintf(tpl, "Dana") {
				known = true
			}
		}
		if !known {
			t.Fatalf("unexpected greeting %q", reply.Text)
		}
	}
}

func TestRecommendationHonoursPreferencesAndCap(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "dana", models.RoleUser)
	if err := f.st.SetDietaryPreferences(f.ctx, user.ID.Hex(), []string{"vegetarian"}); err != nil {
		t.Fatal(err)
	}
	user.DietaryPreferences = []string{"vegetarian"}

	for i := 0; i < 7; i++ {
		f.food(t, fmt.Sprintf("Veg %d", i), 5, func(food *models.Food) { food.IsVegetarian = true })
	}
	meat := f.food(t, "Steak", 20, nil)
	soldOut := f.food(t, "Veg Special", 8, func(food *models.Food) {
		food.IsVegetarian = true
		food.IsAvailable = false
		food.AverageRating = 5
	})

	reply := f.assistant.Respond(f.ctx, "Can you recommend something?", user)
	if reply.Intent != IntentFoodRecommendation {
		t.Fatalf("intent = %q", reply.Intent)
	}
	if len(reply.RelatedFoodItems) != maxSuggestions {
		t.Fatalf("related items = %d, want %d", len(reply.RelatedFoodItems), maxSuggestions)
	}
	for _, id := range reply.RelatedFoodItems {
		if id == meat.ID.Hex() {
			t.Fatalf("non vegetarian item recommended")
		}
		if id == soldOut.ID.Hex() {
			t.Fatalf("unavailable item recommended")
		}
	}
}

func TestRecommendationPopularOnly(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "dana", models.RoleUser)
	hit := f.food(t, "Burger", 9, func(food *models.Food) { food.IsPopular = true })
	f.food(t, "Toast", 3, nil)

	reply := f.assistant.Respond(f.ctx, "what's popular?", user)
	if len(reply.RelatedFoodItems) != 1 || reply.RelatedFoodItems[0] != hit.ID.Hex() {
		t.Fatalf("related = %v", reply.RelatedFoodItems)
	}
	if !strings.Contains(reply.Text, "Burger") {
		t.Errorf("text = %q", reply.Text)
	}
}

func TestRecommendationNothingMatches(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "dana", models.RoleUser)
	f.food(t, "Cake", 7, func(food *models.Food) { food.NutritionalInfo.Calories = 800 })

	reply := f.assistant.Respond(f.ctx, "recommend a low calorie dish", user)
	if len(reply.RelatedFoodItems) != 0 || !strings.HasPrefix(reply.Text, "I'm sorry") {
		t.Fatalf("reply = %+v", reply)
	}
}

func TestOrderStatusReply(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "dana", models.RoleUser)
	admin := f.user(t, "root", models.RoleAdmin)

	reply := f.assistant.Respond(f.ctx, "where is my order", user)
	if !strings.Contains(reply.Text, "I don't see any recent orders") {
		t.Fatalf("no orders reply = %q", reply.Text)
	}

	f.addToCart(t, user, f.food(t, "Soup", 6, nil), 1)
	order := f.placeOrder(t, user)
	reply = f.assistant.Respond(f.ctx, "where is my order", user)
	if !strings.Contains(reply.Text, "#"+order.ShortID()) || strings.Contains(reply.Text, "Estimated delivery time") {
		t.Fatalf("placed reply = %q", reply.Text)
	}

	f.advance(t, admin, order, models.StatusConfirmed, models.StatusPreparing)
	reply = f.assistant.Respond(f.ctx, "order status", user)
	if !strings.HasSuffix(reply.Text, "Estimated delivery time: 13:15.") {
		t.Fatalf("preparing reply = %q", reply.Text)
	}
}

func TestNutritionInfoForNamedItem(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "dana", models.RoleUser)
	salad := f.food(t, "Caesar Salad", 9, func(food *models.Food) {
		food.NutritionalInfo = models.NutritionalInfo{Calories: 350, Protein: 12, Carbohydrates: 18, Fat: 24.5}
	})

	reply := f.assistant.Respond(f.ctx, "How many calories in caesar salad?", user)
	want := "Caesar Salad contains 350 calories, 12g protein, 18g carbs, and 24.5g fat per serving."
	if !strings.HasPrefix(reply.Text, want) {
		t.Fatalf("reply = %q", reply.Text)
	}
	if len(reply.RelatedFoodItems) != 1 || reply.RelatedFoodItems[0] != salad.ID.Hex() {
		t.Errorf("related = %v", reply.RelatedFoodItems)
	}

	reply = f.assistant.Respond(f.ctx, "calories in dragon fruit?", user)
	if !strings.Contains(reply.Text, `"dragon fruit"`) {
		t.Errorf("unknown item reply = %q", reply.Text)
	}
}

func TestNutritionInfoDailyTotals(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "dana", models.RoleUser)

	reply := f.assistant.Respond(f.ctx, "How many calories have I consumed today", user)
	if !strings.HasPrefix(reply.Text, "You haven't consumed any calories") {
		t.Fatalf("empty day reply = %q", reply.Text)
	}

	f.addToCart(t, user, f.food(t, "Pasta", 12, func(food *models.Food) { food.NutritionalInfo.Calories = 700 }), 1)
	f.placeOrder(t, user)

	reply = f.assistant.Respond(f.ctx, "How many calories have I consumed today", user)
	if !strings.Contains(reply.Text, "700 calories") || !strings.Contains(reply.Text, "35% of your daily goal (2000 calories)") {
		t.Fatalf("daily reply = %q", reply.Text)
	}
}

func TestAllergyAnswerExcludesIngredientAndWarns(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "dana", models.RoleUser)
	f.food(t, "Satay", 11, func(food *models.Food) { food.Ingredients = []string{"chicken", "Peanut sauce"} })
	safe := f.food(t, "Rice Bowl", 8, func(food *models.Food) { food.Ingredients = []string{"rice", "egg"} })

	reply := f.assistant.Respond(f.ctx, "I am allergic to peanut.", user)
	if reply.Intent != IntentDietaryQuestion {
		t.Fatalf("intent = %q", reply.Intent)
	}
	if len(reply.RelatedFoodItems) != 1 || reply.RelatedFoodItems[0] != safe.ID.Hex() {
		t.Fatalf("related = %v", reply.RelatedFoodItems)
	}
	if !strings.Contains(reply.Text, "cross-contamination") {
		t.Errorf("missing disclaimer: %q", reply.Text)
	}

	reply = f.assistant.Respond(f.ctx, "I have an allergy", user)
	if !strings.Contains(reply.Text, "cross-contamination") || len(reply.RelatedFoodItems) != 0 {
		t.Errorf("allergy help = %+v", reply)
	}
}

func TestGeneralQueryFindsItemByName(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "dana", models.RoleUser)
	f.food(t, "Mango Lassi", 4.5, func(food *models.Food) { food.Category = models.CategoryBeverage })

	reply := f.assistant.Respond(f.ctx, "tell me about the mango lassi", user)
	if reply.Intent != IntentGeneralQuery || !strings.Contains(reply.Text, "It costs $4.50") {
		t.Fatalf("reply = %+v", reply)
	}

	reply = f.assistant.Respond(f.ctx, "xyz123", user)
	if !strings.HasPrefix(reply.Text, "I'm not sure I understand") {
		t.Errorf("fallback = %q", reply.Text)
	}
}

type failingFoods struct {
	store.Store
}

func (failingFoods) ListFoods(context.Context, store.FoodFilter) ([]models.Food, error) {
	return nil, errors.New("connection reset")
}

func TestLookupFailureYieldsTroubleReply(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	a := NewAssistant(failingFoods{store.NewMemoryStore()}, zap.New(core))
	user := &models.User{Name: "dana"}

	reply := a.Respond(context.Background(), "recommend something", user)
	if reply.Text != TroubleReply || reply.Intent != IntentOther {
		t.Fatalf("reply = %+v", reply)
	}
	if logs.Len() != 1 {
		t.Errorf("logged %d errors, want 1", logs.Len())
	}
}

func TestAssistantDoesNotWrite(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "dana", models.RoleUser)
	f.food(t, "Soup", 6, nil)

	for _, msg := range []string{"hello", "recommend", "order status", "calories today", "vegan options", "menu"} {
		f.assistant.Respond(WithRand(f.ctx, rand.New(rand.NewSource(1))), msg, user)
	}

	if _, err := f.st.FindCart(f.ctx, user.ID.Hex()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("cart created: %v", err)
	}
	if orders, _ := f.st.ListOrdersByUser(f.ctx, user.ID.Hex()); len(orders) != 0 {
		t.Errorf("orders created: %d", len(orders))
	}
	if _, err := f.st.FindCalorieTracker(f.ctx, user.ID.Hex(), StartOfDay(lunchtime)); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("calorie tracker created: %v", err)
	}
}
