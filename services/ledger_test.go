package services

import (
	"testing"
	"time"

	"github.com/Ayush-478/Veggio/models"
)

func TestMealTypeAndExpenseCategoryBuckets(t *testing.T) {
	cases := []struct {
		hour     int
		meal     string
		category string
	}{
		{4, models.MealSnack, models.ExpenseOther},
		{5, models.MealBreakfast, models.MealBreakfast},
		{10, models.MealBreakfast, models.MealBreakfast},
		{11, models.MealLunch, models.MealLunch},
		{15, models.MealLunch, models.MealLunch},
		{16, models.MealDinner, models.MealDinner},
		{21, models.MealDinner, models.MealDinner},
		{22, models.MealSnack, models.ExpenseOther},
		{0, models.MealSnack, models.ExpenseOther},
	}
	for _, tc := range cases {
		at := time.Date(2024, time.May, 2, tc.hour, 15, 0, 0, time.UTC)
		if got := MealTypeAt(at); got != tc.meal {
			t.Errorf("MealTypeAt(%02d:15) = %q, want %q", tc.hour, got, tc.meal)
		}
		if got := ExpenseCategoryAt(at); got != tc.category {
			t.Errorf("ExpenseCategoryAt(%02d:15) = %q, want %q", tc.hour, got, tc.category)
		}
	}
}

func TestLedgerBooksPlacedOrders(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "dana", models.RoleUser)
	salad := f.food(t, "Salad", 10, func(food *models.Food) {
		food.NutritionalInfo = models.NutritionalInfo{Calories: 250, Protein: 8, Carbohydrates: 12, Fat: 9}
	})
	juice := f.food(t, "Juice", 5, func(food *models.Food) {
		food.NutritionalInfo = models.NutritionalInfo{Calories: 120, Carbohydrates: 30, Sugar: 25}
	})
	f.addToCart(t, user, salad, 2)
	f.addToCart(t, user, juice, 1)

	order := f.placeOrder(t, user)

	tracker, err := f.st.FindCalorieTracker(f.ctx, user.ID.Hex(), StartOfDay(lunchtime))
	if err != nil {
		t.Fatalf("calorie tracker: %v", err)
	}
	if tracker.TotalCalories != 620 {
		t.Errorf("total calories = %v, want 620", tracker.TotalCalories)
	}
	if tracker.NutritionSummary.Protein != 16 || tracker.NutritionSummary.Carbohydrates != 54 {
		t.Errorf("nutrition = %+v", tracker.NutritionSummary)
	}
	if len(tracker.Meals) != 1 {
		t.Fatalf("meals = %d, want 1", len(tracker.Meals))
	}
	meal := tracker.Meals[0]
	if meal.MealType != models.MealLunch || meal.Order_id != order.ID.Hex() {
		t.Errorf("meal = %+v", meal)
	}
	perItem := map[string]float64{}
	for _, item := range meal.FoodItems {
		perItem[item.Food_id] = item.Calories
	}
	if perItem[salad.ID.Hex()] != 500 || perItem[juice.ID.Hex()] != 120 {
		t.Errorf("per item calories = %v", perItem)
	}

	expenses, err := f.st.FindExpenseTracker(f.ctx, user.ID.Hex(), 2024, 3)
	if err != nil {
		t.Fatalf("expense tracker: %v", err)
	}
	if expenses.TotalExpense != order.TotalAmount || expenses.Categories.Lunch != order.TotalAmount {
		t.Errorf("expense totals = %v / %+v, want %v", expenses.TotalExpense, expenses.Categories, order.TotalAmount)
	}
	if len(expenses.Expenses) != 1 || expenses.Expenses[0].Description != "Food order - 2 items" {
		t.Errorf("expenses = %+v", expenses.Expenses)
	}
}

func TestLedgerLateNightOrderIsSnackAndOther(t *testing.T) {
	f := newFixture(t)
	f.now = time.Date(2024, time.March, 14, 23, 10, 0, 0, time.UTC)
	user := f.user(t, "dana", models.RoleUser)
	f.addToCart(t, user, f.food(t, "Fries", 4, nil), 1)

	order := f.placeOrder(t, user)

	tracker, err := f.st.FindCalorieTracker(f.ctx, user.ID.Hex(), StartOfDay(f.now))
	if err != nil {
		t.Fatalf("calorie tracker: %v", err)
	}
	if tracker.Meals[0].MealType != models.MealSnack {
		t.Errorf("meal type = %q, want snack", tracker.Meals[0].MealType)
	}
	expenses, err := f.st.FindExpenseTracker(f.ctx, user.ID.Hex(), 2024, 3)
	if err != nil {
		t.Fatalf("expense tracker: %v", err)
	}
	if expenses.Categories.Other != order.TotalAmount || expenses.Categories.Snack != 0 {
		t.Errorf("categories = %+v", expenses.Categories)
	}
}

func TestLedgerAccumulatesSameDay(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "dana", models.RoleUser)
	soup := f.food(t, "Soup", 6, nil)

	f.addToCart(t, user, soup, 1)
	f.placeOrder(t, user)
	f.now = lunchtime.Add(5 * time.Hour)
	f.addToCart(t, user, soup, 2)
	f.placeOrder(t, user)

	tracker, err := f.st.FindCalorieTracker(f.ctx, user.ID.Hex(), StartOfDay(lunchtime))
	if err != nil {
		t.Fatalf("calorie tracker: %v", err)
	}
	if len(tracker.Meals) != 2 || tracker.TotalCalories != 300 {
		t.Errorf("tracker = %d meals / %v calories", len(tracker.Meals), tracker.TotalCalories)
	}
	if tracker.Meals[1].MealType != models.MealDinner {
		t.Errorf("second meal type = %q", tracker.Meals[1].MealType)
	}
}
