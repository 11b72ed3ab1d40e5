package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Ayush-478/Veggio/models"
	"github.com/Ayush-478/Veggio/store"
)

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MealTypeAt buckets a wall-clock time into a meal type.
func MealTypeAt(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 11:
		return models.MealBreakfast
	case h >= 11 && h < 16:
		return models.MealLunch
	case h >= 16 && h < 22:
		return models.MealDinner
	default:
		return models.MealSnack
	}
}

// ExpenseCategoryAt buckets a wall-clock time into an expense category. Late
// night spending is "other"; "snack" is never produced here.
func ExpenseCategoryAt(t time.Time) string {
	if category := MealTypeAt(t); category != models.MealSnack {
		return category
	}
	return models.ExpenseOther
}

// Ledger derives the calorie and expense ledgers from placed orders.
type Ledger struct {
	foods    store.FoodStore
	calories store.CalorieStore
	expenses store.ExpenseStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewLedger(st store.Store, logger *zap.Logger) *Ledger {
	return &Ledger{
		foods:    st,
		calories: st,
		expenses: st,
		logger:   logger.Named("ledger"),
		now:      time.Now,
	}
}

// Record books order into both ledgers. Failures are logged and never
// reported to the caller.
func (l *Ledger) Record(ctx context.Context, order *models.Order) {
	now := l.now()
	if err := l.recordMeal(ctx, order, now); err != nil {
		l.logger.Error("update calorie tracker",
			zap.String("order", order.ID.Hex()), zap.String("user", order.User_id), zap.Error(err))
	}
	if err := l.recordExpense(ctx, order, now); err != nil {
		l.logger.Error("update expense tracker",
			zap.String("order", order.ID.Hex()), zap.String("user", order.User_id), zap.Error(err))
	}
}

func (l *Ledger) recordMeal(ctx context.Context, order *models.Order, now time.Time) error {
	ids := make([]string, len(order.Items))
	for i, item := range order.Items {
		ids[i] = item.Food_id
	}
	foods, err := l.foods.FindFoods(ctx, ids)
	if err != nil {
		return fmt.Errorf("load food items: %w", err)
	}
	calories := make(map[string]float64, len(foods))
	for _, f := range foods {
		calories[f.ID.Hex()] = f.NutritionalInfo.Calories
	}

	meal := models.Meal{
		Order_id:      order.ID.Hex(),
		FoodItems:     make([]models.MealFoodItem, 0, len(order.Items)),
		MealType:      MealTypeAt(now),
		TotalCalories: order.TotalCalories,
		Time:          now,
	}
	for _, item := range order.Items {
		perUnit, ok := calories[item.Food_id]
		if !ok {
			l.logger.Warn("food item missing from catalog", zap.String("food", item.Food_id))
		}
		meal.FoodItems = append(meal.FoodItems, models.MealFoodItem{
			Food_id:  item.Food_id,
			Quantity: item.Quantity,
			Calories: perUnit * float64(item.Quantity),
		})
	}

	if err := l.calories.AddMeal(ctx, order.User_id, StartOfDay(now), meal, order.NutritionSummary); err != nil {
		return fmt.Errorf("add meal: %w", err)
	}
	return nil
}

func (l *Ledger) recordExpense(ctx context.Context, order *models.Order, now time.Time) error {
	expense := models.Expense{
		Order_id:    order.ID.Hex(),
		Amount:      order.TotalAmount,
		Date:        now,
		Category:    ExpenseCategoryAt(now),
		Description: fmt.Sprintf("Food order - %d items", len(order.Items)),
	}
	if err := l.expenses.AddExpense(ctx, order.User_id, now.Year(), int(now.Month()), expense); err != nil {
		return fmt.Errorf("add expense: %w", err)
	}
	return nil
}
