// Package store persists the Veggio documents. Every repository has a MongoDB
// implementation and an in-memory one with identical semantics.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/Ayush-478/Veggio/models"
)

var (
	ErrNotFound  = errors.New("store: document not found")
	ErrConflict  = errors.New("store: document is not in the expected state")
	ErrDuplicate = errors.New("store: duplicate key")
)

// FoodFilter narrows catalog queries. Zero values mean "no constraint".
type FoodFilter struct {
	AvailableOnly bool
	Vegetarian    bool
	Vegan         bool
	GlutenFree    bool
	Categories    []string
	// MaxCalories keeps items strictly below the value.
	MaxCalories *float64
	// MinProtein keeps items strictly above the value.
	MinProtein  *float64
	Popular     bool
	Recommended bool
	// NameContains is a case-insensitive literal substring match.
	NameContains string
	// ExcludeIngredient drops items with any ingredient containing the text.
	ExcludeIngredient string
	SortByRating      bool
	Skip              int
	Limit             int
}

type FoodStore interface {
	InsertFood(ctx context.Context, food *models.Food) error
	FindFood(ctx context.Context, id string) (*models.Food, error)
	FindFoods(ctx context.Context, ids []string) ([]models.Food, error)
	ListFoods(ctx context.Context, filter FoodFilter) ([]models.Food, error)
	CountFoods(ctx context.Context, filter FoodFilter) (int64, error)
	UpdateFood(ctx context.Context, food *models.Food) error
	DeleteFood(ctx context.Context, id string) error
	// AddRating appends a rating and recomputes the average in one write.
	// ErrConflict means the user already rated the item.
	AddRating(ctx context.Context, id string, rating models.Rating) (*models.Food, error)
}

type UserStore interface {
	InsertUser(ctx context.Context, user *models.User) error
	FindUser(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	SetCalorieGoal(ctx context.Context, id string, goal int) error
	SetDietaryPreferences(ctx context.Context, id string, preferences []string) error
}

type CartStore interface {
	FindCart(ctx context.Context, userID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
}

type OrderStore interface {
	InsertOrder(ctx context.Context, order *models.Order) error
	FindOrder(ctx context.Context, id string) (*models.Order, error)
	// ListOrdersByUser returns the user's orders, newest first.
	ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
	LatestOrder(ctx context.Context, userID string) (*models.Order, error)
	// TransitionOrder moves the order to entry.Status only while it is still
	// in status from, appending entry to the history. ErrConflict otherwise.
	TransitionOrder(ctx context.Context, id string, from models.OrderStatus, entry models.StatusEntry) (*models.Order, error)
	// SetOrderFeedback stores rating and feedback on a delivered order that
	// has none yet. ErrConflict otherwise.
	SetOrderFeedback(ctx context.Context, id string, rating int, feedback string, at time.Time) (*models.Order, error)
}

type ChatStore interface {
	AppendMessage(ctx context.Context, msg *models.ChatMessage) error
	// ListMessages returns the user's messages ordered by timestamp. An empty
	// sessionID selects every session.
	ListMessages(ctx context.Context, userID, sessionID string) ([]models.ChatMessage, error)
	ClearMessages(ctx context.Context, userID, sessionID string) (int64, error)
}

type CalorieStore interface {
	// AddMeal appends a meal to the (user, day) tracker, creating it if
	// needed, and increments its running totals atomically.
	AddMeal(ctx context.Context, userID string, day time.Time, meal models.Meal, nutrition models.NutritionSummary) error
	FindCalorieTracker(ctx context.Context, userID string, day time.Time) (*models.CalorieTracker, error)
	// ListCalorieTrackers returns trackers with from <= date < to, by date.
	ListCalorieTrackers(ctx context.Context, userID string, from, to time.Time) ([]models.CalorieTracker, error)
}

type ExpenseStore interface {
	// AddExpense appends an expense to the (user, year, month) tracker,
	// creating it if needed, and increments its totals atomically.
	AddExpense(ctx context.Context, userID string, year, month int, expense models.Expense) error
	FindExpenseTracker(ctx context.Context, userID string, year, month int) (*models.ExpenseTracker, error)
	// ListExpenseTrackers returns trackers between the two months inclusive,
	// oldest first.
	ListExpenseTrackers(ctx context.Context, userID string, fromYear, fromMonth, toYear, toMonth int) ([]models.ExpenseTracker, error)
	// SetBudget sets the month budget and recomputes savings against the
	// current total expense.
	SetBudget(ctx context.Context, userID string, year, month int, budget float64) (*models.ExpenseTracker, error)
}

// Store bundles every repository behind one backend.
type Store interface {
	FoodStore
	UserStore
	CartStore
	OrderStore
	ChatStore
	CalorieStore
	ExpenseStore
	Close(ctx context.Context) error
}

// Savings is the unspent part of a budget.
func Savings(budget, totalExpense float64) float64 {
	if budget > totalExpense {
		return budget - totalExpense
	}
	return 0
}

// MonthIndex orders (year, month) pairs on a single axis.
func MonthIndex(year, month int) int {
	return year*12 + month - 1
}
