package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ExpenseOther = "other"

var ExpenseCategories = []string{MealBreakfast, MealLunch, MealDinner, MealSnack, ExpenseOther}

type Expense struct {
	Order_id    string    `bson:"order" json:"order"`
	Amount      float64   `bson:"amount" json:"amount"`
	Date        time.Time `bson:"date" json:"date"`
	Category    string    `bson:"category" json:"category"`
	Description string    `bson:"description" json:"description"`
}

type ExpenseCategoryTotals struct {
	Breakfast float64 `bson:"breakfast" json:"breakfast"`
	Lunch     float64 `bson:"lunch" json:"lunch"`
	Dinner    float64 `bson:"dinner" json:"dinner"`
	Snack     float64 `bson:"snack" json:"snack"`
	Other     float64 `bson:"other" json:"other"`
}

func (c ExpenseCategoryTotals) Add(o ExpenseCategoryTotals) ExpenseCategoryTotals {
	return ExpenseCategoryTotals{
		Breakfast: c.Breakfast + o.Breakfast,
		Lunch:     c.Lunch + o.Lunch,
		Dinner:    c.Dinner + o.Dinner,
		Snack:     c.Snack + o.Snack,
		Other:     c.Other + o.Other,
	}
}

// Plus returns the totals with amount added to category.
func (c ExpenseCategoryTotals) Plus(category string, amount float64) ExpenseCategoryTotals {
	switch category {
	case MealBreakfast:
		c.Breakfast += amount
	case MealLunch:
		c.Lunch += amount
	case MealDinner:
		c.Dinner += amount
	case MealSnack:
		c.Snack += amount
	default:
		c.Other += amount
	}
	return c
}

// ExpenseTracker is the expense ledger of one user for one calendar month.
type ExpenseTracker struct {
	ID           primitive.ObjectID    `bson:"_id,omitempty" json:"_id,omitempty"`
	User_id      string                `bson:"user_id" json:"user"`
	Year         int                   `bson:"year" json:"year"`
	Month        int                   `bson:"month" json:"month"`
	TotalExpense float64               `bson:"total_expense" json:"totalExpense"`
	Expenses     []Expense             `bson:"expenses" json:"expenses"`
	Budget       float64               `bson:"budget" json:"budget"`
	Savings      float64               `bson:"savings" json:"savings"`
	Categories   ExpenseCategoryTotals `bson:"categories" json:"categories"`
	Created_at   time.Time             `bson:"created_at" json:"createdAt"`
	Updated_at   time.Time             `bson:"updated_at" json:"updatedAt"`
}
