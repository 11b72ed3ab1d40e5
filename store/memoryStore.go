package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ayush-478/Veggio/models"
)

type dayKey struct {
	user string
	day  int64
}

type monthKey struct {
	user        string
	year, month int
}

// MemoryStore keeps every collection in process memory. Documents are copied
// through BSON on the way in and out, so callers never share state with the
// store and values round-trip the same way they do through MongoDB.
type MemoryStore struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]*models.User
	foods    map[primitive.ObjectID]*models.Food
	carts    map[string]*models.Cart
	orders   map[primitive.ObjectID]*models.Order
	messages []*models.ChatMessage
	calories map[dayKey]*models.CalorieTracker
	expenses map[monthKey]*models.ExpenseTracker
	now      func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    map[primitive.ObjectID]*models.User{},
		foods:    map[primitive.ObjectID]*models.Food{},
		carts:    map[string]*models.Cart{},
		orders:   map[primitive.ObjectID]*models.Order{},
		calories: map[dayKey]*models.CalorieTracker{},
		expenses: map[monthKey]*models.ExpenseTracker{},
		now:      time.Now,
	}
}

// SetClock replaces the clock used for store-managed timestamps.
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *MemoryStore) Close(context.Context) error { return nil }

func clone[T any](in *T) *T {
	raw, err := bson.Marshal(in)
	if err != nil {
		panic("store: clone marshal: " + err.Error())
	}
	out := new(T)
	if err := bson.Unmarshal(raw, out); err != nil {
		panic("store: clone unmarshal: " + err.Error())
	}
	return out
}

// Foods

func matchFood(f *models.Food, filter FoodFilter) bool {
	if filter.AvailableOnly && !f.IsAvailable {
		return false
	}
	if filter.Vegetarian && !f.IsVegetarian {
		return false
	}
	if filter.Vegan && !f.IsVegan {
		return false
	}
	if filter.GlutenFree && !f.IsGlutenFree {
		return false
	}
	if filter.Popular && !f.IsPopular {
		return false
	}
	if filter.Recommended && !f.IsRecommended {
		return false
	}
	if len(filter.Categories) > 0 {
		found := false
		for _, c := range filter.Categories {
			if c == f.Category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.MaxCalories != nil && !(f.NutritionalInfo.Calories < *filter.MaxCalories) {
		return false
	}
	if filter.MinProtein != nil && !(f.NutritionalInfo.Protein > *filter.MinProtein) {
		return false
	}
	if filter.NameContains != "" && !strings.Contains(strings.ToLower(f.Name), strings.ToLower(filter.NameContains)) {
		return false
	}
	if filter.ExcludeIngredient != "" {
		allergen := strings.ToLower(filter.ExcludeIngredient)
		for _, ing := range f.Ingredients {
			if strings.Contains(strings.ToLower(ing), allergen) {
				return false
			}
		}
	}
	return true
}

func (m *MemoryStore) InsertFood(_ context.Context, food *models.Food) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if food.ID.IsZero() {
		food.ID = primitive.NewObjectID()
	}
	if food.Ratings == nil {
		food.Ratings = []models.Rating{}
	}
	if _, ok := m.foods[food.ID]; ok {
		return ErrDuplicate
	}
	m.foods[food.ID] = clone(food)
	return nil
}

func (m *MemoryStore) FindFood(_ context.Context, id string) (*models.Food, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	food, ok := m.foods[oid]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(food), nil
}

func (m *MemoryStore) FindFoods(_ context.Context, ids []string) ([]models.Food, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	foods := []models.Food{}
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		if food, ok := m.foods[oid]; ok {
			foods = append(foods, *clone(food))
		}
	}
	return foods, nil
}

func (m *MemoryStore) matchingFoods(filter FoodFilter) []*models.Food {
	matched := []*models.Food{}
	for _, food := range m.foods {
		if matchFood(food, filter) {
			matched = append(matched, food)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if filter.SortByRating && a.AverageRating != b.AverageRating {
			return a.AverageRating > b.AverageRating
		}
		return a.ID.Hex() < b.ID.Hex()
	})
	return matched
}

func (m *MemoryStore) ListFoods(_ context.Context, filter FoodFilter) ([]models.Food, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := m.matchingFoods(filter)
	if filter.Skip > 0 {
		if filter.Skip >= len(matched) {
			matched = nil
		} else {
			matched = matched[filter.Skip:]
		}
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	foods := make([]models.Food, 0, len(matched))
	for _, f := range matched {
		foods = append(foods, *clone(f))
	}
	return foods, nil
}

func (m *MemoryStore) CountFoods(_ context.Context, filter FoodFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.matchingFoods(filter))), nil
}

func (m *MemoryStore) UpdateFood(_ context.Context, food *models.Food) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.foods[food.ID]
	if !ok {
		return ErrNotFound
	}
	updated := clone(food)
	updated.Ratings = current.Ratings
	updated.AverageRating = current.AverageRating
	updated.Created_at = current.Created_at
	m.foods[food.ID] = updated
	return nil
}

func (m *MemoryStore) DeleteFood(_ context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.foods[oid]; !ok {
		return ErrNotFound
	}
	delete(m.foods, oid)
	return nil
}

func (m *MemoryStore) AddRating(_ context.Context, id string, rating models.Rating) (*models.Food, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	food, ok := m.foods[oid]
	if !ok {
		return nil, ErrNotFound
	}
	for _, r := range food.Ratings {
		if r.User_id == rating.User_id {
			return nil, ErrConflict
		}
	}
	food.Ratings = append(food.Ratings, rating)
	food.AverageRating = models.AverageOf(food.Ratings)
	food.Updated_at = m.now()
	return clone(food), nil
}

// Users

func (m *MemoryStore) InsertUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.ID] = clone(user)
	return nil
}

func (m *MemoryStore) FindUser(_ context.Context, id string) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[oid]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(user), nil
}

func (m *MemoryStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) SetCalorieGoal(_ context.Context, id string, goal int) error {
	return m.updateUser(id, func(u *models.User) { u.CalorieGoal = goal })
}

func (m *MemoryStore) SetDietaryPreferences(_ context.Context, id string, preferences []string) error {
	return m.updateUser(id, func(u *models.User) {
		u.DietaryPreferences = append([]string(nil), preferences...)
	})
}

func (m *MemoryStore) updateUser(id string, apply func(*models.User)) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[oid]
	if !ok {
		return ErrNotFound
	}
	apply(user)
	user.Updated_at = m.now()
	return nil
}

// Carts

func (m *MemoryStore) FindCart(_ context.Context, userID string) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(cart), nil
}

func (m *MemoryStore) SaveCart(_ context.Context, cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	m.carts[cart.User_id] = clone(cart)
	return nil
}

// Orders

func (m *MemoryStore) InsertOrder(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if _, ok := m.orders[order.ID]; ok {
		return ErrDuplicate
	}
	m.orders[order.ID] = clone(order)
	return nil
}

func (m *MemoryStore) FindOrder(_ context.Context, id string) (*models.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[oid]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(order), nil
}

func (m *MemoryStore) userOrders(userID string) []*models.Order {
	orders := []*models.Order{}
	for _, o := range m.orders {
		if o.User_id == userID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if !a.Created_at.Equal(b.Created_at) {
			return a.Created_at.After(b.Created_at)
		}
		return a.ID.Hex() > b.ID.Hex()
	})
	return orders
}

func (m *MemoryStore) ListOrdersByUser(_ context.Context, userID string) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := m.userOrders(userID)
	orders := make([]models.Order, 0, len(matched))
	for _, o := range matched {
		orders = append(orders, *clone(o))
	}
	return orders, nil
}

func (m *MemoryStore) LatestOrder(_ context.Context, userID string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	orders := m.userOrders(userID)
	if len(orders) == 0 {
		return nil, ErrNotFound
	}
	return clone(orders[0]), nil
}

func (m *MemoryStore) TransitionOrder(_ context.Context, id string, from models.OrderStatus, entry models.StatusEntry) (*models.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[oid]
	if !ok {
		return nil, ErrNotFound
	}
	if order.OrderStatus != from {
		return nil, ErrConflict
	}
	order.OrderStatus = entry.Status
	order.StatusHistory = append(order.StatusHistory, entry)
	order.Updated_at = entry.Timestamp
	if entry.Status == models.StatusDelivered {
		at := entry.Timestamp
		order.ActualDeliveryTime = &at
	}
	return clone(order), nil
}

func (m *MemoryStore) SetOrderFeedback(_ context.Context, id string, rating int, feedback string, at time.Time) (*models.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[oid]
	if !ok {
		return nil, ErrNotFound
	}
	if order.OrderStatus != models.StatusDelivered || order.Rating != nil {
		return nil, ErrConflict
	}
	order.Rating = &rating
	order.Feedback = feedback
	order.Updated_at = at
	return clone(order), nil
}

// Chat

func (m *MemoryStore) AppendMessage(_ context.Context, msg *models.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	if msg.RelatedFoodItems == nil {
		msg.RelatedFoodItems = []string{}
	}
	m.messages = append(m.messages, clone(msg))
	return nil
}

func chatMatches(msg *models.ChatMessage, userID, sessionID string) bool {
	return msg.User_id == userID && (sessionID == "" || msg.SessionID == sessionID)
}

func (m *MemoryStore) ListMessages(_ context.Context, userID, sessionID string) ([]models.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	messages := []models.ChatMessage{}
	for _, msg := range m.messages {
		if chatMatches(msg, userID, sessionID) {
			messages = append(messages, *clone(msg))
		}
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages, nil
}

func (m *MemoryStore) ClearMessages(_ context.Context, userID, sessionID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.messages[:0]
	var deleted int64
	for _, msg := range m.messages {
		if chatMatches(msg, userID, sessionID) {
			deleted++
			continue
		}
		kept = append(kept, msg)
	}
	m.messages = kept
	return deleted, nil
}

// Calorie ledger

func (m *MemoryStore) AddMeal(_ context.Context, userID string, day time.Time, meal models.Meal, nutrition models.NutritionSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := dayKey{user: userID, day: day.Unix()}
	now := m.now()
	tracker, ok := m.calories[key]
	if !ok {
		tracker = &models.CalorieTracker{
			ID:         primitive.NewObjectID(),
			User_id:    userID,
			Date:       day,
			Meals:      []models.Meal{},
			Created_at: now,
		}
		m.calories[key] = tracker
	}
	tracker.Meals = append(tracker.Meals, *clone(&meal))
	tracker.TotalCalories += meal.TotalCalories
	tracker.NutritionSummary = tracker.NutritionSummary.Add(nutrition)
	tracker.Updated_at = now
	return nil
}

func (m *MemoryStore) FindCalorieTracker(_ context.Context, userID string, day time.Time) (*models.CalorieTracker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tracker, ok := m.calories[dayKey{user: userID, day: day.Unix()}]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(tracker), nil
}

func (m *MemoryStore) ListCalorieTrackers(_ context.Context, userID string, from, to time.Time) ([]models.CalorieTracker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	trackers := []models.CalorieTracker{}
	for key, t := range m.calories {
		if key.user != userID || t.Date.Before(from) || !t.Date.Before(to) {
			continue
		}
		trackers = append(trackers, *clone(t))
	}
	sort.Slice(trackers, func(i, j int) bool { return trackers[i].Date.Before(trackers[j].Date) })
	return trackers, nil
}

// Expense ledger

func (m *MemoryStore) expenseTracker(userID string, year, month int) *models.ExpenseTracker {
	key := monthKey{user: userID, year: year, month: month}
	tracker, ok := m.expenses[key]
	if !ok {
		tracker = &models.ExpenseTracker{
			ID:         primitive.NewObjectID(),
			User_id:    userID,
			Year:       year,
			Month:      month,
			Expenses:   []models.Expense{},
			Created_at: m.now(),
		}
		m.expenses[key] = tracker
	}
	return tracker
}

func (m *MemoryStore) AddExpense(_ context.Context, userID string, year, month int, expense models.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tracker := m.expenseTracker(userID, year, month)
	tracker.Expenses = append(tracker.Expenses, expense)
	tracker.TotalExpense += expense.Amount
	tracker.Categories = tracker.Categories.Plus(expense.Category, expense.Amount)
	tracker.Updated_at = m.now()
	return nil
}

func (m *MemoryStore) FindExpenseTracker(_ context.Context, userID string, year, month int) (*models.ExpenseTracker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tracker, ok := m.expenses[monthKey{user: userID, year: year, month: month}]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(tracker), nil
}

func (m *MemoryStore) ListExpenseTrackers(_ context.Context, userID string, fromYear, fromMonth, toYear, toMonth int) ([]models.ExpenseTracker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lo, hi := MonthIndex(fromYear, fromMonth), MonthIndex(toYear, toMonth)
	trackers := []models.ExpenseTracker{}
	for key, t := range m.expenses {
		idx := MonthIndex(key.year, key.month)
		if key.user == userID && idx >= lo && idx <= hi {
			trackers = append(trackers, *clone(t))
		}
	}
	sort.Slice(trackers, func(i, j int) bool {
		return MonthIndex(trackers[i].Year, trackers[i].Month) < MonthIndex(trackers[j].Year, trackers[j].Month)
	})
	return trackers, nil
}

func (m *MemoryStore) SetBudget(_ context.Context, userID string, year, month int, budget float64) (*models.ExpenseTracker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tracker := m.expenseTracker(userID, year, month)
	tracker.Budget = budget
	tracker.Savings = Savings(budget, tracker.TotalExpense)
	tracker.Updated_at = m.now()
	return clone(tracker), nil
}
