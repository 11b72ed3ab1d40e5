package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/Ayush-478/Veggio/models"
	"github.com/Ayush-478/Veggio/store"
)

// lunchtime is the fixed clock of the fixture.
var lunchtime = time.Date(2024, time.March, 14, 12, 30, 0, 0, time.UTC)

type recordingNotifier struct {
	mu       sync.Mutex
	statuses []models.OrderStatus
}

func (n *recordingNotifier) OrderStatusChanged(order *models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses = append(n.statuses, order.OrderStatus)
}

func (n *recordingNotifier) seen() []models.OrderStatus {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.OrderStatus(nil), n.statuses...)
}

type fixture struct {
	ctx       context.Context
	now       time.Time
	st        *store.MemoryStore
	catalog   *CatalogService
	carts     *CartService
	ledger    *Ledger
	orders    *OrderService
	notifier  *recordingNotifier
	assistant *Assistant
	chat      *ChatService
	trackers  *TrackerService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	f := &fixture{ctx: context.Background(), now: lunchtime, st: store.NewMemoryStore()}
	clock := func() time.Time { return f.now }
	f.st.SetClock(clock)

	f.catalog = NewCatalogService(f.st)
	f.catalog.now = clock
	f.carts = NewCartService(f.st)
	f.carts.now = clock
	f.ledger = NewLedger(f.st, logger)
	f.ledger.now = clock
	f.notifier = &recordingNotifier{}
	f.orders = NewOrderService(f.st, f.carts, f.ledger, f.notifier, logger)
	f.orders.now = clock
	f.assistant = NewAssistant(f.st, logger)
	f.assistant.now = clock
	f.chat = NewChatService(f.st, f.assistant)
	f.chat.now = clock
	f.trackers = NewTrackerService(f.st)
	f.trackers.now = clock
	return f
}

func (f *fixture) user(t *testing.T, name string, role string) *models.User {
	t.Helper()
	u := &models.User{
		Name:               name,
		Email:              name + "@example.com",
		Role:               role,
		DietaryPreferences: []string{},
	}
	if err := f.st.InsertUser(f.ctx, u); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return u
}

func (f *fixture) food(t *testing.T, name string, price float64, edit func(*models.Food)) *models.Food {
	t.Helper()
	food := &models.Food{
		Name:        name,
		Description: name + " from the kitchen",
		Price:       price,
		Category:    models.CategoryMainCourse,
		IsAvailable: true,
		Ingredients: []string{},
		NutritionalInfo: models.NutritionalInfo{
			Calories: 100, Protein: 10, Carbohydrates: 20, Fat: 5,
		},
	}
	if edit != nil {
		edit(food)
	}
	if err := f.st.InsertFood(f.ctx, food); err != nil {
		t.Fatalf("insert food: %v", err)
	}
	return food
}

// advance walks the order through statuses as an admin.
func (f *fixture) advance(t *testing.T, admin *models.User, order *models.Order, statuses ...models.OrderStatus) *models.Order {
	t.Helper()
	for _, status := range statuses {
		updated, err := f.orders.UpdateStatus(f.ctx, admin, order.ID.Hex(), status, "")
		if err != nil {
			t.Fatalf("move order to %s: %v", status, err)
		}
		order = updated
	}
	return order
}

func (f *fixture) addToCart(t *testing.T, user *models.User, food *models.Food, quantity int) {
	t.Helper()
	if _, err := f.carts.AddItem(f.ctx, user.ID.Hex(), food.ID.Hex(), quantity); err != nil {
		t.Fatalf("add %s to cart: %v", food.Name, err)
	}
}

func (f *fixture) placeOrder(t *testing.T, user *models.User) *models.Order {
	t.Helper()
	order, err := f.orders.Place(f.ctx, user, PlaceOrderInput{
		DeliveryAddress: models.Address{Street: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701", Country: "US"},
		PaymentMethod:   models.PaymentCreditCard,
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	return order
}

func wantKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if got := KindOf(err); got != kind {
		t.Fatalf("expected %s error, got %s (%v)", kind, got, err)
	}
}
