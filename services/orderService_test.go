package services

import (
	"testing"
	"time"

	"github.com/Ayush-478/Veggio/models"
)

func TestPlaceOrderPricing(t *testing.T) {
	cases := []struct {
		name     string
		lines    [][2]float64 // price, quantity
		subtotal float64
		tax      float64
		fee      float64
		total    float64
	}{
		{"free delivery", [][2]float64{{10, 2}, {5, 1}}, 25, 2, 0, 27},
		{"small order fee", [][2]float64{{5, 1}, {4, 2}}, 13, 1.04, 2, 16.04},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			user := f.user(t, "dana", models.RoleUser)
			for i, line := range tc.lines {
				food := f.food(t, string(rune('A'+i))+" dish", line[0], nil)
				f.addToCart(t, user, food, int(line[1]))
			}

			order := f.placeOrder(t, user)

			if order.TaxAmount != tc.tax {
				t.Errorf("tax = %v, want %v", order.TaxAmount, tc.tax)
			}
			if order.DeliveryFee != tc.fee {
				t.Errorf("delivery fee = %v, want %v", order.DeliveryFee, tc.fee)
			}
			if order.TotalAmount != tc.total {
				t.Errorf("total = %v, want %v", order.TotalAmount, tc.total)
			}
			var subtotal float64
			for _, item := range order.Items {
				subtotal += item.TotalPrice
			}
			if subtotal != tc.subtotal {
				t.Errorf("subtotal = %v, want %v", subtotal, tc.subtotal)
			}
		})
	}
}

func TestPlaceOrderRecordsHistoryAndClearsCart(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "dana", models.RoleUser)
	f.addToCart(t, user, f.food(t, "Paneer Wrap", 8.5, nil), 2)

	order := f.placeOrder(t, user)

	if order.OrderStatus != models.StatusPlaced {
		t.Fatalf("status = %q, want placed", order.OrderStatus)
	}
	if len(order.StatusHistory) != 1 || order.StatusHistory[0].Note != "Order placed successfully" {
		t.Fatalf("unexpected status history %+v", order.StatusHistory)
	}
	if order.TotalCalories != 200 {
		t.Errorf("total calories = %v, want 200", order.TotalCalories)
	}
	if order.EstimatedDeliveryTime == nil || !order.EstimatedDeliveryTime.Equal(lunchtime.Add(deliveryWindow)) {
		t.Errorf("estimated delivery = %v", order.EstimatedDeliveryTime)
	}

	cart, err := f.carts.Get(f.ctx, user.ID.Hex())
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if !cart.IsEmpty() {
		t.Errorf("cart still holds %d items", len(cart.Items))
	}
	if got := f.notifier.seen(); len(got) != 1 || got[0] != models.StatusPlaced {
		t.Errorf("notifications = %v", got)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "dana", models.RoleUser)

	_, err := f.orders.Place(f.ctx, user, PlaceOrderInput{PaymentMethod: models.PaymentWallet})
	wantKind(t, err, KindValidation)
}

func TestPlaceOrderRejectsItemThatBecameUnavailable(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "dana", models.RoleUser)
	food := f.food(t, "Soup", 6, nil)
	f.addToCart(t, user, food, 1)

	food.IsAvailable = false
	if err := f.st.UpdateFood(f.ctx, food); err != nil {
		t.Fatalf("update food: %v", err)
	}

	_, err := f.orders.Place(f.ctx, user, PlaceOrderInput{PaymentMethod: models.PaymentWallet})
	wantKind(t, err, KindValidation)
}

func TestCancelOrder(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "dana", models.RoleUser)
	stranger := f.user(t, "eli", models.RoleUser)
	f.addToCart(t, owner, f.food(t, "Soup", 6, nil), 1)
	order := f.placeOrder(t, owner)

	_, err := f.orders.Cancel(f.ctx, stranger, order.ID.Hex())
	wantKind(t, err, KindAuthorization)

	cancelled, err := f.orders.Cancel(f.ctx, owner, order.ID.Hex())
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.OrderStatus != models.StatusCancelled {
		t.Fatalf("status = %q", cancelled.OrderStatus)
	}
	last := cancelled.StatusHistory[len(cancelled.StatusHistory)-1]
	if last.Note != "Order cancelled by user" {
		t.Errorf("note = %q", last.Note)
	}
	if len(cancelled.StatusHistory) != 2 {
		t.Errorf("history has %d entries, want 2", len(cancelled.StatusHistory))
	}

	_, err = f.orders.Cancel(f.ctx, owner, order.ID.Hex())
	wantKind(t, err, KindValidation)

	stored, err := f.st.FindOrder(f.ctx, order.ID.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.StatusHistory) != 2 || stored.OrderStatus != models.StatusCancelled {
		t.Errorf("rejected cancel changed the order: status %q, %d history entries", stored.OrderStatus, len(stored.StatusHistory))
	}
}

func TestUpdateStatusMovesForwardOnly(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "dana", models.RoleUser)
	admin := f.user(t, "root", models.RoleAdmin)
	f.addToCart(t, owner, f.food(t, "Soup", 6, nil), 1)
	order := f.placeOrder(t, owner)
	id := order.ID.Hex()

	_, err := f.orders.UpdateStatus(f.ctx, owner, id, models.StatusConfirmed, "")
	wantKind(t, err, KindAuthorization)

	_, err = f.orders.UpdateStatus(f.ctx, admin, id, "shipped", "")
	wantKind(t, err, KindValidation)

	for _, skip := range []models.OrderStatus{models.StatusPreparing, models.StatusDelivered} {
		_, err = f.orders.UpdateStatus(f.ctx, admin, id, skip, "")
		wantKind(t, err, KindValidation)
	}

	updated := f.advance(t, admin, order, models.StatusConfirmed, models.StatusPreparing)
	if note := updated.StatusHistory[len(updated.StatusHistory)-1].Note; note != "Order preparing" {
		t.Errorf("default note = %q", note)
	}
	if len(updated.StatusHistory) != 3 {
		t.Errorf("history has %d entries, want 3", len(updated.StatusHistory))
	}

	_, err = f.orders.UpdateStatus(f.ctx, admin, id, models.StatusConfirmed, "")
	wantKind(t, err, KindValidation)

	f.advance(t, admin, order, models.StatusOutForDelivery)
	f.now = lunchtime.Add(40 * time.Minute)
	delivered, err := f.orders.UpdateStatus(f.ctx, admin, id, models.StatusDelivered, "Left at the door")
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if delivered.ActualDeliveryTime == nil || !delivered.ActualDeliveryTime.Equal(f.now) {
		t.Errorf("actual delivery time = %v", delivered.ActualDeliveryTime)
	}

	_, err = f.orders.Cancel(f.ctx, owner, id)
	wantKind(t, err, KindValidation)
}

func TestOrderFeedback(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "dana", models.RoleUser)
	admin := f.user(t, "root", models.RoleAdmin)
	f.addToCart(t, owner, f.food(t, "Soup", 6, nil), 1)
	order := f.placeOrder(t, owner)
	id := order.ID.Hex()

	_, err := f.orders.Feedback(f.ctx, owner, id, 5, "great")
	wantKind(t, err, KindValidation)

	stored, err := f.st.FindOrder(f.ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Rating != nil || stored.Feedback != "" {
		t.Errorf("rejected feedback was stored: rating %v, feedback %q", stored.Rating, stored.Feedback)
	}

	f.advance(t, admin, order, models.StatusConfirmed, models.StatusPreparing, models.StatusOutForDelivery, models.StatusDelivered)

	_, err = f.orders.Feedback(f.ctx, owner, id, 6, "too good")
	wantKind(t, err, KindValidation)
	_, err = f.orders.Feedback(f.ctx, admin, id, 4, "not mine")
	wantKind(t, err, KindAuthorization)

	rated, err := f.orders.Feedback(f.ctx, owner, id, 4, "warm and quick")
	if err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if rated.Rating == nil || *rated.Rating != 4 || rated.Feedback != "warm and quick" {
		t.Errorf("feedback not stored: %+v", rated)
	}

	_, err = f.orders.Feedback(f.ctx, owner, id, 3, "again")
	wantKind(t, err, KindValidation)
}

func TestGetOrderHidesOtherUsersOrders(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "dana", models.RoleUser)
	stranger := f.user(t, "eli", models.RoleUser)
	admin := f.user(t, "root", models.RoleAdmin)
	f.addToCart(t, owner, f.food(t, "Soup", 6, nil), 1)
	order := f.placeOrder(t, owner)

	_, err := f.orders.Get(f.ctx, stranger, order.ID.Hex())
	wantKind(t, err, KindNotFound)

	if _, err := f.orders.Get(f.ctx, admin, order.ID.Hex()); err != nil {
		t.Errorf("admin get: %v", err)
	}
	_, err = f.orders.Get(f.ctx, owner, "not-an-id")
	wantKind(t, err, KindNotFound)
}

func TestListOrdersNewestFirst(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "dana", models.RoleUser)
	soup := f.food(t, "Soup", 6, nil)

	f.addToCart(t, user, soup, 1)
	first := f.placeOrder(t, user)
	f.now = lunchtime.Add(time.Hour)
	f.addToCart(t, user, soup, 1)
	second := f.placeOrder(t, user)

	orders, err := f.orders.List(f.ctx, user.ID.Hex())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != second.ID || orders[1].ID != first.ID {
		t.Fatalf("unexpected order list %+v", orders)
	}
}
