package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Ayush-478/Veggio/models"
	"github.com/Ayush-478/Veggio/store"
)

const deliveryWindow = 45 * time.Minute

// OrderNotifier is told about every order status write.
type OrderNotifier interface {
	OrderStatusChanged(order *models.Order)
}

type PlaceOrderInput struct {
	DeliveryAddress      models.Address `json:"deliveryAddress" validate:"required"`
	PaymentMethod        string         `json:"paymentMethod" validate:"required,oneof='credit card' 'debit card' 'cash on delivery' wallet"`
	DeliveryInstructions string         `json:"deliveryInstructions"`
	OrderNotes           string         `json:"orderNotes"`
}

type OrderService struct {
	orders   store.OrderStore
	carts    *CartService
	ledger   *Ledger
	notifier OrderNotifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewOrderService(st store.Store, carts *CartService, ledger *Ledger, notifier OrderNotifier, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:   st,
		carts:    carts,
		ledger:   ledger,
		notifier: notifier,
		logger:   logger.Named("orders"),
		now:      time.Now,
	}
}

// Place turns the user's cart into an order, books it into the ledgers and
// empties the cart.
func (s *OrderService) Place(ctx context.Context, user *models.User, in PlaceOrderInput) (*models.Order, error) {
	userID := user.ID.Hex()
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, Validation("Cart is empty")
	}
	lines, err := s.carts.refresh(ctx, cart)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, Validation("Cart is empty")
	}
	for _, l := range lines {
		if !l.food.IsAvailable {
			return nil, Validation("%s is no longer available", l.food.Name)
		}
	}

	q := quote(lines)
	now := s.now()
	eta := now.Add(deliveryWindow)
	paymentStatus := models.PaymentCompleted
	if in.PaymentMethod == models.PaymentCashOnDelivery {
		paymentStatus = models.PaymentPending
	}

	order := &models.Order{
		User_id:               userID,
		Items:                 q.Items,
		TotalAmount:           q.Total.InexactFloat64(),
		TotalCalories:         cart.TotalCalories,
		NutritionSummary:      cart.NutritionSummary,
		DeliveryAddress:       in.DeliveryAddress,
		PaymentMethod:         in.PaymentMethod,
		PaymentStatus:         paymentStatus,
		OrderStatus:           models.StatusPlaced,
		StatusHistory:         []models.StatusEntry{{Status: models.StatusPlaced, Timestamp: now, Note: "Order placed successfully"}},
		DeliveryInstructions:  in.DeliveryInstructions,
		OrderNotes:            in.OrderNotes,
		TaxAmount:             q.Tax.InexactFloat64(),
		DeliveryFee:           q.DeliveryFee.InexactFloat64(),
		EstimatedDeliveryTime: &eta,
		Created_at:            now,
		Updated_at:            now,
	}
	if err := s.orders.InsertOrder(ctx, order); err != nil {
		return nil, Internal("save order", err)
	}
	s.logger.Info("order placed",
		zap.String("order", order.ID.Hex()),
		zap.String("user", userID),
		zap.Float64("total", order.TotalAmount))

	s.ledger.Record(ctx, order)

	if _, err := s.carts.Clear(ctx, userID); err != nil {
		s.logger.Error("clear cart after order", zap.String("user", userID), zap.Error(err))
	}
	s.notify(order)
	return order, nil
}

func (s *OrderService) List(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, Internal("list orders", err)
	}
	return orders, nil
}

// Get returns an order visible to user. Other users' orders are reported as
// missing.
func (s *OrderService) Get(ctx context.Context, user *models.User, id string) (*models.Order, error) {
	order, err := s.orders.FindOrder(ctx, id)
	if err != nil {
		return nil, fromStore("load order", err, "Order not found")
	}
	if order.User_id != user.ID.Hex() && !user.IsAdmin() {
		return nil, NotFound("Order not found")
	}
	return order, nil
}

func (s *OrderService) Cancel(ctx context.Context, user *models.User, id string) (*models.Order, error) {
	order, err := s.orders.FindOrder(ctx, id)
	if err != nil {
		return nil, fromStore("load order", err, "Order not found")
	}
	if order.User_id != user.ID.Hex() && !user.IsAdmin() {
		return nil, Forbidden("Not authorized")
	}
	if order.OrderStatus.Terminal() {
		return nil, Validation("Order cannot be cancelled as it is already %s", order.OrderStatus)
	}
	return s.transition(ctx, order, models.StatusCancelled, "Order cancelled by user")
}

// UpdateStatus moves an order forward along its lifecycle. Only admins may
// call it.
func (s *OrderService) UpdateStatus(ctx context.Context, user *models.User, id string, status models.OrderStatus, note string) (*models.Order, error) {
	if !user.IsAdmin() {
		return nil, Forbidden("Not authorized as an admin")
	}
	if !status.Valid() {
		return nil, Validation("Invalid order status %q", status)
	}
	order, err := s.orders.FindOrder(ctx, id)
	if err != nil {
		return nil, fromStore("load order", err, "Order not found")
	}
	if !order.OrderStatus.CanMoveTo(status) {
		return nil, Validation("Order cannot move from %s to %s", order.OrderStatus, status)
	}
	if note == "" {
		note = fmt.Sprintf("Order %s", status)
	}
	return s.transition(ctx, order, status, note)
}

func (s *OrderService) transition(ctx context.Context, order *models.Order, status models.OrderStatus, note string) (*models.Order, error) {
	entry := models.StatusEntry{Status: status, Timestamp: s.now(), Note: note}
	updated, err := s.orders.TransitionOrder(ctx, order.ID.Hex(), order.OrderStatus, entry)
	switch {
	case errors.Is(err, store.ErrConflict):
		return nil, Validation("Order status changed concurrently, please retry")
	case err != nil:
		return nil, fromStore("update order status", err, "Order not found")
	}
	s.logger.Info("order status changed",
		zap.String("order", updated.ID.Hex()),
		zap.String("from", string(order.OrderStatus)),
		zap.String("to", string(status)))
	s.notify(updated)
	return updated, nil
}

// Feedback attaches a rating to a delivered order. It can be given once.
func (s *OrderService) Feedback(ctx context.Context, user *models.User, id string, rating int, feedback string) (*models.Order, error) {
	if rating < 1 || rating > 5 {
		return nil, Validation("Rating must be between 1 and 5")
	}
	order, err := s.orders.FindOrder(ctx, id)
	if err != nil {
		return nil, fromStore("load order", err, "Order not found")
	}
	if order.User_id != user.ID.Hex() {
		return nil, Forbidden("Not authorized")
	}
	if order.OrderStatus != models.StatusDelivered {
		return nil, Validation("Can only add feedback to delivered orders")
	}
	if order.Rating != nil {
		return nil, Validation("Feedback has already been submitted for this order")
	}
	updated, err := s.orders.SetOrderFeedback(ctx, id, rating, feedback, s.now())
	switch {
	case errors.Is(err, store.ErrConflict):
		return nil, Validation("Feedback has already been submitted for this order")
	case err != nil:
		return nil, fromStore("save order feedback", err, "Order not found")
	}
	return updated, nil
}

func (s *OrderService) notify(order *models.Order) {
	if s.notifier != nil {
		s.notifier.OrderStatusChanged(order)
	}
}
