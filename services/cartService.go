package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ayush-478/Veggio/models"
	"github.com/Ayush-478/Veggio/store"
)

type CartService struct {
	carts store.CartStore
	foods store.FoodStore
	now   func() time.Time
}

func NewCartService(st store.Store) *CartService {
	return &CartService{carts: st, foods: st, now: time.Now}
}

// Get returns the user's cart, or an empty unsaved one.
func (s *CartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.FindCart(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		now := s.now()
		return &models.Cart{User_id: userID, Items: []models.CartItem{}, Created_at: now, Updated_at: now}, nil
	}
	if err != nil {
		return nil, Internal("load cart", err)
	}
	return cart, nil
}

func (s *CartService) AddItem(ctx context.Context, userID, foodID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, Validation("Quantity must be at least 1")
	}
	food, err := s.foods.FindFood(ctx, foodID)
	if err != nil {
		return nil, fromStore("load food item", err, "Food item not found")
	}
	if !food.IsAvailable {
		return nil, Validation("Food item is not available")
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	merged := false
	for i := range cart.Items {
		if cart.Items[i].Food_id == foodID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{ID: primitive.NewObjectID(), Food_id: foodID, Quantity: quantity})
	}
	return s.save(ctx, cart)
}

// UpdateItem sets the quantity of a cart line; zero or less removes it.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*models.Cart, error) {
	cart, idx, err := s.findLine(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		cart.Items[idx].Quantity = quantity
	}
	return s.save(ctx, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*models.Cart, error) {
	return s.UpdateItem(ctx, userID, itemID, 0)
}

func (s *CartService) Clear(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Items = []models.CartItem{}
	return s.save(ctx, cart)
}

func (s *CartService) findLine(ctx context.Context, userID, itemID string) (*models.Cart, int, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	for i, item := range cart.Items {
		if item.ID.Hex() == itemID {
			return cart, i, nil
		}
	}
	return nil, 0, NotFound("Item not found in cart")
}

// lines resolves cart items against the catalog. Items whose food no longer
// exists are dropped from the cart.
func (s *CartService) lines(ctx context.Context, cart *models.Cart) ([]pricedLine, error) {
	ids := make([]string, len(cart.Items))
	for i, item := range cart.Items {
		ids[i] = item.Food_id
	}
	foods, err := s.foods.FindFoods(ctx, ids)
	if err != nil {
		return nil, Internal("load cart food items", err)
	}
	byID := make(map[string]*models.Food, len(foods))
	for i := range foods {
		byID[foods[i].ID.Hex()] = &foods[i]
	}

	kept := cart.Items[:0]
	lines := make([]pricedLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		food, ok := byID[item.Food_id]
		if !ok {
			continue
		}
		kept = append(kept, item)
		lines = append(lines, pricedLine{food: food, quantity: item.Quantity})
	}
	cart.Items = kept
	return lines, nil
}

// refresh recomputes the cart totals from current catalog data.
func (s *CartService) refresh(ctx context.Context, cart *models.Cart) ([]pricedLine, error) {
	lines, err := s.lines(ctx, cart)
	if err != nil {
		return nil, err
	}
	q := quote(lines)
	cart.TotalAmount = q.Subtotal.InexactFloat64()
	cart.TotalCalories = 0
	cart.NutritionSummary = models.NutritionSummary{}
	for _, l := range lines {
		cart.TotalCalories += l.food.NutritionalInfo.Calories * float64(l.quantity)
		cart.NutritionSummary = cart.NutritionSummary.Add(l.food.NutritionFor(l.quantity))
	}
	return lines, nil
}

func (s *CartService) save(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	if _, err := s.refresh(ctx, cart); err != nil {
		return nil, err
	}
	cart.Updated_at = s.now()
	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, Internal("save cart", err)
	}
	return cart, nil
}
