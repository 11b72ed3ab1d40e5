package services

import (
	"context"
	"errors"
	"time"

	"github.com/Ayush-478/Veggio/models"
	"github.com/Ayush-478/Veggio/store"
)

type CatalogQuery struct {
	Category   string
	Vegetarian bool
	Vegan      bool
	GlutenFree bool
	Search     string
	Page       int
	PerPage    int
}

type CatalogPage struct {
	Foods      []models.Food
	Page       int
	PerPage    int
	Total      int64
	TotalPages int64
}

type CatalogService struct {
	foods store.FoodStore
	now   func() time.Time
}

func NewCatalogService(st store.FoodStore) *CatalogService {
	return &CatalogService{foods: st, now: time.Now}
}

// List pages through the available items matching q.
func (s *CatalogService) List(ctx context.Context, q CatalogQuery) (*CatalogPage, error) {
	if q.PerPage < 1 {
		q.PerPage = 10
	}
	if q.Page < 1 {
		q.Page = 1
	}
	filter := store.FoodFilter{
		AvailableOnly: true,
		Vegetarian:    q.Vegetarian,
		Vegan:         q.Vegan,
		GlutenFree:    q.GlutenFree,
		NameContains:  q.Search,
	}
	if q.Category != "" {
		if !models.IsFoodCategory(q.Category) {
			return nil, Validation("Unknown category %q", q.Category)
		}
		filter.Categories = []string{q.Category}
	}

	total, err := s.foods.CountFoods(ctx, filter)
	if err != nil {
		return nil, Internal("count food items", err)
	}
	filter.Skip = (q.Page - 1) * q.PerPage
	filter.Limit = q.PerPage
	foods, err := s.foods.ListFoods(ctx, filter)
	if err != nil {
		return nil, Internal("list food items", err)
	}
	per := int64(q.PerPage)
	return &CatalogPage{
		Foods:      foods,
		Page:       q.Page,
		PerPage:    q.PerPage,
		Total:      total,
		TotalPages: (total + per - 1) / per,
	}, nil
}

// Menu groups the available items by category, in menu order.
func (s *CatalogService) Menu(ctx context.Context) (map[string][]models.Food, error) {
	foods, err := s.foods.ListFoods(ctx, store.FoodFilter{AvailableOnly: true})
	if err != nil {
		return nil, Internal("list food items", err)
	}
	menu := make(map[string][]models.Food)
	for _, f := range foods {
		menu[f.Category] = append(menu[f.Category], f)
	}
	return menu, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.Food, error) {
	food, err := s.foods.FindFood(ctx, id)
	if err != nil {
		return nil, fromStore("load food item", err, "Food item not found")
	}
	return food, nil
}

func (s *CatalogService) Create(ctx context.Context, food *models.Food) (*models.Food, error) {
	if !models.IsFoodCategory(food.Category) {
		return nil, Validation("Unknown category %q", food.Category)
	}
	now := s.now()
	food.Ratings = []models.Rating{}
	food.AverageRating = 0
	food.Created_at = now
	food.Updated_at = now
	if err := s.foods.InsertFood(ctx, food); err != nil {
		return nil, Internal("create food item", err)
	}
	return food, nil
}

// Update replaces the editable fields of a food item. Ratings are kept.
func (s *CatalogService) Update(ctx context.Context, id string, changes *models.Food) (*models.Food, error) {
	if !models.IsFoodCategory(changes.Category) {
		return nil, Validation("Unknown category %q", changes.Category)
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	changes.ID = current.ID
	changes.Updated_at = s.now()
	if err := s.foods.UpdateFood(ctx, changes); err != nil {
		return nil, fromStore("update food item", err, "Food item not found")
	}
	return s.Get(ctx, id)
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	return fromStore("delete food item", s.foods.DeleteFood(ctx, id), "Food item not found")
}

// Review records the user's rating of a food item. Each user reviews an item
// once.
func (s *CatalogService) Review(ctx context.Context, user *models.User, id string, rating int, review string) (*models.Food, error) {
	if rating < 1 || rating > 5 {
		return nil, Validation("Rating must be between 1 and 5")
	}
	food, err := s.foods.AddRating(ctx, id, models.Rating{
		User_id: user.ID.Hex(),
		Rating:  rating,
		Review:  review,
		Date:    s.now(),
	})
	switch {
	case errors.Is(err, store.ErrConflict):
		return nil, Validation("You have already reviewed this item")
	case err != nil:
		return nil, fromStore("add rating", err, "Food item not found")
	}
	return food, nil
}

type Recommendations struct {
	Recommended []models.Food `json:"recommended"`
	Popular     []models.Food `json:"popular"`
	HighlyRated []models.Food `json:"highlyRated"`
}

// Recommend lists chef's recommendations, popular items and the best rated,
// five of each, respecting the user's dietary preferences.
func (s *CatalogService) Recommend(ctx context.Context, user *models.User) (*Recommendations, error) {
	base := store.FoodFilter{
		AvailableOnly: true,
		Vegetarian:    user.Prefers("vegetarian"),
		Vegan:         user.Prefers("vegan"),
		GlutenFree:    user.Prefers("gluten-free"),
		Limit:         5,
	}

	recommended := base
	recommended.Recommended = true
	popular := base
	popular.Popular = true
	rated := base
	rated.SortByRating = true

	var out Recommendations
	for _, q := range []struct {
		filter store.FoodFilter
		dst    *[]models.Food
	}{
		{recommended, &out.Recommended},
		{popular, &out.Popular},
		{rated, &out.HighlyRated},
	} {
		foods, err := s.foods.ListFoods(ctx, q.filter)
		if err != nil {
			return nil, Internal("list recommendations", err)
		}
		*q.dst = foods
	}
	return &out, nil
}
