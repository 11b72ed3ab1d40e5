package controller

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Ayush-478/Veggio/models"
	"github.com/Ayush-478/Veggio/services"
)

// foodRequest defaults isAvailable to true when the field is omitted.
type foodRequest struct {
	models.Food
	IsAvailable *bool `json:"isAvailable"`
}

func (f foodRequest) food() *models.Food {
	food := f.Food
	food.IsAvailable = f.IsAvailable == nil || *f.IsAvailable
	return &food
}

type reviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review" validate:"max=1000"`
}

func queryFlag(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}

// Get available foods with filters and pagination
func (c *Controller) GetFoods(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	recordPerPage, _ := strconv.Atoi(q.Get("recordPerPage"))

	result, err := c.Catalog.List(ctx, services.CatalogQuery{
		Category:   q.Get("category"),
		Vegetarian: queryFlag(r, "vegetarian"),
		Vegan:      queryFlag(r, "vegan"),
		GlutenFree: queryFlag(r, "glutenFree"),
		Search:     q.Get("search"),
		Page:       page,
		PerPage:    recordPerPage,
	})
	if err != nil {
		c.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Foods retrieved successfully",
		"data":    result.Foods,
		"pagination": map[string]interface{}{
			"current_page":     result.Page,
			"records_per_page": result.PerPage,
			"total_foods":      result.Total,
			"total_pages":      result.TotalPages,
		},
	})
}

// Get a single food
func (c *Controller) GetFood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	food, err := c.Catalog.Get(ctx, mux.Vars(r)["food_id"])
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Food item retrieved successfully", food)
}

func (c *Controller) CreateFood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	var req foodRequest
	if err := decode(r, &req); err != nil {
		c.handleError(w, r, err)
		return
	}
	food, err := c.Catalog.Create(ctx, req.food())
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Food item created successfully", food)
}

func (c *Controller) UpdateFood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	var req foodRequest
	if err := decode(r, &req); err != nil {
		c.handleError(w, r, err)
		return
	}
	food, err := c.Catalog.Update(ctx, mux.Vars(r)["food_id"], req.food())
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Food item updated successfully", food)
}

func (c *Controller) DeleteFood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	if err := c.Catalog.Delete(ctx, mux.Vars(r)["food_id"]); err != nil {
		c.handleError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Food item removed")
}

// Rate a food item, once per user
func (c *Controller) ReviewFood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	var req reviewRequest
	if err := decode(r, &req); err != nil {
		c.handleError(w, r, err)
		return
	}
	food, err := c.Catalog.Review(ctx, currentUser(r), mux.Vars(r)["food_id"], req.Rating, req.Review)
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Review added", food)
}

// Get personal picks for the current user
func (c *Controller) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	picks, err := c.Catalog.Recommend(ctx, currentUser(r))
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, picks)
}
