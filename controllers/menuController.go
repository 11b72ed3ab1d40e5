package controller

import (
	"net/http"

	"github.com/Ayush-478/Veggio/models"
)

type menuSection struct {
	Category string        `json:"category"`
	Items    []models.Food `json:"items"`
}

// Get the available foods grouped by category, in menu order
func (c *Controller) GetMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	grouped, err := c.Catalog.Menu(ctx)
	if err != nil {
		c.handleError(w, r, err)
		return
	}

	sections := []menuSection{}
	for _, category := range models.FoodCategories {
		if items := grouped[category]; len(items) > 0 {
			sections = append(sections, menuSection{Category: category, Items: items})
		}
	}
	writeSuccess(w, http.StatusOK, "Menu retrieved successfully", sections)
}
