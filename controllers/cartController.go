package controller

import (
	"net/http"

	"github.com/gorilla/mux"
)

type addCartItemRequest struct {
	FoodItemID string `json:"foodItemId" validate:"required"`
	Quantity   int    `json:"quantity" validate:"omitempty,min=1"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (c *Controller) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	cart, err := c.Carts.Get(ctx, currentUser(r).ID.Hex())
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (c *Controller) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	var req addCartItemRequest
	if err := decode(r, &req); err != nil {
		c.handleError(w, r, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	cart, err := c.Carts.AddItem(ctx, currentUser(r).ID.Hex(), req.FoodItemID, req.Quantity)
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// Set the quantity of a cart line; zero or less removes it
func (c *Controller) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	var req updateCartItemRequest
	if err := decode(r, &req); err != nil {
		c.handleError(w, r, err)
		return
	}
	cart, err := c.Carts.UpdateItem(ctx, currentUser(r).ID.Hex(), mux.Vars(r)["item_id"], req.Quantity)
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (c *Controller) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	cart, err := c.Carts.RemoveItem(ctx, currentUser(r).ID.Hex(), mux.Vars(r)["item_id"])
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (c *Controller) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	cart, err := c.Carts.Clear(ctx, currentUser(r).ID.Hex())
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}
