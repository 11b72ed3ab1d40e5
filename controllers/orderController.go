package controller

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Ayush-478/Veggio/models"
	"github.com/Ayush-478/Veggio/services"
)

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"`
}

type feedbackRequest struct {
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback" validate:"max=2000"`
}

// Place an order from the user's cart
func (c *Controller) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	var req services.PlaceOrderInput
	if err := decode(r, &req); err != nil {
		c.handleError(w, r, err)
		return
	}
	order, err := c.Orders.Place(ctx, currentUser(r), req)
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (c *Controller) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	orders, err := c.Orders.List(ctx, currentUser(r).ID.Hex())
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (c *Controller) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	order, err := c.Orders.Get(ctx, currentUser(r), mux.Vars(r)["order_id"])
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (c *Controller) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	var req updateStatusRequest
	if err := decode(r, &req); err != nil {
		c.handleError(w, r, err)
		return
	}
	order, err := c.Orders.UpdateStatus(ctx, currentUser(r), mux.Vars(r)["order_id"], models.OrderStatus(req.Status), req.Note)
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (c *Controller) CancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	order, err := c.Orders.Cancel(ctx, currentUser(r), mux.Vars(r)["order_id"])
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (c *Controller) AddOrderFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := c.requestContext(r)
	defer cancel()

	var req feedbackRequest
	if err := decode(r, &req); err != nil {
		c.handleError(w, r, err)
		return
	}
	order, err := c.Orders.Feedback(ctx, currentUser(r), mux.Vars(r)["order_id"], req.Rating, req.Feedback)
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
