package routes

import (
	"net/http"

	controller "github.com/Ayush-478/Veggio/controllers"

	"github.com/gorilla/mux"
)

func OrderProtectedRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/orders", c.GetOrders).Methods(http.MethodGet)
	router.HandleFunc("/orders", c.CreateOrder).Methods(http.MethodPost)

	router.HandleFunc("/orders/{order_id}", c.GetOrder).Methods(http.MethodGet)
	router.Handle("/orders/{order_id}/status", admin(c.UpdateOrderStatus)).Methods(http.MethodPut)
	router.HandleFunc("/orders/{order_id}/cancel", c.CancelOrder).Methods(http.MethodPut)
	router.HandleFunc("/orders/{order_id}/feedback", c.AddOrderFeedback).Methods(http.MethodPut)
}
