package routes

import (
	"net/http"

	controller "github.com/Ayush-478/Veggio/controllers"

	"github.com/gorilla/mux"
)

func CartProtectedRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/cart", c.GetCart).Methods(http.MethodGet)
	router.HandleFunc("/cart", c.AddToCart).Methods(http.MethodPost)
	router.HandleFunc("/cart", c.ClearCart).Methods(http.MethodDelete)

	router.HandleFunc("/cart/{item_id}", c.UpdateCartItem).Methods(http.MethodPut)
	router.HandleFunc("/cart/{item_id}", c.RemoveFromCart).Methods(http.MethodDelete)
}
