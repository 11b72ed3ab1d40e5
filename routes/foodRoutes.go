package routes

import (
	"net/http"

	controller "github.com/Ayush-478/Veggio/controllers"
	middleware "github.com/Ayush-478/Veggio/middlewares"

	"github.com/gorilla/mux"
)

const foodID = "/food/{food_id:[0-9a-fA-F]{24}}"

func admin(h http.HandlerFunc) http.Handler {
	return middleware.AdminOnly(h)
}

func FoodPublicRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/food", c.GetFoods).Methods(http.MethodGet)
	router.HandleFunc(foodID, c.GetFood).Methods(http.MethodGet)
}

func FoodProtectedRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/food/recommendations", c.GetRecommendations).Methods(http.MethodGet)
	router.HandleFunc(foodID+"/reviews", c.ReviewFood).Methods(http.MethodPost)

	router.Handle("/food", admin(c.CreateFood)).Methods(http.MethodPost)
	router.Handle(foodID, admin(c.UpdateFood)).Methods(http.MethodPut)
	router.Handle(foodID, admin(c.DeleteFood)).Methods(http.MethodDelete)
}
