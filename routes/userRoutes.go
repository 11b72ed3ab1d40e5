package routes

import (
	"net/http"

	controller "github.com/Ayush-478/Veggio/controllers"

	"github.com/gorilla/mux"
)

func PublicRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/users/signup", c.SignUp).Methods(http.MethodPost)
	router.HandleFunc("/users/login", c.Login).Methods(http.MethodPost)
	router.HandleFunc("/users/refresh", c.RefreshToken).Methods(http.MethodPost)
}

func ProtectedRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/users/profile", c.GetProfile).Methods(http.MethodGet)
	router.HandleFunc("/users/preferences", c.UpdatePreferences).Methods(http.MethodPut)
}
