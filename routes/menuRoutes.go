package routes

import (
	"net/http"

	controller "github.com/Ayush-478/Veggio/controllers"

	"github.com/gorilla/mux"
)

func MenuPublicRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/menu", c.GetMenu).Methods(http.MethodGet)
}
