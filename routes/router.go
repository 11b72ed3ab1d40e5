package routes

import (
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	controller "github.com/Ayush-478/Veggio/controllers"
	middleware "github.com/Ayush-478/Veggio/middlewares"
)

// NewRouter mounts every route group. Routes registered on the secured
// subrouter require an access token.
func NewRouter(c *controller.Controller, auth *middleware.Auth, logger *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(logger))

	// Public Routes (No Authentication)
	PublicRoutes(router, c)
	FoodPublicRoutes(router, c)
	MenuPublicRoutes(router, c)

	securedRoutes := router.PathPrefix("/").Subrouter()
	securedRoutes.Use(auth.Authentication)
	ProtectedRoutes(securedRoutes, c)
	FoodProtectedRoutes(securedRoutes, c)
	CartProtectedRoutes(securedRoutes, c)
	OrderProtectedRoutes(securedRoutes, c)
	ChatbotProtectedRoutes(securedRoutes, c)
	CalorieTrackerProtectedRoutes(securedRoutes, c)
	ExpenseTrackerProtectedRoutes(securedRoutes, c)
	RealtimeProtectedRoutes(securedRoutes, c)

	return router
}
