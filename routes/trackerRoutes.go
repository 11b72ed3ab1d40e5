package routes

import (
	"net/http"

	controller "github.com/Ayush-478/Veggio/controllers"

	"github.com/gorilla/mux"
)

func CalorieTrackerProtectedRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/calorie-tracker/date/{date}", c.GetCalorieTrackerByDate).Methods(http.MethodGet)
	router.HandleFunc("/calorie-tracker/range", c.GetCalorieTrackerByRange).Methods(http.MethodGet)
	router.HandleFunc("/calorie-tracker/summary", c.GetCalorieSummary).Methods(http.MethodGet)
	router.HandleFunc("/calorie-tracker/goal", c.UpdateCalorieGoal).Methods(http.MethodPut)
}

func ExpenseTrackerProtectedRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/expense-tracker/month/{year}/{month}", c.GetExpenseTrackerByMonth).Methods(http.MethodGet)
	router.HandleFunc("/expense-tracker/range", c.GetExpenseTrackerByRange).Methods(http.MethodGet)
	router.HandleFunc("/expense-tracker/summary", c.GetExpenseSummary).Methods(http.MethodGet)
	router.HandleFunc("/expense-tracker/budget", c.UpdateBudget).Methods(http.MethodPut)
}
