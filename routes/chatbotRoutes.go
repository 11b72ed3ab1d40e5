package routes

import (
	"net/http"

	controller "github.com/Ayush-478/Veggio/controllers"

	"github.com/gorilla/mux"
)

func ChatbotProtectedRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/chatbot/message", c.SendChatMessage).Methods(http.MethodPost)
	router.HandleFunc("/chatbot/history", c.GetChatHistory).Methods(http.MethodGet)
	router.HandleFunc("/chatbot/history", c.ClearChatHistory).Methods(http.MethodDelete)
}

func RealtimeProtectedRoutes(router *mux.Router, c *controller.Controller) {
	router.HandleFunc("/ws", c.Realtime).Methods(http.MethodGet)
}
