package routes

import (
	"net/http"

	"vibin_chats/utils"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up the service routes that need no session
func RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", HealthCheckHandler).Methods("GET")
	r.HandleFunc("/", WelcomeHandler).Methods("GET")
}

// HealthCheckHandler provides a basic health check
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// WelcomeHandler provides a welcome message
func WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Welcome to Vibin chats"})
}
