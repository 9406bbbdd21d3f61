package routes

import (
	"vibin_chats/controllers"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up the chat list routes under /api/chats
func RegisterChatRoutes(r *mux.Router, controller *controllers.ChatController) {
	// on the root router so a wrong method is answered with 405
	r.HandleFunc("/api/chats", controller.HandleGetChats).Methods("GET")
	r.HandleFunc("/api/chats/", controller.HandleGetChats).Methods("GET")
}
