package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"vibin_chats/models"
	"vibin_chats/services"
	"vibin_chats/utils"
)

// ChatLister loads chat list screens
type ChatLister interface {
	Authenticate(ctx context.Context, token string) (int64, error)
	LoadRows(ctx context.Context, userID int64) ([]models.ChatRow, error)
}

// ChatController serves the chat list screen
type ChatController struct {
	ChatService ChatLister
	Timeout     time.Duration
	Logger      *zap.Logger
}

// NewChatController initializes the chat controller
func NewChatController(service ChatLister, timeout time.Duration, logger *zap.Logger) *ChatController {
	return &ChatController{ChatService: service, Timeout: timeout, Logger: logger}
}

// HandleGetChats - one chat list screen load for the session's user
func (c *ChatController) HandleGetChats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), c.Timeout)
	defer cancel()

	userID, err := c.ChatService.Authenticate(ctx, SessionToken(r))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoSession):
			utils.WriteJSONResponse(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated", "redirect": models.LoginRoute})
		case errors.Is(err, services.ErrCorruptSession):
			utils.WriteJSONResponse(w, http.StatusUnauthorized, map[string]string{"error": "corrupt session", "redirect": models.LoginRoute})
		default:
			c.Logger.Error("❌ Failed to read session", zap.Error(err))
			utils.WriteJSONError(w, http.StatusInternalServerError, "Failed to read session")
		}
		return
	}

	rows, err := c.ChatService.LoadRows(ctx, userID)
	if err != nil {
		c.Logger.Error("❌ Failed to load chat list", zap.Int64("userId", userID), zap.Error(err))
		utils.WriteJSONResponse(w, http.StatusBadGateway, models.ChatListResponse{
			Rows:  []models.ChatRow{},
			Error: "Failed to load chats",
		})
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, services.NewChatListResponse(rows))
}

// SessionToken reads the session token from "Authorization: Bearer" or X-Session-Token
func SessionToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return strings.TrimSpace(r.Header.Get("X-Session-Token"))
}
