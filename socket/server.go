package socket

import (
	"context"
	"errors"
	"net/url"
	"time"

	socketio "github.com/googollee/go-socket.io"
	"go.uber.org/zap"

	"vibin_chats/models"
	"vibin_chats/services"
)

// Authenticator resolves a session token to a user id
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (int64, error)
}

// Handlers holds the chat list socket behaviour, independent of the Socket.IO server
type Handlers struct {
	auth        Authenticator
	loader      RowLoader
	authTimeout time.Duration
	logger      *zap.Logger
}

func NewHandlers(auth Authenticator, loader RowLoader, authTimeout time.Duration, logger *zap.Logger) *Handlers {
	return &Handlers{auth: auth, loader: loader, authTimeout: authTimeout, logger: logger}
}

// Connect authenticates the connection from its "token" query parameter and mounts a view.
// Connections without a valid session are told to log in and get no view.
func (h *Handlers) Connect(conn Conn) *ChatListView {
	ctx, cancel := context.WithTimeout(context.Background(), h.authTimeout)
	defer cancel()

	u := conn.URL()
	userID, err := h.auth.Authenticate(ctx, u.Query().Get("token"))
	if err != nil {
		message := "not authenticated"
		if errors.Is(err, services.ErrCorruptSession) {
			message = "corrupt session"
		}
		h.logger.Info("⚠️ Socket without session", zap.String("socketId", conn.ID()), zap.Error(err))
		conn.Emit(EventAuthRequired, map[string]string{"error": message, "redirect": models.LoginRoute})
		return nil
	}

	h.logger.Info("✅ Socket connected", zap.String("socketId", conn.ID()), zap.Int64("userId", userID))
	return NewChatListView(h.loader, conn, userID, h.logger)
}

// Load starts a screen load on the connection's view
func (h *Handlers) Load(conn Conn, view *ChatListView) {
	if view == nil {
		conn.Emit(EventAuthRequired, map[string]string{"error": "not authenticated", "redirect": models.LoginRoute})
		return
	}
	go func() {
		if err := view.Load(context.Background()); err != nil && !errors.Is(err, ErrStaleLoad) && !errors.Is(err, ErrViewClosed) {
			h.logger.Debug("Chat list load ended with error", zap.String("socketId", conn.ID()), zap.Error(err))
		}
	}()
}

// Disconnect tears the connection's view down
func (h *Handlers) Disconnect(conn Conn, view *ChatListView, reason string) {
	h.logger.Info("❌ Socket disconnected", zap.String("socketId", conn.ID()), zap.String("reason", reason))
	if view != nil {
		view.Close()
	}
}

// Conn is the part of socketio.Conn the handlers use
type Conn interface {
	Emitter
	ID() string
	URL() url.URL
}

// NewSocketServer initializes the Socket.IO server of the chat list screen
func NewSocketServer(h *Handlers) *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		if view := h.Connect(c); view != nil {
			c.SetContext(view)
		}
		return nil
	})

	server.OnEvent("/", EventChatsLoad, func(c socketio.Conn) {
		view, _ := c.Context().(*ChatListView)
		h.Load(c, view)
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		h.logger.Warn("⚠️ Socket error", zap.Error(err))
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		view, _ := c.Context().(*ChatListView)
		h.Disconnect(c, view, reason)
	})

	return server
}
