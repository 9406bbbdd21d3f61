package socket

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vibin_chats/models"
	"vibin_chats/services"
)

// Socket.IO events of the chat list screen
const (
	EventChatsLoad    = "chats:load"
	EventChatsRows    = "chats:rows"
	EventChatsError   = "chats:error"
	EventAuthRequired = "auth:required"
)

var (
	ErrStaleLoad  = errors.New("chat list load superseded")
	ErrViewClosed = errors.New("chat list view closed")
)

// RowLoader loads the rendered chat list of a user
type RowLoader interface {
	LoadRows(ctx context.Context, userID int64) ([]models.ChatRow, error)
}

// Emitter delivers events to the client. socketio.Conn satisfies it.
type Emitter interface {
	Emit(event string, v ...interface{})
}

// ChatListView is one mounted chat list screen. Each Load gets a fresh token; only the
// result of the latest load is applied, and nothing is applied after Close.
type ChatListView struct {
	loader RowLoader
	sink   Emitter
	userID int64
	logger *zap.Logger

	mu      sync.Mutex
	current string
	cancel  context.CancelFunc
	closed  bool
}

func NewChatListView(loader RowLoader, sink Emitter, userID int64, logger *zap.Logger) *ChatListView {
	return &ChatListView{
		loader: loader,
		sink:   sink,
		userID: userID,
		logger: logger.With(zap.Int64("userId", userID)),
	}
}

// Load runs one screen load and applies it unless a newer Load started or the view closed
// in the meantime, in which case ErrStaleLoad is returned and nothing is emitted.
// Starting a Load cancels the one it supersedes.
func (v *ChatListView) Load(parent context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrViewClosed
	}
	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	token := uuid.NewString()
	v.current = token
	v.cancel = cancel
	v.mu.Unlock()
	defer cancel()

	rows, err := v.loader.LoadRows(ctx, v.userID)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed || v.current != token {
		v.logger.Debug("Discarding stale chat list load", zap.String("loadToken", token))
		return ErrStaleLoad
	}
	v.cancel = nil

	if err != nil {
		v.logger.Error("❌ Chat list load failed", zap.String("loadToken", token), zap.Error(err))
		v.sink.Emit(EventChatsError, models.ChatListResponse{
			Rows:      []models.ChatRow{},
			Error:     "Failed to load chats",
			LoadToken: token,
		})
		return err
	}

	resp := services.NewChatListResponse(rows)
	resp.LoadToken = token
	v.sink.Emit(EventChatsRows, resp)
	return nil
}

// Close tears the view down and cancels any load in flight
func (v *ChatListView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}
