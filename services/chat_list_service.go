package services

import (
	"context"

	"go.uber.org/zap"

	"vibin_chats/models"
)

// ChatListAggregator is implemented by ChatAggregator
type ChatListAggregator interface {
	Aggregate(ctx context.Context, requestingUserID int64) (*Aggregation, error)
}

// ChatListService serves chat list screen loads: session lookup, aggregation and row building
type ChatListService struct {
	Sessions   SessionStore
	Aggregator ChatListAggregator
	Logger     *zap.Logger
}

func NewChatListService(sessions SessionStore, aggregator ChatListAggregator, logger *zap.Logger) *ChatListService {
	return &ChatListService{Sessions: sessions, Aggregator: aggregator, Logger: logger}
}

// Authenticate returns the signed-in user's id for a session token
func (s *ChatListService) Authenticate(ctx context.Context, token string) (int64, error) {
	session, err := s.Sessions.GetSession(ctx, token)
	if err != nil {
		return 0, err
	}
	return session.UserID(), nil
}

// LoadRows aggregates the user's chats and renders them as rows
func (s *ChatListService) LoadRows(ctx context.Context, userID int64) ([]models.ChatRow, error) {
	agg, err := s.Aggregator.Aggregate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return RowsFromAggregation(agg), nil
}
