package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"vibin_chats/models"
	"vibin_chats/utils"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrCorruptSession = errors.New("corrupt session")
)

// SessionStore resolves a session token to the signed-in user
type SessionStore interface {
	GetSession(ctx context.Context, token string) (*models.Session, error)
}

// SessionService reads persisted sessions from DynamoDB
type SessionService struct {
	Dynamo *DynamoService
	Table  string
	Logger *zap.Logger
}

func NewSessionService(dynamo *DynamoService, table string, logger *zap.Logger) *SessionService {
	return &SessionService{Dynamo: dynamo, Table: table, Logger: logger}
}

// GetSession returns ErrNoSession when the token is empty or unknown and
// ErrCorruptSession when the stored session has no usable user id.
func (s *SessionService) GetSession(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	item, err := s.Dynamo.GetItem(ctx, s.Table, utils.StringKey("token", token))
	if errors.Is(err, ErrItemNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	session, err := parseSession(item)
	if err != nil {
		s.Logger.Warn("⚠️ Rejecting stored session", zap.Error(err))
		return nil, err
	}
	return session, nil
}

func parseSession(item map[string]types.AttributeValue) (*models.Session, error) {
	user, err := utils.ExtractMap(item, models.SessionStorageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	userID, err := utils.ExtractInt64(user, "userId")
	if err != nil {
		return nil, fmt.Errorf("%w: %s.%v", ErrCorruptSession, models.SessionStorageKey, err)
	}
	if userID <= 0 {
		return nil, fmt.Errorf("%w: non-positive user id %d", ErrCorruptSession, userID)
	}

	var session models.Session
	if err := attributevalue.UnmarshalMap(item, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	return &session, nil
}
