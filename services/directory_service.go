package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"vibin_chats/models"
	"vibin_chats/utils"
)

// Directory is the read side of the user directory the chat list is built from.
// GetMatchByID and GetUser return (nil, nil) when the record does not exist.
type Directory interface {
	GetChatsForUser(ctx context.Context, userID int64) ([]models.Chat, error)
	GetMatchByID(ctx context.Context, matchID int64) (*models.Match, error)
	GetUser(ctx context.Context, userID int64) (*models.UserProfile, error)
}

// DirectoryTables names the tables the directory reads
type DirectoryTables struct {
	Chats   string
	Matches string
	Users   string
}

// DirectoryService implements Directory on DynamoDB
type DirectoryService struct {
	Dynamo *DynamoService
	Tables DirectoryTables
	Logger *zap.Logger
}

func NewDirectoryService(dynamo *DynamoService, tables DirectoryTables, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{Dynamo: dynamo, Tables: tables, Logger: logger}
}

// GetChatsForUser returns the user's chats in the order the Chats table stores them
func (s *DirectoryService) GetChatsForUser(ctx context.Context, userID int64) ([]models.Chat, error) {
	s.Logger.Debug("🔍 Fetching chats", zap.Int64("userId", userID))

	keyCondition := "#userId = :userId"
	expressionValues := map[string]types.AttributeValue{
		":userId": &types.AttributeValueMemberN{Value: strconv.FormatInt(userID, 10)},
	}
	expressionNames := map[string]string{
		"#userId": "userId",
	}

	items, err := s.Dynamo.QueryAll(ctx, s.Tables.Chats, keyCondition, expressionValues, expressionNames, false)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chats for user %d: %w", userID, err)
	}

	chats := make([]models.Chat, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &chats); err != nil {
		return nil, fmt.Errorf("failed to parse chats for user %d: %w", userID, err)
	}

	s.Logger.Debug("✅ Chats fetched", zap.Int64("userId", userID), zap.Int("count", len(chats)))
	return chats, nil
}

// GetMatchByID returns the match, or nil when it no longer exists
func (s *DirectoryService) GetMatchByID(ctx context.Context, matchID int64) (*models.Match, error) {
	item, err := s.Dynamo.GetItem(ctx, s.Tables.Matches, utils.NumberKey("matchId", matchID))
	if errors.Is(err, ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch match %d: %w", matchID, err)
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to parse match %d: %w", matchID, err)
	}
	return &match, nil
}

// GetUser returns the user's profile, or nil when the user does not exist
func (s *DirectoryService) GetUser(ctx context.Context, userID int64) (*models.UserProfile, error) {
	item, err := s.Dynamo.GetItem(ctx, s.Tables.Users, utils.NumberKey("userId", userID))
	if errors.Is(err, ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %d: %w", userID, err)
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse user %d: %w", userID, err)
	}
	return &profile, nil
}
