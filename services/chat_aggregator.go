package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vibin_chats/models"
)

// ErrChatListUnavailable wraps any failure to fetch the chat list itself
var ErrChatListUnavailable = errors.New("chat list unavailable")

// Resolver resolves the counterpart of one match
type Resolver interface {
	Resolve(ctx context.Context, matchID, requestingUserID int64) Resolution
}

// Aggregation is the result of one chat list load. It is not modified after Aggregate returns.
type Aggregation struct {
	// Chats in the order the directory returned them
	Chats []models.Chat
	// CounterpartByMatch holds every resolved counterpart, keyed by match id
	CounterpartByMatch map[int64]models.CounterpartInfo
	// Unresolved holds the match ids that finished without a counterpart
	Unresolved map[int64]UnresolvedReason
}

// ChatAggregator loads a user's chats and resolves every chat's counterpart concurrently
type ChatAggregator struct {
	directory Directory
	resolver  Resolver
	logger    *zap.Logger
}

func NewChatAggregator(directory Directory, resolver Resolver, logger *zap.Logger) *ChatAggregator {
	return &ChatAggregator{directory: directory, resolver: resolver, logger: logger}
}

// Aggregate fetches the chat list, then runs one resolution per chat and waits for all of them.
// Only the chat list fetch can fail the aggregation. If ctx is cancelled before the
// resolutions finish, the partial result is discarded and ctx.Err() is returned.
// An expired deadline is not a cancellation: the resolutions it cut short are reported
// as unresolved and the rest of the result is kept.
func (a *ChatAggregator) Aggregate(ctx context.Context, requestingUserID int64) (*Aggregation, error) {
	log := a.logger.With(zap.Int64("userId", requestingUserID))

	chats, err := a.directory.GetChatsForUser(ctx, requestingUserID)
	if err != nil {
		log.Error("❌ Failed to fetch chat list", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrChatListUnavailable, err)
	}
	if chats == nil {
		chats = []models.Chat{}
	}

	// each task owns one slot
	results := make([]Resolution, len(chats))

	var g errgroup.Group
	for i, chat := range chats {
		i, chat := i, chat
		g.Go(func() error {
			results[i] = a.resolver.Resolve(ctx, chat.MatchID, requestingUserID)
			return nil
		})
	}
	_ = g.Wait()

	// a deadline only degrades the slow rows; cancellation means the screen is gone
	if err := ctx.Err(); errors.Is(err, context.Canceled) {
		log.Debug("Discarding aggregation after cancellation", zap.Error(err))
		return nil, err
	}

	agg := fanIn(chats, results)
	log.Info("✅ Chat list aggregated",
		zap.Int("chats", len(chats)),
		zap.Int("resolved", len(agg.CounterpartByMatch)),
		zap.Int("unresolved", len(agg.Unresolved)))
	return agg, nil
}

// fanIn folds every task outcome into the result maps.
// A match id resolved by any task is never reported as unresolved.
func fanIn(chats []models.Chat, results []Resolution) *Aggregation {
	agg := &Aggregation{
		Chats:              chats,
		CounterpartByMatch: make(map[int64]models.CounterpartInfo),
		Unresolved:         make(map[int64]UnresolvedReason),
	}

	for _, res := range results {
		if res.Resolved() {
			agg.CounterpartByMatch[res.MatchID] = *res.Counterpart
		}
	}
	for _, res := range results {
		if res.Resolved() {
			continue
		}
		if _, ok := agg.CounterpartByMatch[res.MatchID]; !ok {
			agg.Unresolved[res.MatchID] = res.Reason
		}
	}
	return agg
}
