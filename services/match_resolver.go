package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"vibin_chats/models"
)

// UnresolvedReason says why a match produced no counterpart
type UnresolvedReason string

const (
	ReasonMatchFetchFailed   UnresolvedReason = "match_fetch_failed"
	ReasonMatchMissing       UnresolvedReason = "match_missing"
	ReasonProfileFetchFailed UnresolvedReason = "profile_fetch_failed"
	ReasonProfileMissing     UnresolvedReason = "profile_missing"
	ReasonResolverPanic      UnresolvedReason = "resolver_panic"
)

// Resolution is the tagged outcome of resolving one match:
// either Counterpart is set, or Reason explains why it is not.
type Resolution struct {
	MatchID     int64
	Counterpart *models.CounterpartInfo
	Reason      UnresolvedReason
}

// Resolved reports whether the counterpart is known
func (r Resolution) Resolved() bool {
	return r.Counterpart != nil
}

func resolved(info models.CounterpartInfo) Resolution {
	return Resolution{MatchID: info.MatchID, Counterpart: &info}
}

func unresolved(matchID int64, reason UnresolvedReason) Resolution {
	return Resolution{MatchID: matchID, Reason: reason}
}

// AvatarURLer presigns avatar photo keys
type AvatarURLer interface {
	AvatarURL(ctx context.Context, key string) (string, error)
}

// MatchResolver turns a match id into the identity of the other participant
type MatchResolver struct {
	directory Directory
	avatars   AvatarURLer
	logger    *zap.Logger
}

// NewMatchResolver builds a resolver. avatars may be nil, in which case no avatar URLs are produced.
func NewMatchResolver(directory Directory, avatars AvatarURLer, logger *zap.Logger) *MatchResolver {
	return &MatchResolver{directory: directory, avatars: avatars, logger: logger}
}

// Resolve fetches the match and the counterpart's profile. Every failure is contained
// in the returned Resolution; a counterpart is either complete or absent.
func (r *MatchResolver) Resolve(ctx context.Context, matchID, requestingUserID int64) (res Resolution) {
	log := r.logger.With(zap.Int64("matchId", matchID), zap.Int64("userId", requestingUserID))

	defer func() {
		if p := recover(); p != nil {
			log.Error("❌ Match resolution panicked", zap.String("panic", fmt.Sprint(p)))
			res = unresolved(matchID, ReasonResolverPanic)
		}
	}()

	match, err := r.directory.GetMatchByID(ctx, matchID)
	if err != nil {
		log.Warn("⚠️ Failed to fetch match", zap.Error(err))
		return unresolved(matchID, ReasonMatchFetchFailed)
	}
	if match == nil {
		log.Debug("⚠️ Match no longer exists")
		return unresolved(matchID, ReasonMatchMissing)
	}

	if !match.HasUser(requestingUserID) {
		log.Warn("⚠️ Requesting user is not a participant of the match",
			zap.Int64("user1Id", match.User1ID), zap.Int64("user2Id", match.User2ID))
	}
	counterpartID := match.CounterpartOf(requestingUserID)

	profile, err := r.directory.GetUser(ctx, counterpartID)
	if err != nil {
		log.Warn("⚠️ Failed to fetch counterpart profile", zap.Int64("counterpartId", counterpartID), zap.Error(err))
		return unresolved(matchID, ReasonProfileFetchFailed)
	}
	if profile == nil {
		log.Debug("⚠️ Counterpart profile missing", zap.Int64("counterpartId", counterpartID))
		return unresolved(matchID, ReasonProfileMissing)
	}

	info := models.CounterpartInfo{
		MatchID:     matchID,
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		AvatarImage: profile.ImageBase64,
	}

	if r.avatars != nil && profile.PhotoKey != "" {
		url, err := r.avatars.AvatarURL(ctx, profile.PhotoKey)
		if err != nil {
			log.Warn("⚠️ Failed to presign avatar", zap.Error(err))
		} else {
			info.AvatarURL = url
		}
	}

	return resolved(info)
}
