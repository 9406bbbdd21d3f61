package services

import "vibin_chats/models"

const avatarDataURIPrefix = "data:image/jpeg;base64,"

// LastMessagePreview returns the content of the chat's last message, or the "no messages yet" text
func LastMessagePreview(chat models.Chat) string {
	last, ok := chat.LastMessage()
	if !ok {
		return models.NoMessagesYet
	}
	return last.Content
}

// BuildChatRows produces one row per chat, in chat order. Rows whose match has no
// counterpart are kept with placeholder fields: "unavailable" when the match is listed in
// unresolved, "pending" otherwise. Building rows never fetches anything.
func BuildChatRows(chats []models.Chat, counterparts map[int64]models.CounterpartInfo, unresolved map[int64]UnresolvedReason) []models.ChatRow {
	rows := make([]models.ChatRow, 0, len(chats))

	for _, chat := range chats {
		row := models.ChatRow{
			ChatID:             chat.ChatID,
			MatchID:            chat.MatchID,
			LastMessagePreview: LastMessagePreview(chat),
		}

		if info, ok := counterparts[chat.MatchID]; ok {
			counterpart := info
			row.Counterpart = &counterpart
			row.Status = models.RowStatusResolved
			row.Title = counterpart.DisplayName()
			if counterpart.AvatarImage != nil && *counterpart.AvatarImage != "" {
				row.AvatarDataURI = avatarDataURIPrefix + *counterpart.AvatarImage
			}
		} else if _, failed := unresolved[chat.MatchID]; failed {
			row.Status = models.RowStatusUnavailable
			row.Title = models.UnavailableTitle
		} else {
			row.Status = models.RowStatusPending
			row.Title = models.LoadingPlaceholder
		}

		row.Navigation = models.NewNavigationParams(chat.ChatID, chat.MatchID, row.Counterpart)
		rows = append(rows, row)
	}

	return rows
}

// RowsFromAggregation renders a finished aggregation
func RowsFromAggregation(agg *Aggregation) []models.ChatRow {
	return BuildChatRows(agg.Chats, agg.CounterpartByMatch, agg.Unresolved)
}

// NewChatListResponse wraps rows for the client, adding the empty-state message for an empty list
func NewChatListResponse(rows []models.ChatRow) models.ChatListResponse {
	resp := models.ChatListResponse{Rows: rows}
	if len(rows) == 0 {
		resp.Rows = []models.ChatRow{}
		resp.EmptyMessage = models.NoChatsAvailable
	}
	return resp
}
