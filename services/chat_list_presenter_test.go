package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibin_chats/models"
)

func TestLastMessagePreview(t *testing.T) {
	assert.Equal(t, models.NoMessagesYet, LastMessagePreview(models.Chat{}))
	assert.Equal(t, models.NoMessagesYet, LastMessagePreview(models.Chat{Messages: []models.Message{}}))
	assert.Equal(t, "see you", LastMessagePreview(models.Chat{Messages: []models.Message{{Content: "hey"}, {Content: "see you"}}}))
}

func TestBuildChatRows_Resolved(t *testing.T) {
	chats := []models.Chat{{ChatID: 1, MatchID: 100, Messages: []models.Message{{Content: "hi"}}}}
	counterparts := map[int64]models.CounterpartInfo{
		100: {MatchID: 100, FirstName: "Ana", LastName: "Lee", AvatarImage: strPtr("QUJD"), AvatarURL: "https://photos.example/a"},
	}

	rows := BuildChatRows(chats, counterparts, nil)

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, models.RowStatusResolved, row.Status)
	assert.Equal(t, "Ana Lee", row.Title)
	assert.Equal(t, "data:image/jpeg;base64,QUJD", row.AvatarDataURI)
	assert.Equal(t, models.NavigationParams{
		Pathname:    models.ChatScreenRoute,
		ChatID:      "1",
		MatchID:     "100",
		FirstName:   "Ana",
		LastName:    "Lee",
		AvatarImage: "QUJD",
		AvatarURL:   "https://photos.example/a",
	}, row.Navigation)
}

func TestBuildChatRows_Placeholders(t *testing.T) {
	chats := []models.Chat{
		{ChatID: 1, MatchID: 100},
		{ChatID: 2, MatchID: 200},
	}
	unresolved := map[int64]UnresolvedReason{100: ReasonProfileMissing}

	rows := BuildChatRows(chats, map[int64]models.CounterpartInfo{}, unresolved)

	require.Len(t, rows, 2, "rows without a counterpart are kept")

	assert.Equal(t, models.RowStatusUnavailable, rows[0].Status)
	assert.Equal(t, models.UnavailableTitle, rows[0].Title)
	assert.Equal(t, models.RowStatusPending, rows[1].Status)
	assert.Equal(t, models.LoadingPlaceholder, rows[1].Title)

	for _, row := range rows {
		assert.Nil(t, row.Counterpart)
		assert.Empty(t, row.AvatarDataURI)
		assert.Equal(t, models.NoMessagesYet, row.LastMessagePreview)
		assert.Empty(t, row.Navigation.FirstName)
		assert.Empty(t, row.Navigation.LastName)
		assert.Empty(t, row.Navigation.AvatarImage)
	}
	assert.Equal(t, "2", rows[1].Navigation.ChatID)
	assert.Equal(t, "200", rows[1].Navigation.MatchID)
}

func TestBuildChatRows_NoInlineAvatar(t *testing.T) {
	chats := []models.Chat{{ChatID: 1, MatchID: 100}}
	counterparts := map[int64]models.CounterpartInfo{100: {MatchID: 100, FirstName: "Ana", LastName: "Lee"}}

	rows := BuildChatRows(chats, counterparts, nil)

	assert.Empty(t, rows[0].AvatarDataURI)
	assert.Empty(t, rows[0].Navigation.AvatarImage)
}

func TestBuildChatRows_RowsDoNotAliasTheMap(t *testing.T) {
	chats := []models.Chat{{ChatID: 1, MatchID: 100}}
	counterparts := map[int64]models.CounterpartInfo{100: {MatchID: 100, FirstName: "Ana", LastName: "Lee"}}

	rows := BuildChatRows(chats, counterparts, nil)
	rows[0].Counterpart.FirstName = "Changed"

	assert.Equal(t, "Ana", counterparts[100].FirstName)
}

func TestNewChatListResponse(t *testing.T) {
	empty := NewChatListResponse(nil)
	assert.NotNil(t, empty.Rows)
	assert.Equal(t, models.NoChatsAvailable, empty.EmptyMessage)

	full := NewChatListResponse([]models.ChatRow{{ChatID: 1}})
	assert.Len(t, full.Rows, 1)
	assert.Empty(t, full.EmptyMessage)
}
