package models

import "strconv"

// ChatScreenRoute is the detail screen a chat row navigates to
const ChatScreenRoute = "/chatscreen"

// ChatRow is what the chat list renders for one chat
type ChatRow struct {
	ChatID             int64            `json:"chatId"`
	MatchID            int64            `json:"matchId"`
	Counterpart        *CounterpartInfo `json:"counterpart"`
	LastMessagePreview string           `json:"lastMessagePreview"`
	Status             string           `json:"status"`
	Title              string           `json:"title"`
	AvatarDataURI      string           `json:"avatarDataUri,omitempty"`
	Navigation         NavigationParams `json:"navigation"`
}

// NavigationParams is carried to the chat screen when a row is selected.
// All values are plain text; unresolved counterparts forward empty strings.
type NavigationParams struct {
	Pathname    string `json:"pathname"`
	ChatID      string `json:"chatId"`
	MatchID     string `json:"matchId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	AvatarImage string `json:"avatarImage"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// NewNavigationParams builds the payload for a chat whose counterpart may be unresolved
func NewNavigationParams(chatID, matchID int64, counterpart *CounterpartInfo) NavigationParams {
	params := NavigationParams{
		Pathname: ChatScreenRoute,
		ChatID:   strconv.FormatInt(chatID, 10),
		MatchID:  strconv.FormatInt(matchID, 10),
	}
	if counterpart == nil {
		return params
	}
	params.FirstName = counterpart.FirstName
	params.LastName = counterpart.LastName
	if counterpart.AvatarImage != nil {
		params.AvatarImage = *counterpart.AvatarImage
	}
	params.AvatarURL = counterpart.AvatarURL
	return params
}

// ChatListResponse is the body of a chat list screen load
type ChatListResponse struct {
	Rows         []ChatRow `json:"rows"`
	EmptyMessage string    `json:"emptyMessage,omitempty"`
	Error        string    `json:"error,omitempty"`
	LoadToken    string    `json:"loadToken,omitempty"`
}
