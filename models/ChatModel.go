package models

// Chat is a conversation thread between two matched users
type Chat struct {
	UserID   int64     `dynamodbav:"userId" json:"-"`          // Partition Key (inbox owner)
	ChatID   int64     `dynamodbav:"chatId" json:"chatId"`     // Sort Key
	MatchID  int64     `dynamodbav:"matchId" json:"matchId"`   // Foreign key to Matches
	Messages []Message `dynamodbav:"messages" json:"messages"` // Chronological
}

// LastMessage returns the most recent message, if any
func (c Chat) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}
