package models

// UserProfile defines the public identity of a user as stored in the Users table
type UserProfile struct {
	UserID    int64  `dynamodbav:"userId" json:"userId"` // ✅ Partition Key
	FirstName string `dynamodbav:"firstName" json:"firstName"`
	LastName  string `dynamodbav:"lastName" json:"lastName"`
	// Inline avatar, base64 encoded
	ImageBase64 *string `dynamodbav:"imageBase64,omitempty" json:"imageBase64,omitempty"`
	// S3 key of the profile photo
	PhotoKey string `dynamodbav:"photoKey,omitempty" json:"photoKey,omitempty"`
}

// CounterpartInfo is the compact identity of the other participant of a match.
// It is derived on every screen load and never persisted.
type CounterpartInfo struct {
	MatchID     int64   `json:"matchId"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	AvatarImage *string `json:"avatarImage"`
	AvatarURL   string  `json:"avatarUrl,omitempty"`
}

// DisplayName joins first and last name the way the chat list shows it
func (c CounterpartInfo) DisplayName() string {
	return c.FirstName + " " + c.LastName
}
