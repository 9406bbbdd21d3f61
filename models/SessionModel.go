package models

// SessionUser is the user block of a persisted session
type SessionUser struct {
	UserID    int64  `dynamodbav:"userId" json:"userId"`
	Email     string `dynamodbav:"email,omitempty" json:"email,omitempty"`
	FirstName string `dynamodbav:"firstName,omitempty" json:"firstName,omitempty"`
	LastName  string `dynamodbav:"lastName,omitempty" json:"lastName,omitempty"`
}

// Session is the persisted login of the signed-in user.
// A Session is only ever constructed after its user id has been validated.
type Session struct {
	Token string      `dynamodbav:"token" json:"-"` // ✅ Partition Key
	User  SessionUser `dynamodbav:"user" json:"user"`
}

// UserID returns the id of the authenticated user
func (s *Session) UserID() int64 {
	return s.User.UserID
}
