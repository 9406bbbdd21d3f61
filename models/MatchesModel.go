package models

// Match is a mutual pairing between exactly two users. user1/user2 carry no ordering significance.
type Match struct {
	MatchID int64 `dynamodbav:"matchId" json:"matchId"` // Partition Key
	User1ID int64 `dynamodbav:"user1Id" json:"user1Id"`
	User2ID int64 `dynamodbav:"user2Id" json:"user2Id"`
}

// CounterpartOf returns the participant that is not userID.
// The requester is not validated: when userID is neither participant, User1ID is returned.
func (m Match) CounterpartOf(userID int64) int64 {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}

// HasUser reports whether userID is one of the two participants
func (m Match) HasUser(userID int64) bool {
	return m.User1ID == userID || m.User2ID == userID
}
