package models

// ✅ Default DynamoDB table names (overridable through config)
const (
	ChatsTable    = "Chats"
	MatchesTable  = "Matches"
	UsersTable    = "Users"
	SessionsTable = "Sessions"
)

// ✅ Chat list placeholder texts
const (
	NoMessagesYet      = "No messages yet"
	NoChatsAvailable   = "No chats available"
	LoadingPlaceholder = "Loading..."
	UnavailableTitle   = "Unavailable"
)

// ✅ Row statuses
const (
	RowStatusResolved    = "resolved"    // counterpart identity known
	RowStatusUnavailable = "unavailable" // resolution finished without a counterpart
	RowStatusPending     = "pending"     // resolution not finished yet
)

// SessionStorageKey is the attribute under which the persisted session keeps its user
const SessionStorageKey = "user"

// LoginRoute is where clients without a session are sent
const LoginRoute = "/login"
