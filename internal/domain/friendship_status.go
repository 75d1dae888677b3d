package domain

// FriendshipStatus describes the relationship between a viewer and a target
// user, derived from the friendship and friend-request tables.
type FriendshipStatus string

const (
	// StatusNone means no friendship and no pending request either way.
	StatusNone FriendshipStatus = "none"

	// StatusFriends means a friendship row exists for the pair.
	StatusFriends FriendshipStatus = "friends"

	// StatusPendingSent means the viewer has a pending outgoing request.
	StatusPendingSent FriendshipStatus = "pending_sent"

	// StatusPendingReceived means the viewer has a pending incoming request.
	StatusPendingReceived FriendshipStatus = "pending_received"
)
