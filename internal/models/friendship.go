package models

import "time"

// FriendRequestStatus is the state of a friend request.
type FriendRequestStatus string

const (
	// RequestPending means the request was sent but not yet answered.
	RequestPending FriendRequestStatus = "pending"

	// RequestAccepted is terminal; accepting also creates a Friendship.
	RequestAccepted FriendRequestStatus = "accepted"

	// RequestRejected is terminal; nothing else is created.
	RequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest represents a friend request between two users. Accepted and
// rejected rows are kept as history and never transition again.
type FriendRequest struct {
	ID         uint                `json:"id" gorm:"primaryKey"`
	FromUserID uint                `json:"from_user_id" gorm:"index"`
	ToUserID   uint                `json:"to_user_id" gorm:"index"`
	Status     FriendRequestStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CreatedAt  time.Time           `json:"created_at"`
}

// FriendRequestResponse is a friend request with both users expanded
type FriendRequestResponse struct {
	ID        uint                `json:"id"`
	FromUser  UserSummary         `json:"from_user"`
	ToUser    UserSummary         `json:"to_user"`
	Status    FriendRequestStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
}

// Friendship represents an accepted, mutual relationship. The pair is stored
// canonically with User1ID < User2ID and is unique, so at most one row exists
// per unordered pair.
type Friendship struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	User1ID   uint      `json:"user1_id" gorm:"index;uniqueIndex:idx_friend_pair"`
	User2ID   uint      `json:"user2_id" gorm:"index;uniqueIndex:idx_friend_pair"`
	CreatedAt time.Time `json:"created_at"`
}

// OtherUserID returns the side of the friendship that is not userID.
func (f *Friendship) OtherUserID(userID uint) uint {
	if f.User1ID == userID {
		return f.User2ID
	}
	return f.User1ID
}
