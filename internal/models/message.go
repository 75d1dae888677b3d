package models

import "time"

// Message represents a direct message between two users. Rows are immutable
// except for IsRead, which flips to true when the recipient opens the
// conversation.
type Message struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SenderID    uint      `json:"sender_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	Content     string    `json:"content"`
	IsRead      bool      `json:"is_read" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// SendMessageRequest defines the request body for sending a message
type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" validate:"required"`
	Content     string `json:"content" validate:"required,min=1,max=5000"`
}

// MessageResponse is a message with sender and recipient expanded
type MessageResponse struct {
	ID        uint        `json:"id"`
	Sender    UserSummary `json:"sender"`
	Recipient UserSummary `json:"recipient"`
	Content   string      `json:"content"`
	IsRead    bool        `json:"is_read"`
	CreatedAt time.Time   `json:"created_at"`
}

// ConversationData is the aggregated per-partner view computed from the
// message log: the partner, the newest message exchanged with them and how
// many of their messages the viewer has not read yet.
type ConversationData struct {
	User        User
	LastMessage *Message
	UnreadCount int64
}

// ConversationResponse is the wire shape of a conversation entry
type ConversationResponse struct {
	User        UserSummary      `json:"user"`
	LastMessage *MessageResponse `json:"last_message"`
	UnreadCount int64            `json:"unread_count"`
}
