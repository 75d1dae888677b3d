package models

import "time"

// Session maps an opaque cookie token to a user. Sessions are created on
// register/login and deleted on logout; expired rows are simply ignored by
// lookups.
type Session struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Token     string    `json:"-" gorm:"size:64;uniqueIndex"`
	UserID    uint      `json:"user_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
