package models

import "time"

// Like represents a like on a post. The (post, user) pair is unique so a
// concurrent duplicate like fails at the storage layer instead of creating
// two rows.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `json:"created_at"`
}
