package repositories

import (
	"errors"

	"github.com/antonkurik/friendspace/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	ToggleLike(postID, userID uint) (liked bool, count int64, err error)
	GetLikesCountByPostID(postID uint) (int64, error)
	HasUserLikedPost(postID, userID uint) (bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// ToggleLike removes the user's like if present, otherwise creates one. A
// concurrent duplicate create trips the unique (post, user) index and is
// treated as already-liked rather than an error. Returns the resulting liked
// flag and the post's current like count.
func (r *PostgresLikeRepository) ToggleLike(postID, userID uint) (bool, int64, error) {
	liked := false

	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return false, 0, res.Error
	}
	if res.RowsAffected == 0 {
		like := &models.Like{PostID: postID, UserID: userID}
		if err := r.db.Create(like).Error; err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return false, 0, err
			}
			// Lost a race against an identical toggle; the like exists.
		}
		liked = true
	}

	count, err := r.GetLikesCountByPostID(postID)
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

// GetLikesCountByPostID retrieves the count of likes for a specific post
func (r *PostgresLikeRepository) GetLikesCountByPostID(postID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikeRepository) HasUserLikedPost(postID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
