package repositories

import (
	"errors"

	"github.com/antonkurik/friendspace/backend/internal/domain"
	"github.com/antonkurik/friendspace/backend/internal/models"
	"gorm.io/gorm"
)

// FriendshipRepository defines the interface for the friend-request lifecycle
// and the derived friendship edges.
type FriendshipRepository interface {
	SendFriendRequest(fromUserID, toUserID uint) (*models.FriendRequest, error)
	AcceptFriendRequest(actorID, requestID uint) (*models.FriendRequest, error)
	RejectFriendRequest(actorID, requestID uint) (*models.FriendRequest, error)
	PendingReceivedRequests(userID uint) ([]models.FriendRequest, error)
	PendingSentRequests(userID uint) ([]models.FriendRequest, error)
	RemoveFriend(userID, friendID uint) error
	FriendshipStatus(viewerID, targetID uint) (domain.FriendshipStatus, error)
	FriendIDs(userID uint) ([]uint, error)
	GetFriends(userID uint) ([]models.User, error)
}

// PostgresFriendshipRepository implements FriendshipRepository for PostgreSQL
type PostgresFriendshipRepository struct {
	db *gorm.DB
}

// NewPostgresFriendshipRepository creates a new PostgresFriendshipRepository
func NewPostgresFriendshipRepository(db *gorm.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

// pairIDs returns the unordered pair in canonical (low, high) order, matching
// how friendship rows are stored.
func pairIDs(a, b uint) (uint, uint) {
	if a < b {
		return a, b
	}
	return b, a
}

// findFriendship looks up the friendship row for an unordered pair.
func (r *PostgresFriendshipRepository) findFriendship(tx *gorm.DB, a, b uint) (*models.Friendship, error) {
	lo, hi := pairIDs(a, b)
	var friendship models.Friendship
	if err := tx.Where("user1_id = ? AND user2_id = ?", lo, hi).First(&friendship).Error; err != nil {
		return nil, err
	}
	return &friendship, nil
}

// SendFriendRequest creates a new pending friend request. It fails if the
// sender targets themselves, if the pair is already friends, or if a pending
// request already exists in either direction. The pending-pair uniqueness is
// also enforced by a partial unique index, so a concurrent duplicate create
// surfaces as ErrRequestAlreadyExists instead of a second row.
func (r *PostgresFriendshipRepository) SendFriendRequest(fromUserID, toUserID uint) (*models.FriendRequest, error) {
	if fromUserID == toUserID {
		return nil, domain.ErrInvalidOperation
	}

	if _, err := r.findFriendship(r.db, fromUserID, toUserID); err == nil {
		return nil, domain.ErrAlreadyFriends
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var existing models.FriendRequest
	err := r.db.
		Where("status = ? AND ((from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?))",
			models.RequestPending, fromUserID, toUserID, toUserID, fromUserID).
		First(&existing).Error
	if err == nil {
		return nil, domain.ErrRequestAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	request := &models.FriendRequest{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Status:     models.RequestPending,
	}
	if err := r.db.Create(request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrRequestAlreadyExists
		}
		return nil, err
	}
	return request, nil
}

// getPendingRequestForActor loads a request and checks the actor may answer it.
func getPendingRequestForActor(tx *gorm.DB, actorID, requestID uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := tx.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if request.ToUserID != actorID {
		return nil, domain.ErrForbidden
	}
	if request.Status != models.RequestPending {
		return nil, domain.ErrInvalidState
	}
	return &request, nil
}

// AcceptFriendRequest marks a pending request as accepted and creates the
// friendship edge. Both mutations run in one transaction; a failure of either
// rolls back both.
func (r *PostgresFriendshipRepository) AcceptFriendRequest(actorID, requestID uint) (*models.FriendRequest, error) {
	var accepted *models.FriendRequest
	err := r.db.Transaction(func(tx *gorm.DB) error {
		request, err := getPendingRequestForActor(tx, actorID, requestID)
		if err != nil {
			return err
		}

		if err := tx.Model(request).Update("status", models.RequestAccepted).Error; err != nil {
			return err
		}

		lo, hi := pairIDs(request.FromUserID, request.ToUserID)
		friendship := &models.Friendship{User1ID: lo, User2ID: hi}
		if err := tx.Create(friendship).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyFriends
			}
			return err
		}

		accepted = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

// RejectFriendRequest marks a pending request as rejected. No friendship is
// created; the row stays as history.
func (r *PostgresFriendshipRepository) RejectFriendRequest(actorID, requestID uint) (*models.FriendRequest, error) {
	request, err := getPendingRequestForActor(r.db, actorID, requestID)
	if err != nil {
		return nil, err
	}
	if err := r.db.Model(request).Update("status", models.RequestRejected).Error; err != nil {
		return nil, err
	}
	return request, nil
}

// PendingReceivedRequests retrieves pending requests addressed to the user,
// newest first
func (r *PostgresFriendshipRepository) PendingReceivedRequests(userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.
		Where("to_user_id = ? AND status = ?", userID, models.RequestPending).
		Order("created_at DESC, id DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// PendingSentRequests retrieves pending requests sent by the user, newest first
func (r *PostgresFriendshipRepository) PendingSentRequests(userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.
		Where("from_user_id = ? AND status = ?", userID, models.RequestPending).
		Order("created_at DESC, id DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// RemoveFriend deletes the friendship between the pair. The friend-request
// history is left untouched, so a later request between the same pair starts
// from scratch.
func (r *PostgresFriendshipRepository) RemoveFriend(userID, friendID uint) error {
	friendship, err := r.findFriendship(r.db, userID, friendID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return r.db.Delete(friendship).Error
}

// FriendshipStatus computes the relationship between viewer and target.
// Friendship takes precedence over any stale pending request.
func (r *PostgresFriendshipRepository) FriendshipStatus(viewerID, targetID uint) (domain.FriendshipStatus, error) {
	if _, err := r.findFriendship(r.db, viewerID, targetID); err == nil {
		return domain.StatusFriends, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.StatusNone, err
	}

	var count int64
	err := r.db.Model(&models.FriendRequest{}).
		Where("from_user_id = ? AND to_user_id = ? AND status = ?", viewerID, targetID, models.RequestPending).
		Count(&count).Error
	if err != nil {
		return domain.StatusNone, err
	}
	if count > 0 {
		return domain.StatusPendingSent, nil
	}

	err = r.db.Model(&models.FriendRequest{}).
		Where("from_user_id = ? AND to_user_id = ? AND status = ?", targetID, viewerID, models.RequestPending).
		Count(&count).Error
	if err != nil {
		return domain.StatusNone, err
	}
	if count > 0 {
		return domain.StatusPendingReceived, nil
	}

	return domain.StatusNone, nil
}

// FriendIDs returns the other-side IDs from every friendship row the user
// appears in.
func (r *PostgresFriendshipRepository) FriendIDs(userID uint) ([]uint, error) {
	var friendships []models.Friendship
	err := r.db.
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(friendships))
	for i := range friendships {
		ids = append(ids, friendships[i].OtherUserID(userID))
	}
	return ids, nil
}

// GetFriends retrieves the user records of all current friends
func (r *PostgresFriendshipRepository) GetFriends(userID uint) ([]models.User, error) {
	ids, err := r.FriendIDs(userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	var friends []models.User
	if err := r.db.Where("id IN ?", ids).Order("id").Find(&friends).Error; err != nil {
		return nil, err
	}
	return friends, nil
}
