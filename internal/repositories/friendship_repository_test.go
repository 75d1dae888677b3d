package repositories

import (
	"testing"

	"github.com/antonkurik/friendspace/backend/internal/domain"
	"github.com/antonkurik/friendspace/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendFriendRequest_SelfTarget(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := createTestUser(t, db, "alice")

	_, err := repo.SendFriendRequest(alice.ID, alice.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestSendFriendRequest_DuplicateEitherDirection(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := repo.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	// Same direction
	_, err = repo.SendFriendRequest(alice.ID, bob.ID)
	assert.ErrorIs(t, err, domain.ErrRequestAlreadyExists)

	// Reverse direction is not auto-merged, it is also a conflict
	_, err = repo.SendFriendRequest(bob.ID, alice.ID)
	assert.ErrorIs(t, err, domain.ErrRequestAlreadyExists)
}

func TestSendFriendRequest_AlreadyFriends(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	request, err := repo.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = repo.AcceptFriendRequest(bob.ID, request.ID)
	require.NoError(t, err)

	_, err = repo.SendFriendRequest(alice.ID, bob.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyFriends)
	_, err = repo.SendFriendRequest(bob.ID, alice.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyFriends)
}

func TestAcceptFriendRequest_CreatesFriendshipAtomically(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	request, err := repo.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, request.Status)

	accepted, err := repo.AcceptFriendRequest(bob.ID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, accepted.Status)

	// Both the status update and the friendship edge are visible
	var stored models.FriendRequest
	require.NoError(t, db.First(&stored, request.ID).Error)
	assert.Equal(t, models.RequestAccepted, stored.Status)

	var friendships []models.Friendship
	require.NoError(t, db.Find(&friendships).Error)
	require.Len(t, friendships, 1)
	assert.Equal(t, alice.ID, friendships[0].User1ID)
	assert.Equal(t, bob.ID, friendships[0].User2ID)

	// Both sides now report friends
	status, err := repo.FriendshipStatus(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFriends, status)
	status, err = repo.FriendshipStatus(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFriends, status)
}

func TestAcceptFriendRequest_Guards(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	request, err := repo.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	// Unknown request
	_, err = repo.AcceptFriendRequest(bob.ID, request.ID+1000)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Only the recipient may answer; the sender and third parties may not
	_, err = repo.AcceptFriendRequest(alice.ID, request.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = repo.AcceptFriendRequest(carol.ID, request.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Terminal states cannot transition again
	_, err = repo.AcceptFriendRequest(bob.ID, request.ID)
	require.NoError(t, err)
	_, err = repo.AcceptFriendRequest(bob.ID, request.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = repo.RejectFriendRequest(bob.ID, request.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestRejectFriendRequest_NoFriendshipCreated(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	request, err := repo.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	rejected, err := repo.RejectFriendRequest(bob.ID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, rejected.Status)

	var count int64
	require.NoError(t, db.Model(&models.Friendship{}).Count(&count).Error)
	assert.Zero(t, count)

	status, err := repo.FriendshipStatus(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNone, status)
}

func TestFriendshipStatus_PendingDirections(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	status, err := repo.FriendshipStatus(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNone, status)

	_, err = repo.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	status, err = repo.FriendshipStatus(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingSent, status)

	status, err = repo.FriendshipStatus(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingReceived, status)
}

func TestRemoveFriend_AllowsNewRequest(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	request, err := repo.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = repo.AcceptFriendRequest(bob.ID, request.ID)
	require.NoError(t, err)

	// Removal works from either side of the pair
	require.NoError(t, repo.RemoveFriend(bob.ID, alice.ID))

	status, err := repo.FriendshipStatus(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNone, status)

	// The old accepted request does not block a fresh one
	_, err = repo.SendFriendRequest(bob.ID, alice.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, repo.RemoveFriend(alice.ID, bob.ID), domain.ErrNotFound)
}

func TestFriendIDsAndGetFriends(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	// alice <-> bob, carol <-> alice: alice appears on both sides of the
	// stored pairs
	for _, pair := range [][2]uint{{alice.ID, bob.ID}, {carol.ID, alice.ID}} {
		request, err := repo.SendFriendRequest(pair[0], pair[1])
		require.NoError(t, err)
		_, err = repo.AcceptFriendRequest(pair[1], request.ID)
		require.NoError(t, err)
	}

	ids, err := repo.FriendIDs(alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{bob.ID, carol.ID}, ids)

	friends, err := repo.GetFriends(alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 2)

	ids, err = repo.FriendIDs(bob.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{alice.ID}, ids)

	friends, err = repo.GetFriends(carol.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, alice.ID, friends[0].ID)
}

func TestPendingRequestListings(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	_, err := repo.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = repo.SendFriendRequest(carol.ID, bob.ID)
	require.NoError(t, err)

	received, err := repo.PendingReceivedRequests(bob.ID)
	require.NoError(t, err)
	assert.Len(t, received, 2)

	sent, err := repo.PendingSentRequests(alice.ID)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, bob.ID, sent[0].ToUserID)

	sent, err = repo.PendingSentRequests(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, sent)
}
