package repositories

import (
	"testing"
	"time"

	"github.com/antonkurik/friendspace/backend/internal/domain"
	"github.com/antonkurik/friendspace/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestPost(t *testing.T, db *gorm.DB, authorID uint, content string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{AuthorID: authorID, Content: content, CreatedAt: createdAt, UpdatedAt: createdAt}
	require.NoError(t, db.Create(post).Error)
	return post
}

func TestGetFeedPosts_CompositionAndOrder(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostgresPostRepository(db)
	friendshipRepo := NewPostgresFriendshipRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	own := createTestPost(t, db, alice.ID, "alice post", base)
	friendOld := createTestPost(t, db, bob.ID, "bob old", base.Add(-time.Hour))
	friendNew := createTestPost(t, db, bob.ID, "bob new", base.Add(time.Hour))
	createTestPost(t, db, carol.ID, "stranger post", base.Add(2*time.Hour))

	request, err := friendshipRepo.SendFriendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = friendshipRepo.AcceptFriendRequest(bob.ID, request.ID)
	require.NoError(t, err)

	friendIDs, err := friendshipRepo.FriendIDs(alice.ID)
	require.NoError(t, err)

	posts, err := postRepo.GetFeedPosts(append(friendIDs, alice.ID))
	require.NoError(t, err)
	require.Len(t, posts, 3)

	// Newest first; carol's post is excluded
	assert.Equal(t, friendNew.ID, posts[0].ID)
	assert.Equal(t, own.ID, posts[1].ID)
	assert.Equal(t, friendOld.ID, posts[2].ID)
}

func TestGetFeedPosts_TieBrokenByHigherID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPostRepository(db)
	alice := createTestUser(t, db, "alice")

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	first := createTestPost(t, db, alice.ID, "first", at)
	second := createTestPost(t, db, alice.ID, "second", at)

	posts, err := repo.GetFeedPosts([]uint{alice.ID})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
}

func TestDeletePost_CascadesCommentsAndLikes(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostgresPostRepository(db)
	commentRepo := NewPostgresCommentRepository(db)
	likeRepo := NewPostgresLikeRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID, "doomed", time.Now())
	other := createTestPost(t, db, alice.ID, "survivor", time.Now())

	require.NoError(t, commentRepo.CreateComment(&models.Comment{PostID: post.ID, AuthorID: bob.ID, Content: "nice"}))
	require.NoError(t, commentRepo.CreateComment(&models.Comment{PostID: other.ID, AuthorID: bob.ID, Content: "also nice"}))
	_, _, err := likeRepo.ToggleLike(post.ID, bob.ID)
	require.NoError(t, err)
	_, _, err = likeRepo.ToggleLike(other.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, postRepo.DeletePost(alice.ID, post.ID))

	_, err = postRepo.GetPostByID(post.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	comments, err := commentRepo.GetCommentsByPostID(post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	count, err := likeRepo.GetLikesCountByPostID(post.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// The unrelated post is untouched
	comments, err = commentRepo.GetCommentsByPostID(other.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
	count, err = likeRepo.GetLikesCountByPostID(other.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestDeletePost_OnlyAuthor(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPostRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID, "mine", time.Now())

	assert.ErrorIs(t, repo.DeletePost(bob.ID, post.ID), domain.ErrForbidden)
	assert.ErrorIs(t, repo.DeletePost(alice.ID, post.ID+1000), domain.ErrNotFound)

	// Still there after the failed attempts
	_, err := repo.GetPostByID(post.ID)
	assert.NoError(t, err)
}

func TestGetPostsByAuthor(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPostRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	older := createTestPost(t, db, alice.ID, "older", base)
	newer := createTestPost(t, db, alice.ID, "newer", base.Add(time.Minute))
	createTestPost(t, db, bob.ID, "not alice", base.Add(time.Hour))

	posts, err := repo.GetPostsByAuthor(alice.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, newer.ID, posts[0].ID)
	assert.Equal(t, older.ID, posts[1].ID)
}
