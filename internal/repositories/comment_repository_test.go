package repositories

import (
	"testing"
	"time"

	"github.com/antonkurik/friendspace/backend/internal/domain"
	"github.com/antonkurik/friendspace/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComments_ListOldestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID, "discuss", time.Now())

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	second := &models.Comment{PostID: post.ID, AuthorID: bob.ID, Content: "second", CreatedAt: base.Add(time.Minute)}
	first := &models.Comment{PostID: post.ID, AuthorID: alice.ID, Content: "first", CreatedAt: base}
	require.NoError(t, repo.CreateComment(second))
	require.NoError(t, repo.CreateComment(first))

	comments, err := repo.GetCommentsByPostID(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)

	count, err := repo.GetCommentsCountByPostID(post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestDeleteComment_OnlyAuthor(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID, "discuss", time.Now())

	comment := &models.Comment{PostID: post.ID, AuthorID: bob.ID, Content: "mine"}
	require.NoError(t, repo.CreateComment(comment))

	assert.ErrorIs(t, repo.DeleteComment(alice.ID, comment.ID), domain.ErrForbidden)
	assert.ErrorIs(t, repo.DeleteComment(bob.ID, comment.ID+1000), domain.ErrNotFound)

	require.NoError(t, repo.DeleteComment(bob.ID, comment.ID))
	_, err := repo.GetCommentByID(comment.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
