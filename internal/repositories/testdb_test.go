package repositories

import (
	"fmt"
	"testing"

	"github.com/antonkurik/friendspace/backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema, including
// the pending-request pair index that AutoMigrate cannot express.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.Message{},
	))

	require.NoError(t, db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_pending_request_pair
		 ON friend_requests (MIN(from_user_id, to_user_id), MAX(from_user_id, to_user_id))
		 WHERE status = 'pending'`,
	).Error)

	return db
}

// createTestUser inserts a user with generated unique username and email.
func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "x",
		FirstName:    name,
		LastName:     "Tester",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
