package repositories

import (
	"errors"
	"time"

	"github.com/antonkurik/friendspace/backend/internal/domain"
	"github.com/antonkurik/friendspace/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionTTL is how long a session cookie stays valid.
const SessionTTL = 30 * 24 * time.Hour

// SessionRepository defines the interface for session data operations
type SessionRepository interface {
	CreateSession(userID uint) (*models.Session, error)
	GetSessionByToken(token string) (*models.Session, error)
	DeleteSession(token string) error
}

// PostgresSessionRepository implements SessionRepository for PostgreSQL
type PostgresSessionRepository struct {
	db *gorm.DB
}

// NewPostgresSessionRepository creates a new PostgresSessionRepository
func NewPostgresSessionRepository(db *gorm.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

// CreateSession creates a session with a fresh opaque token
func (r *PostgresSessionRepository) CreateSession(userID uint) (*models.Session, error) {
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(SessionTTL),
	}
	if err := r.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// GetSessionByToken resolves a token to a live session; expired or unknown
// tokens resolve to ErrUnauthorized.
func (r *PostgresSessionRepository) GetSessionByToken(token string) (*models.Session, error) {
	var session models.Session
	err := r.db.Where("token = ? AND expires_at > ?", token, time.Now()).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return &session, nil
}

// DeleteSession removes a session, invalidating the token
func (r *PostgresSessionRepository) DeleteSession(token string) error {
	return r.db.Where("token = ?", token).Delete(&models.Session{}).Error
}
