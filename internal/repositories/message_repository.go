package repositories

import (
	"errors"
	"sort"

	"github.com/antonkurik/friendspace/backend/internal/domain"
	"github.com/antonkurik/friendspace/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct messages and the
// conversation views derived from the flat message log.
type MessageRepository interface {
	SendMessage(senderID, recipientID uint, content string) (*models.Message, error)
	GetConversations(viewerID uint) ([]models.ConversationData, error)
	GetConversationMessages(viewerID, partnerID uint) ([]models.Message, error)
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// SendMessage creates an unread message. Fails if the recipient does not
// exist or if the sender messages themselves.
func (r *PostgresMessageRepository) SendMessage(senderID, recipientID uint, content string) (*models.Message, error) {
	if senderID == recipientID {
		return nil, domain.ErrInvalidOperation
	}

	var recipient models.User
	if err := r.db.First(&recipient, recipientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		IsRead:      false,
	}
	if err := r.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// GetConversations aggregates the message log into one entry per
// correspondent: the partner, the newest message between the pair and the
// count of their unread messages. Entries are sorted by last-message time
// descending; a missing last message cannot occur for a partner derived from
// existing messages, but the sort tolerates it.
func (r *PostgresMessageRepository) GetConversations(viewerID uint) ([]models.ConversationData, error) {
	var sentTo []uint
	err := r.db.Model(&models.Message{}).
		Where("sender_id = ?", viewerID).
		Distinct().
		Pluck("recipient_id", &sentTo).Error
	if err != nil {
		return nil, err
	}

	var receivedFrom []uint
	err = r.db.Model(&models.Message{}).
		Where("recipient_id = ?", viewerID).
		Distinct().
		Pluck("sender_id", &receivedFrom).Error
	if err != nil {
		return nil, err
	}

	partnerIDs := make(map[uint]bool)
	for _, id := range sentTo {
		partnerIDs[id] = true
	}
	for _, id := range receivedFrom {
		partnerIDs[id] = true
	}

	conversations := make([]models.ConversationData, 0, len(partnerIDs))
	for partnerID := range partnerIDs {
		var partner models.User
		if err := r.db.First(&partner, partnerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		var last models.Message
		err := r.db.
			Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
				viewerID, partnerID, partnerID, viewerID).
			Order("created_at DESC, id DESC").
			First(&last).Error

		conversation := models.ConversationData{User: partner}
		if err == nil {
			conversation.LastMessage = &last
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		err = r.db.Model(&models.Message{}).
			Where("sender_id = ? AND recipient_id = ? AND is_read = ?", partnerID, viewerID, false).
			Count(&conversation.UnreadCount).Error
		if err != nil {
			return nil, err
		}

		conversations = append(conversations, conversation)
	}

	sort.Slice(conversations, func(i, j int) bool {
		a, b := conversations[i].LastMessage, conversations[j].LastMessage
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	return conversations, nil
}

// GetConversationMessages returns every message between viewer and partner,
// oldest first. As a side effect it marks the partner's unread messages to
// the viewer as read, in the same transaction as the read. This is a
// read-triggers-write operation, not a pure query.
func (r *PostgresMessageRepository) GetConversationMessages(viewerID, partnerID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
				viewerID, partnerID, partnerID, viewerID).
			Order("created_at ASC, id ASC").
			Find(&messages).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.Message{}).
			Where("sender_id = ? AND recipient_id = ? AND is_read = ?", partnerID, viewerID, false).
			Update("is_read", true).Error
	})
	if err != nil {
		return nil, err
	}

	// Reflect the read-marking in the returned slice.
	for i := range messages {
		if messages[i].SenderID == partnerID {
			messages[i].IsRead = true
		}
	}
	return messages, nil
}
