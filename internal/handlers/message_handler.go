package handlers

import (
	"net/http"
	"strconv"

	"github.com/antonkurik/friendspace/backend/internal/models"
	"github.com/antonkurik/friendspace/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles HTTP requests related to direct messages and
// conversations
type MessageHandler struct {
	messageRepository repositories.MessageRepository
	userRepository    repositories.UserRepository
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository) *MessageHandler {
	return &MessageHandler{
		messageRepository: messageRepo,
		userRepository:    userRepo,
	}
}

// RegisterMessageRoutes registers message-related routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.GET("/conversations", h.GetConversations)
	g.GET("/conversations/:user_id", h.GetConversationMessages)
	g.POST("/messages", h.SendMessage)
}

// GetConversations returns one entry per correspondent with the last message
// and unread count, most recent conversation first
func (h *MessageHandler) GetConversations(c echo.Context) error {
	conversations, err := h.messageRepository.GetConversations(currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	responses := make([]models.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		entry := models.ConversationResponse{
			User:        conversations[i].User.Summary(),
			UnreadCount: conversations[i].UnreadCount,
		}
		if conversations[i].LastMessage != nil {
			message, err := h.buildMessageResponse(conversations[i].LastMessage)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
			entry.LastMessage = &message
		}
		responses = append(responses, entry)
	}
	return c.JSON(http.StatusOK, responses)
}

// GetConversationMessages returns the full message history with one user,
// oldest first. Opening the conversation marks the partner's messages as
// read.
func (h *MessageHandler) GetConversationMessages(c echo.Context) error {
	partnerID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if _, err := h.userRepository.GetUserByID(uint(partnerID)); err != nil {
		return domainHTTPError(err)
	}

	messages, err := h.messageRepository.GetConversationMessages(currentUserID(c), uint(partnerID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	responses := make([]models.MessageResponse, 0, len(messages))
	for i := range messages {
		response, err := h.buildMessageResponse(&messages[i])
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		responses = append(responses, response)
	}
	return c.JSON(http.StatusOK, responses)
}

// SendMessage sends a direct message to another user
func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	message, err := h.messageRepository.SendMessage(currentUserID(c), req.RecipientID, req.Content)
	if err != nil {
		return domainHTTPError(err)
	}

	response, err := h.buildMessageResponse(message)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, response)
}

func (h *MessageHandler) buildMessageResponse(message *models.Message) (models.MessageResponse, error) {
	sender, err := h.userRepository.GetUserByID(message.SenderID)
	if err != nil {
		return models.MessageResponse{}, err
	}
	recipient, err := h.userRepository.GetUserByID(message.RecipientID)
	if err != nil {
		return models.MessageResponse{}, err
	}
	return models.MessageResponse{
		ID:        message.ID,
		Sender:    sender.Summary(),
		Recipient: recipient.Summary(),
		Content:   message.Content,
		IsRead:    message.IsRead,
		CreatedAt: message.CreatedAt,
	}, nil
}
