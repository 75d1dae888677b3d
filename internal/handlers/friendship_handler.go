package handlers

import (
	"net/http"
	"strconv"

	"github.com/antonkurik/friendspace/backend/internal/models"
	"github.com/antonkurik/friendspace/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FriendshipHandler handles HTTP requests related to friendships and friend
// requests
type FriendshipHandler struct {
	friendshipRepository repositories.FriendshipRepository
	userRepository       repositories.UserRepository
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(friendshipRepo repositories.FriendshipRepository, userRepo repositories.UserRepository) *FriendshipHandler {
	return &FriendshipHandler{
		friendshipRepository: friendshipRepo,
		userRepository:       userRepo,
	}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.GET("/friends", h.GetFriends)
	g.GET("/friends/requests", h.GetReceivedRequests)
	g.GET("/friends/sent", h.GetSentRequests)
	g.POST("/friends/request/:user_id", h.SendFriendRequest)
	g.POST("/friends/accept/:request_id", h.AcceptFriendRequest)
	g.POST("/friends/reject/:request_id", h.RejectFriendRequest)
	g.DELETE("/friends/:user_id", h.RemoveFriend) // Unfriend
}

// GetFriends returns the viewer's current friends
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	friends, err := h.friendshipRepository.GetFriends(currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, friends)
}

// GetReceivedRequests returns pending friend requests addressed to the viewer
func (h *FriendshipHandler) GetReceivedRequests(c echo.Context) error {
	requests, err := h.friendshipRepository.PendingReceivedRequests(currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.respondRequests(c, requests)
}

// GetSentRequests returns pending friend requests sent by the viewer
func (h *FriendshipHandler) GetSentRequests(c echo.Context) error {
	requests, err := h.friendshipRepository.PendingSentRequests(currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.respondRequests(c, requests)
}

// SendFriendRequest sends a friend request to another user
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	// Check if receiver exists
	if _, err := h.userRepository.GetUserByID(uint(targetID)); err != nil {
		return domainHTTPError(err)
	}

	request, err := h.friendshipRepository.SendFriendRequest(currentUserID(c), uint(targetID))
	if err != nil {
		return domainHTTPError(err)
	}

	response, err := h.buildRequestResponse(request)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, response)
}

// AcceptFriendRequest accepts a pending request addressed to the viewer and
// creates the friendship
func (h *FriendshipHandler) AcceptFriendRequest(c echo.Context) error {
	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}

	request, err := h.friendshipRepository.AcceptFriendRequest(currentUserID(c), uint(requestID))
	if err != nil {
		return domainHTTPError(err)
	}

	response, err := h.buildRequestResponse(request)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, response)
}

// RejectFriendRequest rejects a pending request addressed to the viewer
func (h *FriendshipHandler) RejectFriendRequest(c echo.Context) error {
	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}

	request, err := h.friendshipRepository.RejectFriendRequest(currentUserID(c), uint(requestID))
	if err != nil {
		return domainHTTPError(err)
	}

	response, err := h.buildRequestResponse(request)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, response)
}

// RemoveFriend deletes the friendship between the viewer and another user
func (h *FriendshipHandler) RemoveFriend(c echo.Context) error {
	friendID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.friendshipRepository.RemoveFriend(currentUserID(c), uint(friendID)); err != nil {
		return domainHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FriendshipHandler) respondRequests(c echo.Context, requests []models.FriendRequest) error {
	responses := make([]models.FriendRequestResponse, 0, len(requests))
	for i := range requests {
		response, err := h.buildRequestResponse(&requests[i])
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		responses = append(responses, response)
	}
	return c.JSON(http.StatusOK, responses)
}

func (h *FriendshipHandler) buildRequestResponse(request *models.FriendRequest) (models.FriendRequestResponse, error) {
	fromUser, err := h.userRepository.GetUserByID(request.FromUserID)
	if err != nil {
		return models.FriendRequestResponse{}, err
	}
	toUser, err := h.userRepository.GetUserByID(request.ToUserID)
	if err != nil {
		return models.FriendRequestResponse{}, err
	}
	return models.FriendRequestResponse{
		ID:        request.ID,
		FromUser:  fromUser.Summary(),
		ToUser:    toUser.Summary(),
		Status:    request.Status,
		CreatedAt: request.CreatedAt,
	}, nil
}
