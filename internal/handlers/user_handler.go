package handlers

import (
	"net/http"
	"strconv"

	"github.com/antonkurik/friendspace/backend/internal/models"
	"github.com/antonkurik/friendspace/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository       repositories.UserRepository
	friendshipRepository repositories.FriendshipRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, friendshipRepo repositories.FriendshipRepository) *UserHandler {
	return &UserHandler{
		userRepository:       userRepo,
		friendshipRepository: friendshipRepo,
	}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.GET("/users/:id", h.GetUser)
	g.PUT("/users/:id", h.UpdateProfile)
}

// UserDetailResponse is a user profile with the relationship to the viewer
type UserDetailResponse struct {
	models.User
	FriendshipStatus string `json:"friendship_status"`
}

// ListUsers returns all users, optionally filtered by a search substring on
// username, first name or last name
func (h *UserHandler) ListUsers(c echo.Context) error {
	search := c.QueryParam("search")

	var users []models.User
	var err error
	if search != "" {
		users, err = h.userRepository.SearchUsers(search)
	} else {
		users, err = h.userRepository.GetUsers()
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns a user profile with the friendship status relative to the
// viewer
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		return domainHTTPError(err)
	}

	status, err := h.friendshipRepository.FriendshipStatus(currentUserID(c), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, UserDetailResponse{
		User:             *user,
		FriendshipStatus: string(status),
	})
}

// UpdateProfile updates profile fields. Users may only update their own
// profile.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if uint(id) != currentUserID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "You can only update your own profile")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		return domainHTTPError(err)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}
