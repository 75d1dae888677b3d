package handlers

import (
	"net/http"
	"strconv"

	"github.com/antonkurik/friendspace/backend/internal/models"
	"github.com/antonkurik/friendspace/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts and the feed
type PostHandler struct {
	postRepository       repositories.PostRepository
	userRepository       repositories.UserRepository
	likeRepository       repositories.LikeRepository
	commentRepository    repositories.CommentRepository
	friendshipRepository repositories.FriendshipRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
	friendshipRepo repositories.FriendshipRepository,
) *PostHandler {
	return &PostHandler{
		postRepository:       postRepo,
		userRepository:       userRepo,
		likeRepository:       likeRepo,
		commentRepository:    commentRepo,
		friendshipRepository: friendshipRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.GetFeed)
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// GetFeed returns posts authored by the viewer or any of their friends,
// newest first
func (h *PostHandler) GetFeed(c echo.Context) error {
	viewerID := currentUserID(c)

	friendIDs, err := h.friendshipRepository.FriendIDs(viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	authorIDs := append(friendIDs, viewerID)

	posts, err := h.postRepository.GetFeedPosts(authorIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.respondPosts(c, posts, viewerID)
}

// CreatePost creates a new post authored by the viewer
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post := &models.Post{
		AuthorID: currentUserID(c),
		Content:  req.Content,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	response, err := h.buildPostResponse(post, currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, response)
}

// GetPost returns a single post by ID. Posts are discoverable by ID; only the
// feed is restricted to the friend graph.
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		return domainHTTPError(err)
	}

	response, err := h.buildPostResponse(post, currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, response)
}

// DeletePost deletes the viewer's own post and cascades to its comments and
// likes
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if err := h.postRepository.DeletePost(currentUserID(c), uint(id)); err != nil {
		return domainHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetUserPosts returns all posts by a specific user, newest first
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if _, err := h.userRepository.GetUserByID(uint(id)); err != nil {
		return domainHTTPError(err)
	}

	posts, err := h.postRepository.GetPostsByAuthor(uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.respondPosts(c, posts, currentUserID(c))
}

// respondPosts shapes a post list for the viewer
func (h *PostHandler) respondPosts(c echo.Context, posts []models.Post, viewerID uint) error {
	responses := make([]models.PostResponse, 0, len(posts))
	for i := range posts {
		response, err := h.buildPostResponse(&posts[i], viewerID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		responses = append(responses, response)
	}
	return c.JSON(http.StatusOK, responses)
}

// buildPostResponse enriches a post with its author, counters and the
// viewer's liked flag
func (h *PostHandler) buildPostResponse(post *models.Post, viewerID uint) (models.PostResponse, error) {
	author, err := h.userRepository.GetUserByID(post.AuthorID)
	if err != nil {
		return models.PostResponse{}, err
	}
	likesCount, err := h.likeRepository.GetLikesCountByPostID(post.ID)
	if err != nil {
		return models.PostResponse{}, err
	}
	commentsCount, err := h.commentRepository.GetCommentsCountByPostID(post.ID)
	if err != nil {
		return models.PostResponse{}, err
	}
	isLiked, err := h.likeRepository.HasUserLikedPost(post.ID, viewerID)
	if err != nil {
		return models.PostResponse{}, err
	}

	return models.PostResponse{
		ID:            post.ID,
		Author:        author.Summary(),
		Content:       post.Content,
		LikesCount:    likesCount,
		CommentsCount: commentsCount,
		IsLiked:       isLiked,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}, nil
}
