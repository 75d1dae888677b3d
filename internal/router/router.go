package router

import (
	"log"

	"github.com/antonkurik/friendspace/backend/internal/handlers"
	"github.com/antonkurik/friendspace/backend/internal/middleware"
	"github.com/antonkurik/friendspace/backend/internal/models"
	"github.com/antonkurik/friendspace/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.Logger())
	log.Println("Global middleware configured.")
}

// Migrate runs schema migrations and creates the constraints AutoMigrate
// cannot express.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.Message{},
	)
	if err != nil {
		return err
	}

	// At most one pending request per unordered pair, enforced at the storage
	// layer so concurrent duplicate sends cannot both commit.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_pending_request_pair
		 ON friend_requests (LEAST(from_user_id, to_user_id), GREATEST(from_user_id, to_user_id))
		 WHERE status = 'pending'`,
	).Error
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB) {
	if err := Migrate(db); err != nil {
		log.Fatalf("Failed to migrate models: %v", err)
	}
	log.Println("Migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	sessionRepo := repositories.NewPostgresSessionRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	friendshipRepo := repositories.NewPostgresFriendshipRepository(db)
	messageRepo := repositories.NewPostgresMessageRepository(db)

	// --- Unprotected routes for authentication ---
	authHandler := handlers.NewAuthHandler(userRepo, sessionRepo)
	authGroup := e.Group("/api/auth")
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require a valid session cookie) ---
	api := e.Group("/api")
	api.Use(middleware.SessionAuthMiddleware(sessionRepo))
	log.Println("Session authentication middleware applied to /api group.")

	authHandler.RegisterSessionRoutes(api)

	userHandler := handlers.NewUserHandler(userRepo, friendshipRepo)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	postHandler := handlers.NewPostHandler(postRepo, userRepo, likeRepo, commentRepo, friendshipRepo)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	friendshipHandler := handlers.NewFriendshipHandler(friendshipRepo, userRepo)
	friendshipHandler.RegisterFriendshipRoutes(api)
	log.Println("Friendship routes configured.")

	messageHandler := handlers.NewMessageHandler(messageRepo, userRepo)
	messageHandler.RegisterMessageRoutes(api)
	log.Println("Message routes configured.")

	log.Println("All routes configured.")
}
