package main

import (
	"log"

	"github.com/antonkurik/friendspace/backend/internal/router"
	"github.com/antonkurik/friendspace/backend/pkg/config"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db) // Ensure the connection is closed when main exits

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
