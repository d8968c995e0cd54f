package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/linkup-app/linkup/pkg/linkup/auth"
	"github.com/linkup-app/linkup/pkg/linkup/database"
	"github.com/linkup-app/linkup/pkg/linkup/groups"
	"github.com/linkup-app/linkup/pkg/linkup/models"
	"github.com/linkup-app/linkup/pkg/linkup/storage"
	"github.com/linkup-app/linkup/pkg/linkup/users"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Linkup API
// @version 1.0
// @description A social networking service: accounts, profile search, and groups with join-request workflows.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token. Format: "Bearer {token}"

func main() {
	// .env is optional; real environments set variables directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	dbPath := getEnv("LINKUP_DB_PATH", "linkup.db")
	uploadDir := getEnv("LINKUP_UPLOAD_DIR", "uploads")

	// Connect to database
	if err := database.Connect(dbPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	store, err := storage.New(uploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	// Set up Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Swagger documentation (generated with `swag init`)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		authHandler := auth.NewHandler(database.GetDB())
		authHandler.RegisterRoutes(api.Group("/auth"))

		// User routes (protected)
		usersHandler := users.NewHandler(database.GetDB())
		usersHandler.RegisterRoutes(api.Group("/users", auth.AuthMiddleware()))

		// Group routes (protected)
		groupsHandler := groups.NewHandler(database.GetDB(), store)
		groupsGroup := api.Group("/groups")
		groupsGroup.Use(auth.AuthMiddleware())
		groupsHandler.RegisterRoutes(groupsGroup)
		groupsHandler.RegisterRequestRoutes(groupsGroup)
		groupsHandler.RegisterMemberRoutes(groupsGroup)
	}

	port := getEnv("PORT", "8080")

	log.Printf("Starting Linkup server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
