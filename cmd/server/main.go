package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskman-api/internal/config"
	"github.com/yukikurage/taskman-api/internal/database"
	"github.com/yukikurage/taskman-api/internal/handlers"
	"github.com/yukikurage/taskman-api/internal/middleware"
	"github.com/yukikurage/taskman-api/internal/repository"
	"github.com/yukikurage/taskman-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenRepo)
	taskService := services.NewTaskService(taskRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	adminHandler := handlers.NewAdminHandler(taskService, authService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Manager API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Public routes
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// Protected routes
		authed := api.Group("")
		authed.Use(middleware.RequireAuth(authService))
		{
			authed.POST("/logout", authHandler.Logout)
			authed.GET("/me", authHandler.GetCurrentUser)
			authed.PUT("/me", authHandler.UpdateProfile)
			authed.DELETE("/me", authHandler.DeleteAccount)
			authed.GET("/users", authHandler.ListUsers)

			authed.GET("/tasks", taskHandler.ListTasks)
			authed.POST("/tasks", taskHandler.CreateTask)
			authed.GET("/tasks/:id", taskHandler.GetTask)
			authed.PUT("/tasks/:id", taskHandler.UpdateTask)
			authed.DELETE("/tasks/:id", taskHandler.DeleteTask)
		}

		// Maintenance routes. Unauthenticated by observed behavior, so they
		// are only registered when explicitly enabled. The static "all"
		// segment takes priority over the :id param routes.
		if cfg.AdminEndpoints {
			api.DELETE("/tasks/all", adminHandler.DeleteAllTasks)
			api.DELETE("/users/all", adminHandler.DeleteAllUsers)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
