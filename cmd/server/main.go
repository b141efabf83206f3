package main

import (
	"context"                             // context package is needed for Redis operations
	"log"                                 // log package is needed for logging
	"finance_tracker/internal/api"        // Custom package for API handlers
	"finance_tracker/internal/config"     // Custom package for configuration
	"finance_tracker/internal/middleware" // Custom package for middleware

	// For loading .env files
	"github.com/gin-contrib/cors"  // CORS middleware for Gin
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Surface the insecure development fallback loudly instead of hiding it
	if cfg.UsingFallbackSecret() {
		logrus.Warn("JWT_SECRET is not set, using the insecure development fallback secret")
	}

	// Connect to the database; TranslateError maps driver duplicate-key
	// errors onto gorm.ErrDuplicatedKey for the registration conflict path
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client for the transaction-list cache, if configured
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection; caching is optional, so degrade instead of exiting
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Warnf("failed to connect to Redis, transaction cache disabled: %v", err)
			redisClient = nil
		}
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Permissive CORS, carried over as an explicit configuration choice
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,                                              // Any origin may call the API
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE"},          // Allowed methods
		AllowHeaders:    []string{"Origin", "Content-Type", middleware.TokenHeader}, // Token travels in a custom header
	}))

	// Auth routes (public)
	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", api.RegisterHandler(db, cfg.JWTSecret)) // Registration endpoint
	authGroup.POST("/login", api.LoginHandler(db, cfg.JWTSecret))       // Login endpoint

	// Category routes (protected by JWT)
	categoryGroup := r.Group("/api/categories")
	categoryGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	categoryGroup.GET("", api.ListCategoriesHandler(db))          // List categories endpoint
	categoryGroup.POST("", api.CreateCategoryHandler(db))         // Create category endpoint
	categoryGroup.PUT("/:id", api.UpdateCategoryHandler(db))      // Update category endpoint
	categoryGroup.DELETE("/:id", api.DeleteCategoryHandler(db))   // Delete category endpoint

	// Transaction routes (protected by JWT, list cached in Redis)
	transactionGroup := r.Group("/api/transactions")
	transactionGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	transactionGroup.GET("", api.ListTransactionsHandler(db, redisClient))         // List transactions endpoint
	transactionGroup.POST("", api.CreateTransactionHandler(db, redisClient))       // Create transaction endpoint
	transactionGroup.PUT("/:id", api.UpdateTransactionHandler(db, redisClient))    // Update transaction endpoint
	transactionGroup.DELETE("/:id", api.DeleteTransactionHandler(db, redisClient)) // Delete transaction endpoint

	// Goal routes (protected by JWT)
	goalGroup := r.Group("/api/goals")
	goalGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	goalGroup.GET("", api.ListGoalsHandler(db))        // List goals endpoint
	goalGroup.POST("", api.CreateGoalHandler(db))      // Create goal endpoint
	goalGroup.DELETE("/:id", api.DeleteGoalHandler(db)) // Delete goal endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run("0.0.0.0:" + cfg.AppPort)                 // Start the server on port cfg.AppPort
}
