package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// transactionsCacheTTL is how long a user's transaction list stays cached
const transactionsCacheTTL = 60 * time.Second

// Request struct for creating/updating a transaction.
// A client-supplied user_id is structurally ignored: the field does not exist
// here and ownership always comes from the token.
type TransactionRequest struct {
	Amount      float64 `json:"amount"`      // Transaction amount
	Description string  `json:"description"` // Free-form description
	Date        string  `json:"date"`        // Date string, passed through unchecked
	CategoryID  *uint   `json:"category_id"` // Optional category reference
	Type        string  `json:"type"`        // income or expense
}

// TransactionRow is a transaction joined with its category's name
type TransactionRow struct {
	ID           uint    `json:"id"`            // Transaction ID
	Amount       float64 `json:"amount"`        // Transaction amount
	Description  string  `json:"description"`   // Free-form description
	Date         string  `json:"date"`          // Date string
	CategoryID   *uint   `json:"category_id"`   // Category reference, nullable
	CategoryName *string `json:"category_name"` // Denormalized category name, null when unresolved
	Type         string  `json:"type"`          // income or expense
}

// transactionsCacheKey builds the per-user cache key for the transaction list
func transactionsCacheKey(userID uint) string {
	return "transactions:user:" + strconv.Itoa(int(userID))
}

// invalidateTransactionsCache drops the cached list after any write
func invalidateTransactionsCache(rdb *redis.Client, userID uint) {
	_ = utils.DeleteCache(context.Background(), rdb, transactionsCacheKey(userID))
}

// ListTransactionsHandler returns the caller's transactions, newest-first,
// left-joined with categories for the denormalized category name
func ListTransactionsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
			return
		}
		ctx := context.Background()                      // Context for Redis operations
		cacheKey := transactionsCacheKey(userID.(uint))  // Cache key for this user's list
		rows := []TransactionRow{}                       // Slice to hold joined rows
		found, err := utils.GetCache(ctx, rdb, cacheKey, &rows) // Try to get from cache
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, rows)
			return
		}
		// If not in cache, fetch from DB with the category join
		err = db.Table("transactions").
			Select("transactions.id, transactions.amount, transactions.description, transactions.date, transactions.category_id, transactions.type, categories.name AS category_name").
			Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
			Where("transactions.user_id = ?", userID).
			Order("transactions.date DESC").
			Scan(&rows).Error
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to list transactions") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, rows, transactionsCacheTTL) // Cache the list
		c.JSON(http.StatusOK, rows)                                       // Return transactions
	}
}

// CreateTransactionHandler inserts a transaction owned by the caller
func CreateTransactionHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
			return
		}
		var req TransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		// Force ownership to the authenticated user
		t := domain.Transaction{
			UserID:      userID.(uint),   // Owner is always the caller
			CategoryID:  req.CategoryID,  // Optional category reference
			Amount:      req.Amount,      // Transaction amount
			Description: req.Description, // Description
			Date:        req.Date,        // Date string as sent
			Type:        req.Type,        // Transaction type
		}
		// Attempt to create the transaction
		if err := db.Create(&t).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to create transaction") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		invalidateTransactionsCache(rdb, userID.(uint)) // Drop the stale cached list
		// Return the new row's id
		c.JSON(http.StatusOK, gin.H{"id": t.ID, "message": "Transaction added successfully"})
	}
}

// UpdateTransactionHandler updates a transaction the caller owns
func UpdateTransactionHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
			return
		}
		var req TransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		// Ownership-scoped update
		res := db.Model(&domain.Transaction{}).
			Where("id = ? AND user_id = ?", c.Param("id"), userID).
			Updates(map[string]any{
				"amount":      req.Amount,      // Transaction amount
				"description": req.Description, // Description
				"date":        req.Date,        // Date string
				"category_id": req.CategoryID,  // Category reference
				"type":        req.Type,        // Transaction type
			})
		if res.Error != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,            // User ID
				"id":      c.Param("id"),     // Transaction ID
				"error":   res.Error.Error(), // Error message
			}).Error("Failed to update transaction") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		// Zero rows means absent or foreign-owned
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Transaction not found"})
			return
		}
		invalidateTransactionsCache(rdb, userID.(uint)) // Drop the stale cached list
		c.JSON(http.StatusOK, gin.H{"message": "Transaction updated successfully"})
	}
}

// DeleteTransactionHandler deletes a transaction the caller owns
func DeleteTransactionHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
			return
		}
		// Ownership-scoped delete
		res := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&domain.Transaction{})
		if res.Error != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,            // User ID
				"id":      c.Param("id"),     // Transaction ID
				"error":   res.Error.Error(), // Error message
			}).Error("Failed to delete transaction") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		// Zero rows means absent or foreign-owned
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Transaction not found"})
			return
		}
		invalidateTransactionsCache(rdb, userID.(uint)) // Drop the stale cached list
		c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
	}
}
