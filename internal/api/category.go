package api

import (
	"net/http" // HTTP status codes

	"finance_tracker/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for creating/updating a category.
// Note there is no user_id field: ownership always comes from the token.
type CategoryRequest struct {
	Name string `json:"name"` // Category name
	Type string `json:"type"` // income or expense
}

// ListCategoriesHandler returns all categories owned by the caller, ordered by name
func ListCategoriesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
			return
		}
		categories := []domain.Category{} // Slice to hold categories
		// Query categories owned by the caller
		if err := db.Where("user_id = ?", userID).Order("name").Find(&categories).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to list categories") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		c.JSON(http.StatusOK, categories) // Return categories
	}
}

// CreateCategoryHandler inserts a category owned by the caller
func CreateCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
			return
		}
		var req CategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		// Force ownership to the authenticated user
		category := domain.Category{UserID: userID.(uint), Name: req.Name, Type: req.Type}
		// Attempt to create the category
		if err := db.Create(&category).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to create category") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		// Return the new row's id
		c.JSON(http.StatusOK, gin.H{"id": category.ID, "message": "Category added successfully"})
	}
}

// UpdateCategoryHandler updates a category the caller owns.
// Zero affected rows is reported as not found, whether the row is absent
// or belongs to another user.
func UpdateCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
			return
		}
		var req CategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		// Ownership-scoped update
		res := db.Model(&domain.Category{}).
			Where("id = ? AND user_id = ?", c.Param("id"), userID).
			Updates(map[string]any{"name": req.Name, "type": req.Type})
		if res.Error != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,            // User ID
				"id":      c.Param("id"),     // Category ID
				"error":   res.Error.Error(), // Error message
			}).Error("Failed to update category") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		// Zero rows means absent or foreign-owned
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully"})
	}
}

// DeleteCategoryHandler deletes a category the caller owns
func DeleteCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
			return
		}
		// Ownership-scoped delete
		res := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&domain.Category{})
		if res.Error != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,            // User ID
				"id":      c.Param("id"),     // Category ID
				"error":   res.Error.Error(), // Error message
			}).Error("Failed to delete category") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		// Zero rows means absent or foreign-owned
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
