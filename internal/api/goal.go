package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"finance_tracker/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for creating a goal
type GoalRequest struct {
	Name   string  `json:"name"`   // Goal name
	Target float64 `json:"target"` // Target amount
	Type   string  `json:"type"`   // expense cap or saving target
}

// Goal responses use the "msg" key where the other resources use "message",
// matching the API contract clients already depend on.

// ListGoalsHandler returns all goals owned by the caller, newest-first
func ListGoalsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "User not authenticated"})
			return
		}
		goals := []domain.Goal{} // Slice to hold goals
		// Query goals owned by the caller
		if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&goals).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to list goals") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
			return
		}
		c.JSON(http.StatusOK, goals) // Return goals
	}
}

// CreateGoalHandler inserts a goal owned by the caller and returns the full
// created row, re-read so the response carries the stored created_at
func CreateGoalHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "User not authenticated"})
			return
		}
		var req GoalRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request"})
			return
		}
		// Force ownership to the authenticated user
		goal := domain.Goal{UserID: userID.(uint), Name: req.Name, Target: req.Target, Type: req.Type}
		// Attempt to create the goal
		if err := db.Create(&goal).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to create goal") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
			return
		}
		var created domain.Goal // Re-read the stored row
		if err := db.First(&created, goal.ID).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"goal_id": goal.ID,     // Goal ID
				"error":   err.Error(), // Error message
			}).Error("Failed to load created goal") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
			return
		}
		c.JSON(http.StatusOK, created) // Return the full created row
	}
}

// DeleteGoalHandler deletes a goal the caller owns, with an explicit
// ownership-scoped existence check before the delete
func DeleteGoalHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "User not authenticated"})
			return
		}
		var goal domain.Goal // Pre-check that the goal exists and is owned by the caller
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&goal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Absent and foreign-owned are indistinguishable
				c.JSON(http.StatusNotFound, gin.H{"msg": "Goal not found"})
				return
			}
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"id":      c.Param("id"), // Goal ID
				"error":   err.Error(), // Error message
			}).Error("Failed to load goal") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
			return
		}
		// Delete the verified row
		if err := db.Delete(&domain.Goal{}, goal.ID).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"goal_id": goal.ID,     // Goal ID
				"error":   err.Error(), // Error message
			}).Error("Failed to delete goal") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "Goal deleted"})
	}
}
