package handlers

import (
	"errors"
	"log"
	"net/http"

	"meal-tracker-api/config"
	"meal-tracker-api/middleware"
	"meal-tracker-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the Postgres SQLSTATE for a unique index conflict.
const uniqueViolation = "23505"

type RegisterUserRequest struct {
	Name  *string `json:"name" binding:"required,max=255"`
	Email string  `json:"email" binding:"required,email"`
}

// RegisterUser creates a user and hands back a fresh session cookie
func RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var existing models.User
	err := config.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("RegisterUser: email lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	user := models.User{
		Name:      *req.Name,
		Email:     req.Email,
		SessionID: uuid.NewString(),
	}
	if err := config.DB.Create(&user).Error; err != nil {
		// Lost a race with a concurrent registration for the same email.
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		}
		log.Printf("RegisterUser: insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	middleware.SetSessionCookie(c, user.SessionID, config.Settings.CookieSecure)
	c.JSON(http.StatusCreated, gin.H{"message": "User created"})
}

// GetProfile returns the authenticated user's profile
func GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": middleware.GetUser(c)})
}

// DeleteAccount removes the caller; their meals go with them via the FK cascade.
func DeleteAccount(c *gin.Context) {
	userID := middleware.GetUserID(c)

	res := config.DB.Where("id = ?", userID).Delete(&models.User{})
	if res.Error != nil {
		log.Printf("DeleteAccount: %v", res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	middleware.ClearSessionCookie(c, config.Settings.CookieSecure)
	c.Status(http.StatusNoContent)
}

// isUniqueViolation reports a duplicate-key insert. sqlite errors arrive
// translated by gorm; the Postgres dialector only translates pgx errors, so
// lib/pq's error is checked by SQLSTATE.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
