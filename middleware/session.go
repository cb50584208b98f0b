package middleware

import (
	"errors"
	"log"
	"net/http"

	"meal-tracker-api/config"
	"meal-tracker-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	SessionCookieName = "sessionId"
	// SessionMaxAge is the cookie lifetime in seconds (7 days).
	SessionMaxAge = 60 * 60 * 24 * 7
)

// SetSessionCookie issues the site-wide session cookie.
func SetSessionCookie(c *gin.Context, sessionID string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, sessionID, SessionMaxAge, "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie in the client.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}

// SessionRequired rejects requests without a session cookie and resolves the
// cookie to its user before the handler runs.
func SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user models.User
		err = config.DB.Where("session_id = ?", sessionID).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			log.Printf("session lookup failed: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Session lookup failed"})
			return
		}

		c.Set("userID", user.ID)
		c.Set("user", user)
		c.Next()
	}
}

// GetUserID extracts the caller's user ID from context
func GetUserID(c *gin.Context) string {
	return c.GetString("userID")
}

// GetUser returns the user row resolved by SessionRequired.
func GetUser(c *gin.Context) models.User {
	val, _ := c.Get("user")
	user, _ := val.(models.User)
	return user
}
