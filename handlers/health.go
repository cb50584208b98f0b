package handlers

import (
	"log"
	"net/http"

	"meal-tracker-api/config"

	"github.com/gin-gonic/gin"
)

// Health reports whether the database answers a ping.
func Health(c *gin.Context) {
	sqlDB, err := config.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		log.Printf("Health: database ping failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "Database unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Meal Tracker API",
		"version": "1.0.0",
	})
}
