package main

import (
	"log"
	"os"

	"meal-tracker-api/config"
	"meal-tracker-api/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	config.Settings = config.Load()
	config.InitDB(config.Settings)

	r := routes.NewRouter()

	port := config.Settings.Port
	log.Printf("Server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
