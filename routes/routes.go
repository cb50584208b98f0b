package routes

import (
	"meal-tracker-api/config"
	"meal-tracker-api/handlers"
	"meal-tracker-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	handlers.RegisterValidators()

	// ── Public routes ──────────────────────────────────────────────
	r.POST("/users", handlers.RegisterUser)

	// ── Session routes ─────────────────────────────────────────────
	users := r.Group("/users")
	users.Use(middleware.SessionRequired())
	{
		users.GET("/me", handlers.GetProfile)
		users.DELETE("/me", handlers.DeleteAccount)
	}

	meals := r.Group("/meals")
	meals.Use(middleware.SessionRequired())
	{
		meals.POST("", handlers.CreateMeal)
		meals.GET("", handlers.ListMeals)
		// Registered before /:id so "metrics" is not read as a meal id.
		meals.GET("/metrics", handlers.GetMealMetrics)
		meals.GET("/:id", handlers.GetMeal)
		meals.PUT("/:id", handlers.UpdateMeal)
		meals.DELETE("/:id", handlers.DeleteMeal)
	}
}

// NewRouter builds the engine with the shared middleware and all routes.
func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORS(config.Settings.CORSOrigins))

	r.GET("/health", handlers.Health)

	SetupRoutes(r)
	return r
}
