package handlers

import (
	"errors"
	"log"
	"net/http"

	"meal-tracker-api/config"
	"meal-tracker-api/diet"
	"meal-tracker-api/middleware"
	"meal-tracker-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealRequest is the body for both create and update; updates replace every field.
type MealRequest struct {
	Name        *string `json:"name" binding:"required,max=255"`
	Description *string `json:"description" binding:"required"`
	OnDiet      *bool   `json:"on_diet" binding:"required"`
	Date        string  `json:"date" binding:"required,mealdate"`
}

func (r MealRequest) apply(meal *models.Meal) error {
	date, err := ParseMealDate(r.Date)
	if err != nil {
		return err
	}
	meal.Name = *r.Name
	meal.Description = *r.Description
	meal.OnDiet = *r.OnDiet
	meal.Date = date
	return nil
}

// findOwnedMeal loads a meal by id, scoped to its owner. Ids that are not
// UUIDs cannot exist and are reported as not found without a query.
func findOwnedMeal(userID, mealID string) (*models.Meal, error) {
	if _, err := uuid.Parse(mealID); err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var meal models.Meal
	if err := config.DB.Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func respondMealLookupError(c *gin.Context, op string, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}
	log.Printf("%s: meal lookup failed: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": op + " failed"})
}

// CreateMeal logs a new meal for the caller
func CreateMeal(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	meal := models.Meal{UserID: userID}
	if err := req.apply(&meal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := config.DB.Create(&meal).Error; err != nil {
		log.Printf("CreateMeal: insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meal"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Meal created", "meal": meal})
}

// ListMeals returns every meal the caller owns
func ListMeals(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var meals []models.Meal
	if err := config.DB.Where("user_id = ?", userID).Find(&meals).Error; err != nil {
		log.Printf("ListMeals: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list meals"})
		return
	}
	if meals == nil {
		meals = []models.Meal{}
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// GetMeal returns one of the caller's meals
func GetMeal(c *gin.Context) {
	meal, err := findOwnedMeal(middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		respondMealLookupError(c, "GetMeal", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

// UpdateMeal replaces name, description, on_diet and date of a meal
func UpdateMeal(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	meal, err := findOwnedMeal(userID, c.Param("id"))
	if err != nil {
		respondMealLookupError(c, "UpdateMeal", err)
		return
	}

	if err := req.apply(meal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// A plain UPDATE scoped to the owner; a row deleted since the lookup
	// stays deleted and the caller gets 404.
	res := config.DB.Model(meal).
		Where("user_id = ?", userID).
		Select("name", "description", "on_diet", "date", "updated_at").
		Updates(meal)
	if res.Error != nil {
		log.Printf("UpdateMeal: %v", res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update meal"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal updated", "meal": meal})
}

// DeleteMeal removes one of the caller's meals
func DeleteMeal(c *gin.Context) {
	userID := middleware.GetUserID(c)

	meal, err := findOwnedMeal(userID, c.Param("id"))
	if err != nil {
		respondMealLookupError(c, "DeleteMeal", err)
		return
	}

	if err := config.DB.Where("id = ? AND user_id = ?", meal.ID, userID).Delete(&models.Meal{}).Error; err != nil {
		log.Printf("DeleteMeal: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete meal"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetMealMetrics summarizes the caller's diet adherence
func GetMealMetrics(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var meals []models.Meal
	if err := config.DB.Where("user_id = ?", userID).Order("date asc").Find(&meals).Error; err != nil {
		log.Printf("GetMealMetrics: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute metrics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"metrics": diet.Summarize(meals)})
}
