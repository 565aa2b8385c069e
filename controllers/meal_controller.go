package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"dietapp-backend/models"
	"dietapp-backend/services"

	"github.com/gin-gonic/gin"
)

// MealCategories lists the five meal slots in display order.
func MealCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.MealTypes})
}

type AddMealInput struct {
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	MealType string `json:"meal_type" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Serving  string `json:"serving"`
	// pointer so an explicit 0 (water, black coffee) is not treated
	// as a missing field
	Calories *float64 `json:"calories" binding:"required"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fats     float64  `json:"fats"`
	Quantity float64  `json:"quantity"`
}

// AddMealEntry logs one food into a meal slot. Re-adding the same food
// to the same slot on the same day stacks quantity instead of
// duplicating the row.
func AddMealEntry(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input AddMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date, meal_type, name and calories are required"})
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	if !models.IsMealType(input.MealType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal_type"})
		return
	}
	if *input.Calories < 0 || input.Protein < 0 || input.Carbs < 0 || input.Fats < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nutrition values must not be negative"})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}

	entry, err := services.AddEntry(userID, date, input.MealType, input.Name, input.Serving, services.Macros{
		Calories: *input.Calories,
		ProteinG: input.Protein,
		CarbsG:   input.Carbs,
		FatsG:    input.Fats,
	}, input.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal added", "entry": entry})
}

func entryIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("entry_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return 0, false
	}
	return uint(id), true
}

// RemoveMealEntry takes one serving off an entry, deleting the row when
// the last serving goes.
func RemoveMealEntry(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	entryID, ok := entryIDParam(c)
	if !ok {
		return
	}

	entry, err := services.RemoveOneServing(userID, entryID)
	if err != nil {
		if errors.Is(err, services.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if entry == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Meal entry removed", "deleted": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "One serving removed", "entry": entry})
}

// ToggleMealEaten flips the eaten flag on an entry, moving its totals in
// or out of the daily summary.
func ToggleMealEaten(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	entryID, ok := entryIDParam(c)
	if !ok {
		return
	}

	entry, err := services.ToggleEaten(userID, entryID)
	if err != nil {
		if errors.Is(err, services.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal updated", "entry": entry})
}

// DayMeals returns the day's log grouped by slot, defaulting to today.
func DayMeals(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	date := services.DateOf(time.Now())
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	day, err := services.GetDayMeals(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, day)
}
