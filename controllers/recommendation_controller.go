package controllers

import (
	"errors"
	"net/http"
	"time"

	"dietapp-backend/models"
	"dietapp-backend/services"

	"github.com/gin-gonic/gin"
)

func loadProfile(c *gin.Context) (*models.UserProfile, bool) {
	userID := c.MustGet("userID").(uint)

	profile, err := services.GetProfile(userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileMissing) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "complete onboarding before requesting recommendations"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return profile, true
}

func dateQuery(c *gin.Context) (time.Time, bool) {
	date := services.DateOf(time.Now())
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return time.Time{}, false
		}
		date = parsed
	}
	return date, true
}

// MealRecommendations serves one slot's suggestions, ?meal_type=...,
// or all five slots when the parameter is absent.
func MealRecommendations(rec *services.RecommendationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint)

		profile, ok := loadProfile(c)
		if !ok {
			return
		}
		date, ok := dateQuery(c)
		if !ok {
			return
		}

		mealType := c.Query("meal_type")
		if mealType == "" {
			slots := rec.GetDay(userID, profile, date)
			c.JSON(http.StatusOK, gin.H{
				"date":  date.Format("2006-01-02"),
				"slots": slots,
			})
			return
		}

		if !models.IsMealType(mealType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal_type"})
			return
		}

		slot, err := rec.GetOrGenerate(userID, profile, date, mealType)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, slot)
	}
}

// mostRecentMonday normalizes a weekly plan anchor so a mid-week request
// lands on the same cache row as a Monday one.
func mostRecentMonday(t time.Time) time.Time {
	d := services.DateOf(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeeklyMealPlan serves the seven-day plan anchored at
// ?week_start_date, defaulting to the current week's Monday.
func WeeklyMealPlan(rec *services.RecommendationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint)

		profile, ok := loadProfile(c)
		if !ok {
			return
		}

		weekStart := mostRecentMonday(time.Now())
		if raw := c.Query("week_start_date"); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "week_start_date must be YYYY-MM-DD"})
				return
			}
			weekStart = parsed
		}

		plan, err := rec.GetOrGenerateWeek(userID, profile, weekStart)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"week_start_date": plan.WeekStartDate.Format("2006-01-02"),
			"created_at":      plan.CreatedAt.Format(time.RFC3339),
			"plan":            plan.Plan,
		})
	}
}
