package controllers

import (
	"net/http"
	"time"

	"dietapp-backend/services"

	"github.com/gin-gonic/gin"
)

// TodayDashboard returns the live calorie and macro picture for today.
func TodayDashboard(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	summary, err := services.Today(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// WeeklyDashboard reports the trailing seven days ending today.
func WeeklyDashboard(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	report, err := services.WeeklyReport(userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// MonthlyDashboard reports a calendar month, ?month=YYYY-MM, defaulting
// to the current month.
func MonthlyDashboard(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	now := time.Now()
	firstDay := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
			return
		}
		firstDay = parsed
	}

	report, err := services.MonthlyReport(userID, firstDay)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// WeeklyMacrosDashboard splits the last week's grams into a pie chart.
func WeeklyMacrosDashboard(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	report, err := services.WeeklyMacros(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// CaloriesTrendDashboard returns raw per-day calories between ?from and
// ?to for the trend chart.
func CaloriesTrendDashboard(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	fromRaw := c.Query("from")
	toRaw := c.Query("to")
	if fromRaw == "" || toRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required"})
		return
	}
	from, err := time.Parse("2006-01-02", fromRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
		return
	}
	to, err := time.Parse("2006-01-02", toRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not be before from"})
		return
	}

	points, err := services.CaloriesTrend(userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"points": points})
}
