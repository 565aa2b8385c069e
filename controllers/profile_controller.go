package controllers

import (
	"errors"
	"net/http"
	"regexp"

	"dietapp-backend/config"
	"dietapp-backend/models"
	"dietapp-backend/services"
	"dietapp-backend/utils"

	"github.com/gin-gonic/gin"
)

// ProfileOverview bundles account, profile and computed targets for the
// profile screen.
func ProfileOverview(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	profile, err := services.GetProfile(userID)
	if err != nil && !errors.Is(err, services.ErrProfileMissing) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"mobile":               user.Mobile,
		"onboarding_completed": user.OnboardingCompleted,
	}
	if profile != nil {
		resp["profile"] = profile
		resp["daily_targets"] = services.ComputeDailyTargets(profile)
	}
	c.JSON(http.StatusOK, resp)
}

type ProfileImageInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// UploadProfileImage stores a base64 photo in S3 and saves the URL on
// the profile.
func UploadProfileImage(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input ProfileImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64 is required"})
		return
	}

	profile, err := services.GetProfile(userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileMissing) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "complete onboarding before uploading a photo"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	url, err := utils.UploadBase64ImageToS3(input.ImageBase64, "user")
	if err != nil {
		if errors.Is(err, utils.ErrInvalidImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64 must be a data:<mime>;base64,<data> payload"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	if err := config.DB.Model(profile).Update("profile_image_url", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile image updated", "profile_image_url": url})
}

// GetAppSettings returns the user's app preferences, created with
// defaults on first access.
func GetAppSettings(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	settings, err := services.GetSettings(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

type AppSettingsInput struct {
	NotificationsEnabled *bool  `json:"notifications_enabled"`
	MealRemindersEnabled *bool  `json:"meal_reminders_enabled"`
	ReminderTime         string `json:"reminder_time"`
	WeeklySummaryEnabled *bool  `json:"weekly_summary_enabled"`
}

var reminderTimeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// UpdateAppSettings applies a partial settings update. Absent fields
// keep their stored values.
func UpdateAppSettings(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input AppSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid settings payload"})
		return
	}
	if input.ReminderTime != "" && !reminderTimeRe.MatchString(input.ReminderTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reminder_time must be HH:MM"})
		return
	}

	settings, err := services.GetSettings(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if input.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *input.NotificationsEnabled
	}
	if input.MealRemindersEnabled != nil {
		settings.MealRemindersEnabled = *input.MealRemindersEnabled
	}
	if input.ReminderTime != "" {
		settings.ReminderTime = input.ReminderTime
	}
	if input.WeeklySummaryEnabled != nil {
		settings.WeeklySummaryEnabled = *input.WeeklySummaryEnabled
	}

	if err := config.DB.Save(settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Settings updated", "settings": settings})
}

// HelpSupport serves static contact details for the support screen.
func HelpSupport(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"email":    "support@dietapp.in",
		"phone":    "+91-80-4000-1234",
		"faq_url":  "https://dietapp.in/faq",
		"web_site": "https://dietapp.in",
	})
}
