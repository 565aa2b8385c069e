package controllers

import (
	"errors"
	"net/http"

	"dietapp-backend/models"
	"dietapp-backend/services"

	"github.com/gin-gonic/gin"
)

// OnboardingOptions serves the closed vocabularies the app renders as
// pickers, so the client never hardcodes them.
func OnboardingOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"genders":           models.Genders,
		"goals":             models.Goals,
		"diet_preferences":  models.DietPreferences,
		"health_conditions": models.HealthConditions,
		"allergies":         models.Allergies,
	})
}

type OnboardingInput struct {
	Name       string  `json:"name" binding:"required"`
	Age        int     `json:"age"`
	Weight     float64 `json:"weight" binding:"required"`
	WeightUnit string  `json:"weight_unit"`
	HeightCm   float64 `json:"height_cm" binding:"required"`
	Gender     string  `json:"gender"`
	Goal       string  `json:"goal" binding:"required"`
	DietPref   string  `json:"diet_preference" binding:"required"`

	TargetWeight float64 `json:"target_weight"`

	HealthConditions   []string `json:"health_conditions"`
	OtherConditionText string   `json:"other_condition_text"`
	Allergies          []string `json:"allergies"`
	AllergyNotes       string   `json:"allergy_notes"`
}

func contains(vocab []string, s string) bool {
	for _, v := range vocab {
		if v == s {
			return true
		}
	}
	return false
}

// CompleteOnboarding upserts the profile and marks onboarding done.
// The same handler serves profile edits after onboarding.
func CompleteOnboarding(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input OnboardingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, weight, height_cm, goal and diet_preference are required"})
		return
	}

	if input.Weight <= 0 || input.HeightCm <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weight and height_cm must be positive"})
		return
	}
	if input.WeightUnit == "" {
		input.WeightUnit = "kg"
	}
	if input.WeightUnit != "kg" && input.WeightUnit != "lbs" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weight_unit must be kg or lbs"})
		return
	}
	if input.Gender != "" && !contains(models.Genders, input.Gender) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gender"})
		return
	}
	if !contains(models.Goals, input.Goal) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal"})
		return
	}
	if !contains(models.DietPreferences, input.DietPref) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid diet_preference"})
		return
	}
	for _, h := range input.HealthConditions {
		if !contains(models.HealthConditions, h) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid health condition: " + h})
			return
		}
	}
	for _, a := range input.Allergies {
		if !contains(models.Allergies, a) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid allergy: " + a})
			return
		}
	}

	profile, err := services.UpsertProfile(userID, models.UserProfile{
		Name:               input.Name,
		Age:                input.Age,
		Weight:             input.Weight,
		WeightUnit:         input.WeightUnit,
		HeightCm:           input.HeightCm,
		Gender:             input.Gender,
		Goal:               input.Goal,
		DietPref:           input.DietPref,
		TargetWeight:       input.TargetWeight,
		HealthConditions:   models.StringList(input.HealthConditions),
		OtherConditionText: input.OtherConditionText,
		Allergies:          models.StringList(input.Allergies),
		AllergyNotes:       input.AllergyNotes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	targets := services.ComputeDailyTargets(profile)
	c.JSON(http.StatusOK, gin.H{
		"message":       "Onboarding completed",
		"profile":       profile,
		"daily_targets": targets,
	})
}

// GetUserProfile returns the stored profile, or 404 before onboarding.
func GetUserProfile(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	profile, err := services.GetProfile(userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileMissing) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not set up yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}
