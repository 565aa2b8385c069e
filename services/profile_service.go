package services

import (
	"errors"

	"dietapp-backend/config"
	"dietapp-backend/models"

	"gorm.io/gorm"
)

// GetProfile loads a user's profile, ErrProfileMissing when onboarding
// never completed.
func GetProfile(userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileMissing
		}
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile creates or replaces the onboarding profile and marks the
// user as onboarded.
func UpsertProfile(userID uint, in models.UserProfile) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := config.DB.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		in.UserID = userID
		if err := config.DB.Create(&in).Error; err != nil {
			return nil, err
		}
		profile = in
	} else if err != nil {
		return nil, err
	} else {
		in.ID = profile.ID
		in.UserID = userID
		in.CreatedAt = profile.CreatedAt
		if err := config.DB.Save(&in).Error; err != nil {
			return nil, err
		}
		profile = in
	}

	if err := config.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("onboarding_completed", true).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetSettings returns the user's app settings, creating defaults on
// first access.
func GetSettings(userID uint) (*models.UserAppSettings, error) {
	settings := models.UserAppSettings{
		UserID:               userID,
		NotificationsEnabled: true,
		MealRemindersEnabled: true,
	}
	if err := config.DB.Where("user_id = ?", userID).FirstOrCreate(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}
