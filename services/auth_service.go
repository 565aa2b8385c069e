package services

import (
	"errors"
	"time"

	"dietapp-backend/config"
	"dietapp-backend/models"
	"dietapp-backend/utils"

	"gorm.io/gorm"
)

var ErrInvalidOTP = errors.New("invalid OTP")

// IssueOTP creates (or refreshes) the live OTP for a mobile number and
// returns the code for delivery.
func IssueOTP(mobile string) (string, error) {
	code := utils.GenerateOTPCode()

	var otp models.OTP
	err := config.DB.Where("mobile = ? AND used = ?", mobile, false).First(&otp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		otp = models.OTP{Mobile: mobile, Code: code}
		if err := config.DB.Create(&otp).Error; err != nil {
			return "", err
		}
		return code, nil
	}
	if err != nil {
		return "", err
	}

	otp.Code = code
	if err := config.DB.Save(&otp).Error; err != nil {
		return "", err
	}
	return code, nil
}

type VerifyResult struct {
	Token               string
	IsNewUser           bool
	OnboardingCompleted bool
}

// VerifyOTP consumes a code, logging the user in and registering them on
// first contact.
func VerifyOTP(mobile, code string) (*VerifyResult, error) {
	var otp models.OTP
	err := config.DB.
		Where("mobile = ? AND code = ? AND used = ?", mobile, code, false).
		Order("created_at DESC").
		First(&otp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidOTP
	}
	if err != nil {
		return nil, err
	}

	otp.Used = true
	if err := config.DB.Save(&otp).Error; err != nil {
		return nil, err
	}

	var user models.User
	created := false
	err = config.DB.Where("mobile = ?", mobile).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{Mobile: mobile}
		if err := config.DB.Create(&user).Error; err != nil {
			return nil, err
		}
		created = true
	} else if err != nil {
		return nil, err
	}

	userName := ""
	if p, err := GetProfile(user.ID); err == nil {
		userName = p.Name
	}
	config.DB.Create(&models.LoginHistory{
		UserID:    user.ID,
		UserName:  userName,
		Mobile:    mobile,
		IsNewUser: created,
	})

	// keep only a week of login history
	weekAgo := time.Now().Add(-7 * 24 * time.Hour)
	config.DB.Unscoped().Where("created_at < ?", weekAgo).Delete(&models.LoginHistory{})

	token, err := utils.GenerateJWT(user.ID, user.Mobile)
	if err != nil {
		return nil, err
	}

	return &VerifyResult{
		Token:               token,
		IsNewUser:           created,
		OnboardingCompleted: user.OnboardingCompleted,
	}, nil
}

// RevokeToken blacklists a JWT until it would have expired anyway.
func RevokeToken(token string) error {
	return config.DB.Create(&models.RevokedToken{Token: token}).Error
}

func IsTokenRevoked(token string) bool {
	var count int64
	config.DB.Model(&models.RevokedToken{}).Where("token = ?", token).Count(&count)
	return count > 0
}

// DeleteAccount removes the user and everything attached to them.
func DeleteAccount(userID uint, token string) error {
	if token != "" {
		_ = RevokeToken(token)
	}

	return config.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.UserProfile{},
			&models.MealEntry{},
			&models.DailyNutritionSummary{},
			&models.MealRecommendation{},
			&models.WeeklyMealRecommendation{},
			&models.UserAppSettings{},
			&models.LoginHistory{},
		} {
			if err := tx.Unscoped().Where("user_id = ?", userID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&models.User{}, userID).Error
	})
}
