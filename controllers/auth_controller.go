package controllers

import (
	"errors"
	"net/http"

	"dietapp-backend/config"
	"dietapp-backend/models"
	"dietapp-backend/services"

	"github.com/gin-gonic/gin"
)

type SendOTPInput struct {
	Mobile string `json:"mobile" binding:"required"`
}

// SendOTP issues a login code for a mobile number. In dev mode the code
// comes back in the response instead of an SMS.
func SendOTP(sms *services.SmsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SendOTPInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "mobile is required"})
			return
		}

		code, err := services.IssueOTP(input.Mobile)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if sms.DevMode() {
			c.JSON(http.StatusOK, gin.H{
				"message": "OTP generated successfully (TEST MODE)",
				"otp":     code,
			})
			return
		}

		if err := sms.SendOTP(input.Mobile, code); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send SMS"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
	}
}

type VerifyOTPInput struct {
	Mobile string `json:"mobile" binding:"required"`
	OTP    string `json:"otp" binding:"required"`
}

func VerifyOTP(c *gin.Context) {
	var input VerifyOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mobile and otp are required"})
		return
	}

	result, err := services.VerifyOTP(input.Mobile, input.OTP)
	if err != nil {
		if errors.Is(err, services.ErrInvalidOTP) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":               result.Token,
		"is_new_user":          result.IsNewUser,
		"onboarding_completed": result.OnboardingCompleted,
	})
}

func Me(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                   user.ID,
		"mobile":               user.Mobile,
		"onboarding_completed": user.OnboardingCompleted,
	})
}

func Logout(c *gin.Context) {
	token := c.GetString("token")
	if err := services.RevokeToken(token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func DeleteAccount(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	mobile := c.GetString("mobile")
	token := c.GetString("token")

	if err := services.DeleteAccount(userID, token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account for " + mobile + " deleted"})
}
