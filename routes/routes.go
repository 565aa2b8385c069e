package routes

import (
	"dietapp-backend/controllers"
	"dietapp-backend/logger"
	"dietapp-backend/middlewares"
	"dietapp-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRouter wires services once at startup and mounts the API.
func SetupRouter() *gin.Engine {
	r := gin.Default()

	sms, err := services.NewSmsService()
	if err != nil {
		logger.Warn("sms service unavailable, falling back to test mode", logrus.Fields{"error": err.Error()})
		sms = &services.SmsService{}
	}

	openAI := services.NewOpenAIService(services.OpenAIOptionsFromEnv())
	images := services.NewImageService(services.OpenAIOptionsFromEnv())
	recommendations := services.NewRecommendationService(openAI, images)

	api := r.Group("/api")

	api.POST("/auth/send-otp", controllers.SendOTP(sms))
	api.POST("/auth/verify-otp", controllers.VerifyOTP)
	api.GET("/meals/categories", controllers.MealCategories)
	api.GET("/onboarding/options", controllers.OnboardingOptions)

	authed := api.Group("/")
	authed.Use(middlewares.AuthMiddleware())
	{
		authed.GET("/auth/me", controllers.Me)
		authed.POST("/auth/logout", controllers.Logout)
		authed.DELETE("/account", controllers.DeleteAccount)

		authed.POST("/onboarding/complete", controllers.CompleteOnboarding)
		authed.GET("/onboarding/profile", controllers.GetUserProfile)

		authed.GET("/profile/overview", controllers.ProfileOverview)
		authed.PUT("/profile/overview", controllers.CompleteOnboarding)
		authed.PUT("/profile/image", controllers.UploadProfileImage)
		authed.GET("/profile/settings", controllers.GetAppSettings)
		authed.PUT("/profile/settings", controllers.UpdateAppSettings)
		authed.GET("/help-support", controllers.HelpSupport)

		authed.POST("/meals/add", controllers.AddMealEntry)
		authed.DELETE("/meals/:entry_id", controllers.RemoveMealEntry)
		authed.PATCH("/meals/:entry_id/toggle-eaten", controllers.ToggleMealEaten)
		authed.GET("/meals/day", controllers.DayMeals)
		authed.GET("/meals/recommendations", controllers.MealRecommendations(recommendations))
		authed.GET("/meals/recommendations/weekly", controllers.WeeklyMealPlan(recommendations))

		authed.GET("/dashboard/today", controllers.TodayDashboard)
		authed.GET("/dashboard/weekly", controllers.WeeklyDashboard)
		authed.GET("/dashboard/monthly", controllers.MonthlyDashboard)
		authed.GET("/dashboard/weekly-macros", controllers.WeeklyMacrosDashboard)
		authed.GET("/dashboard/calories-trend", controllers.CaloriesTrendDashboard)
	}

	return r
}
