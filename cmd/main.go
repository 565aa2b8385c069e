package main

import (
	"os"

	"dietapp-backend/config"
	"dietapp-backend/logger"
	"dietapp-backend/routes"
	"dietapp-backend/utils"

	"github.com/sirupsen/logrus"
)

func main() {
	config.InitDB()
	utils.InitS3()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("starting server", logrus.Fields{"port": port})
	if err := r.Run(":" + port); err != nil {
		logger.Error("server stopped", logrus.Fields{"error": err.Error()})
		os.Exit(1)
	}
}
