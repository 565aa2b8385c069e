package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	log  *logrus.Logger
	once sync.Once
)

// L returns the shared logger, initializing it on first use.
func L() *logrus.Logger {
	once.Do(func() {
		log = logrus.New()
		log.SetOutput(os.Stdout)
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		if os.Getenv("LOG_LEVEL") == "debug" {
			log.SetLevel(logrus.DebugLevel)
		}
	})
	return log
}

func Info(msg string, fields logrus.Fields) {
	L().WithFields(fields).Info(msg)
}

func Warn(msg string, fields logrus.Fields) {
	L().WithFields(fields).Warn(msg)
}

func Error(msg string, fields logrus.Fields) {
	L().WithFields(fields).Error(msg)
}
