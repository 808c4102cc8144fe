package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log = logrus.New()

// InitLogger initializes the logging setup using Logrus
func InitLogger() {
	if dir := filepath.Dir(LogFile); dir != "" && dir != "." {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			os.MkdirAll(dir, 0755)
		}
	}

	if LogFile != "" {
		Log.Out = &lumberjack.Logger{
			Filename:   LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}

	Log.SetLevel(parseLevel(LogLevel))
	Log.SetFormatter(&logrus.JSONFormatter{})

	Log.Info("logger initialized")
}

func parseLevel(level string) logrus.Level {
	switch level {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
