package config

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Call this to configure the logrus logger for a program using this SDK.
// Set the loglevel, formatter, color options, etc.

const LogLevelEnv = "SYNATRA_LOG_LEVEL"
const LogFormatEnv = "SYNATRA_LOG_FORMAT"

func ConfigureLogger(levelMaybe ...string) {
	logrus.SetLevel(logrus.InfoLevel)

	level := os.Getenv(LogLevelEnv)
	if len(levelMaybe) > 0 {
		level = levelMaybe[0]
	}

	switch level {
	case "trace":
		logrus.SetLevel(logrus.TraceLevel)
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}

	format := os.Getenv(LogFormatEnv)
	if format == "" {
		format = "text"
	}
	switch strings.ToLower(format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
		})
	case "color-text":
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors: false,
			ForceColors:   true,
		})
	default:
		logrus.WithFields(logrus.Fields{
			"format":  format,
			"options": []string{"json", "text", "color-text"},
		}).Warn("unknown format")
	}
}
