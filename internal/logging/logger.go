package logging

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// New builds the process logger. Production environments get JSON output for
// log shippers; everything else keeps the readable text formatter. An
// unknown level falls back to info rather than failing startup.
func New(level, environment string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	if strings.EqualFold(environment, "production") {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
