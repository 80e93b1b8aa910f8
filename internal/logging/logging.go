package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging builds the process-wide logger: JSON to stdout, with the
// severity published under "loglevel". The LOG_LEVEL environment variable
// selects the level; anything unparseable falls back to info.
func SetupLogging() *logrus.Logger {
	logger := logrus.Logger{
		Formatter: &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		},
		Out:   os.Stdout,
		Level: levelFromEnvironment(),
	}

	return &logger
}

func levelFromEnvironment() logrus.Level {
	raw := os.Getenv("LOG_LEVEL")
	if len(raw) == 0 {
		return logrus.InfoLevel
	}
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
