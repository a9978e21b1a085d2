// Package log builds the logrus logger shared by linecut commands.
package log

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mmr-tortoise/linecut/internal/config"
)

// New creates a logger writing to w. verbose forces debug level
// regardless of the configured level.
func New(w io.Writer, format config.LogFormat, level string, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	switch format {
	case config.LogFormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	}

	logger.SetLevel(ParseLevel(level))
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// ParseLevel maps a configured level name to a logrus level. Unknown
// names fall back to info.
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "trace":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Discard returns a logger that drops everything. Useful as a default
// before configuration has been loaded.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
