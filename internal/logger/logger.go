package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Init configures the standard logrus logger, which every component logs
// through via logrus.WithField("component", ...).
//
// An empty level falls back to LOG_LEVEL, then to debug in development and
// info otherwise. JSON output is used outside development or when
// format (or LOG_FORMAT) is "json".
func Init(level, format string, isDevelopment bool) *logrus.Logger {
	return configure(logrus.StandardLogger(), level, format, isDevelopment, os.Stdout)
}

func configure(log *logrus.Logger, level, format string, isDevelopment bool, out io.Writer) *logrus.Logger {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
		if level == "" {
			if isDevelopment {
				level = "debug"
			} else {
				level = "info"
			}
		}
	}
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}

	if !isDevelopment || strings.ToLower(format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	log.SetOutput(out)

	if lvl, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", level).Warn("Invalid LOG_LEVEL, using INFO")
	}
	return log
}

// WithRequestID tags an entry with the roster request it belongs to.
func WithRequestID(requestID string) *logrus.Entry {
	return logrus.WithField("request_id", requestID)
}
