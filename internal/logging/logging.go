package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

// Init configures the global logger. Unknown levels fall back to info.
func Init(level string) {
	l := logrus.New()
	lv, err := logrus.ParseLevel(level)
	if err != nil {
		lv = logrus.InfoLevel
	}
	l.SetLevel(lv)
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	logger = l
}

// Get returns the global logger, initializing it with defaults if needed.
func Get() *logrus.Logger {
	if logger == nil {
		Init("info")
	}
	return logger
}

// WithComponent tags log entries with the component that emits them.
func WithComponent(name string) *logrus.Entry {
	return Get().WithField("component", name)
}
