// ABOUTME: Logrus-backed logger implementation with structured field support
// ABOUTME: Default logger wiring for the application

package logrus

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger implements the Logger interface using logrus.
type Logger struct {
	log *logrus.Logger
}

// NewLogger creates a logrus logger writing JSON to stdout at the given
// level. Unknown level strings fall back to info.
func NewLogger(level string) *Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return &Logger{log: log}
}

// NewLoggerWithOutput creates a logger writing to the given writer. Used
// in tests to capture output.
func NewLoggerWithOutput(level string, out io.Writer) *Logger {
	l := NewLogger(level)
	l.log.SetOutput(out)
	return l
}

// Debug logs a debug message with optional structured fields.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message with optional structured fields.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message with optional structured fields.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message with optional structured fields.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Error(msg)
}
