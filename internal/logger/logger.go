// Package logger provides logging implementations for archivetidy runs.
//
// ConsoleLogger writes human-readable, optionally colored lines to a writer.
// FileLogger writes a structured JSON run log through zap. Multi fans every
// message out to several loggers so a run can log to both at once.
package logger

import (
	"strings"
	"time"

	"github.com/harrison/archivetidy/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// Logger is the leveled message interface the engine packages log through.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
}

// RunLogger adds run boundary events to Logger.
type RunLogger interface {
	Logger
	LogRunStart(command, target, runID string)
	LogRunComplete(command string, duration time.Duration, errs *models.ErrorLog)
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// IsValidLevel reports whether level names a supported log level.
func IsValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "error":
		return true
	}
	return false
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Multi forwards every message to each wrapped logger in order.
type Multi struct {
	loggers []RunLogger
}

// NewMulti creates a Multi over the non-nil loggers.
func NewMulti(loggers ...RunLogger) *Multi {
	m := &Multi{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *Multi) LogTrace(message string) {
	for _, l := range m.loggers {
		l.LogTrace(message)
	}
}

func (m *Multi) LogDebug(message string) {
	for _, l := range m.loggers {
		l.LogDebug(message)
	}
}

func (m *Multi) LogInfo(message string) {
	for _, l := range m.loggers {
		l.LogInfo(message)
	}
}

func (m *Multi) LogWarn(message string) {
	for _, l := range m.loggers {
		l.LogWarn(message)
	}
}

func (m *Multi) LogError(message string) {
	for _, l := range m.loggers {
		l.LogError(message)
	}
}

func (m *Multi) LogRunStart(command, target, runID string) {
	for _, l := range m.loggers {
		l.LogRunStart(command, target, runID)
	}
}

func (m *Multi) LogRunComplete(command string, duration time.Duration, errs *models.ErrorLog) {
	for _, l := range m.loggers {
		l.LogRunComplete(command, duration, errs)
	}
}

// NoOpLogger is a RunLogger implementation that discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogTrace is a no-op implementation.
func (n *NoOpLogger) LogTrace(message string) {}

// LogDebug is a no-op implementation.
func (n *NoOpLogger) LogDebug(message string) {}

// LogInfo is a no-op implementation.
func (n *NoOpLogger) LogInfo(message string) {}

// LogWarn is a no-op implementation.
func (n *NoOpLogger) LogWarn(message string) {}

// LogError is a no-op implementation.
func (n *NoOpLogger) LogError(message string) {}

// LogRunStart is a no-op implementation.
func (n *NoOpLogger) LogRunStart(command, target, runID string) {}

// LogRunComplete is a no-op implementation.
func (n *NoOpLogger) LogRunComplete(command string, duration time.Duration, errs *models.ErrorLog) {}
