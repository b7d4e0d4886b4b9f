package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/harrison/archivetidy/internal/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LatestLogName is the symlink that always points at the most recent run log.
const LatestLogName = "latest.log"

// FileLogger writes one JSON object per line to a timestamped run log file
// (run-YYYYMMDD-HHMMSS.log) in its log directory and keeps latest.log
// pointing at it. Every entry carries the run ID.
type FileLogger struct {
	runFile string
	file    *os.File
	zl      *zap.Logger
	mu      sync.Mutex
}

// NewFileLogger creates the log directory if needed, opens a new run log and
// updates the latest.log symlink. logLevel filters entries the same way the
// console does; "trace" entries are written at debug level with trace=true.
func NewFileLogger(logDir, logLevel, runID string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", time.Now().Format("20060102-150405")))
	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, LatestLogName)
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(file),
		zap.NewAtomicLevelAt(zapLevel(logLevel)),
	)

	return &FileLogger{
		runFile: runFile,
		file:    file,
		zl:      zap.New(core).With(zap.String("run_id", runID)),
	}, nil
}

// zapLevel maps a console level name onto zap's levels.
func zapLevel(level string) zapcore.Level {
	switch normalizeLogLevel(level) {
	case "trace", "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Path returns the path of the run log file.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

// LogTrace logs a trace-level message.
func (fl *FileLogger) LogTrace(message string) {
	fl.zl.Debug(message, zap.Bool("trace", true))
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.zl.Debug(message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.zl.Info(message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.zl.Warn(message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.zl.Error(message)
}

// LogRunStart records the command and its target.
func (fl *FileLogger) LogRunStart(command, target, runID string) {
	fl.zl.Info("run started",
		zap.String("command", command),
		zap.String("target", target),
	)
}

// LogRunComplete records the run duration and a breakdown of recoverable errors.
func (fl *FileLogger) LogRunComplete(command string, duration time.Duration, errs *models.ErrorLog) {
	fields := []zap.Field{
		zap.String("command", command),
		zap.Duration("duration", duration),
	}
	if errs != nil {
		fields = append(fields,
			zap.Int("errors", errs.Len()),
			zap.Int("scan_errors", errs.Count(models.ScanError)),
			zap.Int("hash_errors", errs.Count(models.HashError)),
			zap.Int("delete_errors", errs.Count(models.DeletionError)),
			zap.Int("move_errors", errs.Count(models.MoveError)),
			zap.Int("conflicts", errs.Count(models.MergeConflictError)),
			zap.Int("cleanup_errors", errs.Count(models.MergeCleanupError)),
			zap.Int("missing_folders", errs.Count(models.MissingFolderError)),
		)
	}
	fl.zl.Info("run complete", fields...)
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.file == nil {
		return nil
	}
	if err := fl.zl.Sync(); err != nil {
		return fmt.Errorf("failed to sync run log: %w", err)
	}
	if err := fl.file.Close(); err != nil {
		return fmt.Errorf("failed to close run log: %w", err)
	}
	fl.file = nil
	return nil
}
