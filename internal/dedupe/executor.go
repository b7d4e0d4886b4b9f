package dedupe

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/harrison/archivetidy/internal/models"
	"github.com/spf13/afero"
)

// errKeeperMissing guards against deleting every copy of a file when the
// keeper vanished between planning and execution.
var errKeeperMissing = errors.New("keeper no longer exists")

// Logger receives one line per deletion attempt.
type Logger interface {
	LogInfo(message string)
	LogError(message string)
}

// Executor applies deletion plans to a filesystem.
type Executor struct {
	fs     afero.Fs
	logger Logger
}

// NewExecutor creates an Executor. The logger parameter is optional and can be nil.
func NewExecutor(fs afero.Fs, logger Logger) *Executor {
	if fs == nil {
		panic("filesystem cannot be nil")
	}
	return &Executor{fs: fs, logger: logger}
}

// Execute deletes every planned file. Each deletion is independent: a failure
// is recorded as a DeletionError and the batch continues.
func (e *Executor) Execute(plans []models.DeletionPlan) models.DedupeReport {
	var report models.DedupeReport

	for _, plan := range plans {
		e.logInfo(fmt.Sprintf("Duplicate group %s (keeping: %s)", shortKey(plan.Group.Key), filepath.Base(plan.Keeper.Path)))

		if _, err := e.fs.Stat(plan.Keeper.Path); err != nil {
			for _, d := range plan.Deletions {
				opErr := models.NewOpError(models.DeletionError, d.Path, fmt.Errorf("%w: %s", errKeeperMissing, plan.Keeper.Path))
				report.Failed = append(report.Failed, opErr)
				e.logError(fmt.Sprintf("  Skipped %s: %v", d.Path, opErr.Err))
			}
			continue
		}

		for _, d := range plan.Deletions {
			if err := e.fs.Remove(d.Path); err != nil {
				report.Failed = append(report.Failed, models.NewOpError(models.DeletionError, d.Path, err))
				e.logError(fmt.Sprintf("  Error deleting %s: %v", d.Path, err))
				continue
			}
			report.Deleted = append(report.Deleted, d)
			report.BytesReclaimed += d.SizeBytes
			e.logInfo(fmt.Sprintf("  Deleted duplicate: %s", filepath.Base(d.Path)))
		}
	}
	return report
}

func (e *Executor) logInfo(msg string) {
	if e.logger != nil {
		e.logger.LogInfo(msg)
	}
}

func (e *Executor) logError(msg string) {
	if e.logger != nil {
		e.logger.LogError(msg)
	}
}

func shortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}
