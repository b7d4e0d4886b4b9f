package merge

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/harrison/archivetidy/internal/models"
	"github.com/spf13/afero"
)

var errNotDir = errors.New("not a directory")

// Logger receives one line per merge step.
type Logger interface {
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
}

// Executor applies merge targets to folders under a root.
type Executor struct {
	fs     afero.Fs
	root   string
	logger Logger
}

// NewExecutor creates an Executor for folders under root.
// The logger parameter is optional and can be nil.
func NewExecutor(fs afero.Fs, root string, logger Logger) *Executor {
	if fs == nil {
		panic("filesystem cannot be nil")
	}
	return &Executor{fs: fs, root: root, logger: logger}
}

// Execute merges every target in order. Sources are processed one at a time,
// so a conflict is always detected before anything could be overwritten.
func (e *Executor) Execute(targets []models.MergeTarget) models.MergeReport {
	report := models.MergeReport{Outcomes: make([]models.TargetOutcome, 0, len(targets))}
	for _, t := range targets {
		report.Outcomes = append(report.Outcomes, e.executeTarget(t))
	}
	return report
}

func (e *Executor) executeTarget(t models.MergeTarget) models.TargetOutcome {
	out := models.TargetOutcome{Target: t}
	repPath := filepath.Join(e.root, t.Representative)

	if err := e.checkFolder(repPath); err != nil {
		out.Skipped = true
		out.Errors = append(out.Errors, models.NewOpError(models.MissingFolderError, repPath, err))
		e.logWarn(fmt.Sprintf("Representative folder '%s' does not exist, skipping group [%s]", t.Representative, strings.Join(t.Cluster.Members, ", ")))
		return out
	}

	e.logInfo(fmt.Sprintf("Merging [%s] into '%s'", strings.Join(append([]string{t.Representative}, t.Sources...), ", "), t.Representative))

	for _, src := range t.Sources {
		if src == t.Representative {
			continue
		}
		e.mergeSource(&out, src, repPath)
	}
	return out
}

// mergeSource moves the immediate children of one source folder into the
// representative and removes the source if nothing is left behind.
func (e *Executor) mergeSource(out *models.TargetOutcome, src, repPath string) {
	srcPath := filepath.Join(e.root, src)

	if err := e.checkFolder(srcPath); err != nil {
		out.Errors = append(out.Errors, models.NewOpError(models.MissingFolderError, srcPath, err))
		e.logWarn(fmt.Sprintf("Folder '%s' does not exist, skipping.", src))
		return
	}

	entries, err := afero.ReadDir(e.fs, srcPath)
	if err != nil {
		out.Errors = append(out.Errors, models.NewOpError(models.ScanError, srcPath, err))
		out.Retained = append(out.Retained, src)
		e.logError(fmt.Sprintf("  Could not read folder '%s': %v", src, err))
		return
	}

	for _, entry := range entries {
		item := entry.Name()
		from := filepath.Join(srcPath, item)
		to := filepath.Join(repPath, item)
		rel := filepath.Join(src, item)

		taken, err := exists(e.fs, to)
		if err != nil {
			out.Errors = append(out.Errors, models.NewOpError(models.MoveError, from, err))
			e.logError(fmt.Sprintf("  Could not check %s: %v", to, err))
			continue
		}
		if taken {
			out.Conflicts = append(out.Conflicts, rel)
			out.Errors = append(out.Errors, models.NewOpError(models.MergeConflictError, from, models.ErrDestinationExists))
			e.logWarn(fmt.Sprintf("  Conflict: %s already exists. Skipping %s.", to, from))
			continue
		}

		if err := e.fs.Rename(from, to); err != nil {
			out.Errors = append(out.Errors, models.NewOpError(models.MoveError, from, err))
			e.logError(fmt.Sprintf("  Could not move %s: %v", from, err))
			continue
		}
		out.Moved = append(out.Moved, rel)
		e.logInfo(fmt.Sprintf("  Moved %s", rel))
	}

	if err := e.removeIfEmpty(srcPath); err != nil {
		out.Retained = append(out.Retained, src)
		out.Errors = append(out.Errors, models.NewOpError(models.MergeCleanupError, srcPath, err))
		e.logWarn(fmt.Sprintf("  Could not remove folder '%s': %v", src, err))
		return
	}
	out.Removed = append(out.Removed, src)
	e.logInfo(fmt.Sprintf("  Merged and removed folder '%s'.", src))
}

// removeIfEmpty removes dir only when it has no entries left. Never recursive.
func (e *Executor) removeIfEmpty(dir string) error {
	empty, err := afero.IsEmpty(e.fs, dir)
	if err != nil {
		return err
	}
	if !empty {
		return models.ErrNotEmpty
	}
	return e.fs.Remove(dir)
}

func (e *Executor) checkFolder(path string) error {
	info, err := e.fs.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errNotDir
	}
	return nil
}

func (e *Executor) logInfo(msg string) {
	if e.logger != nil {
		e.logger.LogInfo(msg)
	}
}

func (e *Executor) logWarn(msg string) {
	if e.logger != nil {
		e.logger.LogWarn(msg)
	}
}

func (e *Executor) logError(msg string) {
	if e.logger != nil {
		e.logger.LogError(msg)
	}
}
