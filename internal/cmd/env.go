package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/harrison/archivetidy/internal/config"
	"github.com/harrison/archivetidy/internal/display"
	"github.com/harrison/archivetidy/internal/filelock"
	"github.com/harrison/archivetidy/internal/fileutil"
	"github.com/harrison/archivetidy/internal/hasher"
	"github.com/harrison/archivetidy/internal/logger"
	"github.com/harrison/archivetidy/internal/models"
	"github.com/harrison/archivetidy/internal/snapshot"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// runEnv is everything one command invocation shares: configuration, the
// filesystem, loggers, the output printer and the run's error log.
type runEnv struct {
	command string
	root    string
	cfg     *config.Config
	fs      afero.Fs
	log     logger.RunLogger
	fileLog *logger.FileLogger
	printer *display.Printer
	verbose bool
	runID   string
	errs    *models.ErrorLog
	lock    *filelock.FileLock
	started time.Time
}

// newRunEnv loads configuration, applies persistent and command flags, and
// opens the loggers. It validates root before anything else touches it.
func newRunEnv(cmd *cobra.Command, root string, overrides config.Flags) (*runEnv, error) {
	cfg, err := loadConfig(cmd, overrides)
	if err != nil {
		return nil, err
	}

	fs := afero.NewOsFs()
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	if err := fileutil.ValidateRoot(fs, abs); err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	verbose, _ := cmd.Flags().GetBool("verbose")
	env := &runEnv{
		command: cmd.Name(),
		root:    abs,
		cfg:     cfg,
		fs:      fs,
		printer: display.NewPrinter(out, logger.IsTerminal(out)),
		verbose: verbose,
		runID:   snapshot.NewRunID(),
		errs:    &models.ErrorLog{},
		started: time.Now(),
	}

	console := logger.NewConsoleLogger(out, cfg.LogLevel)
	if cfg.FileLog {
		env.fileLog, err = logger.NewFileLogger(cfg.LogDir, cfg.LogLevel, env.runID)
		if err != nil {
			return nil, fmt.Errorf("failed to create file logger: %w", err)
		}
		env.log = logger.NewMulti(console, env.fileLog)
	} else {
		env.log = console
	}

	env.log.LogRunStart(env.command, env.root, env.runID)
	return env, nil
}

// loadConfig resolves the config file and merges flags over it.
func loadConfig(cmd *cobra.Command, overrides config.Flags) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		if configPath != "" {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		level, _ := flags.GetString("log-level")
		overrides.LogLevel = &level
	} else if verbose, _ := flags.GetBool("verbose"); verbose {
		level := "debug"
		overrides.LogLevel = &level
	}
	if flags.Changed("log-dir") {
		dir, _ := flags.GetString("log-dir")
		overrides.LogDir = &dir
	}
	if noFileLog, _ := flags.GetBool("no-file-log"); noFileLog {
		off := false
		overrides.FileLog = &off
	}

	cfg.MergeWithFlags(overrides)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// acquireLock takes the run lock on the root. A held lock is fatal.
func (e *runEnv) acquireLock() error {
	lock, err := filelock.LockRoot(e.root)
	if err != nil {
		return err
	}
	e.lock = lock
	e.log.LogDebug(fmt.Sprintf("Acquired lock %s", lock.Path()))
	return nil
}

// scan lists the files under the root and records scan errors.
func (e *runEnv) scan() ([]models.FileRecord, error) {
	res, err := fileutil.ScanDirectory(e.fs, e.root, fileutil.ScanOptions{
		Recursive:     e.cfg.Scan.Recursive,
		IncludeHidden: e.cfg.Scan.IncludeHidden,
		Extensions:    e.cfg.Scan.Extensions,
	})
	if err != nil {
		return nil, err
	}
	e.errs.AddAll(res.Errors)
	for _, scanErr := range res.Errors {
		e.log.LogWarn(scanErr.Error())
	}

	records := make([]models.FileRecord, 0, len(res.Records))
	for _, rec := range res.Records {
		if rec.Name() == filelock.LockFileName {
			continue
		}
		records = append(records, rec)
	}
	e.log.LogInfo(fmt.Sprintf("Scanned %d %s in %s", len(records), display.Plural(len(records), "file", "files"), e.root))
	return records, nil
}

// newHasher builds the configured content hasher.
func (e *runEnv) newHasher() (*hasher.Hasher, error) {
	return hasher.New(e.fs, e.cfg.Hash.Algorithm, e.cfg.Hash.ChunkSize)
}

// hashAll fills in the digest of every record. Unreadable files are recorded
// as HashErrors and dropped.
func (e *runEnv) hashAll(h *hasher.Hasher, records []models.FileRecord) []models.FileRecord {
	var progress *display.ProgressIndicator
	if e.verbose {
		progress = display.NewProgressIndicator(e.printer.Writer(), len(records), e.printer.UseColor())
		progress.Start()
	}

	hashed := make([]models.FileRecord, 0, len(records))
	for _, rec := range records {
		if progress != nil {
			progress.Step(rec.Path)
		}
		filled, err := h.Fill(rec)
		if err != nil {
			e.errs.Add(err)
			e.log.LogWarn(fmt.Sprintf("Could not hash %s: %v", rec.Path, err))
			continue
		}
		e.log.LogTrace(fmt.Sprintf("%s %s", filled.ContentHash, filled.Path))
		hashed = append(hashed, filled)
	}

	if progress != nil {
		progress.Complete()
	}
	return hashed
}

// writeSnapshot saves a CSV snapshot when --csv was given.
func (e *runEnv) writeSnapshot(cmd *cobra.Command, render func(*snapshot.Writer, io.Writer) error) error {
	path, _ := cmd.Flags().GetString("csv")
	if path == "" {
		return nil
	}
	sw := snapshot.NewWriter(e.runID)
	if err := snapshot.Save(e.fs, path, func(w io.Writer) error { return render(sw, w) }); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	e.log.LogInfo(fmt.Sprintf("Wrote snapshot %s", path))
	return nil
}

// unreadable returns the paths of every hash error in the run.
func (e *runEnv) unreadable() []string {
	var paths []string
	for _, err := range e.errs.Errors() {
		var opErr *models.OpError
		if errors.As(err, &opErr) && opErr.Kind == models.HashError {
			paths = append(paths, opErr.Path)
		}
	}
	return paths
}

// close prints the error listing, logs the run summary, and releases the
// lock and the run log.
func (e *runEnv) close() {
	e.printer.Errors(e.errs)
	e.log.LogRunComplete(e.command, time.Since(e.started), e.errs)
	if e.lock != nil {
		if err := e.lock.Release(); err != nil {
			e.log.LogWarn(err.Error())
		}
	}
	if e.fileLog != nil {
		e.fileLog.Close()
	}
}
