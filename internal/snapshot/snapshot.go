// Package snapshot exports plans and reports as CSV files for review outside
// the terminal. Every row carries the run ID so a snapshot can be matched to
// its run log.
package snapshot

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/archivetidy/internal/filelock"
	"github.com/harrison/archivetidy/internal/models"
	"github.com/spf13/afero"
)

// Row actions.
const (
	ActionKeep     = "keep"
	ActionDelete   = "delete"
	ActionMove     = "move"
	ActionConflict = "conflict"
	ActionNewest   = "newest"
	ActionOlder    = "older"
)

var (
	dedupeHeader = []string{"run_id", "group", "digest", "action", "path", "size_bytes", "modified"}
	scanHeader   = []string{"run_id", "group", "key", "verdict", "rank", "path", "size_bytes", "modified"}
	mergeHeader  = []string{"run_id", "representative", "source", "item", "is_dir", "action"}
)

// NewRunID returns a fresh identifier for one command invocation.
func NewRunID() string {
	return uuid.New().String()
}

// Writer renders snapshots for one run.
type Writer struct {
	runID string
}

// NewWriter creates a Writer that stamps rows with runID.
func NewWriter(runID string) *Writer {
	return &Writer{runID: runID}
}

// RunID returns the run ID stamped on every row.
func (sw *Writer) RunID() string {
	return sw.runID
}

// DeletionPlans writes one keep row and one delete row per planned action.
func (sw *Writer) DeletionPlans(w io.Writer, plans []models.DeletionPlan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(dedupeHeader); err != nil {
		return err
	}
	for i, plan := range plans {
		group := strconv.Itoa(i + 1)
		keeper := plan.Keeper
		if err := cw.Write([]string{
			sw.runID, group, plan.Group.Key, ActionKeep, keeper.Path,
			formatSize(keeper.SizeBytes), formatTime(keeper.ModifiedTime),
		}); err != nil {
			return err
		}
		for _, d := range plan.Deletions {
			if err := cw.Write([]string{
				sw.runID, group, plan.Group.Key, ActionDelete, d.Path,
				formatSize(d.SizeBytes), formatTime(modifiedOf(plan.Group, d.Path)),
			}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ScanReport writes one row per member of every name group, newest first.
func (sw *Writer) ScanReport(w io.Writer, report models.ScanReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scanHeader); err != nil {
		return err
	}
	for i, sg := range report.Groups {
		group := strconv.Itoa(i + 1)
		for j, m := range sg.Group.Members {
			rank := ActionOlder
			if j == 0 {
				rank = ActionNewest
			}
			if err := cw.Write([]string{
				sw.runID, group, sg.Group.Key, string(sg.Verdict), rank, m.Path,
				formatSize(m.SizeBytes), formatTime(m.ModifiedTime),
			}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// MergePlan writes one row per planned move, marking predicted conflicts.
func (sw *Writer) MergePlan(w io.Writer, targets []models.MergeTarget) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(mergeHeader); err != nil {
		return err
	}
	for _, t := range targets {
		for _, m := range t.Moves {
			action := ActionMove
			if m.Conflict {
				action = ActionConflict
			}
			if err := cw.Write([]string{
				sw.runID, t.Representative, m.Source, m.Item,
				strconv.FormatBool(m.IsDir), action,
			}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes a snapshot to path atomically.
func Save(fs afero.Fs, path string, render func(io.Writer) error) error {
	return filelock.AtomicWriteFunc(fs, path, render)
}

func modifiedOf(g models.DuplicateGroup, path string) time.Time {
	for _, m := range g.Members {
		if m.Path == path {
			return m.ModifiedTime
		}
	}
	return time.Time{}
}

func formatSize(n int64) string {
	return strconv.FormatInt(n, 10)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
