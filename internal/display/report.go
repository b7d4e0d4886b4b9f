package display

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/archivetidy/internal/models"
)

// Printer renders plans and reports as human-readable text.
type Printer struct {
	out      io.Writer
	useColor bool
	success  *color.Color
	fail     *color.Color
	warn     *color.Color
	label    *color.Color
	heading  *color.Color
}

// NewPrinter creates a Printer. Color codes are written only when useColor is set.
func NewPrinter(out io.Writer, useColor bool) *Printer {
	p := &Printer{
		out:      out,
		useColor: useColor,
		success:  color.New(color.FgGreen),
		fail:     color.New(color.FgRed),
		warn:     color.New(color.FgYellow),
		label:    color.New(color.FgCyan),
		heading:  color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.success, p.fail, p.warn, p.label, p.heading} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// UseColor reports whether color output is enabled.
func (p *Printer) UseColor() bool {
	return p.useColor
}

// Println writes a plain line.
func (p *Printer) Println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

// Printf writes a formatted line.
func (p *Printer) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format, a...)
}

// Warning writes a warning block.
func (p *Printer) Warning(w Warning) {
	w.Display(p.out, p.useColor)
}

// DeletionPlans lists every duplicate group with its keeper and the files to delete.
func (p *Printer) DeletionPlans(plans []models.DeletionPlan) {
	if len(plans) == 0 {
		fmt.Fprintln(p.out, p.success.Sprint("No duplicate files found."))
		return
	}

	var files int
	var bytes int64
	for i, plan := range plans {
		fmt.Fprintf(p.out, "\n%s %s\n", p.heading.Sprintf("Group %d:", i+1), p.label.Sprint(shortDigest(plan.Group.Key)))
		fmt.Fprintf(p.out, "  keep    %s  (%s, %s)\n", plan.Keeper.Path, FormatSize(plan.Keeper.SizeBytes), FormatTime(plan.Keeper.ModifiedTime))
		for _, d := range plan.Deletions {
			fmt.Fprintf(p.out, "  %s  %s  (%s)\n", p.fail.Sprint("delete"), d.Path, FormatSize(d.SizeBytes))
		}
		files += len(plan.Deletions)
		bytes += plan.ReclaimableBytes()
	}
	fmt.Fprintf(p.out, "\nPlan: delete %d duplicate %s in %d %s, reclaiming %s.\n",
		files, Plural(files, "file", "files"), len(plans), Plural(len(plans), "group", "groups"), FormatSize(bytes))
}

// DedupeSummary prints the final result of a deduplication run.
func (p *Printer) DedupeSummary(report models.DedupeReport) {
	fmt.Fprintf(p.out, "\nDeduplication complete. Removed %s duplicate %s, freeing up %s.\n",
		p.success.Sprint(report.Succeeded()), Plural(report.Succeeded(), "file", "files"), FormatSize(report.BytesReclaimed))
	if len(report.Failed) > 0 {
		fmt.Fprintf(p.out, "%s %d %s could not be deleted.\n",
			p.fail.Sprint("Failed:"), len(report.Failed), Plural(len(report.Failed), "file", "files"))
	}
}

// ScanReport prints the advisory name-group report.
func (p *Printer) ScanReport(report models.ScanReport) {
	fmt.Fprintf(p.out, "Found %d %s\n", report.FilesScanned, Plural(report.FilesScanned, "file", "files"))

	if len(report.Groups) == 0 {
		fmt.Fprintln(p.out, p.success.Sprint("No potential duplicates found based on naming patterns."))
		return
	}

	fmt.Fprintf(p.out, "\nFound %d %s of potential duplicates:\n", len(report.Groups), Plural(len(report.Groups), "group", "groups"))
	fmt.Fprintln(p.out, strings.Repeat("=", 60))

	for i, sg := range report.Groups {
		fmt.Fprintf(p.out, "\n%s '%s'\n", p.heading.Sprintf("GROUP %d:", i+1), sg.Group.Key)
		fmt.Fprintf(p.out, "   %d files:\n", len(sg.Group.Members))
		for j, m := range sg.Group.Members {
			marker := "older "
			if j == 0 {
				marker = p.success.Sprint("newest")
			}
			fmt.Fprintf(p.out, "     %s %s\n", marker, filepath.Base(m.Path))
			fmt.Fprintf(p.out, "            Size: %s\n", FormatSize(m.SizeBytes))
			fmt.Fprintf(p.out, "            Modified: %s\n", FormatTime(m.ModifiedTime))
		}
		fmt.Fprintf(p.out, "     %s\n", p.verdict(sg.Verdict))
	}

	fmt.Fprintln(p.out, "\nSUMMARY:")
	fmt.Fprintf(p.out, "   - Found %d %s of similar files\n", len(report.Groups), Plural(len(report.Groups), "group", "groups"))
	fmt.Fprintf(p.out, "   - Potential space to review: %s\n", FormatSize(report.PotentialSavings()))

	fmt.Fprintln(p.out, "\nBIGGEST SPACE OPPORTUNITIES:")
	for i, sg := range report.Biggest(3) {
		fmt.Fprintf(p.out, "   %d. '%s' - could save %s\n", i+1, sg.Group.Key, FormatSize(sg.Group.RedundantBytes()))
	}
}

func (p *Printer) verdict(v models.ContentVerdict) string {
	switch v {
	case models.VerdictIdentical:
		return p.success.Sprint("All files have IDENTICAL content")
	case models.VerdictDifferent:
		return p.label.Sprint("Files have DIFFERENT content (legitimate versions)")
	default:
		return p.warn.Sprint("Content could not be compared (unreadable file)")
	}
}

// MergePlan lists every merge target with its predicted moves and conflicts.
func (p *Printer) MergePlan(folderCount int, targets []models.MergeTarget) {
	fmt.Fprintf(p.out, "Found %d customer %s.\n", folderCount, Plural(folderCount, "directory", "directories"))
	if len(targets) == 0 {
		fmt.Fprintln(p.out, p.success.Sprint("No similar folders to merge."))
		return
	}

	fmt.Fprintln(p.out, "Merge Suggestions:")
	for _, t := range targets {
		all := append([]string{t.Representative}, t.Sources...)
		fmt.Fprintf(p.out, "  %s: %s\n", p.heading.Sprint(t.Representative), strings.Join(all, ", "))
		for _, m := range t.Moves {
			name := m.Item
			if m.IsDir {
				name += "/"
			}
			if m.Conflict {
				fmt.Fprintf(p.out, "    %s %s/%s\n", p.warn.Sprint("conflict"), m.Source, name)
				continue
			}
			fmt.Fprintf(p.out, "    move     %s/%s\n", m.Source, name)
		}
	}
}

// MergeSummary prints the final result of a merge run.
func (p *Printer) MergeSummary(report models.MergeReport) {
	moved, conflicts, removed, retained, skipped := report.Totals()
	fmt.Fprintln(p.out, "\nMerge process completed.")
	fmt.Fprintf(p.out, "  Moved:     %s %s\n", p.success.Sprint(moved), Plural(moved, "item", "items"))
	fmt.Fprintf(p.out, "  Removed:   %d %s\n", removed, Plural(removed, "folder", "folders"))
	if conflicts > 0 {
		fmt.Fprintf(p.out, "  Conflicts: %s\n", p.warn.Sprint(conflicts))
	}
	if retained > 0 {
		fmt.Fprintf(p.out, "  Retained:  %s %s\n", p.warn.Sprint(retained), Plural(retained, "folder", "folders"))
	}
	if skipped > 0 {
		fmt.Fprintf(p.out, "  Skipped:   %s %s\n", p.warn.Sprint(skipped), Plural(skipped, "group", "groups"))
	}
}

// Errors enumerates every recoverable error of the run.
func (p *Printer) Errors(log *models.ErrorLog) {
	if log.Len() == 0 {
		return
	}
	fmt.Fprintf(p.out, "\n%s %s\n", p.fail.Sprintf("Errors (%d):", log.Len()), log.Summary())
	for i, err := range log.Errors() {
		fmt.Fprintf(p.out, "  %d. %v\n", i+1, err)
	}
}

func shortDigest(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}
