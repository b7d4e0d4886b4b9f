package cmd

import (
	"io"

	"github.com/harrison/archivetidy/internal/config"
	"github.com/harrison/archivetidy/internal/dedupe"
	"github.com/harrison/archivetidy/internal/display"
	"github.com/harrison/archivetidy/internal/snapshot"
	"github.com/spf13/cobra"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Report files whose names differ only by copy markers",
		Long: `Report files that look like duplicates by name.

Names are normalized by removing the extension and trailing copy markers
such as " copy", " copy 2" or " (1)". Files that
share a normalized name are listed together, newest first, and their content
is hashed to tell real copies from legitimate versions.

Scan never changes the archive.

Examples:
  archivetidy scan /srv/contracts
  archivetidy scan /srv/contracts --recursive --csv review.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runScan,
	}

	cmd.Flags().BoolP("recursive", "r", false, "Scan subdirectories too")
	cmd.Flags().String("csv", "", "Write the report to a CSV file")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	var overrides config.Flags
	if cmd.Flags().Changed("recursive") {
		recursive, _ := cmd.Flags().GetBool("recursive")
		overrides.Recursive = &recursive
	}

	env, err := newRunEnv(cmd, args[0], overrides)
	if err != nil {
		return err
	}
	defer env.close()

	records, err := env.scan()
	if err != nil {
		return err
	}
	h, err := env.newHasher()
	if err != nil {
		return err
	}

	report, hashErrs := dedupe.BuildScanReport(records, h)
	env.errs.AddAll(hashErrs)

	env.printer.ScanReport(report)
	if paths := env.unreadable(); len(paths) > 0 {
		env.printer.Warning(display.WarnUnreadable(paths))
	}
	return env.writeSnapshot(cmd, func(sw *snapshot.Writer, w io.Writer) error {
		return sw.ScanReport(w, report)
	})
}
