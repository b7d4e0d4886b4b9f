package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for archivetidy
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archivetidy",
		Short: "Find duplicate files and merge similarly named folders in a contracts archive",
		Long: `Archivetidy cleans up a contracts archive.

It removes byte-identical duplicate files (keeping the newest copy), reports
files whose names differ only by copy markers such as " (1)" or " copy", and
merges customer folders whose names are near-duplicates of each other.

Every command that changes the archive prints its full plan and asks for
confirmation first. Configuration is loaded from .archivetidy/config.yaml
(or $ARCHIVETIDY_HOME/config.yaml) if present; CLI flags override it.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .archivetidy/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Show detailed progress (debug logging and hashing progress)")
	cmd.PersistentFlags().String("log-dir", "", "Directory for run log files")
	cmd.PersistentFlags().Bool("no-file-log", false, "Do not write a run log file")

	cmd.AddCommand(NewDedupeCommand())
	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewMergeCommand())
	cmd.AddCommand(NewSimilarityCommand())

	return cmd
}
