package cmd

import (
	"fmt"
	"io"

	"github.com/harrison/archivetidy/internal/config"
	"github.com/harrison/archivetidy/internal/display"
	"github.com/harrison/archivetidy/internal/fileutil"
	"github.com/harrison/archivetidy/internal/grouping"
	"github.com/harrison/archivetidy/internal/merge"
	"github.com/harrison/archivetidy/internal/models"
	"github.com/harrison/archivetidy/internal/similarity"
	"github.com/harrison/archivetidy/internal/snapshot"
	"github.com/spf13/cobra"
)

// NewMergeCommand creates the merge command
func NewMergeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <root>",
		Short: "Merge customer folders with near-duplicate names",
		Long: `Merge the immediate subfolders of a root whose names are near-duplicates,
such as "Acme Corp" and "Acme Corporation".

Folder names are clustered by similarity score (0-100). In each cluster the
alphabetically first name is kept; the contents of the other folders are
moved into it and the emptied folders are removed. An item whose name
already exists in the kept folder is left in place and reported as a
conflict; its folder is kept too. Re-running after resolving conflicts
finishes the merge.

Examples:
  archivetidy merge /srv/customers --dry-run
  archivetidy merge /srv/customers --threshold 85 --csv merge.csv
  archivetidy merge /srv/customers --scorer ratio --yes`,
		Args: cobra.ExactArgs(1),
		RunE: runMerge,
	}

	cmd.Flags().Float64("threshold", grouping.DefaultThreshold, "Minimum similarity score (0-100) for folders to cluster")
	cmd.Flags().String("scorer", "", "Similarity scorer: match or ratio")
	addMutationFlags(cmd)

	return cmd
}

func runMerge(cmd *cobra.Command, args []string) error {
	var overrides config.Flags
	if cmd.Flags().Changed("threshold") {
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		overrides.Threshold = &threshold
	}
	if cmd.Flags().Changed("scorer") {
		scorer, _ := cmd.Flags().GetString("scorer")
		overrides.Scorer = &scorer
	}

	env, err := newRunEnv(cmd, args[0], overrides)
	if err != nil {
		return err
	}
	defer env.close()

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); !dryRun {
		if err := env.acquireLock(); err != nil {
			return err
		}
	}

	folders, err := fileutil.ListFolders(env.fs, env.root, env.cfg.Scan.IncludeHidden)
	if err != nil {
		return err
	}

	scorer, err := similarity.New(env.cfg.Fuzzy.Scorer)
	if err != nil {
		return err
	}
	clusters := grouping.NewFuzzy(scorer, env.cfg.Fuzzy.Threshold).Clusters(folders)
	targets := merge.Plan(env.fs, env.root, clusters)
	env.log.LogInfo(fmt.Sprintf("Clustered %d %s into %d merge %s at threshold %.1f",
		len(folders), display.Plural(len(folders), "folder", "folders"),
		len(targets), display.Plural(len(targets), "group", "groups"), env.cfg.Fuzzy.Threshold))

	env.printer.MergePlan(len(folders), targets)
	if err := env.writeSnapshot(cmd, func(sw *snapshot.Writer, w io.Writer) error {
		return sw.MergePlan(w, targets)
	}); err != nil {
		return err
	}

	if len(targets) == 0 || !gate(cmd, "folders were merged") {
		return nil
	}

	report := merge.NewExecutor(env.fs, env.root, env.log).Execute(targets)
	env.errs.AddAll(report.Errors())
	env.printer.MergeSummary(report)
	if paths := conflictPaths(report); len(paths) > 0 {
		env.printer.Warning(display.WarnConflicts(paths))
	}
	return nil
}

// conflictPaths lists every item left in place, relative to the root.
func conflictPaths(report models.MergeReport) []string {
	var paths []string
	for _, o := range report.Outcomes {
		paths = append(paths, o.Conflicts...)
	}
	return paths
}
