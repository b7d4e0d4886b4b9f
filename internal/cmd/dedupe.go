package cmd

import (
	"fmt"
	"io"

	"github.com/harrison/archivetidy/internal/config"
	"github.com/harrison/archivetidy/internal/dedupe"
	"github.com/harrison/archivetidy/internal/display"
	"github.com/harrison/archivetidy/internal/grouping"
	"github.com/harrison/archivetidy/internal/models"
	"github.com/harrison/archivetidy/internal/snapshot"
	"github.com/spf13/cobra"
)

// NewDedupeCommand creates the dedupe command
func NewDedupeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dedupe <directory>",
		Short: "Delete byte-identical duplicate files, keeping the newest copy",
		Long: `Delete byte-identical duplicate files from a directory.

Files are grouped by content hash. In every group of two or more identical
files the most recently modified copy is kept and the others are deleted.
Files with the same name but different content are never touched.

The full plan is printed before anything is deleted.

Examples:
  archivetidy dedupe /srv/contracts --dry-run
  archivetidy dedupe /srv/contracts --recursive --csv plan.csv
  archivetidy dedupe /srv/contracts --hash sha256 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: runDedupe,
	}

	cmd.Flags().BoolP("recursive", "r", false, "Scan subdirectories too")
	cmd.Flags().String("hash", "", "Hash algorithm: md5 or sha256")
	addMutationFlags(cmd)

	return cmd
}

func runDedupe(cmd *cobra.Command, args []string) error {
	var overrides config.Flags
	if cmd.Flags().Changed("recursive") {
		recursive, _ := cmd.Flags().GetBool("recursive")
		overrides.Recursive = &recursive
	}
	if cmd.Flags().Changed("hash") {
		algo, _ := cmd.Flags().GetString("hash")
		overrides.HashAlgorithm = &algo
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

	plans, err := planDeduplication(env)
	if err != nil {
		return err
	}

	env.printer.DeletionPlans(plans)
	if paths := env.unreadable(); len(paths) > 0 {
		env.printer.Warning(display.WarnUnreadable(paths))
	}
	if err := env.writeSnapshot(cmd, func(sw *snapshot.Writer, w io.Writer) error {
		return sw.DeletionPlans(w, plans)
	}); err != nil {
		return err
	}

	if len(plans) == 0 || !gate(cmd, "files were deleted") {
		return nil
	}

	report := dedupe.NewExecutor(env.fs, env.log).Execute(plans)
	env.errs.AddAll(report.Failed)
	env.printer.DedupeSummary(report)
	return nil
}

// planDeduplication scans the root, hashes every file and resolves each
// group of identical files to a deletion plan.
func planDeduplication(env *runEnv) ([]models.DeletionPlan, error) {
	records, err := env.scan()
	if err != nil {
		return nil, err
	}

	h, err := env.newHasher()
	if err != nil {
		return nil, err
	}
	hashed := env.hashAll(h, records)

	res := grouping.ExactHash(h).Group(hashed)
	env.errs.AddAll(res.Errors)

	groups := grouping.DuplicateGroups(grouping.Actionable(res.Groups), models.StrategyHash)
	plans, err := dedupe.PlanAll(groups)
	if err != nil {
		return nil, fmt.Errorf("failed to plan deletions: %w", err)
	}
	env.log.LogInfo(fmt.Sprintf("Found %d duplicate %s", len(plans), display.Plural(len(plans), "group", "groups")))
	return plans, nil
}
