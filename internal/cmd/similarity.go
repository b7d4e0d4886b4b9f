package cmd

import (
	"fmt"

	"github.com/harrison/archivetidy/internal/grouping"
	"github.com/harrison/archivetidy/internal/naming"
	"github.com/harrison/archivetidy/internal/similarity"
	"github.com/spf13/cobra"
)

// NewSimilarityCommand creates the similarity command
func NewSimilarityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similarity <a> <b>",
		Short: "Print the similarity score of two names",
		Long: `Print the similarity score (0-100) of two names as merge would compute it,
whether they would cluster at the given threshold, and the normalization
key of each name.

Examples:
  archivetidy similarity "Acme Corp" "Acme Corporation"
  archivetidy similarity "Globex" "Globex Inc" --scorer ratio --threshold 90`,
		Args: cobra.ExactArgs(2),
		RunE: runSimilarity,
	}

	cmd.Flags().String("scorer", similarity.ScorerMatch, "Similarity scorer: match or ratio")
	cmd.Flags().Float64("threshold", grouping.DefaultThreshold, "Threshold to compare the score against")

	return cmd
}

func runSimilarity(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("scorer")
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	if threshold < 0 || threshold > 100 {
		return fmt.Errorf("threshold must be between 0 and 100, got %v", threshold)
	}

	scorer, err := similarity.New(name)
	if err != nil {
		return err
	}

	a, b := args[0], args[1]
	score := scorer.Score(a, b)
	verdict := "no"
	if score >= threshold {
		verdict = "yes"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Score: %.1f\n", score)
	fmt.Fprintf(out, "Cluster at %.1f: %s\n", threshold, verdict)
	fmt.Fprintf(out, "Normalized: %q, %q\n", naming.Normalize(a), naming.Normalize(b))
	return nil
}
