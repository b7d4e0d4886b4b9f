package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// confirm asks the user to approve a mutating plan. Only "y" or "yes"
// (any case) proceeds; anything else, including end of input, declines.
func confirm(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "Continue? [y/N]: ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// gate decides whether a planned mutation runs. It reports false for
// --dry-run and for a declined prompt, printing why.
func gate(cmd *cobra.Command, what string) bool {
	out := cmd.OutOrStdout()

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		fmt.Fprintf(out, "\nDry run: no %s.\n", what)
		return false
	}
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true
	}

	fmt.Fprintln(out)
	if !confirm(cmd.InOrStdin(), out) {
		fmt.Fprintf(out, "Aborted: no %s.\n", what)
		return false
	}
	return true
}

// addMutationFlags registers the flags shared by commands that change the archive.
func addMutationFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().Bool("dry-run", false, "Print the plan without changing anything")
	cmd.Flags().String("csv", "", "Write the plan to a CSV file")
}
