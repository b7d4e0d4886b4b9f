package display

import (
	"fmt"
	"io"
	"strings"
)

// Warning is a user-facing block that asks for manual follow-up.
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Paths      []string // Affected paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning, in yellow when useColor is set.
func (w Warning) Display(out io.Writer, useColor bool) {
	var b strings.Builder

	if useColor {
		b.WriteString("\x1b[33m")
	}
	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Paths) > 0 {
		b.WriteString("    ")
		b.WriteString(Plural(len(w.Paths), "Affected path:", "Affected paths:"))
		b.WriteString("\n")
		for i, p := range w.Paths {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, p)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	if useColor {
		b.WriteString("\x1b[0m")
	}
	fmt.Fprint(out, b.String())
}

// WarnConflicts lists merge items left in their source folder because the
// representative already holds the same name.
func WarnConflicts(paths []string) Warning {
	return Warning{
		Title:      fmt.Sprintf("%d %s left for manual review", len(paths), Plural(len(paths), "conflict", "conflicts")),
		Message:    "These items were not moved because the destination already has an entry with the same name.",
		Paths:      paths,
		Suggestion: "Rename or remove one side of each conflict, then run merge again.",
	}
}

// WarnUnreadable lists files that could not be hashed and were left out of grouping.
func WarnUnreadable(paths []string) Warning {
	return Warning{
		Title:      fmt.Sprintf("%d %s could not be read", len(paths), Plural(len(paths), "file", "files")),
		Message:    "Unreadable files were skipped; their duplicates, if any, were not touched.",
		Paths:      paths,
		Suggestion: "Check permissions on the listed files and run again.",
	}
}
