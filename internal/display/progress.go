package display

import (
	"fmt"
	"io"
	"path/filepath"
)

// ProgressIndicator prints one line per hashed file: [N/Total] name.
type ProgressIndicator struct {
	writer   io.Writer
	total    int
	current  int
	useColor bool
}

// NewProgressIndicator creates a progress indicator for total items.
func NewProgressIndicator(w io.Writer, total int, useColor bool) *ProgressIndicator {
	return &ProgressIndicator{writer: w, total: total, useColor: useColor}
}

// Start displays the header message.
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "Hashing %d %s:\n", p.total, Plural(p.total, "file", "files"))
}

// Step displays progress for the next item, cyan when color is enabled.
func (p *ProgressIndicator) Step(path string) {
	p.current++
	line := fmt.Sprintf("  [%d/%d] %s", p.current, p.total, filepath.Base(path))
	if p.useColor {
		line = "\x1b[36m" + line + "\x1b[0m"
	}
	fmt.Fprintln(p.writer, line)
}

// Complete displays the closing line with a check mark.
func (p *ProgressIndicator) Complete() {
	mark := "✓"
	if p.useColor {
		mark = "\x1b[32m✓\x1b[0m"
	}
	fmt.Fprintf(p.writer, "%s Hashed %d of %d %s\n", mark, p.current, p.total, Plural(p.total, "file", "files"))
}
