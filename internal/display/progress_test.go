package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressIndicator_Start(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		wantOutput string
	}{
		{name: "multiple files", total: 3, wantOutput: "Hashing 3 files:\n"},
		{name: "single file", total: 1, wantOutput: "Hashing 1 file:\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewProgressIndicator(&buf, tt.total, false).Start()
			if got := buf.String(); got != tt.wantOutput {
				t.Errorf("Start() output = %q, want %q", got, tt.wantOutput)
			}
		})
	}
}

func TestProgressIndicator_Step(t *testing.T) {
	var buf bytes.Buffer
	pi := NewProgressIndicator(&buf, 3, true)

	for i, path := range []string{"/srv/a/Invoice.pdf", "Lease.pdf", "x/y/NDA.docx"} {
		buf.Reset()
		pi.Step(path)
		got := buf.String()

		want := []string{"  [1/3] Invoice.pdf", "  [2/3] Lease.pdf", "  [3/3] NDA.docx"}[i]
		if !strings.Contains(got, want) {
			t.Errorf("Step() output missing %q, got %q", want, got)
		}
		if !strings.HasPrefix(got, "\x1b[36m") || !strings.Contains(got, "\x1b[0m") {
			t.Errorf("Step() output missing cyan ANSI codes, got %q", got)
		}
		if !strings.HasSuffix(got, "\n") {
			t.Errorf("Step() output missing trailing newline, got %q", got)
		}
	}
}

func TestProgressIndicator_PlainStep(t *testing.T) {
	var buf bytes.Buffer
	NewProgressIndicator(&buf, 2, false).Step("/a/b.pdf")
	if got := buf.String(); got != "  [1/2] b.pdf\n" {
		t.Errorf("Step() output = %q", got)
	}
}

func TestProgressIndicator_Complete(t *testing.T) {
	var buf bytes.Buffer
	pi := NewProgressIndicator(&buf, 2, false)
	pi.Step("a.pdf")
	pi.Complete()

	if !strings.HasSuffix(buf.String(), "✓ Hashed 1 of 2 files\n") {
		t.Errorf("Complete() output = %q", buf.String())
	}

	buf.Reset()
	NewProgressIndicator(&buf, 1, true).Complete()
	if !strings.Contains(buf.String(), "\x1b[32m✓\x1b[0m") {
		t.Errorf("Complete() missing green check mark, got %q", buf.String())
	}
}
