package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/harrison/archivetidy/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var linePattern = regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] \[(TRACE|DEBUG|INFO|WARN|ERROR)\] .+\n$`)

func TestNewConsoleLogger(t *testing.T) {
	t.Run("with valid writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := NewConsoleLogger(buf, "DEBUG")
		assert.Equal(t, "debug", l.logLevel)
		assert.False(t, l.colorOutput, "buffers never get color")
	})

	t.Run("with nil writer", func(t *testing.T) {
		l := NewConsoleLogger(nil, "info")
		assert.NotPanics(t, func() { l.LogError("discarded") })
	})

	t.Run("invalid level defaults to info", func(t *testing.T) {
		assert.Equal(t, "info", NewConsoleLogger(nil, "verbose").logLevel)
	})
}

func TestConsoleLoggerFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "info").LogInfo("Deleted duplicate: Invoice.pdf")

	assert.Regexp(t, linePattern, buf.String())
	assert.Contains(t, buf.String(), "[INFO] Deleted duplicate: Invoice.pdf")
}

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		level string
		want  []string
	}{
		{"trace", []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}},
		{"debug", []string{"DEBUG", "INFO", "WARN", "ERROR"}},
		{"info", []string{"INFO", "WARN", "ERROR"}},
		{"warn", []string{"WARN", "ERROR"}},
		{"error", []string{"ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			l := NewConsoleLogger(buf, tt.level)
			l.LogTrace("t")
			l.LogDebug("d")
			l.LogInfo("i")
			l.LogWarn("w")
			l.LogError("e")

			var got []string
			scanner := bufio.NewScanner(buf)
			for scanner.Scan() {
				m := linePattern.FindStringSubmatch(scanner.Text() + "\n")
				require.NotNil(t, m, scanner.Text())
				got = append(got, m[1])
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConsoleLoggerRunComplete(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewConsoleLogger(buf, "info")

	l.LogRunComplete("dedupe", 90*time.Second, &models.ErrorLog{})
	assert.Contains(t, buf.String(), "[INFO] dedupe finished in 1m30s")

	buf.Reset()
	var errs models.ErrorLog
	errs.Add(models.NewOpError(models.DeletionError, "/a.pdf", errors.New("denied")))
	l.LogRunComplete("dedupe", 5*time.Second, &errs)
	assert.Contains(t, buf.String(), "[WARN] dedupe finished in 5s with 1 error (1 delete)")
}

func TestConsoleLoggerColor(t *testing.T) {
	l := &ConsoleLogger{logLevel: "info", colorOutput: true}
	out := l.formatWithColor("10:00:00", "ERROR", "boom")
	assert.True(t, strings.HasPrefix(out, "[10:00:00] ["))
	assert.True(t, strings.HasSuffix(out, "] boom\n"))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(nil))
	assert.False(t, IsTerminal(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTerminal(f))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{5 * time.Second, "5s"},
		{time.Minute, "1m"},
		{90 * time.Second, "1m30s"},
		{2 * time.Hour, "2h"},
		{2*time.Hour + 15*time.Minute, "2h15m"},
		{time.Hour + time.Minute + time.Second, "1h1m1s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d))
	}
}

func readJSONLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		entries = append(entries, entry)
	}
	return entries
}

func TestFileLoggerWritesJSONWithRunID(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	fl, err := NewFileLogger(dir, "info", "run-123")
	require.NoError(t, err)

	fl.LogDebug("filtered out")
	fl.LogRunStart("merge", "/srv/customers", "run-123")
	fl.LogWarn("Conflict: MSA.pdf")
	var errs models.ErrorLog
	errs.Add(models.NewOpError(models.MergeConflictError, "/x", models.ErrDestinationExists))
	fl.LogRunComplete("merge", 2*time.Second, &errs)
	require.NoError(t, fl.Close())
	require.NoError(t, fl.Close(), "second close is a no-op")

	assert.True(t, strings.HasPrefix(filepath.Base(fl.Path()), "run-"))

	entries := readJSONLines(t, fl.Path())
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, "run-123", e["run_id"])
		assert.Contains(t, e, "ts")
	}

	assert.Equal(t, "run started", entries[0]["msg"])
	assert.Equal(t, "/srv/customers", entries[0]["target"])
	assert.Equal(t, "warn", entries[1]["level"])
	assert.Equal(t, "Conflict: MSA.pdf", entries[1]["msg"])
	assert.Equal(t, "run complete", entries[2]["msg"])
	assert.Equal(t, float64(1), entries[2]["conflicts"])
}

func TestFileLoggerTraceLevel(t *testing.T) {
	dir := t.TempDir()
	fl, err := NewFileLogger(dir, "trace", "r")
	require.NoError(t, err)
	fl.LogTrace("hashing /a.pdf")
	require.NoError(t, fl.Close())

	entries := readJSONLines(t, fl.Path())
	require.Len(t, entries, 1)
	assert.Equal(t, "debug", entries[0]["level"])
	assert.Equal(t, true, entries[0]["trace"])
}

func TestFileLoggerLatestSymlink(t *testing.T) {
	dir := t.TempDir()

	// a stale link from a previous run is replaced
	require.NoError(t, os.Symlink("run-old.log", filepath.Join(dir, LatestLogName)))

	fl, err := NewFileLogger(dir, "info", "r")
	require.NoError(t, err)
	defer fl.Close()

	target, err := os.Readlink(filepath.Join(dir, LatestLogName))
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(fl.Path()), target)
}

func TestFileLoggerBadDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := NewFileLogger(filepath.Join(file, "logs"), "info", "r")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create log directory")
}

type recording struct {
	NoOpLogger
	lines []string
}

func (r *recording) LogInfo(message string)  { r.lines = append(r.lines, "info:"+message) }
func (r *recording) LogError(message string) { r.lines = append(r.lines, "error:"+message) }
func (r *recording) LogRunStart(command, target, runID string) {
	r.lines = append(r.lines, "start:"+command)
}

func TestMultiFansOut(t *testing.T) {
	a, b := &recording{}, &recording{}
	m := NewMulti(a, nil, b)

	m.LogInfo("hello")
	m.LogError("boom")
	m.LogDebug("ignored by both")
	m.LogRunStart("scan", "/x", "id")
	m.LogRunComplete("scan", time.Second, nil)

	want := []string{"info:hello", "error:boom", "start:scan"}
	assert.Equal(t, want, a.lines)
	assert.Equal(t, want, b.lines)
}

func TestIsValidLevel(t *testing.T) {
	for _, l := range []string{"trace", "DEBUG", " info ", "warn", "error"} {
		assert.True(t, IsValidLevel(l), l)
	}
	assert.False(t, IsValidLevel("verbose"))
	assert.False(t, IsValidLevel(""))
}
