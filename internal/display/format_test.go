package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{1, "1.0 B"},
		{512, "512.0 B"},
		{1023, "1023.0 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5 * 1024 * 1024 / 2, "2.5 MB"},
		{1073741824, "1.0 GB"},
		{3 * 1024 * 1024 * 1024 * 1024, "3072.0 GB"},
		{-1536, "-1.5 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSize(tt.bytes))
		})
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "-", FormatTime(time.Time{}))

	ts := time.Date(2024, 3, 1, 9, 30, 5, 0, time.Local)
	assert.Equal(t, "2024-03-01 09:30:05", FormatTime(ts))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "file", Plural(1, "file", "files"))
	assert.Equal(t, "files", Plural(0, "file", "files"))
	assert.Equal(t, "files", Plural(2, "file", "files"))
}
