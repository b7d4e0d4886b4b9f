package display

import (
	"fmt"
	"time"
)

// sizeUnits are binary (1024-based) magnitudes. GB is the largest unit used.
var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize returns a human-readable size with one decimal place, e.g.
// "1.5 KB". Zero is "0 B"; sizes beyond the largest unit stay in GB.
func FormatSize(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}
	sign := ""
	if bytes < 0 {
		sign = "-"
		bytes = -bytes
	}
	value := float64(bytes)
	i := 0
	for value >= 1024 && i < len(sizeUnits)-1 {
		value /= 1024
		i++
	}
	return fmt.Sprintf("%s%.1f %s", sign, value, sizeUnits[i])
}

// FormatTime formats a modification time the way the reports print it.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

// Plural returns singular when n is 1 and plural otherwise.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
