// Package naming canonicalizes file and folder names so that copies such as
// "Invoice copy 2.pdf" or "Invoice (1).pdf" share a key with "Invoice.pdf".
//
// Two names with the same key are candidates for duplication only; content
// must still be compared before anything is treated as a true duplicate.
package naming

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

var copySuffixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s+copy\s*\d*$`), // " copy", " copy 2"
	regexp.MustCompile(`(?i)\s+\(\d+\)$`),    // " (1)", " (2)"
}

// Normalize returns the normalization key for a file or folder name.
//
// The extension is removed, then trailing copy indicators, and the result is
// trimmed. Stripping repeats until nothing changes so the key is a fixed point:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}
	key := strings.TrimSpace(filepath.Base(name))
	for {
		next := strip(key)
		if next == key {
			return key
		}
		key = next
	}
}

// strip performs a single pass: extension, then each copy suffix pattern.
func strip(name string) string {
	out := trimExtension(name)
	for _, re := range copySuffixes {
		out = re.ReplaceAllString(out, "")
	}
	return strings.TrimSpace(out)
}

// trimExtension drops a trailing ".ext" when it looks like an extension:
// non-empty, no whitespace, and not the whole name (".hidden" is kept).
func trimExtension(name string) string {
	ext := filepath.Ext(name)
	if len(ext) < 2 || len(ext) == len(name) {
		return name
	}
	if strings.IndexFunc(ext, unicode.IsSpace) >= 0 {
		return name
	}
	return strings.TrimSuffix(name, ext)
}

// SameKey reports whether two names normalize to the same key.
func SameKey(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
