package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/harrison/archivetidy/internal/models"
	"github.com/harrison/archivetidy/internal/naming"
	"github.com/spf13/afero"
)

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Pattern is a regex pattern to match filenames (without extension)
	Pattern string
	// Extensions is a list of file extensions to include (e.g., ".pdf", ".docx")
	Extensions []string
	// Recursive enables recursive directory scanning
	Recursive bool
	// ExcludeDirs is a list of directory names to exclude
	ExcludeDirs []string
	// MaxDepth limits recursion depth (0 = unlimited, 1 = current dir only)
	MaxDepth int
	// IncludeHidden includes dotfiles and dot-directories
	IncludeHidden bool
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Records contains one entry per matched file, sorted by path
	Records []models.FileRecord
	// Errors contains ScanErrors encountered during scanning
	Errors []error
}

// ValidateRoot checks that dir exists and is a directory.
// This is the only fatal check; it runs before any scanning starts.
func ValidateRoot(fs afero.Fs, dir string) error {
	info, err := fs.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", dir)
	}
	return nil
}

// ScanDirectory scans a directory for files matching the provided options.
// Unreadable entries are recorded as ScanErrors and scanning continues.
func ScanDirectory(fs afero.Fs, dir string, opts ScanOptions) (*ScanResult, error) {
	if err := ValidateRoot(fs, dir); err != nil {
		return nil, err
	}

	result := &ScanResult{
		Records: make([]models.FileRecord, 0),
		Errors:  make([]error, 0),
	}

	var patternRegex *regexp.Regexp
	if opts.Pattern != "" {
		var err error
		patternRegex, err = regexp.Compile(opts.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
	}

	extMap := make(map[string]bool)
	for _, ext := range opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extMap[strings.ToLower(ext)] = true
	}

	excludeMap := make(map[string]bool)
	for _, d := range opts.ExcludeDirs {
		excludeMap[d] = true
	}

	root := filepath.Clean(dir)
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, models.NewOpError(models.ScanError, path, err))
			return nil // Continue walking
		}

		if path == root {
			return nil
		}

		name := info.Name()
		hidden := strings.HasPrefix(name, ".")

		if info.IsDir() {
			if excludeMap[name] || (hidden && !opts.IncludeHidden) {
				return filepath.SkipDir
			}
			if !opts.Recursive {
				return filepath.SkipDir
			}
			if opts.MaxDepth > 0 {
				relPath, _ := filepath.Rel(root, path)
				depth := strings.Count(relPath, string(filepath.Separator)) + 1
				if depth >= opts.MaxDepth {
					return filepath.SkipDir
				}
			}
			return nil
		}

		// Symlinks, sockets and devices are not archive content
		if !info.Mode().IsRegular() {
			return nil
		}
		if hidden && !opts.IncludeHidden {
			return nil
		}

		if len(extMap) > 0 && !extMap[strings.ToLower(filepath.Ext(name))] {
			return nil
		}

		if patternRegex != nil {
			nameWithoutExt := strings.TrimSuffix(name, filepath.Ext(name))
			if !patternRegex.MatchString(nameWithoutExt) {
				return nil
			}
		}

		result.Records = append(result.Records, models.FileRecord{
			Path:           path,
			SizeBytes:      info.Size(),
			ModifiedTime:   info.ModTime(),
			NormalizedName: naming.Normalize(name),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Slice(result.Records, func(i, j int) bool {
		return result.Records[i].Path < result.Records[j].Path
	})

	return result, nil
}

// ListFolders returns the names of the immediate subdirectories of dir,
// sorted alphabetically. Symlinks are not followed and are never listed.
func ListFolders(fs afero.Fs, dir string, includeHidden bool) ([]string, error) {
	if err := ValidateRoot(fs, dir); err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") && !includeHidden {
			continue
		}
		if entry.Mode()&os.ModeSymlink != 0 {
			continue
		}
		if entry.IsDir() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
