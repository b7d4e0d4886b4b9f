// Package fileutil discovers files and folders in an archive through an
// injected afero.Fs.
//
// ScanDirectory walks a root (flat by default, recursive on request) and
// returns one models.FileRecord per regular file, sorted by path. Hidden
// entries are skipped unless ScanOptions.IncludeHidden is set. Unreadable
// entries are collected as ScanErrors and never stop the walk; only an
// invalid root is fatal.
//
// ListFolders returns the immediate subdirectories of a root, the input of
// fuzzy folder clustering.
//
// Usage:
//
//	result, err := fileutil.ScanDirectory(afero.NewOsFs(), "/srv/contracts", fileutil.ScanOptions{
//	    Recursive:  true,
//	    Extensions: []string{".pdf", ".docx"},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, rec := range result.Records {
//	    fmt.Println(rec.Path, rec.NormalizedName)
//	}
package fileutil
