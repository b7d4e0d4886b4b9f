package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a recoverable, per-item failure.
type ErrorKind int

const (
	// ScanError is an unreadable file or directory during traversal.
	ScanError ErrorKind = iota
	// HashError is unreadable file content; the file is left out of hash grouping.
	HashError
	// DeletionError is a failed delete of a planned duplicate.
	DeletionError
	// MoveError is a failed move that was not caused by a name collision.
	MoveError
	// MergeConflictError is a destination name collision; the item stays put.
	MergeConflictError
	// MergeCleanupError is a source folder left non-empty after its moves.
	MergeCleanupError
	// MissingFolderError is a representative or source folder that does not exist.
	MissingFolderError
)

// String returns the string representation of ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case ScanError:
		return "scan"
	case HashError:
		return "hash"
	case DeletionError:
		return "delete"
	case MoveError:
		return "move"
	case MergeConflictError:
		return "conflict"
	case MergeCleanupError:
		return "cleanup"
	case MissingFolderError:
		return "missing"
	default:
		return "unknown"
	}
}

// ErrNotEmpty is returned when a folder scheduled for removal still has entries.
var ErrNotEmpty = errors.New("directory not empty")

// ErrDestinationExists is returned when a move target name is already taken.
var ErrDestinationExists = errors.New("destination already exists")

// OpError is a recoverable failure tied to one path.
type OpError struct {
	Kind ErrorKind
	Path string
	Err  error
}

// NewOpError creates an OpError.
func NewOpError(kind ErrorKind, path string, err error) *OpError {
	return &OpError{Kind: kind, Path: path, Err: err}
}

// Error implements the error interface for OpError.
func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *OpError) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Kind, true
	}
	return 0, false
}

// ErrorLog collects recoverable errors over a run so they can be summarized at the end.
type ErrorLog struct {
	errs []error
}

// Add records err. Nil errors are ignored.
func (l *ErrorLog) Add(err error) {
	if err == nil {
		return
	}
	l.errs = append(l.errs, err)
}

// AddAll records every non-nil error in errs.
func (l *ErrorLog) AddAll(errs []error) {
	for _, err := range errs {
		l.Add(err)
	}
}

// Errors returns the recorded errors in the order they were added.
func (l *ErrorLog) Errors() []error {
	return l.errs
}

// Len returns the number of recorded errors.
func (l *ErrorLog) Len() int {
	return len(l.errs)
}

// Count returns how many recorded errors are of the given kind.
func (l *ErrorLog) Count(kind ErrorKind) int {
	n := 0
	for _, err := range l.errs {
		if k, ok := KindOf(err); ok && k == kind {
			n++
		}
	}
	return n
}

// Summary returns a one-line breakdown such as "2 delete, 1 hash".
func (l *ErrorLog) Summary() string {
	if len(l.errs) == 0 {
		return "none"
	}
	counts := make(map[ErrorKind]int)
	other := 0
	for _, err := range l.errs {
		if k, ok := KindOf(err); ok {
			counts[k]++
		} else {
			other++
		}
	}
	var parts []string
	for k := ScanError; k <= MissingFolderError; k++ {
		if counts[k] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[k], k))
		}
	}
	if other > 0 {
		parts = append(parts, fmt.Sprintf("%d other", other))
	}
	return strings.Join(parts, ", ")
}
