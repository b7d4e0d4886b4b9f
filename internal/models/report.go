package models

import "sort"

// Deletion is one file scheduled for removal.
type Deletion struct {
	Path      string
	SizeBytes int64
}

// DeletionPlan is the resolver's decision for one duplicate group.
// It is a plan only; nothing is deleted until it is executed.
type DeletionPlan struct {
	Group     DuplicateGroup
	Keeper    FileRecord
	Deletions []Deletion
}

// ReclaimableBytes returns the total size of the planned deletions.
func (p DeletionPlan) ReclaimableBytes() int64 {
	var total int64
	for _, d := range p.Deletions {
		total += d.SizeBytes
	}
	return total
}

// DedupeReport summarizes an executed set of deletion plans.
type DedupeReport struct {
	Deleted        []Deletion
	Failed         []error
	BytesReclaimed int64
}

// Succeeded returns the number of files removed.
func (r DedupeReport) Succeeded() int {
	return len(r.Deleted)
}

// TargetOutcome records what happened to one MergeTarget.
type TargetOutcome struct {
	Target    MergeTarget
	Skipped   bool     // Representative missing; nothing was attempted
	Moved     []string // Paths of moved items, relative to the root
	Conflicts []string // Paths left in place because of a collision
	Removed   []string // Source folders removed after merging
	Retained  []string // Source folders left in place
	Errors    []error
}

// MergeReport summarizes an executed merge.
type MergeReport struct {
	Outcomes []TargetOutcome
}

// Totals returns the aggregate counts across every target.
func (r MergeReport) Totals() (moved, conflicts, removed, retained, skipped int) {
	for _, o := range r.Outcomes {
		moved += len(o.Moved)
		conflicts += len(o.Conflicts)
		removed += len(o.Removed)
		retained += len(o.Retained)
		if o.Skipped {
			skipped++
		}
	}
	return
}

// Errors returns every error recorded across targets.
func (r MergeReport) Errors() []error {
	var errs []error
	for _, o := range r.Outcomes {
		errs = append(errs, o.Errors...)
	}
	return errs
}

// ContentVerdict is the outcome of the secondary hash check on a name group.
type ContentVerdict string

const (
	// VerdictIdentical means every member hashed to the same digest.
	VerdictIdentical ContentVerdict = "identical"
	// VerdictDifferent means members are legitimate versions with distinct content.
	VerdictDifferent ContentVerdict = "different"
	// VerdictUnknown means at least one member could not be hashed.
	VerdictUnknown ContentVerdict = "unknown"
)

// ScanGroup is one advisory name group with its content verdict.
type ScanGroup struct {
	Group     DuplicateGroup
	Verdict   ContentVerdict
	Confirmed []DuplicateGroup // Hash-confirmed subgroups with at least two members
}

// ScanReport is the result of an advisory duplicate scan.
type ScanReport struct {
	FilesScanned int
	Groups       []ScanGroup
}

// PotentialSavings returns the bytes held by every non-newest member.
func (r ScanReport) PotentialSavings() int64 {
	var total int64
	for _, g := range r.Groups {
		total += g.Group.RedundantBytes()
	}
	return total
}

// Biggest returns up to n groups ordered by redundant bytes, largest first.
func (r ScanReport) Biggest(n int) []ScanGroup {
	sorted := make([]ScanGroup, len(r.Groups))
	copy(sorted, r.Groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Group.RedundantBytes() > sorted[j].Group.RedundantBytes()
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
