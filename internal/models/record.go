package models

import (
	"path/filepath"
	"sort"
	"time"
)

// GroupStrategy identifies how a DuplicateGroup was keyed.
type GroupStrategy string

const (
	// StrategyHash groups byte-identical files by content digest.
	StrategyHash GroupStrategy = "hash"
	// StrategyName groups files whose normalized names match. Members may differ in content.
	StrategyName GroupStrategy = "name"
)

// FileRecord describes one file discovered during a directory scan.
// Records are values: WithHash returns a copy rather than mutating the receiver.
type FileRecord struct {
	Path           string    // Path within the scanned filesystem; unique per record
	SizeBytes      int64     // Size at scan time
	ModifiedTime   time.Time // Modification time at scan time
	ContentHash    string    // Content digest, empty until requested
	NormalizedName string    // Normalization key derived from the base name
}

// Name returns the base name of the record's path.
func (r FileRecord) Name() string {
	return filepath.Base(r.Path)
}

// HasHash reports whether the content digest has been computed.
func (r FileRecord) HasHash() bool {
	return r.ContentHash != ""
}

// WithHash returns a copy of the record carrying the given digest.
func (r FileRecord) WithHash(digest string) FileRecord {
	r.ContentHash = digest
	return r
}

// DuplicateGroup is a set of FileRecords sharing a grouping key.
// Members are ordered newest first; Members[0] is the keeper for hash-based dedup.
type DuplicateGroup struct {
	Key      string
	Strategy GroupStrategy
	Members  []FileRecord
}

// NewDuplicateGroup builds a group and orders its members by modification time
// descending, breaking ties by path so the ordering is deterministic.
func NewDuplicateGroup(key string, strategy GroupStrategy, members []FileRecord) DuplicateGroup {
	sorted := make([]FileRecord, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].ModifiedTime.Equal(sorted[j].ModifiedTime) {
			return sorted[i].ModifiedTime.After(sorted[j].ModifiedTime)
		}
		return sorted[i].Path < sorted[j].Path
	})
	return DuplicateGroup{Key: key, Strategy: strategy, Members: sorted}
}

// Keeper returns the newest member of the group.
func (g DuplicateGroup) Keeper() FileRecord {
	return g.Members[0]
}

// IsActionable reports whether the group has enough members to act on.
func (g DuplicateGroup) IsActionable() bool {
	return len(g.Members) >= 2
}

// TotalBytes returns the combined size of every member.
func (g DuplicateGroup) TotalBytes() int64 {
	var total int64
	for _, m := range g.Members {
		total += m.SizeBytes
	}
	return total
}

// RedundantBytes returns the combined size of every member except the keeper.
func (g DuplicateGroup) RedundantBytes() int64 {
	if len(g.Members) == 0 {
		return 0
	}
	return g.TotalBytes() - g.Members[0].SizeBytes
}

// NameCluster is a set of folder names judged similar to the cluster's seed.
//
// Membership is decided against the seed (first-inserted member) only, so two
// members of the same cluster need not be similar to each other.
type NameCluster struct {
	Members []string
}

// Seed returns the first-inserted member.
func (c NameCluster) Seed() string {
	return c.Members[0]
}

// IsActionable reports whether the cluster has enough members to merge.
func (c NameCluster) IsActionable() bool {
	return len(c.Members) >= 2
}

// Sorted returns the members in alphabetical order.
func (c NameCluster) Sorted() []string {
	sorted := make([]string, len(c.Members))
	copy(sorted, c.Members)
	sort.Strings(sorted)
	return sorted
}

// MergeTarget is a cluster resolved to the folder that absorbs the others.
type MergeTarget struct {
	Representative string        // Alphabetically first cluster member
	Sources        []string      // Remaining members, sorted
	Cluster        NameCluster   // Originating cluster
	Moves          []PlannedMove // Read-only preview computed at plan time
}

// NewMergeTarget resolves a cluster to its representative and sources.
// Repeated names collapse into one source; the representative is never a source.
func NewMergeTarget(cluster NameCluster) MergeTarget {
	sorted := cluster.Sorted()
	target := MergeTarget{
		Representative: sorted[0],
		Sources:        make([]string, 0, len(sorted)-1),
		Cluster:        cluster,
	}
	prev := sorted[0]
	for _, name := range sorted[1:] {
		if name == prev {
			continue
		}
		target.Sources = append(target.Sources, name)
		prev = name
	}
	return target
}

// Conflicts returns the planned moves predicted to collide at the destination.
func (t MergeTarget) Conflicts() []PlannedMove {
	var out []PlannedMove
	for _, m := range t.Moves {
		if m.Conflict {
			out = append(out, m)
		}
	}
	return out
}

// PlannedMove is one immediate child of a source folder scheduled to move
// into the representative.
type PlannedMove struct {
	Source   string // Source folder name
	Item     string // Child entry name
	IsDir    bool
	Conflict bool // Destination already has an entry with this name
}
