// Package grouping partitions scanned items into candidate duplicate sets.
//
// Every strategy implements Policy: exact content hash and normalized name
// are key-based (ByKey), fuzzy folder clustering compares names against each
// cluster's seed (Fuzzy). Policies never touch the filesystem beyond reading;
// acting on the groups is left to the dedupe and merge packages.
package grouping

import (
	"github.com/harrison/archivetidy/internal/hasher"
	"github.com/harrison/archivetidy/internal/models"
)

// Policy names.
const (
	PolicyExactHash      = "exact-hash"
	PolicyNormalizedName = "normalized-name"
	PolicyFuzzy          = "fuzzy"
)

// Group is a set of items sharing a key. For fuzzy clustering the key is the
// cluster seed.
type Group[T any] struct {
	Key     string
	Members []T
}

// Result holds the groups produced by a policy, in first-seen key order,
// together with per-item errors. Items that produced an error are not in any
// group.
type Result[T any] struct {
	Groups []Group[T]
	Errors []error
}

// Policy partitions a flat list of items into groups.
type Policy[T any] interface {
	Name() string
	Group(items []T) Result[T]
}

// KeyFunc derives the grouping key of an item. An empty key with a nil error
// leaves the item ungrouped.
type KeyFunc[T any] func(item T) (string, error)

// ByKey groups items whose keys are equal.
type ByKey[T any] struct {
	name string
	key  KeyFunc[T]
}

// NewByKey creates a key-based policy.
func NewByKey[T any](name string, key KeyFunc[T]) *ByKey[T] {
	return &ByKey[T]{name: name, key: key}
}

// Name returns the policy name.
func (p *ByKey[T]) Name() string {
	return p.name
}

// Group buckets items by key. Key failures are recorded and the item skipped.
func (p *ByKey[T]) Group(items []T) Result[T] {
	var res Result[T]
	index := make(map[string]int)

	for _, item := range items {
		k, err := p.key(item)
		if err != nil {
			res.Errors = append(res.Errors, err)
			continue
		}
		if k == "" {
			continue
		}
		i, ok := index[k]
		if !ok {
			i = len(res.Groups)
			index[k] = i
			res.Groups = append(res.Groups, Group[T]{Key: k})
		}
		res.Groups[i].Members = append(res.Groups[i].Members, item)
	}
	return res
}

// ExactHash groups file records by content digest. Files that cannot be read
// are reported as HashErrors and left out.
func ExactHash(h *hasher.Hasher) *ByKey[models.FileRecord] {
	return NewByKey(PolicyExactHash, func(rec models.FileRecord) (string, error) {
		if rec.HasHash() {
			return rec.ContentHash, nil
		}
		return h.Digest(rec.Path)
	})
}

// NormalizedName groups file records by normalization key. Its groups are
// advisory: members may differ in content.
func NormalizedName() *ByKey[models.FileRecord] {
	return NewByKey(PolicyNormalizedName, func(rec models.FileRecord) (string, error) {
		return rec.NormalizedName, nil
	})
}

// Actionable returns the groups with at least two members.
func Actionable[T any](groups []Group[T]) []Group[T] {
	out := make([]Group[T], 0, len(groups))
	for _, g := range groups {
		if len(g.Members) >= 2 {
			out = append(out, g)
		}
	}
	return out
}

// DuplicateGroups converts file record groups into models.DuplicateGroup
// values ordered newest first. Hash-keyed members carry their digest.
func DuplicateGroups(groups []Group[models.FileRecord], strategy models.GroupStrategy) []models.DuplicateGroup {
	out := make([]models.DuplicateGroup, 0, len(groups))
	for _, g := range groups {
		members := g.Members
		if strategy == models.StrategyHash {
			members = make([]models.FileRecord, len(g.Members))
			for i, m := range g.Members {
				members[i] = m.WithHash(g.Key)
			}
		}
		out = append(out, models.NewDuplicateGroup(g.Key, strategy, members))
	}
	return out
}
