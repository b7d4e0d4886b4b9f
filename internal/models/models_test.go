package models

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func rec(path string, size int64, age time.Duration) FileRecord {
	return FileRecord{Path: path, SizeBytes: size, ModifiedTime: base.Add(-age)}
}

func TestFileRecord(t *testing.T) {
	r := rec("/archive/2023/Invoice copy.pdf", 10, 0)
	assert.Equal(t, "Invoice copy.pdf", r.Name())
	assert.False(t, r.HasHash())

	hashed := r.WithHash("abc")
	assert.True(t, hashed.HasHash())
	assert.False(t, r.HasHash(), "WithHash returns a copy")
}

func TestNewDuplicateGroup_OrdersNewestFirst(t *testing.T) {
	members := []FileRecord{
		rec("/a/old.pdf", 10, 48*time.Hour),
		rec("/a/new.pdf", 10, 0),
		rec("/a/mid.pdf", 10, 24*time.Hour),
	}
	g := NewDuplicateGroup("k", StrategyHash, members)

	assert.Equal(t, "/a/new.pdf", g.Keeper().Path)
	assert.Equal(t, "/a/mid.pdf", g.Members[1].Path)
	assert.Equal(t, "/a/old.pdf", g.Members[2].Path)
	assert.Equal(t, "/a/old.pdf", members[0].Path, "input is not reordered")
}

func TestNewDuplicateGroup_TiesBreakByPath(t *testing.T) {
	g := NewDuplicateGroup("k", StrategyHash, []FileRecord{
		rec("/a/b.pdf", 1, 0),
		rec("/a/a.pdf", 1, 0),
	})
	assert.Equal(t, "/a/a.pdf", g.Keeper().Path)
}

func TestDuplicateGroup_Bytes(t *testing.T) {
	g := NewDuplicateGroup("k", StrategyName, []FileRecord{
		rec("/a/new.pdf", 100, 0),
		rec("/a/old.pdf", 300, time.Hour),
	})
	assert.True(t, g.IsActionable())
	assert.Equal(t, int64(400), g.TotalBytes())
	assert.Equal(t, int64(300), g.RedundantBytes())

	single := NewDuplicateGroup("k", StrategyHash, []FileRecord{rec("/a/x.pdf", 5, 0)})
	assert.False(t, single.IsActionable())
	assert.Equal(t, int64(0), single.RedundantBytes())
	assert.Equal(t, int64(0), DuplicateGroup{}.RedundantBytes())
}

func TestNameCluster(t *testing.T) {
	c := NameCluster{Members: []string{"Acme Corporation", "Acme Corp", "ACME Corp."}}
	assert.Equal(t, "Acme Corporation", c.Seed())
	assert.True(t, c.IsActionable())
	assert.Equal(t, []string{"ACME Corp.", "Acme Corp", "Acme Corporation"}, c.Sorted())
	assert.Equal(t, "Acme Corporation", c.Members[0], "Sorted does not reorder members")

	assert.False(t, NameCluster{Members: []string{"Globex"}}.IsActionable())
}

func TestNewMergeTarget(t *testing.T) {
	target := NewMergeTarget(NameCluster{Members: []string{"Acme Corporation", "Acme Corp", "Acme Corp Ltd"}})
	assert.Equal(t, "Acme Corp", target.Representative)
	assert.Equal(t, []string{"Acme Corp Ltd", "Acme Corporation"}, target.Sources)

	dup := NewMergeTarget(NameCluster{Members: []string{"Globex", "Globex", "Globex Inc", "Globex Inc"}})
	assert.Equal(t, "Globex", dup.Representative)
	assert.Equal(t, []string{"Globex Inc"}, dup.Sources)
}

func TestMergeTarget_Conflicts(t *testing.T) {
	target := MergeTarget{Moves: []PlannedMove{
		{Source: "B", Item: "a.pdf"},
		{Source: "B", Item: "MSA.pdf", Conflict: true},
	}}
	conflicts := target.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, "MSA.pdf", conflicts[0].Item)
}

func TestDeletionPlanAndReports(t *testing.T) {
	plan := DeletionPlan{Deletions: []Deletion{{Path: "/a", SizeBytes: 10}, {Path: "/b", SizeBytes: 5}}}
	assert.Equal(t, int64(15), plan.ReclaimableBytes())

	dr := DedupeReport{Deleted: []Deletion{{Path: "/a"}}}
	assert.Equal(t, 1, dr.Succeeded())

	mr := MergeReport{Outcomes: []TargetOutcome{
		{Moved: []string{"B/x", "B/y"}, Conflicts: []string{"B/z"}, Retained: []string{"B"}, Errors: []error{errors.New("one")}},
		{Skipped: true, Errors: []error{errors.New("two")}},
		{Moved: []string{"D/x"}, Removed: []string{"D"}},
	}}
	moved, conflicts, removed, retained, skipped := mr.Totals()
	assert.Equal(t, []int{3, 1, 1, 1, 1}, []int{moved, conflicts, removed, retained, skipped})
	assert.Len(t, mr.Errors(), 2)
}

func TestScanReport(t *testing.T) {
	small := NewDuplicateGroup("Small", StrategyName, []FileRecord{rec("/s1", 10, 0), rec("/s2", 10, time.Hour)})
	big := NewDuplicateGroup("Big", StrategyName, []FileRecord{rec("/b1", 500, 0), rec("/b2", 900, time.Hour)})
	mid := NewDuplicateGroup("Mid", StrategyName, []FileRecord{rec("/m1", 50, 0), rec("/m2", 50, time.Hour)})
	report := ScanReport{Groups: []ScanGroup{{Group: small}, {Group: big}, {Group: mid}}}

	assert.Equal(t, int64(960), report.PotentialSavings())

	top := report.Biggest(2)
	require.Len(t, top, 2)
	assert.Equal(t, "Big", top[0].Group.Key)
	assert.Equal(t, "Mid", top[1].Group.Key)
	assert.Len(t, report.Biggest(10), 3)
	assert.Equal(t, "Small", report.Groups[0].Group.Key, "Biggest does not reorder the report")
}

func TestOpError(t *testing.T) {
	err := NewOpError(DeletionError, "/a/x.pdf", fs.ErrPermission)
	assert.Equal(t, "delete /a/x.pdf: permission denied", err.Error())
	assert.True(t, errors.Is(err, fs.ErrPermission))

	wrapped := fmt.Errorf("batch: %w", err)
	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, DeletionError, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)

	assert.Equal(t, "missing /x", NewOpError(MissingFolderError, "/x", nil).Error())
}

func TestErrorKindString(t *testing.T) {
	kinds := map[ErrorKind]string{
		ScanError:          "scan",
		HashError:          "hash",
		DeletionError:      "delete",
		MoveError:          "move",
		MergeConflictError: "conflict",
		MergeCleanupError:  "cleanup",
		MissingFolderError: "missing",
		ErrorKind(99):      "unknown",
	}
	for kind, want := range kinds {
		assert.Equal(t, want, kind.String())
	}
}

func TestErrorLog(t *testing.T) {
	var log ErrorLog
	assert.Equal(t, "none", log.Summary())

	log.Add(nil)
	log.Add(NewOpError(HashError, "/a", errors.New("io")))
	log.AddAll([]error{
		NewOpError(DeletionError, "/b", errors.New("denied")),
		nil,
		NewOpError(DeletionError, "/c", errors.New("denied")),
		errors.New("untyped"),
	})

	assert.Equal(t, 4, log.Len())
	assert.Equal(t, 2, log.Count(DeletionError))
	assert.Equal(t, 1, log.Count(HashError))
	assert.Equal(t, 0, log.Count(MoveError))
	assert.Equal(t, "1 hash, 2 delete, 1 other", log.Summary())
}
