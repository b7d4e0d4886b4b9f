// Package merge consolidates clusters of similarly named folders into one
// representative folder.
//
// Planning is read-only: Plan resolves clusters into MergeTargets and
// previews every move with its predicted conflicts. Executor.Execute then
// moves the immediate children of each source folder into the representative,
// skipping any name that already exists there, and removes source folders
// that end up empty. Nothing is overwritten and nothing is deleted
// recursively, so re-running after resolving conflicts by hand converges.
package merge

import (
	"os"
	"path/filepath"

	"github.com/harrison/archivetidy/internal/models"
	"github.com/spf13/afero"
)

// Plan resolves each actionable cluster under root into a MergeTarget with a
// preview of its moves. Folders that cannot be read contribute no moves; the
// executor reports them.
func Plan(fs afero.Fs, root string, clusters []models.NameCluster) []models.MergeTarget {
	targets := make([]models.MergeTarget, 0, len(clusters))
	for _, c := range clusters {
		if !c.IsActionable() {
			continue
		}
		t := models.NewMergeTarget(c)
		if len(t.Sources) == 0 {
			continue
		}
		t.Moves = previewMoves(fs, root, t)
		targets = append(targets, t)
	}
	return targets
}

// previewMoves lists the moves a target would perform. A move conflicts when
// the representative already holds the name, or when an earlier source in the
// same target would claim it first.
func previewMoves(fs afero.Fs, root string, t models.MergeTarget) []models.PlannedMove {
	taken := make(map[string]bool)
	if entries, err := afero.ReadDir(fs, filepath.Join(root, t.Representative)); err == nil {
		for _, e := range entries {
			taken[e.Name()] = true
		}
	}

	var moves []models.PlannedMove
	for _, src := range t.Sources {
		entries, err := afero.ReadDir(fs, filepath.Join(root, src))
		if err != nil {
			continue
		}
		for _, e := range entries {
			m := models.PlannedMove{
				Source:   src,
				Item:     e.Name(),
				IsDir:    e.IsDir(),
				Conflict: taken[e.Name()],
			}
			taken[e.Name()] = true
			moves = append(moves, m)
		}
	}
	return moves
}

// exists reports whether path names an entry, without following a final symlink.
func exists(fs afero.Fs, path string) (bool, error) {
	var err error
	if lst, ok := fs.(afero.Lstater); ok {
		_, _, err = lst.LstatIfPossible(path)
	} else {
		_, err = fs.Stat(path)
	}
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
