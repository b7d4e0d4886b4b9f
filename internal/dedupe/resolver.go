// Package dedupe turns duplicate groups into deletion plans and executes them.
//
// Resolution and execution are separate steps: Resolve only decides which
// member to keep, Executor.Execute performs the deletions. Only hash-keyed
// groups can be resolved; name groups must first be split into hash-confirmed
// subgroups with ConfirmByContent.
package dedupe

import (
	"errors"
	"fmt"

	"github.com/harrison/archivetidy/internal/models"
)

// ErrNotActionable is returned for groups with fewer than two members.
var ErrNotActionable = errors.New("group has fewer than two members")

// ErrUnconfirmedGroup is returned when a name-keyed group is passed to Resolve.
var ErrUnconfirmedGroup = errors.New("name group must be confirmed by content before deletion")

// Resolve keeps the newest member of group and schedules every other member
// for deletion.
func Resolve(group models.DuplicateGroup) (models.DeletionPlan, error) {
	if group.Strategy != models.StrategyHash {
		return models.DeletionPlan{}, fmt.Errorf("group %q: %w", group.Key, ErrUnconfirmedGroup)
	}
	if !group.IsActionable() {
		return models.DeletionPlan{}, fmt.Errorf("group %q: %w", group.Key, ErrNotActionable)
	}

	keeper := group.Keeper()
	plan := models.DeletionPlan{
		Group:     group,
		Keeper:    keeper,
		Deletions: make([]models.Deletion, 0, len(group.Members)-1),
	}
	for _, m := range group.Members[1:] {
		if m.Path == keeper.Path {
			continue
		}
		plan.Deletions = append(plan.Deletions, models.Deletion{Path: m.Path, SizeBytes: m.SizeBytes})
	}
	return plan, nil
}

// PlanAll resolves every actionable group. Single-member groups are skipped.
func PlanAll(groups []models.DuplicateGroup) ([]models.DeletionPlan, error) {
	plans := make([]models.DeletionPlan, 0, len(groups))
	for _, g := range groups {
		if !g.IsActionable() {
			continue
		}
		plan, err := Resolve(g)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// ReclaimableBytes sums the planned deletions across plans.
func ReclaimableBytes(plans []models.DeletionPlan) int64 {
	var total int64
	for _, p := range plans {
		total += p.ReclaimableBytes()
	}
	return total
}

// DeletionCount returns the number of files the plans would remove.
func DeletionCount(plans []models.DeletionPlan) int {
	n := 0
	for _, p := range plans {
		n += len(p.Deletions)
	}
	return n
}
