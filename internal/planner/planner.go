// Package planner lays out the weekly task buckets of a goal. All functions
// are pure; callers persist the results.
package planner

import (
	"errors"
	"sort"

	"github.com/AnasSayed27/GoalsApp/internal"
)

var (
	ErrRangeInverted = errors.New("end date cannot be earlier than start date")
	ErrOutsideParent = errors.New("sub-goal dates must lie inside the parent goal timeframe")
	ErrOverlap       = errors.New("sub-goal dates overlap with an existing sub-goal")
)

// PartitionWeeks splits [start, end] into consecutive 7-day buckets anchored
// at start. The last bucket is clamped to end and may be shorter. A start
// after end yields no weeks.
func PartitionWeeks(start, end internal.Date) []internal.Week {
	weeks := []internal.Week{}
	for cur := start; !cur.After(end); cur = cur.AddDays(7) {
		weekEnd := cur.AddDays(6)
		if weekEnd.After(end) {
			weekEnd = end
		}
		weeks = append(weeks, internal.Week{
			StartDate: cur,
			EndDate:   weekEnd,
			Tasks:     []internal.Task{},
		})
	}
	return weeks
}

// RebuildParentWeeks recomputes a goal's own weeks: its full range minus the
// ranges of all direct sub-goals, each remaining segment partitioned
// independently with week indices running continuously across segments.
//
// Sub-goal ranges must not overlap; ValidateSubGoalRange gates every mutation
// path, so overlap here is a caller bug and the output is unspecified.
func RebuildParentWeeks(goal *internal.Goal) []internal.Week {
	type dateRange struct {
		start, end internal.Date
	}
	exclusions := make([]dateRange, len(goal.SubGoals))
	for i, sg := range goal.SubGoals {
		exclusions[i] = dateRange{start: sg.StartDate, end: sg.EndDate}
	}
	sort.Slice(exclusions, func(i, j int) bool {
		return exclusions[i].start.Before(exclusions[j].start)
	})

	weeks := []internal.Week{}
	cur := goal.StartDate
	for _, ex := range exclusions {
		if !cur.After(ex.start) {
			segEnd := ex.start.AddDays(-1)
			if !cur.After(segEnd) {
				weeks = append(weeks, PartitionWeeks(cur, segEnd)...)
			}
		}
		// Cursor jumps past the exclusion regardless of whether a segment
		// was emitted.
		cur = ex.end.AddDays(1)
	}
	if !cur.After(goal.EndDate) {
		weeks = append(weeks, PartitionWeeks(cur, goal.EndDate)...)
	}
	return weeks
}

// ValidateSubGoalRange checks a prospective sub-goal range against its parent
// and existing siblings. It is the single gate that makes the non-overlap
// precondition of RebuildParentWeeks safe.
func ValidateSubGoalRange(parent *internal.Goal, start, end internal.Date) error {
	if start.After(end) {
		return ErrRangeInverted
	}
	if start.Before(parent.StartDate) || end.After(parent.EndDate) {
		return ErrOutsideParent
	}
	for _, sg := range parent.SubGoals {
		// Inclusive overlap: ranges touch unless one ends strictly before
		// the other begins.
		if !(end.Before(sg.StartDate) || start.After(sg.EndDate)) {
			return ErrOverlap
		}
	}
	return nil
}

// Progress returns the completed-task ratio over the whole goal tree, 0 when
// the tree holds no tasks.
func Progress(goal *internal.Goal) float64 {
	total, completed := 0, 0
	stack := []*internal.Goal{goal}
	for len(stack) > 0 {
		g := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for i := range g.Weeks {
			for _, t := range g.Weeks[i].Tasks {
				total++
				if t.Completed {
					completed++
				}
			}
		}
		for i := range g.SubGoals {
			stack = append(stack, &g.SubGoals[i])
		}
	}
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total)
}
