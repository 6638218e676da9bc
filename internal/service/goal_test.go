package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AnasSayed27/GoalsApp/internal"
	"github.com/AnasSayed27/GoalsApp/internal/planner"
	"github.com/AnasSayed27/GoalsApp/internal/storage"
)

func newGoalService(t *testing.T) *GoalService {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir(), internal.NopLogger())
	assert.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewGoalService(store, internal.NopLogger())
}

func goalReq(t *testing.T, name, start, end string) *GoalRequest {
	t.Helper()
	s, err := internal.ParseDate(start)
	assert.NoError(t, err)
	e, err := internal.ParseDate(end)
	assert.NoError(t, err)
	return &GoalRequest{Name: name, StartDate: s, EndDate: e}
}

func TestCreateAndGetGoal(t *testing.T) {
	svc := newGoalService(t)
	ctx := context.Background()

	goal, err := svc.Create(ctx, goalReq(t, "  Learn Go  ", "2024-01-01", "2024-01-17"))
	assert.NoError(t, err)
	assert.NotEmpty(t, goal.ID)
	assert.Equal(t, "Learn Go", goal.Name)
	assert.Len(t, goal.Weeks, 3)

	got, err := svc.Get(ctx, goal.ID)
	assert.NoError(t, err)
	assert.Equal(t, goal.ID, got.ID)
	assert.Zero(t, got.Progress)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestCreateGoalValidation(t *testing.T) {
	svc := newGoalService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, goalReq(t, "", "2024-01-01", "2024-01-07"))
	assert.Error(t, err)

	// A whitespace-only name trims down to empty and is rejected too.
	_, err = svc.Create(ctx, goalReq(t, "   ", "2024-01-01", "2024-01-07"))
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.Create(ctx, goalReq(t, "backwards", "2024-01-07", "2024-01-01"))
	assert.ErrorIs(t, err, planner.ErrRangeInverted)

	goals, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, goals)
}

func TestDeleteGoal(t *testing.T) {
	svc := newGoalService(t)
	ctx := context.Background()

	goal, err := svc.Create(ctx, goalReq(t, "temp", "2024-01-01", "2024-01-07"))
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(ctx, goal.ID))
	assert.ErrorIs(t, svc.Delete(ctx, goal.ID), ErrGoalNotFound)

	goals, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, goals)
}

func TestAddSubGoalRebuildsParentWeeks(t *testing.T) {
	svc := newGoalService(t)
	ctx := context.Background()

	parent, err := svc.Create(ctx, goalReq(t, "parent", "2024-01-01", "2024-01-31"))
	assert.NoError(t, err)
	assert.Len(t, parent.Weeks, 5)

	sub, err := svc.AddSubGoal(ctx, parent.ID, goalReq(t, "sprint", "2024-01-08", "2024-01-14"))
	assert.NoError(t, err)
	assert.Len(t, sub.Weeks, 1)

	got, err := svc.Get(ctx, parent.ID)
	assert.NoError(t, err)
	assert.Len(t, got.SubGoals, 1)
	// Jan 1-7 plus Jan 15-31 repartitioned: four parent weeks.
	assert.Len(t, got.Weeks, 4)
	assert.Equal(t, "2024-01-07", got.Weeks[0].EndDate.String())
	assert.Equal(t, "2024-01-15", got.Weeks[1].StartDate.String())
}

func TestAddSubGoalRejectsBadRanges(t *testing.T) {
	svc := newGoalService(t)
	ctx := context.Background()

	parent, err := svc.Create(ctx, goalReq(t, "parent", "2024-01-01", "2024-01-31"))
	assert.NoError(t, err)
	_, err = svc.AddSubGoal(ctx, parent.ID, goalReq(t, "first", "2024-01-08", "2024-01-14"))
	assert.NoError(t, err)

	_, err = svc.AddSubGoal(ctx, parent.ID, goalReq(t, "overlapping", "2024-01-10", "2024-01-20"))
	assert.ErrorIs(t, err, planner.ErrOverlap)

	_, err = svc.AddSubGoal(ctx, parent.ID, goalReq(t, "outside", "2024-01-20", "2024-02-05"))
	assert.ErrorIs(t, err, planner.ErrOutsideParent)

	_, err = svc.AddSubGoal(ctx, parent.ID, goalReq(t, "inverted", "2024-01-25", "2024-01-20"))
	assert.ErrorIs(t, err, planner.ErrRangeInverted)

	_, err = svc.AddSubGoal(ctx, parent.ID, goalReq(t, "  ", "2024-01-15", "2024-01-21"))
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.AddSubGoal(ctx, "missing", goalReq(t, "orphan", "2024-01-15", "2024-01-21"))
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestDeleteSubGoalRestoresFullPartition(t *testing.T) {
	svc := newGoalService(t)
	ctx := context.Background()

	parent, err := svc.Create(ctx, goalReq(t, "parent", "2024-01-01", "2024-01-31"))
	assert.NoError(t, err)
	sub, err := svc.AddSubGoal(ctx, parent.ID, goalReq(t, "sprint", "2024-01-08", "2024-01-14"))
	assert.NoError(t, err)

	assert.NoError(t, svc.DeleteSubGoal(ctx, parent.ID, sub.ID))
	assert.ErrorIs(t, svc.DeleteSubGoal(ctx, parent.ID, sub.ID), ErrSubGoalNotFound)

	got, err := svc.Get(ctx, parent.ID)
	assert.NoError(t, err)
	assert.Empty(t, got.SubGoals)
	assert.Len(t, got.Weeks, 5)
	assert.Equal(t, "2024-01-01", got.Weeks[0].StartDate.String())
}

func TestWeekTaskLifecycle(t *testing.T) {
	svc := newGoalService(t)
	ctx := context.Background()

	goal, err := svc.Create(ctx, goalReq(t, "goal", "2024-01-01", "2024-01-14"))
	assert.NoError(t, err)

	task, err := svc.AddWeekTask(ctx, goal.ID, "", 0, "  write tests  ")
	assert.NoError(t, err)
	assert.Equal(t, "write tests", task.Text)
	assert.False(t, task.Completed)

	completed, err := svc.ToggleWeekTask(ctx, goal.ID, "", 0, task.ID)
	assert.NoError(t, err)
	assert.True(t, completed)

	got, err := svc.Get(ctx, goal.ID)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, got.Progress, 1e-9)

	completed, err = svc.ToggleWeekTask(ctx, goal.ID, "", 0, task.ID)
	assert.NoError(t, err)
	assert.False(t, completed)

	assert.NoError(t, svc.DeleteWeekTask(ctx, goal.ID, "", 0, task.ID))
	assert.ErrorIs(t, svc.DeleteWeekTask(ctx, goal.ID, "", 0, task.ID), ErrTaskNotFound)
}

func TestWeekTaskValidation(t *testing.T) {
	svc := newGoalService(t)
	ctx := context.Background()

	goal, err := svc.Create(ctx, goalReq(t, "goal", "2024-01-01", "2024-01-07"))
	assert.NoError(t, err)

	_, err = svc.AddWeekTask(ctx, goal.ID, "", 0, "   ")
	assert.ErrorIs(t, err, ErrEmptyTaskText)

	_, err = svc.AddWeekTask(ctx, goal.ID, "", 5, "out of range")
	assert.ErrorIs(t, err, ErrWeekOutOfRange)

	_, err = svc.AddWeekTask(ctx, goal.ID, "", -1, "negative")
	assert.ErrorIs(t, err, ErrWeekOutOfRange)

	_, err = svc.AddWeekTask(ctx, "missing", "", 0, "orphan")
	assert.ErrorIs(t, err, ErrGoalNotFound)

	_, err = svc.AddWeekTask(ctx, goal.ID, "missing-sub", 0, "orphan")
	assert.ErrorIs(t, err, ErrSubGoalNotFound)
}

func TestWeekTaskOnSubGoal(t *testing.T) {
	svc := newGoalService(t)
	ctx := context.Background()

	parent, err := svc.Create(ctx, goalReq(t, "parent", "2024-01-01", "2024-01-31"))
	assert.NoError(t, err)
	sub, err := svc.AddSubGoal(ctx, parent.ID, goalReq(t, "sprint", "2024-01-08", "2024-01-14"))
	assert.NoError(t, err)

	task, err := svc.AddWeekTask(ctx, parent.ID, sub.ID, 0, "sub task")
	assert.NoError(t, err)

	got, err := svc.Get(ctx, parent.ID)
	assert.NoError(t, err)
	assert.Len(t, got.SubGoals[0].Weeks[0].Tasks, 1)
	assert.Equal(t, task.ID, got.SubGoals[0].Weeks[0].Tasks[0].ID)

	// Parent progress covers the whole tree.
	_, err = svc.ToggleWeekTask(ctx, parent.ID, sub.ID, 0, task.ID)
	assert.NoError(t, err)
	got, err = svc.Get(ctx, parent.ID)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, got.Progress, 1e-9)
}
