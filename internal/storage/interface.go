package storage

import (
	"context"

	"github.com/AnasSayed27/GoalsApp/internal"
)

// Logical keys of the persisted store.
const (
	KeyGoals   = "goals"
	KeyStreaks = "streaks"
	KeyTasks   = "tasks"
)

type GoalRepository interface {
	LoadGoals(ctx context.Context) ([]internal.Goal, error)
	SaveGoals(ctx context.Context, goals []internal.Goal) error
}

type StreakRepository interface {
	LoadHours(ctx context.Context) (internal.HoursLog, error)
	SaveHours(ctx context.Context, hours internal.HoursLog) error
	ClearHours(ctx context.Context) error
}

type TaskRepository interface {
	LoadTasks(ctx context.Context) ([]internal.DailyTask, error)
	SaveTasks(ctx context.Context, tasks []internal.DailyTask) error
}

// Store bundles all repositories of one backend.
type Store interface {
	GoalRepository
	StreakRepository
	TaskRepository
	Close() error
}
