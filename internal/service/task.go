package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AnasSayed27/GoalsApp/internal"
	"github.com/AnasSayed27/GoalsApp/internal/storage"
)

var (
	ErrDailyTaskNotFound = errors.New("task not found in daily list")
	ErrBadDirection      = errors.New("direction must be up or down")
	ErrBadOrder          = errors.New("new order must contain exactly the existing task ids")
)

type TaskRequest struct {
	Name     string  `json:"name" validate:"required"`
	Duration float64 `json:"duration" validate:"gte=0"`
}

// TaskStats aggregates the flat daily list by duration.
type TaskStats struct {
	TotalDuration     float64 `json:"totalDuration"`
	CompletedDuration float64 `json:"completedDuration"`
	Progress          float64 `json:"progress"`
}

func validateTaskRequest(req *TaskRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

type TaskService struct {
	repo   storage.TaskRepository
	logger internal.Logger
}

func NewTaskService(repo storage.TaskRepository, logger internal.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

func (s *TaskService) List(ctx context.Context) ([]internal.DailyTask, TaskStats, error) {
	tasks, err := s.repo.LoadTasks(ctx)
	if err != nil {
		return nil, TaskStats{}, err
	}
	return tasks, statsFor(tasks), nil
}

func (s *TaskService) Add(ctx context.Context, req *TaskRequest) (*internal.DailyTask, error) {
	if err := validateTaskRequest(req); err != nil {
		return nil, err
	}
	task := internal.DailyTask{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Duration:  req.Duration,
		CreatedAt: time.Now(),
	}
	tasks, err := s.repo.LoadTasks(ctx)
	if err != nil {
		return nil, err
	}
	tasks = append(tasks, task)
	if err := s.repo.SaveTasks(ctx, tasks); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) Edit(ctx context.Context, id string, req *TaskRequest) error {
	if err := validateTaskRequest(req); err != nil {
		return err
	}
	tasks, err := s.repo.LoadTasks(ctx)
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Name = strings.TrimSpace(req.Name)
			tasks[i].Duration = req.Duration
			return s.repo.SaveTasks(ctx, tasks)
		}
	}
	return ErrDailyTaskNotFound
}

// Toggle flips completion and reports whether the task just became
// completed, so callers can congratulate.
func (s *TaskService) Toggle(ctx context.Context, id string) (bool, error) {
	tasks, err := s.repo.LoadTasks(ctx)
	if err != nil {
		return false, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Completed = !tasks[i].Completed
			if err := s.repo.SaveTasks(ctx, tasks); err != nil {
				return false, err
			}
			return tasks[i].Completed, nil
		}
	}
	return false, ErrDailyTaskNotFound
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	tasks, err := s.repo.LoadTasks(ctx)
	if err != nil {
		return err
	}
	kept := tasks[:0]
	found := false
	for _, t := range tasks {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return ErrDailyTaskNotFound
	}
	return s.repo.SaveTasks(ctx, kept)
}

// Move swaps a task with its neighbor. Moving past either end is a no-op.
func (s *TaskService) Move(ctx context.Context, id, direction string) error {
	if direction != "up" && direction != "down" {
		return ErrBadDirection
	}
	tasks, err := s.repo.LoadTasks(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i := range tasks {
		if tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrDailyTaskNotFound
	}
	swap := idx - 1
	if direction == "down" {
		swap = idx + 1
	}
	if swap < 0 || swap >= len(tasks) {
		return nil
	}
	tasks[idx], tasks[swap] = tasks[swap], tasks[idx]
	return s.repo.SaveTasks(ctx, tasks)
}

// Reorder replaces the list order with the given id sequence, which must be
// a permutation of the current ids.
func (s *TaskService) Reorder(ctx context.Context, ids []string) error {
	tasks, err := s.repo.LoadTasks(ctx)
	if err != nil {
		return err
	}
	if len(ids) != len(tasks) {
		return ErrBadOrder
	}
	byID := make(map[string]internal.DailyTask, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	reordered := make([]internal.DailyTask, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			return ErrBadOrder
		}
		delete(byID, id)
		reordered = append(reordered, t)
	}
	return s.repo.SaveTasks(ctx, reordered)
}

func statsFor(tasks []internal.DailyTask) TaskStats {
	var st TaskStats
	for _, t := range tasks {
		st.TotalDuration += t.Duration
		if t.Completed {
			st.CompletedDuration += t.Duration
		}
	}
	if st.TotalDuration > 0 {
		st.Progress = st.CompletedDuration / st.TotalDuration
	}
	return st
}
