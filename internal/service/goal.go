package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/AnasSayed27/GoalsApp/internal"
	"github.com/AnasSayed27/GoalsApp/internal/planner"
	"github.com/AnasSayed27/GoalsApp/internal/storage"
)

var validate = validator.New()

var (
	ErrGoalNotFound    = errors.New("goal not found")
	ErrSubGoalNotFound = errors.New("sub-goal not found")
	ErrWeekOutOfRange  = errors.New("week index out of range")
	ErrTaskNotFound    = errors.New("task not found")
	ErrEmptyTaskText   = errors.New("task text cannot be empty")
	ErrEmptyName       = errors.New("name cannot be empty")
)

type GoalRequest struct {
	Name      string        `json:"name" validate:"required"`
	StartDate internal.Date `json:"start_date" validate:"required"`
	EndDate   internal.Date `json:"end_date" validate:"required"`
}

type GoalService struct {
	repo   storage.GoalRepository
	logger internal.Logger
}

func NewGoalService(repo storage.GoalRepository, logger internal.Logger) *GoalService {
	return &GoalService{repo: repo, logger: logger}
}

func ValidateGoalRequest(req *GoalRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	// required passes a whitespace-only name; the trimmed form is what gets
	// stored, so that is what must be non-empty.
	if strings.TrimSpace(req.Name) == "" {
		return ErrEmptyName
	}
	if req.StartDate.After(req.EndDate) {
		return planner.ErrRangeInverted
	}
	return nil
}

// List returns all goals annotated with derived progress.
func (s *GoalService) List(ctx context.Context) ([]internal.Goal, error) {
	goals, err := s.repo.LoadGoals(ctx)
	if err != nil {
		return nil, err
	}
	for i := range goals {
		annotateProgress(&goals[i])
	}
	return goals, nil
}

// Get returns one goal annotated with derived progress.
func (s *GoalService) Get(ctx context.Context, id string) (*internal.Goal, error) {
	goals, err := s.repo.LoadGoals(ctx)
	if err != nil {
		return nil, err
	}
	for i := range goals {
		if goals[i].ID == id {
			annotateProgress(&goals[i])
			return &goals[i], nil
		}
	}
	return nil, ErrGoalNotFound
}

// Create builds a goal with its weeks populated from its own range.
func (s *GoalService) Create(ctx context.Context, req *GoalRequest) (*internal.Goal, error) {
	if err := ValidateGoalRequest(req); err != nil {
		return nil, err
	}
	goal := internal.Goal{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		CreatedAt: time.Now(),
		Weeks:     planner.PartitionWeeks(req.StartDate, req.EndDate),
		SubGoals:  []internal.Goal{},
	}

	goals, err := s.repo.LoadGoals(ctx)
	if err != nil {
		return nil, err
	}
	goals = append(goals, goal)
	if err := s.repo.SaveGoals(ctx, goals); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *GoalService) Delete(ctx context.Context, id string) error {
	goals, err := s.repo.LoadGoals(ctx)
	if err != nil {
		return err
	}
	kept := goals[:0]
	found := false
	for _, g := range goals {
		if g.ID == id {
			found = true
			continue
		}
		kept = append(kept, g)
	}
	if !found {
		return ErrGoalNotFound
	}
	return s.repo.SaveGoals(ctx, kept)
}

// AddSubGoal validates the range, appends the sub-goal with its own weeks,
// and rebuilds the parent's weeks around all carved-out ranges.
func (s *GoalService) AddSubGoal(ctx context.Context, goalID string, req *GoalRequest) (*internal.Goal, error) {
	if err := ValidateGoalRequest(req); err != nil {
		return nil, err
	}

	goals, err := s.repo.LoadGoals(ctx)
	if err != nil {
		return nil, err
	}
	parent := findGoal(goals, goalID)
	if parent == nil {
		return nil, ErrGoalNotFound
	}
	if err := planner.ValidateSubGoalRange(parent, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	sub := internal.Goal{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		CreatedAt: time.Now(),
		Weeks:     planner.PartitionWeeks(req.StartDate, req.EndDate),
		SubGoals:  []internal.Goal{},
	}
	parent.SubGoals = append(parent.SubGoals, sub)
	parent.Weeks = planner.RebuildParentWeeks(parent)

	if err := s.repo.SaveGoals(ctx, goals); err != nil {
		return nil, err
	}
	return &sub, nil
}

// DeleteSubGoal removes a direct sub-goal and recomputes the parent's weeks,
// falling back to a plain full-range partition when none remain.
func (s *GoalService) DeleteSubGoal(ctx context.Context, goalID, subID string) error {
	goals, err := s.repo.LoadGoals(ctx)
	if err != nil {
		return err
	}
	parent := findGoal(goals, goalID)
	if parent == nil {
		return ErrGoalNotFound
	}

	kept := parent.SubGoals[:0]
	found := false
	for _, sg := range parent.SubGoals {
		if sg.ID == subID {
			found = true
			continue
		}
		kept = append(kept, sg)
	}
	if !found {
		return ErrSubGoalNotFound
	}
	parent.SubGoals = kept

	if len(parent.SubGoals) > 0 {
		parent.Weeks = planner.RebuildParentWeeks(parent)
	} else {
		parent.Weeks = planner.PartitionWeeks(parent.StartDate, parent.EndDate)
	}
	return s.repo.SaveGoals(ctx, goals)
}

// AddWeekTask appends a task to a week of the goal, or of one of its direct
// sub-goals when subID is non-empty.
func (s *GoalService) AddWeekTask(ctx context.Context, goalID, subID string, weekIndex int, text string) (*internal.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyTaskText
	}

	goals, err := s.repo.LoadGoals(ctx)
	if err != nil {
		return nil, err
	}
	week, err := locateWeek(goals, goalID, subID, weekIndex)
	if err != nil {
		return nil, err
	}

	task := internal.Task{ID: uuid.NewString(), Text: text}
	week.Tasks = append(week.Tasks, task)

	if err := s.repo.SaveGoals(ctx, goals); err != nil {
		return nil, err
	}
	return &task, nil
}

// ToggleWeekTask flips a task's completed flag and reports the new value.
func (s *GoalService) ToggleWeekTask(ctx context.Context, goalID, subID string, weekIndex int, taskID string) (bool, error) {
	goals, err := s.repo.LoadGoals(ctx)
	if err != nil {
		return false, err
	}
	week, err := locateWeek(goals, goalID, subID, weekIndex)
	if err != nil {
		return false, err
	}
	for i := range week.Tasks {
		if week.Tasks[i].ID == taskID {
			week.Tasks[i].Completed = !week.Tasks[i].Completed
			if err := s.repo.SaveGoals(ctx, goals); err != nil {
				return false, err
			}
			return week.Tasks[i].Completed, nil
		}
	}
	return false, ErrTaskNotFound
}

func (s *GoalService) DeleteWeekTask(ctx context.Context, goalID, subID string, weekIndex int, taskID string) error {
	goals, err := s.repo.LoadGoals(ctx)
	if err != nil {
		return err
	}
	week, err := locateWeek(goals, goalID, subID, weekIndex)
	if err != nil {
		return err
	}
	for i := range week.Tasks {
		if week.Tasks[i].ID == taskID {
			week.Tasks = append(week.Tasks[:i], week.Tasks[i+1:]...)
			return s.repo.SaveGoals(ctx, goals)
		}
	}
	return ErrTaskNotFound
}

func findGoal(goals []internal.Goal, id string) *internal.Goal {
	for i := range goals {
		if goals[i].ID == id {
			return &goals[i]
		}
	}
	return nil
}

func locateWeek(goals []internal.Goal, goalID, subID string, weekIndex int) (*internal.Week, error) {
	goal := findGoal(goals, goalID)
	if goal == nil {
		return nil, ErrGoalNotFound
	}
	target := goal
	if subID != "" {
		target = findGoal(goal.SubGoals, subID)
		if target == nil {
			return nil, ErrSubGoalNotFound
		}
	}
	if weekIndex < 0 || weekIndex >= len(target.Weeks) {
		return nil, ErrWeekOutOfRange
	}
	return &target.Weeks[weekIndex], nil
}

// annotateProgress fills in the derived progress field across the tree.
func annotateProgress(g *internal.Goal) {
	g.Progress = planner.Progress(g)
	for i := range g.SubGoals {
		annotateProgress(&g.SubGoals[i])
	}
}
