package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnasSayed27/GoalsApp/internal"
	"github.com/AnasSayed27/GoalsApp/internal/storage"
	"github.com/AnasSayed27/GoalsApp/internal/streak"
)

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

type HoursRequest struct {
	Date  string  `json:"date" validate:"required"`
	Hours float64 `json:"hours" validate:"gte=0"`
}

// StreakService drives the streak engine over the persisted hours log. The
// clock is injected so tests are deterministic.
type StreakService struct {
	repo   storage.StreakRepository
	logger internal.Logger
	now    func() time.Time
}

func NewStreakService(repo storage.StreakRepository, logger internal.Logger, now func() time.Time) *StreakService {
	if now == nil {
		now = time.Now
	}
	return &StreakService{repo: repo, logger: logger, now: now}
}

// Stats loads the log and recomputes the full derived bundle.
func (s *StreakService) Stats(ctx context.Context) (streak.Stats, internal.HoursLog, error) {
	hours, err := s.repo.LoadHours(ctx)
	if err != nil {
		return streak.Stats{}, nil, err
	}
	return streak.Compute(hours, s.now()), hours, nil
}

// UpdateHours merges one date's entry into the log, prunes entries outside
// the retention window, persists the log (derived stats are never stored)
// and returns a fresh recomputation.
func (s *StreakService) UpdateHours(ctx context.Context, req *HoursRequest) (streak.Stats, error) {
	if err := validate.Struct(req); err != nil {
		return streak.Stats{}, err
	}
	if _, err := internal.ParseDate(req.Date); err != nil {
		return streak.Stats{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	hours, err := s.repo.LoadHours(ctx)
	if err != nil {
		return streak.Stats{}, err
	}
	hours[req.Date] = req.Hours

	now := s.now()
	hours = streak.Prune(hours, now)
	if err := s.repo.SaveHours(ctx, hours); err != nil {
		return streak.Stats{}, err
	}
	return streak.Compute(hours, now), nil
}

// Clear wipes the log entirely.
func (s *StreakService) Clear(ctx context.Context) error {
	return s.repo.ClearHours(ctx)
}
