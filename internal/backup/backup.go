// Package backup serializes the whole store into a portable versioned JSON
// envelope and restores it verbatim.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AnasSayed27/GoalsApp/internal"
	"github.com/AnasSayed27/GoalsApp/internal/storage"
)

const (
	Version       = 1
	AppIdentifier = "com.uac.Goals"
)

var (
	ErrInvalidPayload = errors.New("backup file does not contain valid data")
	ErrForeignBackup  = errors.New("backup file was not created by this app")
)

// Payload is the envelope written to disk. Absent data keys stay nil and are
// skipped on restore.
type Payload struct {
	AppIdentifier string    `json:"appIdentifier"`
	Version       int       `json:"version"`
	CreatedAt     time.Time `json:"createdAt"`
	Data          Data      `json:"data"`
}

type Data struct {
	Streaks *internal.StreakData  `json:"streaks,omitempty"`
	Goals   *[]internal.Goal      `json:"goals,omitempty"`
	Tasks   *[]internal.DailyTask `json:"tasks,omitempty"`
}

type Service struct {
	goals   storage.GoalRepository
	streaks storage.StreakRepository
	tasks   storage.TaskRepository
	logger  internal.Logger
	now     func() time.Time
}

func NewService(goals storage.GoalRepository, streaks storage.StreakRepository, tasks storage.TaskRepository, logger internal.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{goals: goals, streaks: streaks, tasks: tasks, logger: logger, now: now}
}

// Export gathers every stored key and writes the indented envelope.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	goals, err := s.goals.LoadGoals(ctx)
	if err != nil {
		return err
	}
	hours, err := s.streaks.LoadHours(ctx)
	if err != nil {
		return err
	}
	tasks, err := s.tasks.LoadTasks(ctx)
	if err != nil {
		return err
	}
	if goals == nil {
		goals = []internal.Goal{}
	}
	if tasks == nil {
		tasks = []internal.DailyTask{}
	}

	payload := Payload{
		AppIdentifier: AppIdentifier,
		Version:       Version,
		CreatedAt:     s.now(),
		Data: Data{
			Streaks: &internal.StreakData{HeatmapData: hours},
			Goals:   &goals,
			Tasks:   &tasks,
		},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// ExportToFile writes a timestamped backup into dir and returns its path.
func (s *Service) ExportToFile(ctx context.Context, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	ts := strings.ReplaceAll(s.now().UTC().Format(time.RFC3339), ":", "-")
	path := filepath.Join(dir, fmt.Sprintf("GoalsApp_Backup_%s.json", ts))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := s.Export(ctx, f); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	return path, f.Close()
}

// Import validates the envelope and restores every key present in it,
// overwriting current data.
func (s *Service) Import(ctx context.Context, r io.Reader) error {
	var payload Payload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if payload.AppIdentifier != AppIdentifier {
		return ErrForeignBackup
	}

	if payload.Data.Streaks != nil {
		hours := payload.Data.Streaks.HeatmapData
		if hours == nil {
			hours = internal.HoursLog{}
		}
		if err := s.streaks.SaveHours(ctx, hours); err != nil {
			return err
		}
	}
	if payload.Data.Goals != nil {
		if err := s.goals.SaveGoals(ctx, *payload.Data.Goals); err != nil {
			return err
		}
	}
	if payload.Data.Tasks != nil {
		if err := s.tasks.SaveTasks(ctx, *payload.Data.Tasks); err != nil {
			return err
		}
	}
	s.logger.Infof("backup restored from %s", payload.CreatedAt.Format(time.RFC3339))
	return nil
}

// ImportFile restores from a backup file on disk.
func (s *Service) ImportFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.Import(ctx, f)
}
