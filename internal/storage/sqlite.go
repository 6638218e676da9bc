package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"

	_ "modernc.org/sqlite"

	"github.com/AnasSayed27/GoalsApp/internal"
)

// SQLiteStore keeps the whole store in a single-file embedded database with
// one key/value table, the natural fit for a local-first app.
type SQLiteStore struct {
	db     *sql.DB
	logger internal.Logger
}

func NewSQLiteStore(path string, logger internal.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Errorf("storage: failed to create sqlite dir: %v", err)
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Errorf("storage: failed to open sqlite db: %v", err)
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		db.Close()
		logger.Errorf("storage: failed to create kv table: %v", err)
		return nil, err
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

// get unmarshals the value under key into dest. A missing key or malformed
// value leaves dest at its empty default.
func (s *SQLiteStore) get(ctx context.Context, key string, dest interface{}) error {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		s.logger.Errorf("storage: failed to read key %s: %v", key, err)
		return err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.logger.Warnf("storage: malformed value under key %s, using empty default: %v", key, err)
		// A type mismatch can leave dest partially populated.
		v := reflect.ValueOf(dest).Elem()
		v.Set(reflect.Zero(v.Type()))
	}
	return nil
}

func (s *SQLiteStore) set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(raw))
	if err != nil {
		s.logger.Errorf("storage: failed to write key %s: %v", key, err)
	}
	return err
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// --- GoalRepository ---

func (s *SQLiteStore) LoadGoals(ctx context.Context) ([]internal.Goal, error) {
	var goals []internal.Goal
	if err := s.get(ctx, KeyGoals, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (s *SQLiteStore) SaveGoals(ctx context.Context, goals []internal.Goal) error {
	if goals == nil {
		goals = []internal.Goal{}
	}
	return s.set(ctx, KeyGoals, goals)
}

// --- StreakRepository ---

func (s *SQLiteStore) LoadHours(ctx context.Context) (internal.HoursLog, error) {
	var data internal.StreakData
	if err := s.get(ctx, KeyStreaks, &data); err != nil {
		return nil, err
	}
	if data.HeatmapData == nil {
		data.HeatmapData = internal.HoursLog{}
	}
	return data.HeatmapData, nil
}

func (s *SQLiteStore) SaveHours(ctx context.Context, hours internal.HoursLog) error {
	return s.set(ctx, KeyStreaks, internal.StreakData{HeatmapData: hours})
}

func (s *SQLiteStore) ClearHours(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, KeyStreaks)
	if err != nil {
		s.logger.Errorf("storage: failed to clear key %s: %v", KeyStreaks, err)
	}
	return err
}

// --- TaskRepository ---

func (s *SQLiteStore) LoadTasks(ctx context.Context) ([]internal.DailyTask, error) {
	var tasks []internal.DailyTask
	if err := s.get(ctx, KeyTasks, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *SQLiteStore) SaveTasks(ctx context.Context, tasks []internal.DailyTask) error {
	if tasks == nil {
		tasks = []internal.DailyTask{}
	}
	return s.set(ctx, KeyTasks, tasks)
}

// --- Compile-time assertions ---
var _ Store = (*SQLiteStore)(nil)
