package storage

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AnasSayed27/GoalsApp/internal"
)

// PostgresStore mirrors the sqlite backend's key/value shape on pgxpool.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStore(dsn string, logger internal.Logger) (*PostgresStore, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value JSONB NOT NULL)`); err != nil {
		pool.Close()
		logger.Errorf("failed to create kv table: %v", err)
		return nil, err
	}
	return &PostgresStore{pool: pool, logger: logger}, nil
}

func (p *PostgresStore) get(ctx context.Context, key string, dest interface{}) error {
	var raw []byte
	err := p.pool.QueryRow(ctx, `SELECT value FROM kv WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		p.logger.Errorf("storage: failed to read key %s: %v", key, err)
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		p.logger.Warnf("storage: malformed value under key %s, using empty default: %v", key, err)
		// A type mismatch can leave dest partially populated.
		v := reflect.ValueOf(dest).Elem()
		v.Set(reflect.Zero(v.Type()))
	}
	return nil
}

func (p *PostgresStore) set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO kv (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, raw)
	if err != nil {
		p.logger.Errorf("storage: failed to write key %s: %v", key, err)
	}
	return err
}

func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}

// --- GoalRepository ---

func (p *PostgresStore) LoadGoals(ctx context.Context) ([]internal.Goal, error) {
	var goals []internal.Goal
	if err := p.get(ctx, KeyGoals, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (p *PostgresStore) SaveGoals(ctx context.Context, goals []internal.Goal) error {
	if goals == nil {
		goals = []internal.Goal{}
	}
	return p.set(ctx, KeyGoals, goals)
}

// --- StreakRepository ---

func (p *PostgresStore) LoadHours(ctx context.Context) (internal.HoursLog, error) {
	var data internal.StreakData
	if err := p.get(ctx, KeyStreaks, &data); err != nil {
		return nil, err
	}
	if data.HeatmapData == nil {
		data.HeatmapData = internal.HoursLog{}
	}
	return data.HeatmapData, nil
}

func (p *PostgresStore) SaveHours(ctx context.Context, hours internal.HoursLog) error {
	return p.set(ctx, KeyStreaks, internal.StreakData{HeatmapData: hours})
}

func (p *PostgresStore) ClearHours(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM kv WHERE key = $1`, KeyStreaks)
	if err != nil {
		p.logger.Errorf("storage: failed to clear key %s: %v", KeyStreaks, err)
	}
	return err
}

// --- TaskRepository ---

func (p *PostgresStore) LoadTasks(ctx context.Context) ([]internal.DailyTask, error) {
	var tasks []internal.DailyTask
	if err := p.get(ctx, KeyTasks, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (p *PostgresStore) SaveTasks(ctx context.Context, tasks []internal.DailyTask) error {
	if tasks == nil {
		tasks = []internal.DailyTask{}
	}
	return p.set(ctx, KeyTasks, tasks)
}

// --- Compile-time assertions ---
var _ Store = (*PostgresStore)(nil)
