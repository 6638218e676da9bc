package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/AnasSayed27/GoalsApp/internal"
)

// FileStore keeps every logical key in its own JSON file inside a data
// directory. Writes are debounced through background workers and flushed
// synchronously on Close; each write goes through a temp file and rename so
// a crash never leaves a half-written document.
type FileStore struct {
	goals []internal.Goal
	hours internal.HoursLog
	tasks []internal.DailyTask
	mu    sync.RWMutex

	goalsFile   string
	streaksFile string
	tasksFile   string

	saveGoalsChan chan struct{}
	saveHoursChan chan struct{}
	saveTasksChan chan struct{}
	shutdownChan  chan struct{}
	saveDelay     time.Duration
	wg            sync.WaitGroup

	logger internal.Logger
}

func NewFileStore(dataDir string, logger internal.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		logger.Errorf("storage: failed to create data dir %s: %v", dataDir, err)
		return nil, err
	}
	s := &FileStore{
		hours:         internal.HoursLog{},
		goalsFile:     filepath.Join(dataDir, "goals.json"),
		streaksFile:   filepath.Join(dataDir, "streaks.json"),
		tasksFile:     filepath.Join(dataDir, "tasks.json"),
		saveGoalsChan: make(chan struct{}, 1),
		saveHoursChan: make(chan struct{}, 1),
		saveTasksChan: make(chan struct{}, 1),
		shutdownChan:  make(chan struct{}),
		saveDelay:     500 * time.Millisecond,
		logger:        logger,
	}

	s.loadAll()

	s.wg.Add(3)
	go s.saveWorker(s.saveGoalsChan, s.persistGoals)
	go s.saveWorker(s.saveHoursChan, s.persistHours)
	go s.saveWorker(s.saveTasksChan, s.persistTasks)

	return s, nil
}

// loadAll reads every key. A corrupted or missing document degrades to the
// empty default rather than failing startup.
func (s *FileStore) loadAll() {
	var goals []internal.Goal
	if s.loadJSON(s.goalsFile, &goals) {
		s.goals = goals
	}

	var data internal.StreakData
	if s.loadJSON(s.streaksFile, &data) && data.HeatmapData != nil {
		s.hours = data.HeatmapData
	}

	var tasks []internal.DailyTask
	if s.loadJSON(s.tasksFile, &tasks) {
		s.tasks = tasks
	}
}

func (s *FileStore) loadJSON(path string, dest interface{}) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warnf("storage: failed to read %s, using empty default: %v", path, err)
		}
		return false
	}
	if len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Warnf("storage: malformed data in %s, using empty default: %v", path, err)
		return false
	}
	return true
}

func atomicWriteFileJSON(path string, data interface{}) error {
	tempFile := path + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, path)
}

func (s *FileStore) persistGoals() error {
	s.mu.RLock()
	goals := internal.CloneGoals(s.goals)
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.goalsFile, goals)
}

func (s *FileStore) persistHours() error {
	s.mu.RLock()
	data := internal.StreakData{HeatmapData: s.hours.Clone()}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.streaksFile, data)
}

func (s *FileStore) persistTasks() error {
	s.mu.RLock()
	tasks := append([]internal.DailyTask(nil), s.tasks...)
	s.mu.RUnlock()
	if tasks == nil {
		tasks = []internal.DailyTask{}
	}
	return atomicWriteFileJSON(s.tasksFile, tasks)
}

// saveWorker batches save signals so bursts of mutations produce one disk
// write.
func (s *FileStore) saveWorker(signal <-chan struct{}, persist func() error) {
	defer s.wg.Done()
	// The timer stays disarmed until the first mutation, so opening the store
	// never rewrites untouched files.
	timer := time.NewTimer(s.saveDelay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-signal:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := persist(); err != nil {
				s.logger.Errorf("storage: error saving: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func signalSave(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Close stops the workers and flushes pending data synchronously.
func (s *FileStore) Close() error {
	close(s.shutdownChan)
	s.wg.Wait()

	if err := s.persistGoals(); err != nil {
		return err
	}
	if err := s.persistHours(); err != nil {
		return err
	}
	return s.persistTasks()
}

// --- GoalRepository ---

func (s *FileStore) LoadGoals(ctx context.Context) ([]internal.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return internal.CloneGoals(s.goals), nil
}

func (s *FileStore) SaveGoals(ctx context.Context, goals []internal.Goal) error {
	s.mu.Lock()
	s.goals = internal.CloneGoals(goals)
	s.mu.Unlock()
	signalSave(s.saveGoalsChan)
	return nil
}

// --- StreakRepository ---

func (s *FileStore) LoadHours(ctx context.Context) (internal.HoursLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hours.Clone(), nil
}

func (s *FileStore) SaveHours(ctx context.Context, hours internal.HoursLog) error {
	s.mu.Lock()
	s.hours = hours.Clone()
	s.mu.Unlock()
	signalSave(s.saveHoursChan)
	return nil
}

func (s *FileStore) ClearHours(ctx context.Context) error {
	return s.SaveHours(ctx, internal.HoursLog{})
}

// --- TaskRepository ---

func (s *FileStore) LoadTasks(ctx context.Context) ([]internal.DailyTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]internal.DailyTask(nil), s.tasks...), nil
}

func (s *FileStore) SaveTasks(ctx context.Context, tasks []internal.DailyTask) error {
	s.mu.Lock()
	s.tasks = append([]internal.DailyTask(nil), tasks...)
	s.mu.Unlock()
	signalSave(s.saveTasksChan)
	return nil
}

// --- Compile-time assertions ---
var _ Store = (*FileStore)(nil)
