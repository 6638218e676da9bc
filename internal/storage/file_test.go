package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AnasSayed27/GoalsApp/internal"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewFileStore(dir, internal.NopLogger())
	assert.NoError(t, err)
	return store, dir
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, dir := newTestFileStore(t)
	ctx := context.Background()

	start, _ := internal.ParseDate("2024-01-01")
	end, _ := internal.ParseDate("2024-01-14")
	goals := []internal.Goal{{ID: "g1", Name: "Learn Go", StartDate: start, EndDate: end}}
	assert.NoError(t, store.SaveGoals(ctx, goals))

	hours := internal.HoursLog{"2024-01-01": 3.5}
	assert.NoError(t, store.SaveHours(ctx, hours))

	tasks := []internal.DailyTask{{ID: "t1", Name: "Review PRs", Duration: 1.5}}
	assert.NoError(t, store.SaveTasks(ctx, tasks))

	gotGoals, err := store.LoadGoals(ctx)
	assert.NoError(t, err)
	assert.Len(t, gotGoals, 1)
	assert.Equal(t, "Learn Go", gotGoals[0].Name)

	gotHours, err := store.LoadHours(ctx)
	assert.NoError(t, err)
	assert.InDelta(t, 3.5, gotHours["2024-01-01"], 1e-9)

	gotTasks, err := store.LoadTasks(ctx)
	assert.NoError(t, err)
	assert.Len(t, gotTasks, 1)

	// Close flushes synchronously; a fresh store over the same dir sees it all.
	assert.NoError(t, store.Close())
	reopened, err := NewFileStore(dir, internal.NopLogger())
	assert.NoError(t, err)
	defer reopened.Close()

	gotGoals, err = reopened.LoadGoals(ctx)
	assert.NoError(t, err)
	assert.Len(t, gotGoals, 1)
	gotHours, err = reopened.LoadHours(ctx)
	assert.NoError(t, err)
	assert.InDelta(t, 3.5, gotHours["2024-01-01"], 1e-9)
	gotTasks, err = reopened.LoadTasks(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "Review PRs", gotTasks[0].Name)
}

func TestFileStoreStreaksFileShape(t *testing.T) {
	store, dir := newTestFileStore(t)
	ctx := context.Background()

	assert.NoError(t, store.SaveHours(ctx, internal.HoursLog{"2024-01-01": 2}))
	assert.NoError(t, store.Close())

	raw, err := os.ReadFile(filepath.Join(dir, "streaks.json"))
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"heatmapData"`)
	assert.Contains(t, string(raw), `"2024-01-01"`)
}

func TestFileStoreMalformedFilesDegradeToEmpty(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "goals.json"), []byte("{not json"), 0644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "streaks.json"), []byte("[]"), 0644))

	store, err := NewFileStore(dir, internal.NopLogger())
	assert.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	goals, err := store.LoadGoals(ctx)
	assert.NoError(t, err)
	assert.Empty(t, goals)

	hours, err := store.LoadHours(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, hours)
	assert.Empty(t, hours)
}

func TestFileStoreClearHours(t *testing.T) {
	store, _ := newTestFileStore(t)
	defer store.Close()
	ctx := context.Background()

	assert.NoError(t, store.SaveHours(ctx, internal.HoursLog{"2024-01-01": 4}))
	assert.NoError(t, store.ClearHours(ctx))

	hours, err := store.LoadHours(ctx)
	assert.NoError(t, err)
	assert.Empty(t, hours)
}

func TestFileStoreLoadReturnsCopies(t *testing.T) {
	store, _ := newTestFileStore(t)
	defer store.Close()
	ctx := context.Background()

	assert.NoError(t, store.SaveHours(ctx, internal.HoursLog{"2024-01-01": 4}))
	hours, _ := store.LoadHours(ctx)
	hours["2024-01-02"] = 9

	again, _ := store.LoadHours(ctx)
	assert.Len(t, again, 1)

	start, _ := internal.ParseDate("2024-01-01")
	end, _ := internal.ParseDate("2024-01-07")
	goals := []internal.Goal{{
		ID: "g1", StartDate: start, EndDate: end,
		Weeks: []internal.Week{{StartDate: start, EndDate: end, Tasks: []internal.Task{{ID: "t1", Text: "a"}}}},
	}}
	assert.NoError(t, store.SaveGoals(ctx, goals))
	loaded, _ := store.LoadGoals(ctx)
	loaded[0].Weeks[0].Tasks[0].Text = "mutated"

	fresh, _ := store.LoadGoals(ctx)
	assert.Equal(t, "a", fresh[0].Weeks[0].Tasks[0].Text)
}

func TestFileStoreMissingFilesStartEmpty(t *testing.T) {
	store, _ := newTestFileStore(t)
	defer store.Close()
	ctx := context.Background()

	goals, err := store.LoadGoals(ctx)
	assert.NoError(t, err)
	assert.Empty(t, goals)
	tasks, err := store.LoadTasks(ctx)
	assert.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestFileStoreOpenDoesNotWrite(t *testing.T) {
	store, dir := newTestFileStore(t)
	defer store.Close()

	// The save workers stay idle until a mutation arrives: a read-only open
	// must not rewrite the data files.
	time.Sleep(3 * store.saveDelay)

	for _, name := range []string{"goals.json", "streaks.json", "tasks.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.True(t, os.IsNotExist(err), name)
	}
}

func TestAtomicWriteLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	assert.NoError(t, atomicWriteFileJSON(path, map[string]int{"a": 1}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
