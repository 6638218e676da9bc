package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AnasSayed27/GoalsApp/internal"
	"github.com/AnasSayed27/GoalsApp/internal/storage"
)

func newStreakService(t *testing.T, today string) *StreakService {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir(), internal.NopLogger())
	assert.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	d, err := internal.ParseDate(today)
	assert.NoError(t, err)
	return NewStreakService(store, internal.NopLogger(), func() time.Time { return d.Time() })
}

func TestUpdateHoursAndStats(t *testing.T) {
	svc := newStreakService(t, "2024-01-04")
	ctx := context.Background()

	for _, e := range []struct {
		date  string
		hours float64
	}{
		{"2024-01-01", 3},
		{"2024-01-02", 5},
		{"2024-01-03", 1},
		{"2024-01-04", 4},
	} {
		_, err := svc.UpdateHours(ctx, &HoursRequest{Date: e.date, Hours: e.hours})
		assert.NoError(t, err)
	}

	stats, hours, err := svc.Stats(ctx)
	assert.NoError(t, err)
	assert.Len(t, hours, 4)
	assert.Equal(t, 2, stats.LongestStreak)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 3, stats.TotalDaysWon)
	assert.Equal(t, "Warrior", stats.Level.Title)
}

func TestUpdateHoursOverwritesSameDay(t *testing.T) {
	svc := newStreakService(t, "2024-01-04")
	ctx := context.Background()

	_, err := svc.UpdateHours(ctx, &HoursRequest{Date: "2024-01-04", Hours: 1})
	assert.NoError(t, err)
	stats, err := svc.UpdateHours(ctx, &HoursRequest{Date: "2024-01-04", Hours: 3})
	assert.NoError(t, err)

	assert.Equal(t, 1, stats.TotalDaysWon)
	assert.InDelta(t, 3.0, stats.TotalHours, 1e-9)
}

func TestUpdateHoursValidation(t *testing.T) {
	svc := newStreakService(t, "2024-01-04")
	ctx := context.Background()

	_, err := svc.UpdateHours(ctx, &HoursRequest{Date: "04/01/2024", Hours: 2})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.UpdateHours(ctx, &HoursRequest{Hours: 2})
	assert.Error(t, err)

	_, err = svc.UpdateHours(ctx, &HoursRequest{Date: "2024-01-04", Hours: -1})
	assert.Error(t, err)
}

func TestUpdateHoursPrunesOldEntries(t *testing.T) {
	svc := newStreakService(t, "2024-07-15")
	ctx := context.Background()

	_, err := svc.UpdateHours(ctx, &HoursRequest{Date: "2023-12-01", Hours: 4})
	assert.NoError(t, err)
	_, err = svc.UpdateHours(ctx, &HoursRequest{Date: "2024-07-14", Hours: 4})
	assert.NoError(t, err)

	_, hours, err := svc.Stats(ctx)
	assert.NoError(t, err)
	assert.NotContains(t, hours, "2023-12-01")
	assert.Contains(t, hours, "2024-07-14")
}

func TestClearStreakData(t *testing.T) {
	svc := newStreakService(t, "2024-01-04")
	ctx := context.Background()

	_, err := svc.UpdateHours(ctx, &HoursRequest{Date: "2024-01-03", Hours: 5})
	assert.NoError(t, err)
	assert.NoError(t, svc.Clear(ctx))

	stats, hours, err := svc.Stats(ctx)
	assert.NoError(t, err)
	assert.Empty(t, hours)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, "Slacker", stats.Level.Title)
}
