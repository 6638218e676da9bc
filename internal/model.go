package internal

import "time"

// Task is a single to-do item inside a goal week. It is owned by exactly one
// week.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Week is a contiguous span of at most 7 days holding an ordered task list.
// Weeks are stored as an ordered array; the slice index is the week's
// chronological position.
type Week struct {
	StartDate Date   `json:"startDate"`
	EndDate   Date   `json:"endDate"`
	Tasks     []Task `json:"tasks"`
}

// Goal is a node in the goal tree. Its own weeks cover its date range minus
// the ranges carved out by direct sub-goals.
type Goal struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate Date      `json:"startDate"`
	EndDate   Date      `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
	Weeks     []Week    `json:"weeks"`
	SubGoals  []Goal    `json:"subgoals"`

	// Progress is derived on read and never persisted.
	Progress float64 `json:"progress,omitempty"`
}

// Clone returns a deep copy of the goal tree.
func (g Goal) Clone() Goal {
	c := g
	c.Weeks = make([]Week, len(g.Weeks))
	for i, w := range g.Weeks {
		c.Weeks[i] = w
		c.Weeks[i].Tasks = append([]Task(nil), w.Tasks...)
	}
	c.SubGoals = make([]Goal, len(g.SubGoals))
	for i, sg := range g.SubGoals {
		c.SubGoals[i] = sg.Clone()
	}
	return c
}

// CloneGoals deep-copies a goal list.
func CloneGoals(goals []Goal) []Goal {
	out := make([]Goal, len(goals))
	for i, g := range goals {
		out[i] = g.Clone()
	}
	return out
}

// DailyTask is an entry in the flat daily task list, independent of the goal
// hierarchy.
type DailyTask struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Duration  float64   `json:"duration"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// HoursLog maps a YYYY-MM-DD date string to hours logged on that day. It is
// the sole persisted state of the streak subsystem; everything else is
// derived from it.
type HoursLog map[string]float64

func (h HoursLog) Clone() HoursLog {
	out := make(HoursLog, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// StreakData is the wrapped shape persisted under the streaks key.
type StreakData struct {
	HeatmapData HoursLog `json:"heatmapData"`
}

// LevelInfo describes the monthly discipline tier. Derived, never persisted.
type LevelInfo struct {
	Title   string       `json:"title"`
	Icon    string       `json:"icon"`
	Color   string       `json:"color"`
	Score   int          `json:"score"`
	Details LevelDetails `json:"details"`
}

type LevelDetails struct {
	Consistency int     `json:"consistency"`
	Intensity   int     `json:"intensity"`
	AvgHours    float64 `json:"avgHours"`
	WinRate     int     `json:"winRate"`
}
