// Package streak derives every displayed streak statistic from the raw
// date-to-hours log. Compute is a pure function of the log and an injected
// "today"; nothing here is cached or persisted.
package streak

import (
	"math"
	"sort"
	"time"

	"github.com/AnasSayed27/GoalsApp/internal"
)

// WinThreshold is the number of hours that makes a day count as won.
// Product-policy constant.
const WinThreshold = 2.5

// RetentionMonths bounds how far back the persisted log is kept when pruned.
const RetentionMonths = 6

// intensityTargetHours is the average that earns the full intensity score.
const intensityTargetHours = 6.0

// Stats is the full derived bundle recomputed on every change.
type Stats struct {
	CurrentStreak    int                `json:"currentStreak"`
	LongestStreak    int                `json:"longestStreak"`
	TotalHours       float64            `json:"totalHours"`
	AverageHours     float64            `json:"averageHours"`
	TotalDaysWon     int                `json:"totalDaysWon"`
	ThisWeekScore    int                `json:"thisWeekScore"`
	ThisWeekHours    float64            `json:"thisWeekHours"`
	ThisWeekAvg      float64            `json:"thisWeekAvg"`
	AvgIntensity     float64            `json:"avgIntensity"`
	MonthlyScore     int                `json:"monthlyScore"`
	ConsistencyScore float64            `json:"consistencyScore"`
	TrendPercentage  float64            `json:"trendPercentage"`
	Level            internal.LevelInfo `json:"levelInfo"`
}

// Tier is one band of the monthly discipline score.
type Tier struct {
	Min   int
	Title string
	Icon  string
	Color string
}

// Tiers is ordered by descending threshold; the first tier whose minimum is
// at or below the score wins.
var Tiers = []Tier{
	{Min: 90, Title: "Titan", Icon: "🏆", Color: "#f1c40f"},
	{Min: 70, Title: "Warrior", Icon: "⚔️", Color: "#e67e22"},
	{Min: 50, Title: "Guardian", Icon: "🛡️", Color: "#3498db"},
	{Min: 25, Title: "Novice", Icon: "🌱", Color: "#2ecc71"},
	{Min: 0, Title: "Slacker", Icon: "😴", Color: "#95a5a6"},
}

// TierFor maps a monthly score to its tier.
func TierFor(score int) Tier {
	for _, t := range Tiers {
		if score >= t.Min {
			return t
		}
	}
	return Tiers[len(Tiers)-1]
}

// Compute derives all streak statistics from the hours log. Entries with
// unparseable date keys are skipped. An empty log yields all-zero stats and
// the lowest tier.
func Compute(log internal.HoursLog, today time.Time) Stats {
	todayDate := internal.DateOf(today)

	var wins []internal.Date
	totalHours := 0.0
	recorded := 0
	for key, hours := range log {
		d, err := internal.ParseDate(key)
		if err != nil {
			continue
		}
		totalHours += hours
		recorded++
		if hours >= WinThreshold {
			wins = append(wins, d)
		}
	}
	sort.Slice(wins, func(i, j int) bool { return wins[i].Before(wins[j]) })

	stats := Stats{
		TotalHours:   totalHours,
		TotalDaysWon: len(wins),
	}
	if recorded > 0 {
		stats.AverageHours = totalHours / float64(recorded)
	}

	// Streaks over consecutive win days. The trailing run stays "current"
	// for one grace day: the latest win may be today or yesterday.
	if len(wins) > 0 {
		run := 1
		longest := 1
		for i := 1; i < len(wins); i++ {
			if wins[i].DaysSince(wins[i-1]) == 1 {
				run++
			} else {
				if run > longest {
					longest = run
				}
				run = 1
			}
		}
		if run > longest {
			longest = run
		}
		stats.LongestStreak = longest
		if todayDate.DaysSince(wins[len(wins)-1]) <= 1 {
			stats.CurrentStreak = run
		}
	}

	hoursOn := func(d internal.Date) float64 { return log[d.String()] }
	wonOn := func(d internal.Date) bool { return hoursOn(d) >= WinThreshold }

	todayHours := hoursOn(todayDate)
	hasLogToday := todayHours > 0
	isWinToday := todayHours >= WinThreshold

	// Aggregates end at today only once something is logged for it, so a
	// fresh day does not drop the displayed scores.
	end := todayDate
	if !hasLogToday {
		end = todayDate.AddDays(-1)
	}

	monday := end.AddDays(-mondayDiff(end))
	for d := monday; !d.After(end); d = d.AddDays(1) {
		if wonOn(d) {
			stats.ThisWeekScore++
		}
		stats.ThisWeekHours += hoursOn(d)
	}

	for i := 0; i < 7; i++ {
		stats.ThisWeekAvg += hoursOn(end.AddDays(-i))
	}
	stats.ThisWeekAvg /= 7

	for i := 0; i < 90; i++ {
		stats.AvgIntensity += hoursOn(end.AddDays(-i))
	}
	stats.AvgIntensity /= 90

	for i := 0; i < 30; i++ {
		if wonOn(end.AddDays(-i)) {
			stats.MonthlyScore++
		}
	}
	stats.ConsistencyScore = float64(stats.MonthlyScore) / 30

	// Week-over-week trend: the Monday-anchored current week against the
	// immediately preceding full Monday-Sunday week.
	prevWeekHours := 0.0
	for d := monday.AddDays(-7); d.Before(monday); d = d.AddDays(1) {
		prevWeekHours += hoursOn(d)
	}
	switch {
	case prevWeekHours == 0 && stats.ThisWeekHours > 0:
		stats.TrendPercentage = 100
	case prevWeekHours == 0:
		stats.TrendPercentage = 0
	default:
		stats.TrendPercentage = (stats.ThisWeekHours - prevWeekHours) / prevWeekHours * 100
	}

	stats.Level = monthlyLevel(log, end, hasLogToday, isWinToday)
	return stats
}

// mondayDiff is the distance back to the Monday of d's week.
func mondayDiff(d internal.Date) int {
	if d.Weekday() == time.Sunday {
		return 6
	}
	return int(d.Weekday()) - 1
}

// monthlyLevel scores the calendar month to date and maps it to a tier.
// Consistency (win rate, max 60) plus intensity (average hours on won days
// against the target, max 40).
func monthlyLevel(log internal.HoursLog, end internal.Date, hasLogToday, isWinToday bool) internal.LevelInfo {
	dayOfMonth := end.Day()
	first := end.AddDays(-(dayOfMonth - 1))

	daysWon := 0
	monthHours := 0.0
	for d := first; !d.After(end); d = d.AddDays(1) {
		hours := log[d.String()]
		if hours >= WinThreshold {
			daysWon++
		}
		monthHours += hours
	}

	// Today only joins the divisor once it is a win; a partial log keeps it
	// out so the win rate cannot drop before the day's entry is final.
	divisor := dayOfMonth
	if hasLogToday && !isWinToday {
		divisor--
	}

	winRate := 0.0
	if divisor > 0 {
		winRate = float64(daysWon) / float64(divisor)
	}
	consistencyPoints := winRate * 60

	effectiveAvg := 0.0
	if daysWon > 0 {
		effectiveAvg = monthHours / float64(daysWon)
	}
	intensityPoints := math.Min(effectiveAvg/intensityTargetHours*40, 40)

	score := int(math.Round(consistencyPoints + intensityPoints))
	tier := TierFor(score)

	return internal.LevelInfo{
		Title: tier.Title,
		Icon:  tier.Icon,
		Color: tier.Color,
		Score: score,
		Details: internal.LevelDetails{
			Consistency: int(math.Round(consistencyPoints)),
			Intensity:   int(math.Round(intensityPoints)),
			AvgHours:    math.Round(effectiveAvg*10) / 10,
			WinRate:     int(math.Round(winRate * 100)),
		},
	}
}

// Prune drops entries older than the retention window. Runs on the
// persistence path only; Compute always sees the log it was given.
func Prune(log internal.HoursLog, today time.Time) internal.HoursLog {
	cutoff := internal.DateOf(today.AddDate(0, -RetentionMonths, 0))
	out := make(internal.HoursLog, len(log))
	for key, hours := range log {
		d, err := internal.ParseDate(key)
		if err != nil {
			continue
		}
		if !d.Before(cutoff) {
			out[key] = hours
		}
	}
	return out
}
