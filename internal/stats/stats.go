// Package stats derives dashboard and analytics aggregates from snapshots of
// the domain model. Nothing is cached; every call recomputes from its inputs.
package stats

import (
	"math"

	"time-riches/internal/domain"
)

// StreakWindow is how many days, ending today, the streak walk inspects.
const StreakWindow = 30

// TrendDays is the length of the productivity trend.
const TrendDays = 7

// TodayStats summarises the current day.
type TodayStats struct {
	TotalTasks     int
	CompletedTasks int
	FocusSeconds   int
	FocusHours     float64
	Productivity   int
}

// AllTimeStats summarises the full history.
type AllTimeStats struct {
	TotalTasks      int
	CompletedTasks  int
	FocusSeconds    int
	AvgProductivity int
	StreakDays      int
}

// CategoryShare is the time spent in one category.
type CategoryShare struct {
	CategoryID string
	Name       string
	Color      string
	Seconds    int
	Hours      float64
}

// DayStats is the per-day row of the trend and the calendar.
type DayStats struct {
	Date           domain.Date
	TotalTasks     int
	CompletedTasks int
	Productivity   int
}

// Productivity is round(100*completed/total), or 0 when there are no tasks.
func Productivity(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// Hours converts seconds to hours rounded to one decimal place.
func Hours(seconds int) float64 {
	return math.Round(float64(seconds)/3600*10) / 10
}

// Day computes the due-task completion figures for d.
func Day(tasks []domain.Task, d domain.Date) DayStats {
	stats := DayStats{Date: d}
	for _, t := range tasks {
		if !t.DueOn(d) {
			continue
		}
		stats.TotalTasks++
		if t.IsCompleted() {
			stats.CompletedTasks++
		}
	}
	stats.Productivity = Productivity(stats.CompletedTasks, stats.TotalTasks)
	return stats
}

// Today computes the dashboard figures for today: tasks due today and focus
// time from entries that started today.
func Today(tasks []domain.Task, entries []domain.TimeEntry, today domain.Date) TodayStats {
	day := Day(tasks, today)
	out := TodayStats{
		TotalTasks:     day.TotalTasks,
		CompletedTasks: day.CompletedTasks,
		Productivity:   day.Productivity,
	}
	for _, e := range entries {
		if today.Contains(e.StartTime) {
			out.FocusSeconds += e.Duration
		}
	}
	out.FocusHours = Hours(out.FocusSeconds)
	return out
}

// AllTime computes totals over every task and entry.
func AllTime(tasks []domain.Task, entries []domain.TimeEntry, today domain.Date) AllTimeStats {
	out := AllTimeStats{TotalTasks: len(tasks)}
	for _, t := range tasks {
		if t.IsCompleted() {
			out.CompletedTasks++
		}
	}
	for _, e := range entries {
		out.FocusSeconds += e.Duration
	}
	out.AvgProductivity = Productivity(out.CompletedTasks, out.TotalTasks)
	out.StreakDays = Streak(tasks, today)
	return out
}

// Streak walks back from today counting days with at least one completed
// task due that day. Today may be empty without breaking the streak; any
// earlier empty day ends it.
func Streak(tasks []domain.Task, today domain.Date) int {
	streak := 0
	for i := 0; i < StreakWindow; i++ {
		d := today.AddDays(-i)
		if hasCompletedDue(tasks, d) {
			streak++
			continue
		}
		if i > 0 {
			break
		}
	}
	return streak
}

func hasCompletedDue(tasks []domain.Task, d domain.Date) bool {
	for _, t := range tasks {
		if t.IsCompleted() && t.DueOn(d) {
			return true
		}
	}
	return false
}

// CategoryDistribution sums entry durations per category in first-seen order.
// Entries without a category count towards the default category.
func CategoryDistribution(entries []domain.TimeEntry, categories []domain.Category) []CategoryShare {
	index := map[string]int{}
	shares := []CategoryShare{}
	for _, e := range entries {
		id := e.CategoryID
		if id == "" {
			id = domain.DefaultCategoryID
		}
		i, ok := index[id]
		if !ok {
			c, _ := domain.LookupCategory(categories, id)
			i = len(shares)
			index[id] = i
			shares = append(shares, CategoryShare{CategoryID: id, Name: c.Name, Color: c.Color})
		}
		shares[i].Seconds += e.Duration
	}
	for i := range shares {
		shares[i].Hours = Hours(shares[i].Seconds)
	}
	return shares
}

// Trend returns per-day figures for the days ending today, oldest first.
func Trend(tasks []domain.Task, today domain.Date, days int) []DayStats {
	if days <= 0 {
		return []DayStats{}
	}
	out := make([]DayStats, 0, days)
	for i := days - 1; i >= 0; i-- {
		out = append(out, Day(tasks, today.AddDays(-i)))
	}
	return out
}
