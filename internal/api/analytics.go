package api

import (
	"slices"

	"time-riches/internal/domain"
	"time-riches/internal/pomodoro"
	"time-riches/internal/stats"
)

// Dashboard is the landing view.
type Dashboard struct {
	Date       domain.Date
	Today      stats.TodayStats
	TodayTasks []TaskView
	Sessions   []SessionView
	Timer      pomodoro.Status
}

// SessionView is a recorded timer phase with its category resolved.
type SessionView struct {
	domain.TimeEntry
	Category domain.Category
}

// Analytics is the history view.
type Analytics struct {
	AllTime      stats.AllTimeStats
	Distribution []stats.CategoryShare
	Trend        []stats.DayStats
}

// Dashboard returns today's figures, tasks and timer state.
func (a *API) Dashboard() Dashboard {
	return Dashboard{
		Date:       a.Today(),
		Today:      a.stats.Today(),
		TodayTasks: a.TodayTasks(),
		Sessions:   a.Sessions(a.Today()),
		Timer:      a.timer.Status(),
	}
}

// Sessions returns the entries started on d, oldest first.
func (a *API) Sessions(d domain.Date) []SessionView {
	entries := a.state.TimeEntriesOn(d)
	out := make([]SessionView, 0, len(entries))
	for _, e := range entries {
		out = append(out, SessionView{TimeEntry: e, Category: a.state.Category(e.CategoryID)})
	}
	slices.SortStableFunc(out, func(x, y SessionView) int { return x.StartTime.Compare(y.StartTime) })
	return out
}

// Analytics returns all-time totals, category distribution and the trend.
func (a *API) Analytics() Analytics {
	return Analytics{
		AllTime:      a.stats.AllTime(),
		Distribution: a.stats.CategoryDistribution(),
		Trend:        a.stats.Trend(),
	}
}
