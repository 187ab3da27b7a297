package api

import (
	"time"

	"time-riches/internal/domain"
	"time-riches/internal/errors"
	"time-riches/internal/stats"
)

// CalendarEvent is a task shown on its due day.
type CalendarEvent struct {
	TaskID    string
	Title     string
	Color     string
	Completed bool
}

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date    domain.Date
	InMonth bool
	IsToday bool
	Events  []CalendarEvent
	Stats   stats.DayStats
}

// CalendarMonth is a month laid out in Sunday-first weeks, padded with the
// neighbouring months' days.
type CalendarMonth struct {
	Year  int
	Month time.Month
	Weeks [][]CalendarDay
}

// CalendarMonth builds the grid for year/month.
func (a *API) CalendarMonth(year int, month time.Month) (CalendarMonth, error) {
	if month < time.January || month > time.December {
		return CalendarMonth{}, errors.NewInvalidInputError("month", int(month), "must be between 1 and 12")
	}

	first := domain.Date{Year: year, Month: month, Day: 1}
	last := domain.DateOf(first.Time(time.UTC).AddDate(0, 1, -1))
	start := first.AddDays(-int(first.Weekday()))
	end := last.AddDays(6 - int(last.Weekday()))

	tasks := a.state.Tasks()
	today := a.Today()
	out := CalendarMonth{Year: year, Month: month}

	var week []CalendarDay
	for d := start; ; d = d.AddDays(1) {
		week = append(week, CalendarDay{
			Date:    d,
			InMonth: d.Month == month,
			IsToday: d == today,
			Events:  a.events(tasks, d),
			Stats:   stats.Day(tasks, d),
		})
		if len(week) == 7 {
			out.Weeks = append(out.Weeks, week)
			week = nil
		}
		if d == end {
			break
		}
	}
	return out, nil
}

// DayEvents returns the tasks due on d.
func (a *API) DayEvents(d domain.Date) []CalendarEvent {
	return a.events(a.state.Tasks(), d)
}

func (a *API) events(tasks []domain.Task, d domain.Date) []CalendarEvent {
	events := []CalendarEvent{}
	for _, t := range tasks {
		if !t.DueOn(d) {
			continue
		}
		events = append(events, CalendarEvent{
			TaskID:    t.ID,
			Title:     t.Title,
			Color:     a.state.Category(t.CategoryID).Color,
			Completed: t.IsCompleted(),
		})
	}
	return events
}
