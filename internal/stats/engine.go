package stats

import (
	"github.com/jonboulle/clockwork"

	"time-riches/internal/domain"
)

// Source supplies fresh copies of the collections the engine reads.
type Source interface {
	Tasks() []domain.Task
	TimeEntries() []domain.TimeEntry
	Categories() []domain.Category
}

// Engine computes statistics against a live source.
type Engine struct {
	source Source
	clock  clockwork.Clock
}

// NewEngine creates an Engine. A nil clock uses the real clock.
func NewEngine(source Source, clock clockwork.Clock) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{source: source, clock: clock}
}

// Today returns today's dashboard figures.
func (e *Engine) Today() TodayStats {
	return Today(e.source.Tasks(), e.source.TimeEntries(), e.today())
}

// AllTime returns history-wide totals including the streak.
func (e *Engine) AllTime() AllTimeStats {
	return AllTime(e.source.Tasks(), e.source.TimeEntries(), e.today())
}

// Streak returns the current completion streak in days.
func (e *Engine) Streak() int {
	return Streak(e.source.Tasks(), e.today())
}

// CategoryDistribution returns time spent per category.
func (e *Engine) CategoryDistribution() []CategoryShare {
	return CategoryDistribution(e.source.TimeEntries(), e.source.Categories())
}

// Trend returns the last TrendDays days of completion figures.
func (e *Engine) Trend() []DayStats {
	return Trend(e.source.Tasks(), e.today(), TrendDays)
}

// Day returns the completion figures for d.
func (e *Engine) Day(d domain.Date) DayStats {
	return Day(e.source.Tasks(), d)
}

func (e *Engine) today() domain.Date {
	return domain.Today(e.clock.Now())
}
