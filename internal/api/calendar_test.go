package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-riches/internal/domain"
	"time-riches/internal/errors"
)

func TestCalendarMonth_Grid(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		weeks     int
		firstDay  domain.Date
		lastDay   domain.Date
		leadingIn bool
	}{
		{
			name:      "month starting on Sunday",
			year:      2026,
			month:     time.February,
			weeks:     4,
			firstDay:  domain.Date{Year: 2026, Month: time.February, Day: 1},
			lastDay:   domain.Date{Year: 2026, Month: time.February, Day: 28},
			leadingIn: true,
		},
		{
			name:     "padded with previous month",
			year:     2026,
			month:    time.October,
			weeks:    5,
			firstDay: domain.Date{Year: 2026, Month: time.September, Day: 27},
			lastDay:  domain.Date{Year: 2026, Month: time.October, Day: 31},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestAPI(t)

			cal, err := a.CalendarMonth(tt.year, tt.month)
			require.NoError(t, err)
			require.Len(t, cal.Weeks, tt.weeks)
			for _, week := range cal.Weeks {
				require.Len(t, week, 7)
				assert.Equal(t, time.Sunday, week[0].Date.Weekday())
			}
			first := cal.Weeks[0][0]
			last := cal.Weeks[len(cal.Weeks)-1][6]
			assert.Equal(t, tt.firstDay, first.Date)
			assert.Equal(t, tt.leadingIn, first.InMonth)
			assert.Equal(t, tt.lastDay, last.Date)
		})
	}
}

func TestCalendarMonth_EventsAndToday(t *testing.T) {
	a, _ := newTestAPI(t)
	ctx := context.Background()
	today := domain.Today(testNow)

	task, err := a.AddTask(ctx, domain.TaskFields{Title: "Dentist", DueDate: &today, CategoryID: "health", Status: domain.StatusCompleted})
	require.NoError(t, err)
	_, err = a.AddTask(ctx, domain.TaskFields{Title: "Unscheduled"})
	require.NoError(t, err)

	cal, err := a.CalendarMonth(today.Year, today.Month)
	require.NoError(t, err)

	var found []CalendarDay
	for _, week := range cal.Weeks {
		for _, day := range week {
			if day.IsToday {
				found = append(found, day)
			}
		}
	}
	require.Len(t, found, 1)
	day := found[0]
	assert.Equal(t, today, day.Date)
	require.Len(t, day.Events, 1)
	assert.Equal(t, CalendarEvent{TaskID: task.ID, Title: "Dentist", Color: "#f59e0b", Completed: true}, day.Events[0])
	assert.Equal(t, 100, day.Stats.Productivity)

	assert.Equal(t, day.Events, a.DayEvents(today))
	assert.Empty(t, a.DayEvents(today.AddDays(1)))
}

func TestCalendarMonth_InvalidMonth(t *testing.T) {
	a, _ := newTestAPI(t)

	_, err := a.CalendarMonth(2026, 13)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}
