package state

import (
	"context"

	"time-riches/internal/domain"
	"time-riches/internal/logging"
)

// AddTimeEntry appends a time entry with a fresh id and creation time.
func (s *State) AddTimeEntry(ctx context.Context, fields domain.TimeEntryFields) (domain.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := domain.TimeEntry{
		ID:         s.newID(),
		Type:       fields.Type,
		Mode:       fields.Mode,
		Duration:   fields.Duration,
		StartTime:  fields.StartTime,
		EndTime:    fields.EndTime,
		CategoryID: fields.CategoryID,
		CreatedAt:  s.clock.Now(),
	}
	s.entries = append(s.entries, entry)
	s.logger.Debug("time entry recorded",
		logging.EntryID(entry.ID),
		logging.Phase(string(entry.Mode)),
		logging.Seconds(entry.Duration))

	return entry, s.persistLocked(ctx)
}

// TimeEntries returns every entry in insertion order.
func (s *State) TimeEntries() []domain.TimeEntry {
	return s.filterEntries(func(domain.TimeEntry) bool { return true })
}

// TimeEntriesOn returns entries whose start time falls on d.
func (s *State) TimeEntriesOn(d domain.Date) []domain.TimeEntry {
	return s.filterEntries(func(e domain.TimeEntry) bool { return d.Contains(e.StartTime) })
}

// CompletedWorkSessions counts pomodoro work entries over the whole history.
func (s *State) CompletedWorkSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.entries {
		if e.IsWorkSession() {
			n++
		}
	}
	return n
}

func (s *State) filterEntries(keep func(domain.TimeEntry) bool) []domain.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.TimeEntry{}
	for _, e := range s.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
