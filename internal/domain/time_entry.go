package domain

import (
	"time"
)

// EntryTypePomodoro tags entries recorded by the focus timer.
const EntryTypePomodoro = "pomodoro"

// Phase is the countdown mode of the focus timer.
type Phase string

const (
	PhaseWork      Phase = "work"
	PhaseBreak     Phase = "break"
	PhaseLongBreak Phase = "longBreak"
)

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	switch p {
	case PhaseWork, PhaseBreak, PhaseLongBreak:
		return true
	}
	return false
}

// Label returns a human readable name for the phase.
func (p Phase) Label() string {
	switch p {
	case PhaseBreak:
		return "Short break"
	case PhaseLongBreak:
		return "Long break"
	default:
		return "Focus"
	}
}

// TimeEntry is an immutable record of one completed timer phase.
type TimeEntry struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Mode       Phase     `json:"mode"`
	Duration   int       `json:"duration"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	CategoryID string    `json:"categoryId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TimeEntryFields are the caller-supplied fields of a new entry.
type TimeEntryFields struct {
	Type       string
	Mode       Phase
	Duration   int
	StartTime  time.Time
	EndTime    time.Time
	CategoryID string
}

// IsWorkSession reports whether the entry is a completed pomodoro work phase.
func (te TimeEntry) IsWorkSession() bool {
	return te.Type == EntryTypePomodoro && te.Mode == PhaseWork
}

// Elapsed returns the recorded duration.
func (te TimeEntry) Elapsed() time.Duration {
	return time.Duration(te.Duration) * time.Second
}
