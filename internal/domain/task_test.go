package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestPriorityAndStatus_Valid(t *testing.T) {
	assert.True(t, PriorityHigh.Valid())
	assert.False(t, Priority("urgent").Valid())

	for _, s := range Statuses {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("done").Valid())
}

func TestTaskPatch_Apply(t *testing.T) {
	due := Date{2026, time.October, 20}
	base := Task{
		ID:       "t1",
		Title:    "Write report",
		Priority: PriorityMedium,
		Status:   StatusTodo,
		DueDate:  &due,
	}

	tests := []struct {
		name     string
		patch    TaskPatch
		expected func(Task) Task
	}{
		{
			name:     "empty patch changes nothing",
			patch:    TaskPatch{},
			expected: func(t Task) Task { return t },
		},
		{
			name:  "status only",
			patch: TaskPatch{Status: func() *Status { s := StatusCompleted; return &s }()},
			expected: func(t Task) Task {
				t.Status = StatusCompleted
				return t
			},
		},
		{
			name:  "title and category",
			patch: TaskPatch{Title: strPtr("Send report"), CategoryID: strPtr("study")},
			expected: func(t Task) Task {
				t.Title = "Send report"
				t.CategoryID = "study"
				return t
			},
		},
		{
			name:  "clear due date",
			patch: TaskPatch{ClearDueDate: true},
			expected: func(t Task) Task {
				t.DueDate = nil
				return t
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected(base), tt.patch.Apply(base))
		})
	}
}

func TestTaskPatch_ApplyDoesNotAliasDueDate(t *testing.T) {
	due := Date{2026, time.October, 20}
	patched := TaskPatch{DueDate: &due}.Apply(Task{})

	due.Day = 25
	assert.Equal(t, 20, patched.DueDate.Day)
}

func TestTaskPatch_IsEmpty(t *testing.T) {
	assert.True(t, TaskPatch{}.IsEmpty())
	assert.False(t, TaskPatch{ClearDueDate: true}.IsEmpty())
	assert.False(t, TaskPatch{Title: strPtr("x")}.IsEmpty())
}

func TestTask_DueOn(t *testing.T) {
	day := Date{2026, time.October, 19}

	assert.True(t, Task{DueDate: &day}.DueOn(day))
	assert.False(t, Task{DueDate: &day}.DueOn(day.AddDays(1)))
	assert.False(t, Task{}.DueOn(day))
}

func TestTask_String(t *testing.T) {
	assert.Equal(t, "My Task", Task{Title: "My Task"}.String())
	assert.True(t, Task{Status: StatusCompleted}.IsCompleted())
}
