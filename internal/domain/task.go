package domain

import "time"

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status is the workflow state of a task. Any status may move to any other.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task represents a task in the domain model.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	DueDate     *Date     `json:"dueDate,omitempty"`
	CategoryID  string    `json:"categoryId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskFields are the caller-supplied fields of a new task.
type TaskFields struct {
	Title       string
	Description string
	Priority    Priority
	Status      Status
	DueDate     *Date
	CategoryID  string
}

// TaskPatch carries a partial update; nil fields are left unchanged.
// ClearDueDate removes the due date and takes precedence over DueDate.
type TaskPatch struct {
	Title        *string
	Description  *string
	Priority     *Priority
	Status       *Status
	DueDate      *Date
	ClearDueDate bool
	CategoryID   *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil && p.Status == nil &&
		p.DueDate == nil && !p.ClearDueDate && p.CategoryID == nil
}

// Apply returns a copy of t with the patch merged in. Timestamps are not touched.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.ClearDueDate {
		t.DueDate = nil
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	return t
}

// IsCompleted reports whether the task is marked completed.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// DueOn reports whether the task has a due date equal to d.
func (t Task) DueOn(d Date) bool {
	return t.DueDate != nil && *t.DueDate == d
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}
