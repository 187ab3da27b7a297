package state

import (
	"context"

	"time-riches/internal/domain"
	"time-riches/internal/logging"
	"time-riches/internal/metrics"
)

// AddTask appends a new task with a fresh id and timestamps. Fields are
// stored as given; validation happens at the API boundary.
func (s *State) AddTask(ctx context.Context, fields domain.TaskFields) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	task := domain.Task{
		ID:          s.newID(),
		Title:       fields.Title,
		Description: fields.Description,
		Priority:    fields.Priority,
		Status:      fields.Status,
		CategoryID:  fields.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if fields.DueDate != nil {
		d := *fields.DueDate
		task.DueDate = &d
	}

	s.tasks = append(s.tasks, task)
	s.recorder.IncTaskMutation(metrics.MutationAdd)
	s.logger.Debug("task added", logging.TaskID(task.ID))

	return cloneTask(task), s.persistLocked(ctx)
}

// UpdateTask merges patch into the task with the given id and refreshes
// UpdatedAt. A nil task with a nil error means no task has that id.
func (s *State) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return nil, nil
	}

	updated := patch.Apply(s.tasks[idx])
	updated.ID = s.tasks[idx].ID
	updated.CreatedAt = s.tasks[idx].CreatedAt
	updated.UpdatedAt = s.clock.Now()
	s.tasks[idx] = updated

	s.recorder.IncTaskMutation(metrics.MutationUpdate)
	s.logger.Debug("task updated", logging.TaskID(id))

	out := cloneTask(updated)
	return &out, s.persistLocked(ctx)
}

// DeleteTask removes every task with the given id. Deleting an unknown id
// still persists and is not an error.
func (s *State) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	s.tasks = kept

	if removed > 0 {
		s.recorder.IncTaskMutation(metrics.MutationDelete)
		s.logger.Debug("task deleted", logging.TaskID(id))
	}
	return s.persistLocked(ctx)
}

// Tasks returns every task in insertion order.
func (s *State) Tasks() []domain.Task {
	return s.filterTasks(func(domain.Task) bool { return true })
}

// Task returns the task with the given id, or nil.
func (s *State) Task(id string) *domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return nil
	}
	t := cloneTask(s.tasks[idx])
	return &t
}

// TodayTasks returns tasks due on the current local day.
func (s *State) TodayTasks() []domain.Task {
	return s.TasksDueOn(domain.Today(s.clock.Now()))
}

// TasksDueOn returns tasks whose due date is d.
func (s *State) TasksDueOn(d domain.Date) []domain.Task {
	return s.filterTasks(func(t domain.Task) bool { return t.DueOn(d) })
}

// TasksByStatus returns tasks with the given status.
func (s *State) TasksByStatus(status domain.Status) []domain.Task {
	return s.filterTasks(func(t domain.Task) bool { return t.Status == status })
}

// TasksByCategory returns tasks assigned to categoryID.
func (s *State) TasksByCategory(categoryID string) []domain.Task {
	return s.filterTasks(func(t domain.Task) bool { return t.CategoryID == categoryID })
}

func (s *State) filterTasks(keep func(domain.Task) bool) []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Task{}
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, cloneTask(t))
		}
	}
	return out
}

func (s *State) indexOfLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
