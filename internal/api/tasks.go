package api

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"time-riches/internal/domain"
	"time-riches/internal/errors"
	"time-riches/internal/logging"
)

// TaskGroup is one status bucket of a task listing.
type TaskGroup struct {
	Status domain.Status
	Tasks  []TaskView
}

// AddTask validates and creates a task. Title and description are trimmed;
// empty priority, status and category default to medium, todo and work.
func (a *API) AddTask(ctx context.Context, fields domain.TaskFields) (TaskView, error) {
	if err := a.taskValidator.ValidateTaskFields(fields); err != nil {
		return TaskView{}, rejected(err)
	}

	fields.Title = strings.TrimSpace(fields.Title)
	fields.Description = strings.TrimSpace(fields.Description)
	if fields.Priority == "" {
		fields.Priority = domain.PriorityMedium
	}
	if fields.Status == "" {
		fields.Status = domain.StatusTodo
	}
	if fields.CategoryID == "" {
		fields.CategoryID = domain.DefaultCategoryID
	}

	task, err := a.state.AddTask(ctx, fields)
	return a.view(task), err
}

// UpdateTask validates patch and applies it to the task with the given id.
func (a *API) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (TaskView, error) {
	if err := a.taskValidator.ValidateTaskPatch(patch); err != nil {
		return TaskView{}, rejected(err)
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		patch.Description = &description
	}

	task, err := a.state.UpdateTask(ctx, id, patch)
	if task == nil && err == nil {
		return TaskView{}, errors.NewNotFoundError("task", id)
	}
	if task == nil {
		return TaskView{}, err
	}
	return a.view(*task), err
}

// DeleteTask removes the task. Unknown ids are not an error.
func (a *API) DeleteTask(ctx context.Context, id string) error {
	return a.state.DeleteTask(ctx, id)
}

// ToggleTaskStatus marks a completed task todo and any other task completed.
func (a *API) ToggleTaskStatus(ctx context.Context, id string) (TaskView, error) {
	current := a.state.Task(id)
	if current == nil {
		return TaskView{}, errors.NewNotFoundError("task", id)
	}

	next := domain.StatusCompleted
	if current.IsCompleted() {
		next = domain.StatusTodo
	}
	a.logger.Debug("toggling task status", logging.TaskID(id), slog.String("status", string(next)))
	return a.UpdateTask(ctx, id, domain.TaskPatch{Status: &next})
}

// Task returns one task.
func (a *API) Task(id string) (TaskView, error) {
	task := a.state.Task(id)
	if task == nil {
		return TaskView{}, errors.NewNotFoundError("task", id)
	}
	return a.view(*task), nil
}

// TodayTasks returns tasks due today.
func (a *API) TodayTasks() []TaskView {
	return a.views(a.state.TodayTasks())
}

// TasksByCategory returns tasks assigned to categoryID.
func (a *API) TasksByCategory(categoryID string) []TaskView {
	return a.views(a.state.TasksByCategory(categoryID))
}

// SearchTasks filters tasks by a case-insensitive match on title or
// description and, when status is non-empty, by status. Results are grouped
// todo, in progress, completed; empty groups are omitted.
func (a *API) SearchTasks(query string, status domain.Status) ([]TaskGroup, error) {
	if status != "" && !status.Valid() {
		return nil, errors.NewInvalidInputError("status", status, "must be one of todo, in_progress, completed")
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(query))

	groups := make([]TaskGroup, 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		if status != "" && s != status {
			continue
		}
		group := TaskGroup{Status: s}
		for _, t := range a.state.TasksByStatus(s) {
			if needle == "" ||
				strings.Contains(fold.String(t.Title), needle) ||
				strings.Contains(fold.String(t.Description), needle) {
				group.Tasks = append(group.Tasks, a.view(t))
			}
		}
		if len(group.Tasks) > 0 {
			groups = append(groups, group)
		}
	}
	return groups, nil
}

// Categories returns every category.
func (a *API) Categories() []domain.Category {
	return a.state.Categories()
}
