package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"time-riches/internal/api"
	"time-riches/internal/domain"
	"time-riches/internal/errors"
)

// TaskCommand handles task add, list, update, done and delete.
type TaskCommand struct {
	api          *api.API
	out          *printer
	errorHandler *ErrorHandler
}

// NewTaskCommand creates a new task command handler
func NewTaskCommand(app *App, out *printer) *TaskCommand {
	return &TaskCommand{api: app.api, out: out, errorHandler: NewErrorHandler()}
}

// Add creates a task from fields.
func (c *TaskCommand) Add(ctx context.Context, fields domain.TaskFields) error {
	task, err := c.api.AddTask(ctx, fields)
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}
	c.out.printf("Added task %s\n", shortID(task.ID))
	c.out.task(task)
	return nil
}

// List prints tasks matching query grouped by status.
func (c *TaskCommand) List(query string, status domain.Status) error {
	groups, err := c.api.SearchTasks(query, status)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}
	if len(groups) == 0 {
		c.out.println("No tasks found")
		return nil
	}
	for i, g := range groups {
		if i > 0 {
			c.out.println("")
		}
		c.out.printf("%s (%d)\n", c.out.heading(statusLabel(g.Status)), len(g.Tasks))
		c.out.tasks(g.Tasks)
	}
	return nil
}

// Update applies patch to the task referenced by ref.
func (c *TaskCommand) Update(ctx context.Context, ref string, patch domain.TaskPatch) error {
	id, err := c.resolve(ref)
	if err != nil {
		return c.errorHandler.Handle("update task", err)
	}
	task, err := c.api.UpdateTask(ctx, id, patch)
	if err != nil {
		return c.errorHandler.Handle("update task", err)
	}
	c.out.printf("Updated task %s\n", shortID(task.ID))
	c.out.task(task)
	return nil
}

// Toggle flips the task between completed and todo.
func (c *TaskCommand) Toggle(ctx context.Context, ref string) error {
	id, err := c.resolve(ref)
	if err != nil {
		return c.errorHandler.Handle("toggle task", err)
	}
	task, err := c.api.ToggleTaskStatus(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("toggle task", err)
	}
	if task.IsCompleted() {
		c.out.printf("Completed: %s\n", task.Title)
	} else {
		c.out.printf("Reopened: %s\n", task.Title)
	}
	return nil
}

// Delete removes the task referenced by ref.
func (c *TaskCommand) Delete(ctx context.Context, ref string) error {
	id, err := c.resolve(ref)
	if err != nil {
		return c.errorHandler.Handle("delete task", err)
	}
	if err := c.api.DeleteTask(ctx, id); err != nil {
		return c.errorHandler.Handle("delete task", err)
	}
	c.out.printf("Deleted task %s\n", shortID(id))
	return nil
}

// resolve maps a full id or a unique id prefix to a task id.
func (c *TaskCommand) resolve(ref string) (string, error) {
	if _, err := c.api.Task(ref); err == nil {
		return ref, nil
	}

	groups, err := c.api.SearchTasks("", "")
	if err != nil {
		return "", err
	}
	var matches []string
	for _, g := range groups {
		for _, t := range g.Tasks {
			if strings.HasPrefix(t.ID, ref) {
				matches = append(matches, t.ID)
			}
		}
	}
	switch len(matches) {
	case 0:
		return "", errors.NewNotFoundError("task", ref)
	case 1:
		return matches[0], nil
	default:
		return "", errors.NewInvalidInputError("id", ref, "matches more than one task")
	}
}

// taskFlags are the task field flags shared by add and update.
type taskFlags struct {
	title       string
	description string
	priority    string
	status      string
	due         string
	category    string
	clearDue    bool
}

func (f *taskFlags) register(cmd *cobra.Command, withTitle bool) {
	flags := cmd.Flags()
	if withTitle {
		flags.StringVar(&f.title, "title", "", "Task title")
	}
	flags.StringVarP(&f.description, "description", "d", "", "Task description")
	flags.StringVarP(&f.priority, "priority", "p", "", "Priority: low, medium, high")
	flags.StringVarP(&f.status, "status", "s", "", "Status: todo, in_progress, completed")
	flags.StringVar(&f.due, "due", "", "Due date (YYYY-MM-DD)")
	flags.StringVarP(&f.category, "category", "c", "", "Category id")
}

func parseDue(s string) (*domain.Date, error) {
	d, err := domain.ParseDate(s)
	if err != nil {
		return nil, errors.NewInvalidInputError("due", s, "expected YYYY-MM-DD")
	}
	return &d, nil
}

func (f *taskFlags) fields(title string) (domain.TaskFields, error) {
	fields := domain.TaskFields{
		Title:       title,
		Description: f.description,
		Priority:    domain.Priority(f.priority),
		Status:      domain.Status(f.status),
		CategoryID:  f.category,
	}
	if f.due != "" {
		due, err := parseDue(f.due)
		if err != nil {
			return fields, err
		}
		fields.DueDate = due
	}
	return fields, nil
}

func (f *taskFlags) patch(cmd *cobra.Command) (domain.TaskPatch, error) {
	flags := cmd.Flags()
	var patch domain.TaskPatch
	if flags.Changed("title") {
		patch.Title = &f.title
	}
	if flags.Changed("description") {
		patch.Description = &f.description
	}
	if flags.Changed("priority") {
		p := domain.Priority(f.priority)
		patch.Priority = &p
	}
	if flags.Changed("status") {
		s := domain.Status(f.status)
		patch.Status = &s
	}
	if flags.Changed("category") {
		patch.CategoryID = &f.category
	}
	if flags.Changed("due") {
		due, err := parseDue(f.due)
		if err != nil {
			return patch, err
		}
		patch.DueDate = due
	}
	patch.ClearDueDate = f.clearDue
	return patch, nil
}

func (r *RootCommand) newTaskCommand() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage tasks",
	}

	var addFlags taskFlags
	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Long: `Add a task. Priority defaults to medium, status to todo and category to work.

Examples:
  tr task add "Write report"
  tr task add Call the dentist --due 2026-10-20 --category health -p high`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.withTimeout(cmd)
			defer cancel()

			fields, err := addFlags.fields(strings.Join(args, " "))
			if err != nil {
				return NewErrorHandler().Handle("add task", err)
			}
			return NewTaskCommand(r.app, r.printer(cmd)).Add(ctx, fields)
		},
	}
	addFlags.register(addCmd, false)

	var listStatus string
	listCmd := &cobra.Command{
		Use:     "list [text]",
		Aliases: []string{"ls", "search"},
		Short:   "List and search tasks",
		Long: `List tasks grouped by status. Text filters match titles and descriptions
case-insensitively.

Examples:
  tr task list
  tr task list report
  tr task list --status completed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewTaskCommand(r.app, r.printer(cmd)).List(strings.Join(args, " "), domain.Status(listStatus))
		},
	}
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "Only show tasks with this status")

	var updateFlags taskFlags
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change task fields",
		Long: `Change the fields given as flags. The id may be any unique prefix.

Example:
  tr task update 3f2a --title "Write final report" --status in_progress`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.withTimeout(cmd)
			defer cancel()

			patch, err := updateFlags.patch(cmd)
			if err != nil {
				return NewErrorHandler().Handle("update task", err)
			}
			return NewTaskCommand(r.app, r.printer(cmd)).Update(ctx, args[0], patch)
		},
	}
	updateFlags.register(updateCmd, true)
	updateCmd.Flags().BoolVar(&updateFlags.clearDue, "clear-due", false, "Remove the due date")

	doneCmd := &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a task between completed and todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.withTimeout(cmd)
			defer cancel()
			return NewTaskCommand(r.app, r.printer(cmd)).Toggle(ctx, args[0])
		},
	}

	deleteCmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.withTimeout(cmd)
			defer cancel()
			return NewTaskCommand(r.app, r.printer(cmd)).Delete(ctx, args[0])
		},
	}

	taskCmd.AddCommand(addCmd, listCmd, updateCmd, doneCmd, deleteCmd)
	return taskCmd
}
