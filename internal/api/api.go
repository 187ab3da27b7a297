// Package api is the boundary between front ends and the core: validated
// commands and read-only views over the domain model, timer and statistics.
package api

import (
	stderrors "errors"
	"log/slog"

	"time-riches/internal/domain"
	"time-riches/internal/errors"
	"time-riches/internal/pomodoro"
	"time-riches/internal/state"
	"time-riches/internal/stats"
	"time-riches/internal/validation"
)

// Timer is the part of the focus timer the API drives.
type Timer interface {
	Start()
	Pause()
	Resume()
	Reset()
	FocusLost()
	SettingsChanged()
	SetCategory(id string)
	Status() pomodoro.Status
	OnChange(fn func(pomodoro.Status))
}

// API exposes the application's commands and queries.
type API struct {
	state         *state.State
	timer         Timer
	stats         *stats.Engine
	validator     *validation.Validator
	taskValidator *validation.TaskValidator
	logger        *slog.Logger
}

// Option configures an API.
type Option func(*API)

// WithValidator replaces the default validator.
func WithValidator(v *validation.Validator) Option {
	return func(a *API) { a.validator = v }
}

func WithLogger(l *slog.Logger) Option { return func(a *API) { a.logger = l } }

// New creates an API over st and timer.
func New(st *state.State, timer Timer, opts ...Option) *API {
	a := &API{
		state:     st,
		timer:     timer,
		validator: validation.NewValidator(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.taskValidator = validation.NewTaskValidator(a.validator)
	a.stats = stats.NewEngine(st, st.Clock())
	return a
}

// TaskView is a task together with its resolved category.
type TaskView struct {
	domain.Task
	Category domain.Category
}

func (a *API) view(t domain.Task) TaskView {
	return TaskView{Task: t, Category: a.state.Category(t.CategoryID)}
}

func (a *API) views(tasks []domain.Task) []TaskView {
	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, a.view(t))
	}
	return out
}

// Today returns the current local calendar day.
func (a *API) Today() domain.Date {
	return domain.Today(a.state.Clock().Now())
}

// rejected wraps a field-level validation failure in an AppError.
func rejected(err error) error {
	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		return errors.NewValidationError(ve.GetUserFriendlyMessage(), err)
	}
	return errors.NewValidationError(err.Error(), err)
}
