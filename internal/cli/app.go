package cli

import (
	"context"
	stderrors "errors"

	"time-riches/internal/api"
	"time-riches/internal/config"
)

// FocusOptions configures an interactive focus session.
type FocusOptions struct {
	CategoryID string
	NoColor    bool
}

// FocusRunner runs the interactive focus view until the user quits.
type FocusRunner func(ctx context.Context, a *api.API, opts FocusOptions) error

// App represents the main CLI application
type App struct {
	api     *api.API
	config  *config.Config
	focus   FocusRunner
	closers []func(context.Context) error
}

// AppOption configures an App.
type AppOption func(*App)

// WithFocusRunner sets the runner used by the focus command.
func WithFocusRunner(fr FocusRunner) AppOption {
	return func(a *App) { a.focus = fr }
}

// WithCloser registers fn to run, in reverse order, when the App closes.
func WithCloser(fn func(context.Context) error) AppOption {
	return func(a *App) { a.closers = append(a.closers, fn) }
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(apiInstance *api.API, cfg *config.Config, opts ...AppOption) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		api:    apiInstance,
		config: cfg,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// API returns the application API.
func (a *App) API() *api.API {
	return a.api
}

// Close releases resources in reverse registration order.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return stderrors.Join(errs...)
}

// Builder opens an App once configuration, including flag overrides, is final.
type Builder func(ctx context.Context, cfg *config.Config) (*App, error)
