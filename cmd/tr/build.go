package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"time-riches/internal/api"
	"time-riches/internal/autosave"
	"time-riches/internal/cli"
	"time-riches/internal/config"
	"time-riches/internal/logging"
	"time-riches/internal/metrics"
	"time-riches/internal/pomodoro"
	"time-riches/internal/state"
	"time-riches/internal/store"
	"time-riches/internal/tui"
	"time-riches/internal/validation"
)

// newBuilder wires storage, the domain model, the timer and the API for cfg.
// Closers run in reverse: metrics server, timer, final flush, repository.
func newBuilder(env Environment) cli.Builder {
	return func(ctx context.Context, cfg *config.Config) (*cli.App, error) {
		logger := logging.Setup(os.Stderr, cfg.LogLevel(), cfg.Logging.Format)

		var recorder metrics.Recorder = metrics.NoopRecorder{}
		var registry *prometheus.Registry
		if cfg.Metrics.Addr != "" {
			registry = prometheus.NewRegistry()
			recorder = metrics.NewPrometheusRecorder(registry)
		}

		repo, err := createRepository(ctx, env, cfg)
		if err != nil {
			return nil, err
		}
		logger.Debug("opened repository", logging.Path(cfg.GetDatabasePath()))

		st, err := state.Load(ctx, store.New(repo, logger),
			state.WithRecorder(recorder),
			state.WithLogger(logger),
		)
		if err != nil {
			_ = repo.Close()
			return nil, fmt.Errorf("failed to load data: %w", err)
		}

		var notifier pomodoro.Notifier = pomodoro.NoopNotifier{}
		if cfg.Timer.Bell {
			notifier = pomodoro.BellNotifier{W: os.Stderr}
		}
		timer := pomodoro.New(st,
			pomodoro.WithNotifier(notifier),
			pomodoro.WithTickInterval(cfg.Timer.TickInterval),
			pomodoro.WithCategory(cfg.Timer.Category),
			pomodoro.WithRecorder(recorder),
			pomodoro.WithLogger(logger),
		)

		a := api.New(st, timer,
			api.WithValidator(validation.NewValidatorWithLimits(cfg.ValidationLimits())),
			api.WithLogger(logger),
		)

		opts := []cli.AppOption{
			cli.WithFocusRunner(runFocus),
			cli.WithCloser(func(context.Context) error { return repo.Close() }),
		}

		if cfg.Autosave.Enabled {
			saver, err := autosave.New(st, cfg.Autosave.Interval,
				autosave.WithTimeout(cfg.Application.Timeout),
				autosave.WithRecorder(recorder),
				autosave.WithLogger(logger),
			)
			if err != nil {
				timer.Close()
				_ = repo.Close()
				return nil, err
			}
			saver.Start()
			opts = append(opts, cli.WithCloser(saver.Stop))
		} else {
			opts = append(opts, cli.WithCloser(st.Flush))
		}

		opts = append(opts, cli.WithCloser(func(context.Context) error {
			timer.Close()
			return nil
		}))

		if registry != nil {
			opts = append(opts, cli.WithCloser(serveMetrics(cfg.Metrics.Addr, registry, logger)))
		}

		return cli.NewApp(a, cfg, opts...), nil
	}
}

func runFocus(ctx context.Context, a *api.API, opts cli.FocusOptions) error {
	return tui.Run(ctx, a, tui.Options{NoColor: opts.NoColor})
}

// serveMetrics exposes registry on addr and returns the server's shutdown.
func serveMetrics(addr string, registry *prometheus.Registry, logger *slog.Logger) func(context.Context) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metrics.HTTPHandler(registry),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("serving metrics", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", logging.Error(err))
		}
	}()
	return srv.Shutdown
}
