// Package autosave periodically flushes the domain model to storage.
package autosave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	"time-riches/internal/logging"
	"time-riches/internal/metrics"
)

// DefaultInterval is the flush period.
const DefaultInterval = 30 * time.Second

// Flusher writes the current state.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Autosaver wraps a gocron scheduler running a single flush job.
type Autosaver struct {
	scheduler gocron.Scheduler
	flusher   Flusher
	interval  time.Duration
	timeout   time.Duration
	recorder  metrics.Recorder
	logger    *slog.Logger
	clock     clockwork.Clock
}

// Option configures an Autosaver.
type Option func(*Autosaver)

func WithRecorder(r metrics.Recorder) Option {
	return func(a *Autosaver) { a.recorder = metrics.OrNoop(r) }
}

func WithLogger(l *slog.Logger) Option { return func(a *Autosaver) { a.logger = l } }

// WithClock drives the scheduler from c.
func WithClock(c clockwork.Clock) Option { return func(a *Autosaver) { a.clock = c } }

// WithTimeout bounds each flush.
func WithTimeout(d time.Duration) Option { return func(a *Autosaver) { a.timeout = d } }

// New creates an Autosaver that flushes every interval once started.
func New(f Flusher, interval time.Duration, opts ...Option) (*Autosaver, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	a := &Autosaver{
		flusher:  f,
		interval: interval,
		timeout:  10 * time.Second,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	var schedOpts []gocron.SchedulerOption
	if a.clock != nil {
		schedOpts = append(schedOpts, gocron.WithClock(a.clock))
	}
	s, err := gocron.NewScheduler(schedOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	a.scheduler = s

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(a.flush),
		gocron.WithName("autosave"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create autosave job: %w", err)
	}

	return a, nil
}

// Interval returns the flush period.
func (a *Autosaver) Interval() time.Duration {
	return a.interval
}

// Start begins periodic flushing.
func (a *Autosaver) Start() {
	a.logger.Debug("starting autosave", slog.Duration("interval", a.interval))
	a.scheduler.Start()
}

// Stop shuts the scheduler down and performs a final flush.
func (a *Autosaver) Stop(ctx context.Context) error {
	a.logger.Debug("stopping autosave")
	if err := a.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop autosave: %w", err)
	}
	return a.flushContext(ctx)
}

func (a *Autosaver) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	_ = a.flushContext(ctx)
}

func (a *Autosaver) flushContext(ctx context.Context) error {
	err := a.flusher.Flush(ctx)
	a.recorder.IncAutosave(err == nil)
	if err != nil {
		a.logger.Error("autosave failed", logging.Operation("autosave"), logging.Error(err))
		return err
	}
	return nil
}
