// Package state holds the authoritative in-memory collections and writes
// them back through the store after every mutation.
package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"time-riches/internal/domain"
	"time-riches/internal/logging"
	"time-riches/internal/metrics"
	"time-riches/internal/store"
)

// Persister loads and saves full snapshots.
type Persister interface {
	Load(ctx context.Context) (store.Snapshot, error)
	Save(ctx context.Context, snap store.Snapshot) error
}

// State is the domain model. All methods are safe for concurrent use.
type State struct {
	mu sync.RWMutex

	persister Persister
	clock     clockwork.Clock
	recorder  metrics.Recorder
	logger    *slog.Logger
	newID     func() string

	tasks      []domain.Task
	entries    []domain.TimeEntry
	categories []domain.Category
	settings   domain.Settings

	// dirty is set while memory holds changes the store has not accepted.
	dirty bool
}

// Option configures a State.
type Option func(*State)

// WithClock sets the clock used for timestamps and "today".
func WithClock(c clockwork.Clock) Option {
	return func(s *State) { s.clock = c }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *State) { s.recorder = metrics.OrNoop(r) }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *State) { s.logger = l }
}

// WithIDGenerator replaces uuid generation, mainly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *State) { s.newID = fn }
}

// New builds a State from an already loaded snapshot.
func New(snap store.Snapshot, p Persister, opts ...Option) *State {
	s := &State{
		persister:  p,
		clock:      clockwork.NewRealClock(),
		recorder:   metrics.NoopRecorder{},
		logger:     slog.Default(),
		newID:      uuid.NewString,
		tasks:      append([]domain.Task{}, snap.Tasks...),
		entries:    append([]domain.TimeEntry{}, snap.TimeEntries...),
		categories: append([]domain.Category{}, snap.Categories...),
		settings:   snap.Settings,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted snapshot and builds a State from it.
func Load(ctx context.Context, p Persister, opts ...Option) (*State, error) {
	snap, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}
	return New(snap, p, opts...), nil
}

// Clock returns the clock used for timestamps.
func (s *State) Clock() clockwork.Clock {
	return s.clock
}

// Snapshot returns a copy of every collection.
func (s *State) Snapshot() store.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Flush retries a write that failed earlier. It does nothing when the store
// already holds the latest state, so a long-running process does not
// overwrite records another process changed since.
func (s *State) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	return s.persistLocked(ctx)
}

// Dirty reports whether some change has not been written yet.
func (s *State) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

func (s *State) snapshotLocked() store.Snapshot {
	return store.Snapshot{
		Tasks:       cloneTasks(s.tasks),
		TimeEntries: append([]domain.TimeEntry{}, s.entries...),
		Categories:  append([]domain.Category{}, s.categories...),
		Settings:    s.settings,
	}
}

// persistLocked writes all four records. The caller holds mu, so writes
// land in mutation order.
func (s *State) persistLocked(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	s.dirty = true
	started := s.clock.Now()
	err := s.persister.Save(ctx, s.snapshotLocked())
	s.recorder.ObserveSave(s.clock.Since(started), err == nil)
	if err != nil {
		s.logger.Error("failed to persist state", logging.Error(err))
		return err
	}
	s.dirty = false
	return nil
}

func cloneTask(t domain.Task) domain.Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}

func cloneTasks(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		out[i] = cloneTask(t)
	}
	return out
}
