// Package pomodoro implements the focus timer: a state machine over
// Idle/Running/Paused and the Work/Break/LongBreak phase cycle, driven by a
// one second tick source the timer owns.
package pomodoro

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"time-riches/internal/domain"
	"time-riches/internal/logging"
	"time-riches/internal/metrics"
)

// RunState is the timer's run state.
type RunState string

const (
	StateIdle    RunState = "idle"
	StateRunning RunState = "running"
	StatePaused  RunState = "paused"
)

// LongBreakEvery is the work-session cadence that earns a long break.
const LongBreakEvery = 4

// SessionStore is the part of the domain model the timer reads and appends to.
type SessionStore interface {
	Settings() domain.Settings
	AddTimeEntry(ctx context.Context, fields domain.TimeEntryFields) (domain.TimeEntry, error)
	CompletedWorkSessions() int
}

// Status is a point-in-time view of the timer.
type Status struct {
	State      RunState
	Phase      domain.Phase
	Remaining  int
	Total      int
	CategoryID string
}

// Progress returns the elapsed fraction of the current phase in [0,1].
func (s Status) Progress() float64 {
	if s.Total <= 0 {
		return 0
	}
	p := float64(s.Total-s.Remaining) / float64(s.Total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// tickHandle is one live tick source. Closing stop ends its goroutine.
type tickHandle struct {
	ticker clockwork.Ticker
	stop   chan struct{}
}

// Timer is the pomodoro state machine. A single instance is expected per process.
type Timer struct {
	mu sync.Mutex

	sessions SessionStore
	notifier Notifier
	clock    clockwork.Clock
	interval time.Duration
	recorder metrics.Recorder
	logger   *slog.Logger
	listener func(Status)

	state      RunState
	phase      domain.Phase
	remaining  int
	total      int
	categoryID string
	handle     *tickHandle
}

// Option configures a Timer.
type Option func(*Timer)

func WithNotifier(n Notifier) Option { return func(t *Timer) { t.notifier = n } }

func WithClock(c clockwork.Clock) Option { return func(t *Timer) { t.clock = c } }

// WithTickInterval overrides the one second tick period.
func WithTickInterval(d time.Duration) Option { return func(t *Timer) { t.interval = d } }

func WithRecorder(r metrics.Recorder) Option {
	return func(t *Timer) { t.recorder = metrics.OrNoop(r) }
}

func WithLogger(l *slog.Logger) Option { return func(t *Timer) { t.logger = l } }

// WithCategory sets the category attached to recorded entries.
func WithCategory(id string) Option {
	return func(t *Timer) {
		if id != "" {
			t.categoryID = id
		}
	}
}

// New returns an Idle timer in the Work phase loaded with the work duration.
func New(sessions SessionStore, opts ...Option) *Timer {
	t := &Timer{
		sessions:   sessions,
		notifier:   NoopNotifier{},
		clock:      clockwork.NewRealClock(),
		interval:   time.Second,
		recorder:   metrics.NoopRecorder{},
		logger:     slog.Default(),
		state:      StateIdle,
		phase:      domain.PhaseWork,
		categoryID: domain.DefaultCategoryID,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.loadPhaseLocked()
	return t
}

// OnChange registers fn to receive the status after every transition and
// tick. fn runs outside the timer lock and may call back into the timer.
func (t *Timer) OnChange(fn func(Status)) {
	t.mu.Lock()
	t.listener = fn
	t.mu.Unlock()
}

// Status returns the current status.
func (t *Timer) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statusLocked()
}

// Start resumes a paused countdown, otherwise reloads the current phase and
// starts counting down from its full duration.
func (t *Timer) Start() {
	t.transition(func() {
		if t.state == StatePaused {
			t.runLocked()
			return
		}
		t.resetLocked()
		t.runLocked()
	})
}

// Pause stops a running countdown, keeping the remaining time.
func (t *Timer) Pause() {
	t.transition(t.pauseLocked)
}

// Resume continues a paused countdown.
func (t *Timer) Resume() {
	t.transition(func() {
		if t.state == StatePaused {
			t.runLocked()
		}
	})
}

// Reset cancels any countdown and reloads the current phase's duration.
func (t *Timer) Reset() {
	t.transition(t.resetLocked)
}

// FocusLost pauses a running timer. Regaining focus does not resume.
func (t *Timer) FocusLost() {
	t.transition(func() {
		if t.state == StateRunning {
			t.logger.Info("focus lost, pausing timer", logging.Phase(string(t.phase)))
			t.pauseLocked()
		}
	})
}

// SettingsChanged reloads the phase duration when the timer is idle so the
// next start uses the new length.
func (t *Timer) SettingsChanged() {
	t.transition(func() {
		if t.state == StateIdle {
			t.loadPhaseLocked()
		}
	})
}

// SetCategory sets the category recorded on subsequent entries.
func (t *Timer) SetCategory(id string) {
	t.transition(func() { t.categoryID = id })
}

// Tick advances a running countdown by one second and completes the phase
// when it reaches zero. It is a no-op unless the timer is running.
func (t *Timer) Tick(ctx context.Context) {
	t.transition(func() { t.tickLocked(ctx) })
}

// Close stops the tick source without changing the run state.
func (t *Timer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
}

func (t *Timer) transition(fn func()) {
	t.mu.Lock()
	fn()
	status := t.statusLocked()
	listener := t.listener
	t.mu.Unlock()

	if listener != nil {
		listener(status)
	}
}

func (t *Timer) statusLocked() Status {
	return Status{
		State:      t.state,
		Phase:      t.phase,
		Remaining:  t.remaining,
		Total:      t.total,
		CategoryID: t.categoryID,
	}
}

func (t *Timer) loadPhaseLocked() {
	t.total = t.sessions.Settings().PhaseSeconds(t.phase)
	t.remaining = t.total
}

func (t *Timer) runLocked() {
	t.cancelLocked()
	t.state = StateRunning
	t.recorder.SetTimerRunning(true)

	h := &tickHandle{ticker: t.clock.NewTicker(t.interval), stop: make(chan struct{})}
	t.handle = h
	go t.run(h)
}

func (t *Timer) pauseLocked() {
	if t.state != StateRunning {
		return
	}
	t.cancelLocked()
	t.state = StatePaused
	t.recorder.SetTimerRunning(false)
}

func (t *Timer) resetLocked() {
	t.cancelLocked()
	t.state = StateIdle
	t.recorder.SetTimerRunning(false)
	t.loadPhaseLocked()
}

// cancelLocked stops the live tick source. It does not wait for the tick
// goroutine; a tick already in flight sees a stale handle and is dropped.
func (t *Timer) cancelLocked() {
	if t.handle == nil {
		return
	}
	t.handle.ticker.Stop()
	close(t.handle.stop)
	t.handle = nil
}

func (t *Timer) run(h *tickHandle) {
	for {
		select {
		case <-h.stop:
			return
		case <-h.ticker.Chan():
			t.tickFrom(h)
		}
	}
}

func (t *Timer) tickFrom(h *tickHandle) {
	t.mu.Lock()
	if t.handle != h {
		t.mu.Unlock()
		return
	}
	t.tickLocked(context.Background())
	status := t.statusLocked()
	listener := t.listener
	t.mu.Unlock()

	if listener != nil {
		listener(status)
	}
}

func (t *Timer) tickLocked(ctx context.Context) {
	if t.state != StateRunning {
		return
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining == 0 {
		t.completeLocked(ctx)
	}
}

func (t *Timer) completeLocked(ctx context.Context) {
	t.cancelLocked()
	finished := t.phase

	if err := t.notifier.Notify(ctx, finished); err != nil {
		t.recorder.IncNotificationFailure()
		t.logger.Warn("phase notification failed", logging.Phase(string(finished)), logging.Error(err))
	}

	t.recordLocked(ctx, finished)
	t.recorder.IncPhaseCompleted(string(finished))
	t.switchPhaseLocked()
	t.resetLocked()
}

func (t *Timer) recordLocked(ctx context.Context, finished domain.Phase) {
	duration := t.total - t.remaining
	end := t.clock.Now()
	entry, err := t.sessions.AddTimeEntry(ctx, domain.TimeEntryFields{
		Type:       domain.EntryTypePomodoro,
		Mode:       finished,
		Duration:   duration,
		StartTime:  end.Add(-time.Duration(duration) * time.Second),
		EndTime:    end,
		CategoryID: t.categoryID,
	})
	if err != nil {
		t.logger.Error("failed to persist time entry", logging.EntryID(entry.ID), logging.Error(err))
		return
	}
	t.logger.Info("phase completed", logging.Phase(string(finished)), logging.Seconds(duration))
}

// switchPhaseLocked picks the next phase. The long-break check counts every
// work entry ever recorded, including the one just appended.
func (t *Timer) switchPhaseLocked() {
	if t.phase != domain.PhaseWork {
		t.phase = domain.PhaseWork
		return
	}
	if t.sessions.CompletedWorkSessions()%LongBreakEvery == 0 {
		t.phase = domain.PhaseLongBreak
		return
	}
	t.phase = domain.PhaseBreak
}
