package cli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-riches/internal/api"
	"time-riches/internal/config"
	"time-riches/internal/domain"
	"time-riches/internal/pomodoro"
	"time-riches/internal/repository/sqlite"
	"time-riches/internal/state"
	"time-riches/internal/store"
	"time-riches/internal/validation"
)

var testNow = time.Date(2026, time.October, 19, 10, 0, 0, 0, time.Local)

// testEnv shares one in-memory repository across command runs.
type testEnv struct {
	repo    sqlite.Repository
	clock   *clockwork.FakeClock
	ids     int
	opts    []AppOption
	lastCfg *config.Config
	lastAPI *api.API
}

func newTestEnv(t *testing.T, opts ...AppOption) *testEnv {
	t.Helper()
	repo, err := config.CreateTestRepository(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return &testEnv{repo: repo, clock: clockwork.NewFakeClockAt(testNow), opts: opts}
}

func (e *testEnv) build(ctx context.Context, cfg *config.Config) (*App, error) {
	st, err := state.Load(ctx, store.New(e.repo, slog.Default()),
		state.WithClock(e.clock),
		state.WithIDGenerator(func() string { e.ids++; return fmt.Sprintf("id%06d-test", e.ids) }),
	)
	if err != nil {
		return nil, err
	}
	timer := pomodoro.New(st, pomodoro.WithClock(e.clock), pomodoro.WithCategory(cfg.Timer.Category))
	a := api.New(st, timer, api.WithValidator(validation.NewValidatorWithLimits(cfg.ValidationLimits())))
	e.lastCfg = cfg
	e.lastAPI = a

	opts := append([]AppOption{WithCloser(func(context.Context) error {
		timer.Close()
		return nil
	})}, e.opts...)
	return NewApp(a, cfg, opts...), nil
}

// run executes one command line against a fresh root command.
func (e *testEnv) run(args ...string) (string, error) {
	cfg := config.NewConfig()
	cfg.Display.NoColor = true
	root := NewRootCommand(cfg, e.build)

	var out bytes.Buffer
	root.SetOutput(&out, &out)
	root.SetArgs(args)
	err := root.Execute(context.Background())
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(args...)
	require.NoError(t, err)
	return out
}

func TestTaskAddAndList(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "task", "add", "Write", "report", "--due", "2026-10-20")
	assert.Contains(t, out, "Added task id000001")
	assert.Contains(t, out, "[ ] Write report id000001  medium · Work · due 2026-10-20")

	env.mustRun(t, "task", "add", "Gym", "-c", "health", "-p", "low", "-s", "completed")

	out = env.mustRun(t, "task", "list")
	assert.Contains(t, out, "To do (1)")
	assert.Contains(t, out, "Completed (1)")
	assert.Contains(t, out, "[x] Gym id000002  low · Health")
	assert.NotContains(t, out, "In progress")

	out = env.mustRun(t, "task", "list", "REPORT")
	assert.Contains(t, out, "Write report")
	assert.NotContains(t, out, "Gym")

	out = env.mustRun(t, "task", "list", "nothing")
	assert.Contains(t, out, "No tasks found")
}

func TestTaskAdd_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{name: "blank title", args: []string{"task", "add", "  "}, message: "title is required"},
		{name: "bad priority", args: []string{"task", "add", "x", "-p", "urgent"}, message: "priority has invalid value"},
		{name: "bad due date", args: []string{"task", "add", "x", "--due", "tomorrow"}, message: "expected YYYY-MM-DD"},
		{name: "missing title", args: []string{"task", "add"}, message: "requires at least 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.run(tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)

			out := env.mustRun(t, "task", "list")
			assert.Contains(t, out, "No tasks found")
		})
	}
}

func TestTaskUpdateDoneDelete(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "task", "add", "Read", "--due", "2026-10-20")
	env.mustRun(t, "task", "add", "Write")

	out := env.mustRun(t, "task", "update", "id000001", "--status", "in_progress", "--clear-due", "--title", "Read book")
	assert.Contains(t, out, "Updated task id000001")
	assert.Contains(t, out, "[~] Read book")
	assert.NotContains(t, out, "due")

	out = env.mustRun(t, "task", "done", "id000002")
	assert.Contains(t, out, "Completed: Write")
	out = env.mustRun(t, "task", "done", "id000002-test")
	assert.Contains(t, out, "Reopened: Write")

	_, err := env.run("task", "done", "id00000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matches more than one task")

	_, err = env.run("task", "delete", "zzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task not found: zzz")

	_, err = env.run("task", "update", "id000001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no fields to change")

	out = env.mustRun(t, "task", "delete", "id000001")
	assert.Contains(t, out, "Deleted task id000001")

	out = env.mustRun(t, "task", "list")
	assert.NotContains(t, out, "Read book")
	assert.Contains(t, out, "Write")
}

func TestToday(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "task", "add", "Standup", "--due", "2026-10-19", "-s", "completed")
	env.mustRun(t, "task", "add", "Review", "--due", "2026-10-19")
	env.mustRun(t, "task", "add", "Later", "--due", "2026-10-25")

	out := env.mustRun(t, "today")
	assert.Contains(t, out, "Today, 2026-10-19")
	assert.Contains(t, out, "1/2 completed")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "Focus time:   0.0 h")
	assert.Contains(t, out, "Review")
	assert.NotContains(t, out, "Later")
}

func TestToday_Sessions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	st, err := state.Load(ctx, store.New(env.repo, slog.Default()), state.WithClock(env.clock))
	require.NoError(t, err)
	start := time.Date(2026, time.October, 19, 9, 5, 0, 0, time.Local)
	_, err = st.AddTimeEntry(ctx, domain.TimeEntryFields{
		Type:       domain.EntryTypePomodoro,
		Mode:       domain.PhaseWork,
		Duration:   1500,
		StartTime:  start,
		EndTime:    start.Add(25 * time.Minute),
		CategoryID: "study",
	})
	require.NoError(t, err)

	out := env.mustRun(t, "today")
	assert.Contains(t, out, "Sessions")
	assert.Contains(t, out, "09:05-09:30")
	assert.Contains(t, out, "25 min")
	assert.Contains(t, out, "Focus time:   0.4 h")

	out = env.mustRun(t, "today", "--time-format", "3:04PM")
	assert.Contains(t, out, "9:05AM-9:30AM")
}

func TestCalendar(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "task", "add", "Dentist", "--due", "2026-10-19", "-c", "health")

	out := env.mustRun(t, "calendar")
	assert.Contains(t, out, "October 2026")
	assert.Contains(t, out, "Su  Mo  Tu  We  Th  Fr  Sa")
	assert.Contains(t, out, "18  19* 20")
	assert.Contains(t, out, "2026-10-19 [ ] ● Dentist")

	out = env.mustRun(t, "calendar", "2026-11")
	assert.Contains(t, out, "November 2026")
	assert.NotContains(t, out, "Dentist")

	_, err := env.run("calendar", "2026-13")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected YYYY-MM")
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "task", "add", "a", "--due", "2026-10-19", "-s", "completed")
	env.mustRun(t, "task", "add", "b", "--due", "2026-10-18")

	out := env.mustRun(t, "stats")
	assert.Contains(t, out, "2 (1 completed)")
	assert.Contains(t, out, "Avg productivity: 50%")
	assert.Contains(t, out, "Streak:           1 days")
	assert.Contains(t, out, "No focus sessions yet")
	assert.Contains(t, out, "Mon 2026-10-19")
	assert.Contains(t, out, "Tue 2026-10-13")
}

func TestSettingsAndTheme(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "settings")
	assert.Contains(t, out, "Focus:       25 min")
	assert.Contains(t, out, "health")

	out = env.mustRun(t, "settings", "--work", "50", "--break", "10")
	assert.Contains(t, out, "Focus:       50 min")
	assert.Contains(t, out, "Short break: 10 min")
	assert.Equal(t, 3000, env.lastAPI.TimerStatus().Remaining)

	_, err := env.run("settings", "--work", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update settings")

	out = env.mustRun(t, "theme")
	assert.Contains(t, out, "Theme: dark")
	out = env.mustRun(t, "theme")
	assert.Contains(t, out, "Theme: light")
}

func TestFocus(t *testing.T) {
	var got FocusOptions
	var status pomodoro.Status
	env := newTestEnv(t, WithFocusRunner(func(ctx context.Context, a *api.API, opts FocusOptions) error {
		got = opts
		status = a.StartTimer()
		return nil
	}))

	env.mustRun(t, "focus", "--category", "study", "--metrics-addr", "127.0.0.1:0")

	assert.Equal(t, "study", got.CategoryID)
	assert.True(t, got.NoColor)
	assert.Equal(t, "study", status.CategoryID)
	assert.Equal(t, pomodoro.StateRunning, status.State)
	assert.Equal(t, "127.0.0.1:0", env.lastCfg.Metrics.Addr)
	assert.Equal(t, "study", env.lastCfg.Timer.Category)
}

func TestTaskCategoryFlag_LeavesTimerCategory(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun(t, "task", "add", "Dentist", "-c", "health")

	assert.Equal(t, domain.DefaultCategoryID, env.lastCfg.Timer.Category)
	assert.Equal(t, domain.DefaultCategoryID, env.lastAPI.TimerStatus().CategoryID)
}

func TestFocus_NoRunner(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("focus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "focus view unavailable")
}

func TestGlobalFlagOverrides(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun(t, "--db-dir", "/tmp/tr-test", "--title-max-length", "5", "today")
	assert.Equal(t, "/tmp/tr-test", env.lastCfg.Database.Dir)
	assert.Equal(t, 5, env.lastCfg.Validation.TitleMaxLength)

	_, err := env.run("--title-max-length", "5", "task", "add", "too long title")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title must be at most 5 characters long")

	_, err = env.run("--log-format", "xml", "today")
	assert.Error(t, err)
}

func TestApp_CloseRunsClosersInReverse(t *testing.T) {
	var order []int
	app := NewApp(nil, nil,
		WithCloser(func(context.Context) error { order = append(order, 1); return nil }),
		WithCloser(func(context.Context) error { order = append(order, 2); return fmt.Errorf("boom") }),
	)

	err := app.Close(context.Background())
	assert.EqualError(t, err, "boom")
	assert.Equal(t, []int{2, 1}, order)
	assert.NoError(t, app.Close(context.Background()))
}
