// Package tui is the interactive focus view: a bubbletea program over the
// pomodoro timer that pauses when the terminal loses focus.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"time-riches/internal/api"
	"time-riches/internal/domain"
	"time-riches/internal/pomodoro"
)

// Options configures the focus view.
type Options struct {
	NoColor bool
}

// statusMsg carries a timer status pushed by the timer's change listener.
type statusMsg pomodoro.Status

// statusFeed holds at most the latest unread status.
type statusFeed chan pomodoro.Status

func (f statusFeed) push(s pomodoro.Status) {
	for {
		select {
		case f <- s:
			return
		default:
		}
		select {
		case <-f:
		default:
		}
	}
}

func (f statusFeed) wait() tea.Cmd {
	return func() tea.Msg { return statusMsg(<-f) }
}

// Model is the bubbletea model of the focus view.
type Model struct {
	api      *api.API
	updates  statusFeed
	progress progress.Model
	status   pomodoro.Status
	today    api.Dashboard
	noColor  bool
	quitting bool
}

// New creates a focus view over a and subscribes it to timer changes.
func New(a *api.API, opts Options) Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	if opts.NoColor {
		bar = progress.New(progress.WithoutPercentage(), progress.WithFillCharacters('#', '-'))
	}
	bar.Width = 40
	updates := make(statusFeed, 1)
	a.OnTimerChange(updates.push)
	return Model{
		api:      a,
		updates:  updates,
		progress: bar,
		status:   a.TimerStatus(),
		today:    a.Dashboard(),
		noColor:  opts.NoColor,
	}
}

// Run shows the focus view until the user quits or ctx is cancelled.
func Run(ctx context.Context, a *api.API, opts Options) error {
	p := tea.NewProgram(New(a, opts),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)
	defer a.OnTimerChange(nil)
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.updates.wait()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "s", " ":
			m.status = m.api.ToggleTimer()
		case "r":
			m.status = m.api.ResetTimer()
		case "c":
			m.status = m.api.SetTimerCategory(m.nextCategory())
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.BlurMsg:
		m.api.FocusLost()
		m.status = m.api.TimerStatus()
		return m, nil

	case tea.WindowSizeMsg:
		m.progress.Width = max(min(msg.Width-4, 60), 10)
		return m, nil

	case statusMsg:
		m.status = pomodoro.Status(msg)
		m.today = m.api.Dashboard()
		return m, m.updates.wait()
	}
	return m, nil
}

// nextCategory cycles through the known categories.
func (m Model) nextCategory() string {
	cats := m.api.Categories()
	if len(cats) == 0 {
		return domain.DefaultCategoryID
	}
	for i, c := range cats {
		if c.ID == m.status.CategoryID {
			return cats[(i+1)%len(cats)].ID
		}
	}
	return cats[0].ID
}

func (m Model) style(s lipgloss.Style, text string) string {
	if m.noColor {
		return text
	}
	return s.Render(text)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	category, _ := domain.LookupCategory(m.api.Categories(), m.status.CategoryID)
	remaining := time.Duration(m.status.Remaining) * time.Second

	var b strings.Builder
	b.WriteString(m.style(lipgloss.NewStyle().Bold(true), m.status.Phase.Label()))
	b.WriteString("  ")
	b.WriteString(m.style(lipgloss.NewStyle().Foreground(lipgloss.Color(category.Color)), category.Name))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  %02d:%02d  %s\n\n", int(remaining.Minutes()), int(remaining.Seconds())%60, stateLabel(m.status.State))
	b.WriteString("  " + m.progress.ViewAs(m.status.Progress()) + "\n\n")
	fmt.Fprintf(&b, "  Today: %d/%d tasks · %.1f h focused\n\n",
		m.today.Today.CompletedTasks, m.today.Today.TotalTasks, m.today.Today.FocusHours)
	b.WriteString(m.style(lipgloss.NewStyle().Faint(true), "  s start/pause · r reset · c category · q quit"))
	b.WriteString("\n")
	return b.String()
}

func stateLabel(s pomodoro.RunState) string {
	switch s {
	case pomodoro.StateRunning:
		return "running"
	case pomodoro.StatePaused:
		return "paused"
	default:
		return "ready"
	}
}
