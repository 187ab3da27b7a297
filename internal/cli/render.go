package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"time-riches/internal/api"
	"time-riches/internal/domain"
)

// printer writes styled output. With noColor set every style is a no-op.
type printer struct {
	w          io.Writer
	noColor    bool
	dateFormat string
	timeFormat string
}

func newPrinter(w io.Writer, noColor bool, dateFormat, timeFormat string) *printer {
	if dateFormat == "" {
		dateFormat = "2006-01-02"
	}
	if timeFormat == "" {
		timeFormat = "15:04"
	}
	return &printer{w: w, noColor: noColor, dateFormat: dateFormat, timeFormat: timeFormat}
}

func (p *printer) render(style lipgloss.Style, s string) string {
	if p.noColor {
		return s
	}
	return style.Render(s)
}

func (p *printer) heading(s string) string {
	return p.render(lipgloss.NewStyle().Bold(true).Underline(true), s)
}

func (p *printer) muted(s string) string {
	return p.render(lipgloss.NewStyle().Faint(true), s)
}

func (p *printer) colored(hex, s string) string {
	return p.render(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)), s)
}

func (p *printer) highlight(s string) string {
	return p.render(lipgloss.NewStyle().Reverse(true), s)
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

func (p *printer) date(d domain.Date) string {
	return d.Time(time.Local).Format(p.dateFormat)
}

// clock formats the local wall-clock part of t.
func (p *printer) clock(t time.Time) string {
	return t.In(time.Local).Format(p.timeFormat)
}

// session prints one recorded phase as a single line.
func (p *printer) session(s api.SessionView) {
	minutes := (s.Duration + 30) / 60
	p.printf("%s-%s %s %-12s %3d min  %s\n",
		p.clock(s.StartTime), p.clock(s.EndTime),
		p.colored(s.Category.Color, "●"), s.Mode.Label(), minutes, s.Category.Name)
}

func statusLabel(s domain.Status) string {
	switch s {
	case domain.StatusInProgress:
		return "In progress"
	case domain.StatusCompleted:
		return "Completed"
	default:
		return "To do"
	}
}

// task prints one task as a single line.
func (p *printer) task(t api.TaskView) {
	box := "[ ]"
	switch t.Status {
	case domain.StatusCompleted:
		box = "[x]"
	case domain.StatusInProgress:
		box = "[~]"
	}

	meta := []string{string(t.Priority), p.colored(t.Category.Color, t.Category.Name)}
	if t.DueDate != nil {
		meta = append(meta, "due "+p.date(*t.DueDate))
	}
	p.printf("%s %s %s  %s\n", box, t.Title, p.muted(shortID(t.ID)), strings.Join(meta, " · "))
}

func (p *printer) tasks(tasks []api.TaskView) {
	if len(tasks) == 0 {
		p.println(p.muted("No tasks"))
		return
	}
	for _, t := range tasks {
		p.task(t)
	}
}

// shortID trims uuids for display; any unique prefix is accepted back.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// bar draws a fixed-width progress bar for a percentage.
func bar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
