package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"time-riches/internal/api"
	"time-riches/internal/errors"
	"time-riches/internal/stats"
)

// ReportCommand prints the dashboard, calendar and analytics views.
type ReportCommand struct {
	api          *api.API
	out          *printer
	errorHandler *ErrorHandler
}

// NewReportCommand creates a new report command handler
func NewReportCommand(app *App, out *printer) *ReportCommand {
	return &ReportCommand{api: app.api, out: out, errorHandler: NewErrorHandler()}
}

// Today prints today's figures and tasks.
func (c *ReportCommand) Today() error {
	dash := c.api.Dashboard()
	today := dash.Today

	c.out.println(c.out.heading("Today, " + c.out.date(dash.Date)))
	c.out.printf("Tasks:        %d/%d completed\n", today.CompletedTasks, today.TotalTasks)
	c.out.printf("Productivity: %s %d%%\n", bar(today.Productivity, 20), today.Productivity)
	c.out.printf("Focus time:   %.1f h\n", today.FocusHours)
	c.out.println("")
	c.out.tasks(dash.TodayTasks)

	if len(dash.Sessions) > 0 {
		c.out.println("")
		c.out.println(c.out.heading("Sessions"))
		for _, session := range dash.Sessions {
			c.out.session(session)
		}
	}
	return nil
}

// Calendar prints the month grid followed by the month's due tasks.
func (c *ReportCommand) Calendar(year int, month time.Month) error {
	cal, err := c.api.CalendarMonth(year, month)
	if err != nil {
		return c.errorHandler.Handle("show calendar", err)
	}

	c.out.println(c.out.heading(fmt.Sprintf("%s %d", cal.Month, cal.Year)))
	c.out.println("Su  Mo  Tu  We  Th  Fr  Sa")

	var events []api.CalendarDay
	for _, week := range cal.Weeks {
		cells := make([]string, 0, len(week))
		for _, day := range week {
			cells = append(cells, c.cell(day))
			if day.InMonth && len(day.Events) > 0 {
				events = append(events, day)
			}
		}
		c.out.println(strings.TrimRight(strings.Join(cells, " "), " "))
	}

	if len(events) == 0 {
		return nil
	}
	c.out.println("")
	for _, day := range events {
		for _, e := range day.Events {
			mark := " "
			if e.Completed {
				mark = "x"
			}
			c.out.printf("%s [%s] %s %s\n", c.out.date(day.Date), mark, c.out.colored(e.Color, "●"), e.Title)
		}
	}
	return nil
}

// cell renders one day as three columns: the day number and an event marker.
func (c *ReportCommand) cell(day api.CalendarDay) string {
	if !day.InMonth {
		return "   "
	}
	marker := " "
	if len(day.Events) > 0 {
		marker = c.out.colored(day.Events[0].Color, "*")
	}
	number := fmt.Sprintf("%2d", day.Date.Day)
	if day.IsToday {
		number = c.out.highlight(number)
	}
	return number + marker
}

// Stats prints all-time figures, category distribution and the 7-day trend.
func (c *ReportCommand) Stats() error {
	a := c.api.Analytics()
	all := a.AllTime

	c.out.println(c.out.heading("All time"))
	c.out.printf("Tasks:            %d (%d completed)\n", all.TotalTasks, all.CompletedTasks)
	c.out.printf("Avg productivity: %d%%\n", all.AvgProductivity)
	c.out.printf("Focus time:       %.1f h\n", stats.Hours(all.FocusSeconds))
	c.out.printf("Streak:           %d days\n", all.StreakDays)

	c.out.println("")
	c.out.println(c.out.heading("Focus by category"))
	if len(a.Distribution) == 0 {
		c.out.println(c.out.muted("No focus sessions yet"))
	}
	for _, share := range a.Distribution {
		c.out.printf("%s %-14s %.1f h\n", c.out.colored(share.Color, "●"), share.Name, share.Hours)
	}

	c.out.println("")
	c.out.println(c.out.heading("Last 7 days"))
	for _, day := range a.Trend {
		weekday := day.Date.Weekday().String()[:3]
		c.out.printf("%s %s  %s %3d%%  %d/%d\n", weekday, c.out.date(day.Date),
			bar(day.Productivity, 10), day.Productivity, day.CompletedTasks, day.TotalTasks)
	}
	return nil
}

func parseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, errors.NewInvalidInputError("month", s, "expected YYYY-MM")
	}
	return t.Year(), t.Month(), nil
}

func (r *RootCommand) newTodayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's tasks and focus time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewReportCommand(r.app, r.printer(cmd)).Today()
		},
	}
}

func (r *RootCommand) newCalendarCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Show a month with due tasks",
		Long: `Show a Sunday-first month grid. Days with due tasks carry a marker in the
colour of the first task's category; today is highlighted.

Examples:
  tr calendar            # Current month
  tr calendar 2026-11`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report := NewReportCommand(r.app, r.printer(cmd))
			if len(args) == 0 {
				today := r.app.api.Today()
				return report.Calendar(today.Year, today.Month)
			}
			year, month, err := parseMonth(args[0])
			if err != nil {
				return NewErrorHandler().Handle("show calendar", err)
			}
			return report.Calendar(year, month)
		},
	}
}

func (r *RootCommand) newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "stats",
		Aliases: []string{"analytics"},
		Short:   "Show productivity statistics",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewReportCommand(r.app, r.printer(cmd)).Stats()
		},
	}
}
