package cli

import (
	"github.com/spf13/cobra"

	"time-riches/internal/errors"
)

func (r *RootCommand) newFocusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "focus",
		Aliases: []string{"pomodoro"},
		Short:   "Run the interactive pomodoro timer",
		Long: `Open the focus view. Completed phases are recorded as time entries under
the chosen category. Switching away from the terminal pauses a running timer.

Keys: s or space start/pause, r reset, c next category, q quit.

The session writes to the database only when a phase completes. Tasks added
from another terminal meanwhile are kept unless a phase completes before the
session is restarted, in which case the session's older task list is written
back. Quit and restart the focus view after editing tasks elsewhere.

Examples:
  tr focus
  tr focus --category study --metrics-addr 127.0.0.1:2112`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if r.app.focus == nil {
				return NewErrorHandler().Handle("start focus session", errors.NewUnavailableError("focus view", nil))
			}
			opts := FocusOptions{CategoryID: r.config.Timer.Category, NoColor: r.config.Display.NoColor}
			return NewErrorHandler().Handle("run focus session", r.app.focus(cmd.Context(), r.app.api, opts))
		},
	}
	cmd.Flags().StringP("category", "c", "", "Category recorded for completed phases (overrides TR_TIMER_CATEGORY)")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (overrides TR_METRICS_ADDR)")
	cmd.Flags().Bool("bell", true, "Ring the terminal bell when a phase ends (overrides TR_TIMER_BELL)")
	return cmd
}
