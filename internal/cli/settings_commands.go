package cli

import (
	"context"

	"github.com/spf13/cobra"

	"time-riches/internal/api"
	"time-riches/internal/domain"
)

// SettingsCommand shows and changes user preferences.
type SettingsCommand struct {
	api          *api.API
	out          *printer
	errorHandler *ErrorHandler
}

// NewSettingsCommand creates a new settings command handler
func NewSettingsCommand(app *App, out *printer) *SettingsCommand {
	return &SettingsCommand{api: app.api, out: out, errorHandler: NewErrorHandler()}
}

// Show prints the current settings and categories.
func (c *SettingsCommand) Show() error {
	c.print(c.api.Settings())
	c.out.println("")
	c.out.println(c.out.heading("Categories"))
	for _, cat := range c.api.Categories() {
		c.out.printf("%s %-10s %s\n", c.out.colored(cat.Color, "●"), cat.ID, cat.Name)
	}
	return nil
}

// Update applies patch and prints the result.
func (c *SettingsCommand) Update(ctx context.Context, patch domain.SettingsPatch) error {
	settings, err := c.api.UpdateSettings(ctx, patch)
	if err != nil {
		return c.errorHandler.Handle("update settings", err)
	}
	c.print(settings)
	return nil
}

// ToggleTheme switches between the light and dark theme.
func (c *SettingsCommand) ToggleTheme(ctx context.Context) error {
	theme, err := c.api.ToggleTheme(ctx)
	if err != nil {
		return c.errorHandler.Handle("toggle theme", err)
	}
	c.out.printf("Theme: %s\n", theme)
	return nil
}

func (c *SettingsCommand) print(s domain.Settings) {
	c.out.println(c.out.heading("Settings"))
	c.out.printf("Theme:       %s\n", s.Theme)
	c.out.printf("Focus:       %d min\n", s.WorkMinutes)
	c.out.printf("Short break: %d min\n", s.BreakMinutes)
	c.out.printf("Long break:  %d min\n", s.LongBreakMinutes)
}

func (r *RootCommand) newThemeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "theme",
		Short: "Toggle between light and dark theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.withTimeout(cmd)
			defer cancel()
			return NewSettingsCommand(r.app, r.printer(cmd)).ToggleTheme(ctx)
		},
	}
}

func (r *RootCommand) newSettingsCommand() *cobra.Command {
	var (
		work, shortBreak, longBreak int
		theme                       string
	)
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change timer lengths and theme",
		Long: `Without flags, show the current settings and categories. With flags,
change the given values.

Example:
  tr settings --work 50 --break 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.withTimeout(cmd)
			defer cancel()

			handler := NewSettingsCommand(r.app, r.printer(cmd))
			flags := cmd.Flags()
			var patch domain.SettingsPatch
			if flags.Changed("work") {
				patch.WorkMinutes = &work
			}
			if flags.Changed("break") {
				patch.BreakMinutes = &shortBreak
			}
			if flags.Changed("long-break") {
				patch.LongBreakMinutes = &longBreak
			}
			if flags.Changed("theme") {
				t := domain.Theme(theme)
				patch.Theme = &t
			}
			if patch == (domain.SettingsPatch{}) {
				return handler.Show()
			}
			return handler.Update(ctx, patch)
		},
	}
	cmd.Flags().IntVar(&work, "work", 0, "Focus phase length in minutes")
	cmd.Flags().IntVar(&shortBreak, "break", 0, "Short break length in minutes")
	cmd.Flags().IntVar(&longBreak, "long-break", 0, "Long break length in minutes")
	cmd.Flags().StringVar(&theme, "theme", "", "Theme: light or dark")
	return cmd
}
