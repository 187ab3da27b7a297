package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"time-riches/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	focus  *cobra.Command
	config *config.Config
	build  Builder
	app    *App
}

// NewRootCommand creates the root cobra command with global flags. The App
// is opened by build after flag overrides are applied to cfg.
func NewRootCommand(cfg *config.Config, build Builder) *RootCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	root := &RootCommand{
		config: cfg,
		build:  build,
	}

	root.cmd = &cobra.Command{
		Use:   "tr",
		Short: "Tasks, focus sessions and productivity from the terminal",
		Long: `Time Riches (tr) keeps a task list with due dates and categories, runs
pomodoro focus sessions and reports how the time was spent.

EXAMPLES:
  tr task add "Write report" --due 2026-10-20 --priority high
  tr task list report                      # Search titles and descriptions
  tr task done 3f2a9c1e                    # Toggle completion by id prefix
  tr today                                 # Today's tasks and focus time
  tr calendar 2026-11                      # Month grid with due tasks
  tr stats                                 # All-time figures and 7-day trend
  tr focus --category study                # Interactive pomodoro timer

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > .env > config file > defaults

  The config file is $TR_CONFIG or ~/.time-riches/config.yaml.
  Every setting has a TR_* variable, e.g. TR_DB_DIR, TR_AUTOSAVE_INTERVAL,
  TR_LOG_LEVEL, TR_METRICS_ADDR.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd == root.focus {
				root.applyFocusOverrides(cmd.Flags())
			}
			if err := root.applyFlagOverrides(cmd.Flags()); err != nil {
				return err
			}
			return root.open(cmd.Context())
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command and closes the App it opened.
func (r *RootCommand) Execute(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if r.app != nil {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.getAppTimeout())
		defer cancel()
		if closeErr := r.app.Close(closeCtx); closeErr != nil && err == nil {
			err = closeErr
		}
		r.app = nil
	}
	return err
}

// SetArgs sets the arguments used instead of os.Args.
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetOutput redirects standard and error output.
func (r *RootCommand) SetOutput(out, errOut io.Writer) {
	r.cmd.SetOut(out)
	r.cmd.SetErr(errOut)
}

// Config returns the configuration commands run with.
func (r *RootCommand) Config() *config.Config {
	return r.config
}

func (r *RootCommand) open(ctx context.Context) error {
	if r.app != nil {
		return nil
	}
	if r.build == nil {
		return fmt.Errorf("application not initialized")
	}
	app, err := r.build(ctx, r.config)
	if err != nil {
		return err
	}
	r.app = app
	return nil
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db-dir", "", "Database directory (overrides TR_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TR_DB_FILENAME)")

	flags.Bool("autosave", true, "Flush state periodically (overrides TR_AUTOSAVE_ENABLED)")
	flags.Duration("autosave-interval", 0, "Autosave interval (overrides TR_AUTOSAVE_INTERVAL)")

	flags.Int("title-max-length", 0, "Maximum task title length (overrides TR_VALIDATION_TITLE_MAX)")
	flags.Int("max-phase-minutes", 0, "Maximum timer phase length (overrides TR_VALIDATION_MAX_PHASE_MINUTES)")

	flags.String("date-format", "", "Date display format (overrides TR_DISPLAY_DATE_FORMAT)")
	flags.String("time-format", "", "Time display format (overrides TR_DISPLAY_TIME_FORMAT)")
	flags.Bool("no-color", false, "Disable coloured output (overrides TR_DISPLAY_NO_COLOR)")

	flags.String("log-level", "", "Log level: debug, info, warn, error (overrides TR_LOG_LEVEL)")
	flags.String("log-format", "", "Log format: text or json (overrides TR_LOG_FORMAT)")

	flags.Duration("app-timeout", 0, "Command timeout (overrides TR_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TR_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.focus = r.newFocusCommand()
	r.cmd.AddCommand(
		r.newTaskCommand(),
		r.newTodayCommand(),
		r.newCalendarCommand(),
		r.newStatsCommand(),
		r.focus,
		r.newThemeCommand(),
		r.newSettingsCommand(),
	)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// withTimeout bounds a non-interactive command by the application timeout.
func (r *RootCommand) withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, r.getAppTimeout())
}

func (r *RootCommand) printer(cmd *cobra.Command) *printer {
	return newPrinter(cmd.OutOrStdout(), r.config.Display.NoColor, r.config.Display.DateFormat, r.config.Display.TimeFormat)
}

// applyFlagOverrides copies explicitly set flags into the configuration.
func (r *RootCommand) applyFlagOverrides(flags *pflag.FlagSet) error {
	overrides := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("autosave") {
		v, _ := flags.GetBool("autosave")
		overrides.AutosaveEnabled = &v
	}
	if flags.Changed("autosave-interval") {
		v, _ := flags.GetDuration("autosave-interval")
		overrides.AutosaveInterval = &v
	}
	if flags.Changed("title-max-length") {
		v, _ := flags.GetInt("title-max-length")
		overrides.TitleMaxLength = &v
	}
	if flags.Changed("max-phase-minutes") {
		v, _ := flags.GetInt("max-phase-minutes")
		overrides.MaxPhaseMinutes = &v
	}
	if flags.Changed("date-format") {
		v, _ := flags.GetString("date-format")
		overrides.DateFormat = &v
	}
	if flags.Changed("time-format") {
		v, _ := flags.GetString("time-format")
		overrides.TimeFormat = &v
	}
	if flags.Changed("no-color") {
		v, _ := flags.GetBool("no-color")
		overrides.NoColor = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}
	if flags.Changed("log-format") {
		v, _ := flags.GetString("log-format")
		overrides.LogFormat = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	r.config.ApplyOverrides(overrides)
	return r.config.Validate()
}

// applyFocusOverrides copies the focus command's own flags. Other commands
// reuse the name --category for tasks, so these are only read for focus.
func (r *RootCommand) applyFocusOverrides(flags *pflag.FlagSet) {
	overrides := &config.ConfigOverrides{}
	if flags.Changed("category") {
		v, _ := flags.GetString("category")
		overrides.TimerCategory = &v
	}
	if flags.Changed("metrics-addr") {
		v, _ := flags.GetString("metrics-addr")
		overrides.MetricsAddr = &v
	}
	if flags.Changed("bell") {
		v, _ := flags.GetBool("bell")
		overrides.Bell = &v
	}
	r.config.ApplyOverrides(overrides)
}
