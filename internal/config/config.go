package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"time-riches/internal/domain"
	"time-riches/internal/validation"
)

// Config holds all configuration options for the application
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Timer       TimerConfig       `yaml:"timer"`
	Autosave    AutosaveConfig    `yaml:"autosave"`
	Validation  ValidationConfig  `yaml:"validation"`
	Display     DisplayConfig     `yaml:"display"`
	Logging     LoggingConfig     `yaml:"logging"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Application ApplicationConfig `yaml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string `yaml:"dir" env:"TR_DB_DIR"`
	Filename       string `yaml:"filename" env:"TR_DB_FILENAME"`
	DirPermissions uint32 `yaml:"dir_permissions" env:"TR_DB_DIR_PERMISSIONS"`
}

// TimerConfig holds focus timer configuration
type TimerConfig struct {
	TickInterval time.Duration `yaml:"tick_interval" env:"TR_TIMER_TICK_INTERVAL"`
	Bell         bool          `yaml:"bell" env:"TR_TIMER_BELL"`
	Category     string        `yaml:"category" env:"TR_TIMER_CATEGORY"`
}

// AutosaveConfig holds periodic flush configuration
type AutosaveConfig struct {
	Enabled  bool          `yaml:"enabled" env:"TR_AUTOSAVE_ENABLED"`
	Interval time.Duration `yaml:"interval" env:"TR_AUTOSAVE_INTERVAL"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength       int `yaml:"title_max_length" env:"TR_VALIDATION_TITLE_MAX"`
	DescriptionMaxLength int `yaml:"description_max_length" env:"TR_VALIDATION_DESCRIPTION_MAX"`
	MaxPhaseMinutes      int `yaml:"max_phase_minutes" env:"TR_VALIDATION_MAX_PHASE_MINUTES"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat string `yaml:"date_format" env:"TR_DISPLAY_DATE_FORMAT"`
	TimeFormat string `yaml:"time_format" env:"TR_DISPLAY_TIME_FORMAT"`
	NoColor    bool   `yaml:"no_color" env:"TR_DISPLAY_NO_COLOR"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `yaml:"level" env:"TR_LOG_LEVEL"`
	Format string `yaml:"format" env:"TR_LOG_FORMAT"`
}

// MetricsConfig holds the Prometheus endpoint configuration. An empty
// address disables the endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr" env:"TR_METRICS_ADDR"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"TR_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"TR_APP_VERBOSE"`
}

// DefaultDir is the per-user data directory.
func DefaultDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".time-riches")
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Dir:            DefaultDir(),
			Filename:       "time-riches.db",
			DirPermissions: 0o755,
		},
		Timer: TimerConfig{
			TickInterval: time.Second,
			Bell:         true,
			Category:     domain.DefaultCategoryID,
		},
		Autosave: AutosaveConfig{
			Enabled:  true,
			Interval: 30 * time.Second,
		},
		Validation: ValidationConfig{
			TitleMaxLength:       validation.DefaultTitleMaxLength,
			DescriptionMaxLength: validation.DefaultDescriptionMaxLength,
			MaxPhaseMinutes:      validation.DefaultMaxPhaseMinutes,
		},
		Display: DisplayConfig{
			DateFormat: "2006-01-02",
			TimeFormat: "15:04",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LogLevel is the configured level, raised to debug when verbose is set.
func (c *Config) LogLevel() string {
	if c.Application.Verbose {
		return "debug"
	}
	return c.Logging.Level
}

// ValidationLimits converts the validation section for the validator.
func (c *Config) ValidationLimits() validation.Limits {
	return validation.Limits{
		TitleMaxLength:       c.Validation.TitleMaxLength,
		DescriptionMaxLength: c.Validation.DescriptionMaxLength,
		MaxPhaseMinutes:      c.Validation.MaxPhaseMinutes,
	}
}

// LoadFromEnvironment loads configuration from TR_* environment variables.
// Unparseable values are ignored.
func (c *Config) LoadFromEnvironment() error {
	if dir := os.Getenv("TR_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TR_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if perms := os.Getenv("TR_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	if interval := os.Getenv("TR_TIMER_TICK_INTERVAL"); interval != "" {
		c.Timer.TickInterval = ParseDurationWithFallback(interval, c.Timer.TickInterval)
	}
	if bell := os.Getenv("TR_TIMER_BELL"); bell != "" {
		c.Timer.Bell = ParseBoolWithFallback(bell, c.Timer.Bell)
	}
	if category := os.Getenv("TR_TIMER_CATEGORY"); category != "" {
		c.Timer.Category = category
	}

	if enabled := os.Getenv("TR_AUTOSAVE_ENABLED"); enabled != "" {
		c.Autosave.Enabled = ParseBoolWithFallback(enabled, c.Autosave.Enabled)
	}
	if interval := os.Getenv("TR_AUTOSAVE_INTERVAL"); interval != "" {
		c.Autosave.Interval = ParseDurationWithFallback(interval, c.Autosave.Interval)
	}

	if n := os.Getenv("TR_VALIDATION_TITLE_MAX"); n != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(n, c.Validation.TitleMaxLength)
	}
	if n := os.Getenv("TR_VALIDATION_DESCRIPTION_MAX"); n != "" {
		c.Validation.DescriptionMaxLength = ParseIntWithFallback(n, c.Validation.DescriptionMaxLength)
	}
	if n := os.Getenv("TR_VALIDATION_MAX_PHASE_MINUTES"); n != "" {
		c.Validation.MaxPhaseMinutes = ParseIntWithFallback(n, c.Validation.MaxPhaseMinutes)
	}

	if format := os.Getenv("TR_DISPLAY_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if format := os.Getenv("TR_DISPLAY_TIME_FORMAT"); format != "" {
		c.Display.TimeFormat = format
	}
	if noColor := os.Getenv("TR_DISPLAY_NO_COLOR"); noColor != "" {
		c.Display.NoColor = ParseBoolWithFallback(noColor, c.Display.NoColor)
	}

	if level := os.Getenv("TR_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("TR_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}

	if addr := os.Getenv("TR_METRICS_ADDR"); addr != "" {
		c.Metrics.Addr = addr
	}

	if timeout := os.Getenv("TR_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TR_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns the first problem found
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}

	if c.Timer.TickInterval <= 0 {
		return &ConfigError{Field: "timer.tick_interval", Message: "tick interval must be positive"}
	}
	if c.Timer.Category == "" {
		return &ConfigError{Field: "timer.category", Message: "timer category cannot be empty"}
	}
	if c.Autosave.Enabled && c.Autosave.Interval < time.Second {
		return &ConfigError{Field: "autosave.interval", Message: "autosave interval must be at least 1s"}
	}

	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if c.Validation.DescriptionMaxLength < 0 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length cannot be negative"}
	}
	if c.Validation.MaxPhaseMinutes < 1 {
		return &ConfigError{Field: "validation.max_phase_minutes", Message: "maximum phase length must be at least 1 minute"}
	}

	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}
	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "log format must be text or json"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
