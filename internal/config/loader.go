package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the environment variable that points at a YAML config file.
const ConfigFileEnv = "TR_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configFile string
	envFiles   []string
}

// NewLoader creates a new configuration loader. The config file defaults to
// $TR_CONFIG, then config.yaml in the data directory; .env in the working
// directory is read if present.
func NewLoader() *Loader {
	configFile := os.Getenv(ConfigFileEnv)
	if configFile == "" {
		configFile = filepath.Join(DefaultDir(), "config.yaml")
	}
	return &Loader{
		config:     NewConfig(),
		configFile: configFile,
		envFiles:   []string{".env"},
	}
}

// WithConfigFile sets the YAML file to read. An empty path skips the file.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// WithEnvFiles sets the dotenv files to read before the environment.
func (l *Loader) WithEnvFiles(files ...string) *Loader {
	l.envFiles = files
	return l
}

// Load loads configuration using the cascading strategy:
// defaults, YAML file, dotenv files, environment, then validation.
// Command line flags are applied by LoadWithOverrides.
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.loadEnvFiles(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	config.ApplyOverrides(overrides)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) loadFile() error {
	if l.configFile == "" {
		return nil
	}
	data, err := os.ReadFile(l.configFile)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file %s: %w", l.configFile, err)
	}
	if err := yaml.Unmarshal(data, l.config); err != nil {
		return fmt.Errorf("parse config file %s: %w", l.configFile, err)
	}
	return nil
}

// loadEnvFiles populates the process environment from dotenv files without
// overriding variables that are already set.
func (l *Loader) loadEnvFiles() error {
	for _, file := range l.envFiles {
		if _, err := os.Stat(file); stderrors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("load env file %s: %w", file, err)
		}
	}
	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	DBDir      *string
	DBFilename *string

	TickInterval  *time.Duration
	Bell          *bool
	TimerCategory *string

	AutosaveEnabled  *bool
	AutosaveInterval *time.Duration

	TitleMaxLength  *int
	MaxPhaseMinutes *int

	DateFormat *string
	TimeFormat *string
	NoColor    *bool

	LogLevel  *string
	LogFormat *string

	MetricsAddr *string

	Timeout *time.Duration
	Verbose *bool
}

// ApplyOverrides copies every set override into config. A nil overrides is a no-op.
func (c *Config) ApplyOverrides(overrides *ConfigOverrides) {
	if overrides == nil {
		return
	}
	if overrides.DBDir != nil {
		c.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		c.Database.Filename = *overrides.DBFilename
	}

	if overrides.TickInterval != nil {
		c.Timer.TickInterval = *overrides.TickInterval
	}
	if overrides.Bell != nil {
		c.Timer.Bell = *overrides.Bell
	}
	if overrides.TimerCategory != nil {
		c.Timer.Category = *overrides.TimerCategory
	}

	if overrides.AutosaveEnabled != nil {
		c.Autosave.Enabled = *overrides.AutosaveEnabled
	}
	if overrides.AutosaveInterval != nil {
		c.Autosave.Interval = *overrides.AutosaveInterval
	}

	if overrides.TitleMaxLength != nil {
		c.Validation.TitleMaxLength = *overrides.TitleMaxLength
	}
	if overrides.MaxPhaseMinutes != nil {
		c.Validation.MaxPhaseMinutes = *overrides.MaxPhaseMinutes
	}

	if overrides.DateFormat != nil {
		c.Display.DateFormat = *overrides.DateFormat
	}
	if overrides.TimeFormat != nil {
		c.Display.TimeFormat = *overrides.TimeFormat
	}
	if overrides.NoColor != nil {
		c.Display.NoColor = *overrides.NoColor
	}

	if overrides.LogLevel != nil {
		c.Logging.Level = *overrides.LogLevel
	}
	if overrides.LogFormat != nil {
		c.Logging.Format = *overrides.LogFormat
	}

	if overrides.MetricsAddr != nil {
		c.Metrics.Addr = *overrides.MetricsAddr
	}

	if overrides.Timeout != nil {
		c.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		c.Application.Verbose = *overrides.Verbose
	}
}
