package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// DebugEnabled returns true if debug mode is enabled via TR_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("TR_DEBUG") != ""
}

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger writing to w. format is "json" or "text"; TR_DEBUG forces debug level.
func New(w io.Writer, level, format string) *slog.Logger {
	lvl := ParseLevel(level)
	if DebugEnabled() {
		lvl = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Setup installs a logger built by New as the process default and returns it.
func Setup(w io.Writer, level, format string) *slog.Logger {
	logger := New(w, level, format)
	slog.SetDefault(logger)
	return logger
}
