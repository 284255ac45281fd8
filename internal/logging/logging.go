package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New initializes a new slog logger and sets it as the default.
// format "json" selects the JSON handler; anything else produces text output
// with source locations, which reads better in development.
func New(format, level string) *slog.Logger {
	logger := slog.New(NewHandler(os.Stdout, format, level))
	slog.SetDefault(logger)
	return logger
}

// NewHandler builds the handler New installs, writing to w.
func NewHandler(w io.Writer, format, level string) slog.Handler {
	lvl := ParseLevel(level)

	switch format {
	case "json":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: lvl,
		})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:     lvl,
			AddSource: true,
		})
	}
}

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to debug.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
