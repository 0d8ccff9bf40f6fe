// Package logger configures structured logging for the antcolony binaries.
//
// The optimization core (packages pheromone and colony) never logs; the
// driver, server and command packages log through the helpers here.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Default is the logger used by the package-level helpers.
var Default = New("info", os.Stdout)

// ParseLevel maps debug, info, warn/warning and error (case-insensitive)
// to a slog.Level. Anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// New creates a JSON logger writing to output at the given level.
func New(level string, output io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// NewText creates a text logger, easier to read on a terminal.
func NewText(level string, output io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// NewFormat picks New for "json" and NewText for everything else.
func NewFormat(format, level string, output io.Writer) *slog.Logger {
	if strings.EqualFold(format, "json") {
		return New(level, output)
	}
	return NewText(level, output)
}

// Discard returns a logger that drops every record; handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// SetDefault replaces Default and the slog default logger.
func SetDefault(l *slog.Logger) {
	Default = l
	slog.SetDefault(l)
}

// Debug logs at debug level on Default.
func Debug(msg string, args ...any) { Default.Debug(msg, args...) }

// Info logs at info level on Default.
func Info(msg string, args ...any) { Default.Info(msg, args...) }

// Warn logs at warn level on Default.
func Warn(msg string, args ...any) { Default.Warn(msg, args...) }

// Error logs at error level on Default.
func Error(msg string, args ...any) { Default.Error(msg, args...) }

// With returns Default with additional attributes.
func With(args ...any) *slog.Logger { return Default.With(args...) }
