package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	// Default logger
	Log *slog.Logger
)

func init() {
	// Initialize with a default text handler
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	Log = slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// Setup initializes the global logger on stderr
func Setup(format string, level string) {
	SetupWriter(os.Stderr, format, level)
}

// SetupWriter initializes the global logger on w
func SetupWriter(w io.Writer, format string, level string) {
	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Helper functions for easy access

func Debug(msg string, args ...any) {
	Log.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Log.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Log.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Log.Error(msg, args...)
}

// With tags every later record of the global logger with args
func With(args ...any) *slog.Logger {
	Log = Log.With(args...)
	return Log
}
