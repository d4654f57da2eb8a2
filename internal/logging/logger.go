// Package logging provides structured logging for chrono using zerolog.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance.
var Logger zerolog.Logger

// ctxKey is the type for context keys.
type ctxKey string

const (
	// loggerKey is the context key for the logger.
	loggerKey ctxKey = "logger"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string

	// Format is the output format (json, console).
	Format string

	// Output is where logs are written (defaults to stderr).
	Output io.Writer

	// EnableCaller adds caller information to logs.
	EnableCaller bool
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:        "info",
		Format:       "console",
		Output:       os.Stderr,
		EnableCaller: false,
	}
}

// Init initializes the global logger with the given configuration.
func Init(cfg Config) {
	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	zerolog.TimeFieldFormat = time.RFC3339

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	if cfg.Format == "console" {
		_, isFile := output.(*os.File)
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "15:04:05",
			NoColor:    isFile && output != os.Stderr,
		}
	}

	ctx := zerolog.New(output).With().Timestamp()

	if cfg.EnableCaller {
		ctx = ctx.Caller()
	}

	Logger = ctx.Logger()
}

// OpenFile opens path for appending, creating parent directories. An empty path
// yields io.Discard: while the TUI owns the terminal nothing may reach stderr.
func OpenFile(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{io.Discard}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// parseLevel converts a string level to zerolog.Level.
func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "trace":
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithContext returns a new context with the logger attached.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger from the context, or the global logger.
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}
	return Logger
}

// Component creates a logger with a component field.
func Component(name string) zerolog.Logger {
	return Logger.With().Str("component", name).Logger()
}

func init() {
	Init(DefaultConfig())
}
