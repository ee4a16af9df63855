// Package logging configures structured logging for the assistant.
// Records go to the console as text and to weekly rotating files as JSON.
package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/giygas/parkinsons-assistant/config"
)

// parseLogLevel converts a LOG_LEVEL value, defaulting to info
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// GetConsoleLogLevel returns the console level for an environment.
// An explicit LOG_LEVEL wins, except in tests where the console stays quiet
// unless verbose output was requested.
func GetConsoleLogLevel(env config.Environment, logLevel string, verbose bool) slog.Level {
	if env == config.EnvTest {
		if verbose {
			return slog.LevelInfo
		}
		return slog.LevelError
	}

	if logLevel != "" {
		return parseLogLevel(logLevel)
	}

	switch env {
	case config.EnvProduction, config.EnvStaging:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// GetFileLogLevel returns the level for the log files, which keep everything
func GetFileLogLevel() slog.Level {
	return slog.LevelDebug
}

// newLogger builds the console + file logger. If the log directory can't be
// used the logger falls back to console only and the error is returned
// alongside it.
func newLogger(cfg *config.Config, verbose bool) (*slog.Logger, *RotatingLogger, error) {
	consoleHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: GetConsoleLogLevel(cfg.Env, cfg.LogLevel, verbose),
	})

	rotating := NewRotatingLoggerWithSizeLimit(cfg.LogDir, cfg.LogRetentionWeeks, cfg.MaxLogFileSize)
	if err := rotating.open(); err != nil {
		return slog.New(consoleHandler), nil, err
	}
	rotating.startCleanup(24 * time.Hour)

	fileHandler := slog.NewJSONHandler(rotating, &slog.HandlerOptions{
		Level: GetFileLogLevel(),
	})

	return slog.New(&multiHandler{handlers: []slog.Handler{consoleHandler, fileHandler}}), rotating, nil
}

// multiHandler fans records out to several handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}
