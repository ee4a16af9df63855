package logging

import (
	"log/slog"
	"os"
	"sync"

	"github.com/giygas/parkinsons-assistant/config"
)

type LoggingService struct {
	Logger   *slog.Logger
	rotating *RotatingLogger
}

var (
	DefaultLoggingService *LoggingService
	serviceMu             sync.RWMutex
)

// InitLogger initializes the global logger from the configuration.
// The returned error only reports that file logging is unavailable; the
// console logger is installed either way.
func InitLogger(cfg *config.Config) error {
	logger, rotating, err := newLogger(cfg, os.Getenv("VERBOSE_TESTS") != "")

	serviceMu.Lock()
	DefaultLoggingService = &LoggingService{Logger: logger, rotating: rotating}
	serviceMu.Unlock()

	slog.SetDefault(logger)
	if err != nil {
		logger.Error("File logging disabled", "error", err)
	}
	return err
}

// Close flushes and closes the log files of the global logger
func Close() error {
	serviceMu.Lock()
	defer serviceMu.Unlock()

	if DefaultLoggingService == nil || DefaultLoggingService.rotating == nil {
		return nil
	}
	err := DefaultLoggingService.rotating.Close()
	DefaultLoggingService.rotating = nil
	return err
}

// Logger returns the global logger, or a stderr logger before InitLogger
func Logger() *slog.Logger {
	serviceMu.RLock()
	defer serviceMu.RUnlock()

	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		return fallbackLogger
	}
	return DefaultLoggingService.Logger
}

var fallbackLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// Package-level functions for direct access

func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}
