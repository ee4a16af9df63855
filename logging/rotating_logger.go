package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const logFilePrefix = "assistant-"

var numberedLogFile = regexp.MustCompile(`^` + logFilePrefix + `\d{4}-W\d{2}_(\d{2})\.log$`)

// RotatingLogger is an io.Writer over weekly log files.
// A new file is started every ISO week, and a numbered sibling is opened
// when the current file reaches maxFileSize. Files older than the retention
// period are removed by a background cleanup loop.
type RotatingLogger struct {
	logDir      string
	currentFile *os.File
	currentWeek string
	retention   time.Duration
	maxFileSize int64
	currentSize atomic.Int64
	mu          sync.Mutex
	ctx         context.Context
	cancel      context.CancelFunc
	cleanupDone chan struct{}
	cleaning    atomic.Bool
}

// NewRotatingLogger creates a rotating logger with a 100MB file size limit
func NewRotatingLogger(logDir string, retentionWeeks int) *RotatingLogger {
	return NewRotatingLoggerWithSizeLimit(logDir, retentionWeeks, 100*1024*1024)
}

// NewRotatingLoggerWithSizeLimit creates a rotating logger with a custom size limit.
// A maxFileSize of 0 disables size based rotation.
func NewRotatingLoggerWithSizeLimit(logDir string, retentionWeeks int, maxFileSize int64) *RotatingLogger {
	ctx, cancel := context.WithCancel(context.Background())
	return &RotatingLogger{
		logDir:      logDir,
		retention:   time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxFileSize: maxFileSize,
		ctx:         ctx,
		cancel:      cancel,
		cleanupDone: make(chan struct{}),
	}
}

// getWeekKey returns the week key in YYYY-Www format (ISO week)
func getWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// open creates the log directory and opens the file for the current week
func (rl *RotatingLogger) open() error {
	if err := os.MkdirAll(rl.logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", rl.logDir, err)
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.rotate(getWeekKey(time.Now()), false)
}

// rotate switches to the file for targetWeek (caller must hold the lock)
func (rl *RotatingLogger) rotate(targetWeek string, sizeExceeded bool) error {
	if rl.currentFile != nil {
		if err := rl.currentFile.Close(); err != nil {
			slog.Warn("Failed to close log file during rotation", "error", err)
		}
		rl.currentFile = nil
	}

	fileName := rl.pickFile(targetWeek, sizeExceeded)
	logPath := filepath.Join(rl.logDir, fileName)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	rl.currentFile = file
	rl.currentWeek = targetWeek
	rl.currentSize.Store(0)
	if info, err := file.Stat(); err == nil {
		rl.currentSize.Store(info.Size())
	}

	return nil
}

// pickFile returns the file name to write to for the given week. The base
// file is used while it has room, then numbered files take over.
func (rl *RotatingLogger) pickFile(week string, sizeExceeded bool) string {
	base := fmt.Sprintf("%s%s.log", logFilePrefix, week)

	if !sizeExceeded {
		info, err := os.Stat(filepath.Join(rl.logDir, base))
		if err != nil || rl.maxFileSize == 0 || info.Size() < rl.maxFileSize {
			return base
		}
	}

	highest, highestSize := 0, int64(0)
	matches, _ := filepath.Glob(filepath.Join(rl.logDir, fmt.Sprintf("%s%s_??.log", logFilePrefix, week)))
	for _, match := range matches {
		groups := numberedLogFile.FindStringSubmatch(filepath.Base(match))
		if len(groups) < 2 {
			continue
		}
		num, _ := strconv.Atoi(groups[1])
		if num > highest {
			highest = num
			highestSize = 0
			if info, err := os.Stat(match); err == nil {
				highestSize = info.Size()
			}
		}
	}

	// a numbered file is only resumed after a restart, never right after it filled up
	if !sizeExceeded && highest > 0 && highestSize < rl.maxFileSize {
		return fmt.Sprintf("%s%s_%02d.log", logFilePrefix, week, highest)
	}
	return fmt.Sprintf("%s%s_%02d.log", logFilePrefix, week, highest+1)
}

// Write writes p to the current log file, rotating first when the week
// changed or when p would push the file over the size limit
func (rl *RotatingLogger) Write(p []byte) (int, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	week := getWeekKey(time.Now())
	sizeExceeded := rl.maxFileSize > 0 && rl.currentFile != nil &&
		rl.currentSize.Load()+int64(len(p)) > rl.maxFileSize

	if rl.currentFile == nil || rl.currentWeek != week || sizeExceeded {
		if err := rl.rotate(week, sizeExceeded && rl.currentWeek == week); err != nil {
			return 0, err
		}
	}

	n, err := rl.currentFile.Write(p)
	rl.currentSize.Add(int64(n))
	return n, err
}

// cleanupOldLogs removes log files older than the retention period
func (rl *RotatingLogger) cleanupOldLogs() (int, error) {
	entries, err := os.ReadDir(rl.logDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := time.Now().Add(-rl.retention)
	deleted := 0

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}

		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(rl.logDir, name)); err == nil {
			deleted++
		}
	}

	return deleted, nil
}

// startCleanup runs cleanupOldLogs every interval until Close is called
func (rl *RotatingLogger) startCleanup(interval time.Duration) {
	if !rl.cleaning.CompareAndSwap(false, true) {
		return
	}

	go func() {
		defer close(rl.cleanupDone)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-rl.ctx.Done():
				return
			case <-ticker.C:
				deleted, err := rl.cleanupOldLogs()
				if err != nil {
					slog.Warn("Failed to cleanup old logs", "error", err)
				} else if deleted > 0 {
					// console only, the file logger may be the one being cleaned
					fmt.Printf("Cleaned up %d old log files\n", deleted)
				}
			}
		}
	}()
}

// Close stops the cleanup loop and closes the current file
func (rl *RotatingLogger) Close() error {
	rl.cancel()

	if rl.cleaning.Load() {
		select {
		case <-rl.cleanupDone:
		case <-time.After(5 * time.Second):
			fmt.Printf("Warning: log cleanup goroutine did not shutdown gracefully\n")
		}
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.currentFile != nil {
		err := rl.currentFile.Close()
		rl.currentFile = nil
		return err
	}
	return nil
}
