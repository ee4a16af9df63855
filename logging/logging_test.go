package logging

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/giygas/parkinsons-assistant/config"
	"github.com/go-chi/chi/v5/middleware"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGetConsoleLogLevel(t *testing.T) {
	tests := []struct {
		name        string
		env         config.Environment
		logLevelStr string
		verbose     bool
		expected    slog.Level
	}{
		{"dev defaults to info", config.EnvDevelopment, "", false, slog.LevelInfo},
		{"test quiet defaults to error", config.EnvTest, "", false, slog.LevelError},
		{"test verbose defaults to info", config.EnvTest, "", true, slog.LevelInfo},
		{"prod defaults to warn", config.EnvProduction, "", false, slog.LevelWarn},
		{"staging defaults to warn", config.EnvStaging, "", false, slog.LevelWarn},
		{"prod with debug override", config.EnvProduction, "debug", false, slog.LevelDebug},
		{"dev with error override", config.EnvDevelopment, "error", false, slog.LevelError},
		{"test with debug override (ignored)", config.EnvTest, "debug", false, slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetConsoleLogLevel(tt.env, tt.logLevelStr, tt.verbose)
			if got != tt.expected {
				t.Errorf("GetConsoleLogLevel(%v, %q, %v) = %v, want %v", tt.env, tt.logLevelStr, tt.verbose, got, tt.expected)
			}
		})
	}
}

func TestGetWeekKey(t *testing.T) {
	testTime := time.Date(2025, 10, 7, 12, 0, 0, 0, time.UTC)
	if got := getWeekKey(testTime); got != "2025-W41" {
		t.Errorf("Expected week key 2025-W41, got %s", got)
	}
}

func TestRotatingLoggerWrites(t *testing.T) {
	tempDir := t.TempDir()

	rl := NewRotatingLogger(tempDir, 1)
	if err := rl.open(); err != nil {
		t.Fatalf("Failed to open: %v", err)
	}
	defer rl.Close()

	if _, err := rl.Write([]byte("Test log message\n")); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	expected := filepath.Join(tempDir, logFilePrefix+getWeekKey(time.Now())+".log")
	content, err := os.ReadFile(expected)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "Test log message") {
		t.Errorf("Log file does not contain test message: %s", content)
	}
}

func TestRotatingLoggerWithSizeLimit(t *testing.T) {
	tempDir := t.TempDir()

	rl := NewRotatingLoggerWithSizeLimit(tempDir, 1, 100)
	if err := rl.open(); err != nil {
		t.Fatalf("Failed to open: %v", err)
	}
	defer rl.Close()

	line := []byte(strings.Repeat("x", 60) + "\n")
	for i := 0; i < 3; i++ {
		if _, err := rl.Write(line); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}

	week := getWeekKey(time.Now())
	for _, name := range []string{
		logFilePrefix + week + ".log",
		logFilePrefix + week + "_01.log",
		logFilePrefix + week + "_02.log",
	} {
		if _, err := os.Stat(filepath.Join(tempDir, name)); err != nil {
			t.Errorf("Expected %s to exist: %v", name, err)
		}
	}
}

func TestCleanupOldLogs(t *testing.T) {
	tempDir := t.TempDir()
	rl := NewRotatingLogger(tempDir, 1)

	oldFile := filepath.Join(tempDir, logFilePrefix+"2020-W01.log")
	newFile := filepath.Join(tempDir, logFilePrefix+"2099-W01.log")
	otherFile := filepath.Join(tempDir, "unrelated.txt")
	for _, f := range []string{oldFile, newFile, otherFile} {
		if err := os.WriteFile(f, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	old := time.Now().Add(-30 * 24 * time.Hour)
	_ = os.Chtimes(oldFile, old, old)
	_ = os.Chtimes(otherFile, old, old)

	deleted, err := rl.cleanupOldLogs()
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 deleted file, got %d", deleted)
	}
	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("Old log file should be removed")
	}
	if _, err := os.Stat(newFile); err != nil {
		t.Error("Recent log file should be kept")
	}
	if _, err := os.Stat(otherFile); err != nil {
		t.Error("Files that are not logs should be kept")
	}
}

func TestRotatingLoggerConcurrentWrites(t *testing.T) {
	rl := NewRotatingLoggerWithSizeLimit(t.TempDir(), 1, 4096)
	if err := rl.open(); err != nil {
		t.Fatal(err)
	}
	defer rl.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if _, err := rl.Write([]byte("concurrent line\n")); err != nil {
					t.Errorf("Write failed: %v", err)
				}
			}
		}()
	}
	wg.Wait()
}

func TestInitLogger(t *testing.T) {
	tempDir := t.TempDir()
	cfg := &config.Config{
		Env:               config.EnvTest,
		LogLevel:          "info",
		LogDir:            filepath.Join(tempDir, "logs"),
		LogRetentionWeeks: 1,
		MaxLogFileSize:    1024 * 1024,
	}

	if err := InitLogger(cfg); err != nil {
		t.Fatalf("InitLogger failed: %v", err)
	}
	defer func() {
		_ = Close()
		DefaultLoggingService = nil
	}()

	Info("file only message", "key", "value")
	Debug("debug goes to file as well")

	content, err := os.ReadFile(filepath.Join(cfg.LogDir, logFilePrefix+getWeekKey(time.Now())+".log"))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), `"msg":"file only message"`) {
		t.Errorf("Expected JSON record in log file, got %s", content)
	}
	if !strings.Contains(string(content), "debug goes to file") {
		t.Error("File handler should keep debug records")
	}
}

func TestHelpersBeforeInit(t *testing.T) {
	DefaultLoggingService = nil

	// Must not panic
	Info("info")
	Warn("warn")
	Error("error")
	Debug("debug")

	if Logger() == nil {
		t.Error("Logger should fall back to a console logger")
	}
}

func TestMultiHandler(t *testing.T) {
	var a, b bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}}

	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Expected debug to be enabled by the second handler")
	}

	logger := slog.New(h).With("component", "test").WithGroup("grp")
	logger.Info("hello", "k", "v")

	if a.Len() != 0 {
		t.Errorf("Warn handler should skip info records, got %s", a.String())
	}
	if !strings.Contains(b.String(), `"component":"test"`) || !strings.Contains(b.String(), `"grp":{"k":"v"}`) {
		t.Errorf("Unexpected JSON output %s", b.String())
	}
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := middleware.RequestID(LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/drug_info?name=levodopa", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	out := buf.String()
	for _, expected := range []string{`"status_code":418`, `"path":"/drug_info"`, `"query":"name=levodopa"`, `"bytes_written":15`} {
		if !strings.Contains(out, expected) {
			t.Errorf("Expected %s in log output %s", expected, out)
		}
	}
	if strings.Contains(out, `"request_id":"unknown"`) {
		t.Error("Expected request id from chi middleware")
	}
}

func TestLoggingMiddlewareSkipsHealthCheck(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/health", "/metrics"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if buf.Len() != 0 {
		t.Errorf("Expected no log output for monitoring endpoints, got %s", buf.String())
	}
}
