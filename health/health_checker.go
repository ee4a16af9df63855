// Package health reports whether the assistant can serve requests.
package health

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/giygas/parkinsons-assistant/interfaces"
)

// DegradedAfterFailures is the number of consecutive failed completions
// after which the upstream is reported as degraded
const DegradedAfterFailures = 3

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	kb              interfaces.KnowledgeBase
	upstream        interfaces.UpstreamMonitor
	conversationDir string
	startTime       time.Time
}

// NewHealthChecker creates a new health checker with injected dependencies.
// An empty conversationDir means conversations are not persisted.
func NewHealthChecker(kb interfaces.KnowledgeBase, upstream interfaces.UpstreamMonitor, conversationDir string) interfaces.HealthChecker {
	return &HealthCheckerImpl{
		kb:              kb,
		upstream:        upstream,
		conversationDir: conversationDir,
		startTime:       time.Now(),
	}
}

// HealthCheck returns HTTP-specific health data.
// Only an empty knowledge base makes the service unhealthy. A failing
// upstream or an unwritable conversation directory only degrade it.
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	drugs := h.kb.Len()
	upstream := h.upstream.Status()
	logDirErr := checkWritable(h.conversationDir)

	switch {
	case drugs == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case upstream.ConsecutiveFailures >= DegradedAfterFailures:
		status = "degraded"
		httpStatus = http.StatusOK

	case logDirErr != nil:
		status = "degraded"
		httpStatus = http.StatusOK

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	conversationLogs := "ok"
	switch {
	case h.conversationDir == "":
		conversationLogs = "disabled"
	case logDirErr != nil:
		conversationLogs = logDirErr.Error()
	}

	data = map[string]any{
		"drugs":             drugs,
		"conversation_logs": conversationLogs,
		"upstream": map[string]any{
			"last_success":         formatTime(upstream.LastSuccess),
			"last_failure":         formatTime(upstream.LastFailure),
			"consecutive_failures": upstream.ConsecutiveFailures,
		},
		"uptime_hours": math.Round(time.Since(h.startTime).Hours()*10) / 10,
	}

	return status, data, httpStatus
}

// checkWritable verifies a file can be created in dir. A directory that does
// not exist yet is fine, it is created on the first write.
func checkWritable(dir string) error {
	if dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory")
	}

	probe, err := os.CreateTemp(dir, ".health-*")
	if err != nil {
		return fmt.Errorf("not writable")
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
