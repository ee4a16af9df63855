// Package scheduler runs the assistant housekeeping jobs: conversation log
// retention and monitoring of the completion endpoint.
package scheduler

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/giygas/parkinsons-assistant/interfaces"
	"github.com/giygas/parkinsons-assistant/logging"
	"github.com/go-co-op/gocron"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

const (
	pruneAt                = "03:00"
	defaultMonitorInterval = time.Hour
	upstreamWarnFailures   = 3
)

// Scheduler prunes old conversation logs daily and periodically warns when
// the completion endpoint keeps failing
type Scheduler struct {
	pruner          interfaces.ConversationPruner
	upstream        interfaces.UpstreamMonitor
	retention       time.Duration
	monitorInterval time.Duration
	scheduler       *gocron.Scheduler

	pruning  atomic.Bool
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewScheduler creates a new scheduler instance with injected dependencies.
// A retention of zero keeps conversation logs forever. upstream may be nil.
func NewScheduler(pruner interfaces.ConversationPruner, upstream interfaces.UpstreamMonitor, retention time.Duration) *Scheduler {
	return &Scheduler{
		pruner:          pruner,
		upstream:        upstream,
		retention:       retention,
		monitorInterval: defaultMonitorInterval,
		scheduler:       gocron.NewScheduler(time.Local),
		stop:            make(chan struct{}),
	}
}

// Start runs a first prune, schedules the daily one and starts monitoring
func (s *Scheduler) Start() error {
	if s.retention > 0 {
		if err := s.pruneConversations(); err != nil {
			logging.Error("Failed to perform initial conversation log pruning", "error", err)
		}

		_, err := s.scheduler.Every(1).Day().At(pruneAt).SingletonMode().Do(func() {
			if err := s.pruneConversations(); err != nil {
				logging.Error("Failed to prune conversation logs", "error", err)
			}
		})
		if err != nil {
			logging.Error("Failed to schedule conversation log pruning", "error", err)
			return fmt.Errorf("failed to schedule conversation log pruning: %w", err)
		}
	}

	s.scheduler.StartAsync()

	if s.upstream != nil {
		s.startUpstreamMonitoring()
	}

	return nil
}

// Stop stops the scheduler and the monitoring loop
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	s.scheduler.Stop()
	s.wg.Wait()
}

// pruneConversations removes conversation logs older than the retention
func (s *Scheduler) pruneConversations() error {
	if !s.pruning.CompareAndSwap(false, true) {
		logging.Info("Conversation log pruning already in progress, skipping...")
		return nil
	}
	defer s.pruning.Store(false)

	start := time.Now()
	deleted, err := s.pruner.Prune(s.retention)
	if err != nil {
		return fmt.Errorf("failed to prune conversation logs: %w", err)
	}

	logging.Info("Conversation log pruning completed",
		"duration", time.Since(start).String(),
		"deleted", deleted,
		"retention", s.retention.String(),
	)
	return nil
}

// startUpstreamMonitoring logs a warning while the completion endpoint keeps failing
func (s *Scheduler) startUpstreamMonitoring() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.monitorInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.checkUpstream()
			}
		}
	}()
}

func (s *Scheduler) checkUpstream() bool {
	status := s.upstream.Status()
	if status.ConsecutiveFailures < upstreamWarnFailures {
		return false
	}

	logging.Warn("Chat completion endpoint keeps failing",
		"consecutive_failures", status.ConsecutiveFailures,
		"last_success", status.LastSuccess,
		"last_failure", status.LastFailure,
	)
	return true
}
