// Package interfaces defines the contracts between the assistant components
// so each of them can be replaced by a mock in tests.
package interfaces

import (
	"context"
	"net/http"
	"time"

	"github.com/giygas/parkinsons-assistant/completion"
	"github.com/giygas/parkinsons-assistant/drugdb/entities"
)

// Completer produces an answer for a user question.
// Implementations never fail: errors are turned into displayable text.
type Completer interface {
	Complete(ctx context.Context, userMessage string) string
}

// UpstreamMonitor exposes recent results of the completion endpoint
type UpstreamMonitor interface {
	Status() completion.Status
}

// ConversationStore persists chat exchanges
type ConversationStore interface {
	Log(userInput, botResponse string) error
}

// ConversationPruner removes persisted exchanges past their retention
type ConversationPruner interface {
	Prune(olderThan time.Duration) (int, error)
}

// KnowledgeBase provides read-only access to the curated drug dataset
type KnowledgeBase interface {
	Lookup(name string) (entities.DrugRecord, bool)
	AllDrugs() []entities.DrugRecord
	Len() int
}

// QueryService is the application facade used by the HTTP handlers
type QueryService interface {
	Chat(ctx context.Context, message string) string
	DrugInfo(name string) (entities.DrugInfo, error)
	DrugList() []string
}

// Scheduler defines the contract for background housekeeping jobs
type Scheduler interface {
	Start() error
	Stop()
}

// HTTPHandler defines the contract for HTTP request handlers
type HTTPHandler interface {
	Chat(w http.ResponseWriter, r *http.Request)
	DrugInfo(w http.ResponseWriter, r *http.Request)
	DrugList(w http.ResponseWriter, r *http.Request)
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// HealthChecker defines the contract for health check functionality
type HealthChecker interface {
	// HealthCheck returns the overall status ("healthy", "degraded" or
	// "unhealthy"), the details it was computed from and the HTTP status
	// to answer with
	HealthCheck() (status string, details map[string]any, httpStatus int)
}

// InputValidator validates user supplied input
type InputValidator interface {
	ValidateDrugName(input string) error
	ValidateMessage(input string) error
}
