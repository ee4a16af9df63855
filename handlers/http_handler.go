// Package handlers provides the HTTP handlers of the assistant: chat, drug
// lookups and the health check.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/giygas/parkinsons-assistant/assistant"
	"github.com/giygas/parkinsons-assistant/drugdb/entities"
	"github.com/giygas/parkinsons-assistant/interfaces"
	"github.com/giygas/parkinsons-assistant/logging"
)

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	service       interfaces.QueryService
	validator     interfaces.InputValidator
	healthChecker interfaces.HealthChecker
	startTime     time.Time
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(service interfaces.QueryService, validator interfaces.InputValidator, healthChecker interfaces.HealthChecker) interfaces.HTTPHandler {
	return &HTTPHandlerImpl{
		service:       service,
		validator:     validator,
		healthChecker: healthChecker,
		startTime:     time.Now(),
	}
}

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is returned by POST /chat
type ChatResponse struct {
	Response string `json:"response"`
}

// DrugInfoResponse is returned by GET /drug_info
type DrugInfoResponse struct {
	Drug entities.DrugInfo `json:"drug"`
}

// DrugListResponse is returned by GET /drug_list
type DrugListResponse struct {
	Drugs []entities.DrugSummary `json:"drugs"`
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status        string         `json:"status"`
	Uptime        string         `json:"uptime"`
	UptimeSeconds float64        `json:"uptime_seconds"`
	Data          map[string]any `json:"data"`
	System        map[string]any `json:"system"`
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// Chat answers a free-text question. Upstream failures are not errors here,
// the answer then carries the fallback message.
func (h *HTTPHandlerImpl) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.RespondWithError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		logging.Warn("Malformed chat request", "error", err)
		h.RespondWithError(w, http.StatusBadRequest, "Request body must be a JSON object with a message field")
		return
	}

	if err := h.validator.ValidateMessage(req.Message); err != nil {
		logging.Warn("Unusual user input", "field", "message", "error", err)
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	response := h.service.Chat(r.Context(), req.Message)
	h.RespondWithJSON(w, http.StatusOK, ChatResponse{Response: response})
}

// DrugInfo returns the record of the drug named by the name query parameter
func (h *HTTPHandlerImpl) DrugInfo(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		h.RespondWithError(w, http.StatusBadRequest, "No drug name provided")
		return
	}

	if err := h.validator.ValidateDrugName(name); err != nil {
		logging.Warn("Unusual user input", "name", name, "error", err)
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	info, err := h.service.DrugInfo(name)
	switch {
	case errors.Is(err, assistant.ErrDrugNameRequired):
		h.RespondWithError(w, http.StatusBadRequest, "No drug name provided")
		return
	case errors.Is(err, assistant.ErrDrugNotFound):
		h.RespondWithError(w, http.StatusNotFound,
			fmt.Sprintf("Information about %s not found", strings.ToLower(strings.TrimSpace(name))))
		return
	case err != nil:
		logging.Error("Drug lookup failed", "name", name, "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Drug lookup failed")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, DrugInfoResponse{Drug: info})
}

// DrugList returns every known drug in dataset order
func (h *HTTPHandlerImpl) DrugList(w http.ResponseWriter, r *http.Request) {
	names := h.service.DrugList()

	drugs := make([]entities.DrugSummary, 0, len(names))
	for _, name := range names {
		drugs = append(drugs, entities.DrugSummary{Name: name})
	}

	h.RespondWithJSON(w, http.StatusOK, DrugListResponse{Drugs: drugs})
}

// HealthCheck returns server health information
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	status, data, httpStatus := h.healthChecker.HealthCheck()
	uptime := time.Since(h.startTime)

	response := HealthResponse{
		Status:        status,
		Uptime:        formatUptimeHuman(uptime),
		UptimeSeconds: uptime.Seconds(),
		Data:          data,
		System: map[string]any{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       int(m.Alloc / 1024 / 1024),
				"total_alloc_mb": int(m.TotalAlloc / 1024 / 1024),
				"sys_mb":         int(m.Sys / 1024 / 1024),
				"num_gc":         m.NumGC,
			},
		},
	}

	h.RespondWithJSON(w, httpStatus, response)
}

// formatUptimeHuman formats duration into a human-readable string
func formatUptimeHuman(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}
