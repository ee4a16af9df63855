// Package metrics provides Prometheus metrics for the assistant.
// HTTP metrics are recorded by the Metrics middleware; the chat pipeline
// records upstream completion calls, drug mentions and conversation log writes.
//
// All metrics are registered with the Prometheus default registry
// during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (client IPs currently tracked)",
		},
	)

	CompletionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "completion_requests_total",
			Help: "Chat completion calls by outcome (success, empty, failure)",
		},
		[]string{"outcome"},
	)

	CompletionAttemptsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "completion_attempts_total",
			Help: "Upstream chat completion attempts, retries included",
		},
	)

	CompletionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "completion_duration_seconds",
			Help:    "Chat completion latency, retries included",
			Buckets: []float64{.25, .5, 1, 2, 4, 8, 15, 30, 60},
		},
	)

	DrugMentionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drug_mentions_total",
			Help: "Drugs referenced in chat turns",
		},
		[]string{"drug"},
	)

	ConversationLogWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_log_writes_total",
			Help: "Conversation log writes by result (ok, error)",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(CompletionRequestsTotal)
	prometheus.MustRegister(CompletionAttemptsTotal)
	prometheus.MustRegister(CompletionDuration)
	prometheus.MustRegister(DrugMentionsTotal)
	prometheus.MustRegister(ConversationLogWritesTotal)
}
