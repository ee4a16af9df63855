// Package completion queries an OpenAI compatible chat completion endpoint.
// Failures never reach the caller: Complete always returns displayable text,
// falling back to a fixed apology when the endpoint can't produce an answer.
package completion

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/giygas/parkinsons-assistant/config"
	"github.com/giygas/parkinsons-assistant/logging"
	"github.com/giygas/parkinsons-assistant/metrics"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// Temperature is kept low to favor factual consistency
	Temperature float32 = 0.3
	// MaxTokens caps the length of a generated answer
	MaxTokens = 1500

	defaultTimeout    = 30 * time.Second
	defaultRetryDelay = 500 * time.Millisecond
)

// Options configures a Client
type Options struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration // per attempt
	MaxRetries int           // extra attempts after a transient failure
	RetryDelay time.Duration
	HTTPClient *http.Client
}

// OptionsFromConfig maps the application configuration to client options
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BaseURL:    cfg.CompletionBaseURL,
		APIKey:     cfg.CompletionAPIKey,
		Model:      cfg.CompletionModel,
		Timeout:    cfg.CompletionTimeout,
		MaxRetries: cfg.CompletionMaxRetries,
	}
}

// Status summarizes recent upstream behavior for health reporting
type Status struct {
	LastSuccess         time.Time `json:"last_success"`
	LastFailure         time.Time `json:"last_failure"`
	ConsecutiveFailures int64     `json:"consecutive_failures"`
}

// Client wraps the chat completion API
type Client struct {
	api        *openai.Client
	model      string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration

	lastSuccess         atomic.Int64 // unix nanos
	lastFailure         atomic.Int64 // unix nanos
	consecutiveFailures atomic.Int64
}

// NewClient creates a client from options. Credentials are only ever taken
// from opts, there is no built-in key.
func NewClient(opts Options) *Client {
	clientConfig := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if opts.HTTPClient != nil {
		clientConfig.HTTPClient = opts.HTTPClient
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retryDelay := opts.RetryDelay
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		api:        openai.NewClientWithConfig(clientConfig),
		model:      opts.Model,
		timeout:    timeout,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

// BuildMessages returns the system + user prompt pair for a question
func BuildMessages(userMessage string) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: userMessage},
	}
}

// Complete returns the generated answer for userMessage. It returns
// NoResponse when the endpoint sent no completion and FallbackMessage on any
// failure; the error itself is only logged. An empty first completion is
// returned as is.
func (c *Client) Complete(ctx context.Context, userMessage string) string {
	start := time.Now()
	defer func() {
		metrics.CompletionDuration.Observe(time.Since(start).Seconds())
	}()

	answer, ok, attempts, err := c.completeWithRetry(ctx, userMessage)
	if err != nil {
		c.lastFailure.Store(time.Now().UnixNano())
		failures := c.consecutiveFailures.Add(1)
		metrics.CompletionRequestsTotal.WithLabelValues("failure").Inc()
		logging.Error("Chat completion failed",
			"error", err,
			"model", c.model,
			"attempts", attempts,
			"consecutive_failures", failures,
		)
		return FallbackMessage
	}

	c.lastSuccess.Store(time.Now().UnixNano())
	c.consecutiveFailures.Store(0)

	if !ok {
		metrics.CompletionRequestsTotal.WithLabelValues("empty").Inc()
		logging.Warn("Chat completion returned no choices", "model", c.model)
		return NoResponse
	}
	if answer == "" {
		logging.Warn("Chat completion returned empty content", "model", c.model)
	}

	metrics.CompletionRequestsTotal.WithLabelValues("success").Inc()
	return answer
}

// completeWithRetry makes up to 1+maxRetries attempts, retrying only
// transient failures
func (c *Client) completeWithRetry(ctx context.Context, userMessage string) (string, bool, int, error) {
	messages := BuildMessages(userMessage)

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries+1; attempt++ {
		answer, ok, err := c.attempt(ctx, messages)
		if err == nil {
			if attempt > 1 {
				logging.Info("Chat completion succeeded after retry", "attempt", attempt)
			}
			return answer, ok, attempt, nil
		}

		lastErr = err
		if attempt > c.maxRetries || !isTransient(ctx, err) {
			return "", false, attempt, lastErr
		}

		logging.Warn("Chat completion attempt failed, retrying",
			"error", err,
			"attempt", attempt,
			"max_attempts", c.maxRetries+1,
			"delay", c.retryDelay.String(),
		)

		select {
		case <-ctx.Done():
			return "", false, attempt, fmt.Errorf("giving up after attempt %d: %w", attempt, ctx.Err())
		case <-time.After(c.retryDelay):
		}
	}

	return "", false, c.maxRetries + 1, lastErr
}

// attempt performs a single request bounded by the per-attempt timeout.
// ok is false when the response carries no completion at all.
func (c *Client) attempt(ctx context.Context, messages []openai.ChatCompletionMessage) (answer string, ok bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	metrics.CompletionAttemptsTotal.Inc()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	if err != nil {
		return "", false, fmt.Errorf("chat completion request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", false, nil
	}
	return resp.Choices[0].Message.Content, true, nil
}

// isTransient reports whether a failed attempt is worth retrying: timeouts,
// network errors, rate limiting and server errors. Authentication and
// request errors are final, and so is a cancelled caller.
func isTransient(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.HTTPStatusCode)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return retryableStatus(reqErr.HTTPStatusCode)
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// Status returns a snapshot of recent upstream results
func (c *Client) Status() Status {
	return Status{
		LastSuccess:         unixNanoTime(c.lastSuccess.Load()),
		LastFailure:         unixNanoTime(c.lastFailure.Load()),
		ConsecutiveFailures: c.consecutiveFailures.Load(),
	}
}

func unixNanoTime(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}
