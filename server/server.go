// Package server provides HTTP server management and lifecycle handling for
// the assistant: middleware, routes and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/giygas/parkinsons-assistant/config"
	"github.com/giygas/parkinsons-assistant/interfaces"
	"github.com/giygas/parkinsons-assistant/logging"
	"github.com/giygas/parkinsons-assistant/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	rateLimitCleanupInterval = 30 * time.Minute
	indexFile                = "html/index.html"
)

// Server represents the HTTP server
type Server struct {
	server      *http.Server
	router      chi.Router
	handler     interfaces.HTTPHandler
	rateLimiter *RateLimiter
	config      *config.Config
	indexPath   string
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, handler interfaces.HTTPHandler) *Server {
	router := chi.NewRouter()

	server := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: writeTimeout(cfg),
			IdleTimeout:  60 * time.Second,
		},
		router:      router,
		handler:     handler,
		rateLimiter: NewRateLimiter(),
		config:      cfg,
		indexPath:   indexFile,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// writeTimeout leaves room for every completion attempt of a chat turn
func writeTimeout(cfg *config.Config) time.Duration {
	attempts := time.Duration(cfg.CompletionMaxRetries + 1)
	return cfg.CompletionTimeout*attempts + 15*time.Second
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.LoggingMiddleware(logging.Logger()))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(metrics.Metrics)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5, "application/json", "text/html"))
	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(s.rateLimiter.Handler)
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Post("/chat", s.handler.Chat)
	s.router.Get("/drug_info", s.handler.DrugInfo)
	s.router.Get("/drug_list", s.handler.DrugList)
	s.router.Get("/health", s.handler.HealthCheck)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600") // 1 hour
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeFile(w, r, s.indexPath)
	})
}

// Router exposes the configured router, mostly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	s.rateLimiter.StartCleanup(rateLimitCleanupInterval)

	logging.Info(fmt.Sprintf("Starting server at: %s:%s", s.config.Address, s.config.Port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")
	s.rateLimiter.Stop()

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}
