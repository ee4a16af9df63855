package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/giygas/parkinsons-assistant/assistant"
	"github.com/giygas/parkinsons-assistant/completion"
	"github.com/giygas/parkinsons-assistant/config"
	"github.com/giygas/parkinsons-assistant/conversation"
	"github.com/giygas/parkinsons-assistant/drugdb"
	"github.com/giygas/parkinsons-assistant/enrichment"
	"github.com/giygas/parkinsons-assistant/handlers"
	"github.com/giygas/parkinsons-assistant/health"
	"github.com/giygas/parkinsons-assistant/logging"
	"github.com/giygas/parkinsons-assistant/scheduler"
	"github.com/giygas/parkinsons-assistant/server"
	"github.com/giygas/parkinsons-assistant/validation"
	"github.com/joho/godotenv"
)

func main() {
	// Get the working directory and read the env variables
	if err := godotenv.Load(); err != nil {
		// If failed, try loading from executable directory
		ex, err := os.Executable()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to get executable path: %v\n", err)
			os.Exit(1)
		}
		if err := os.Chdir(filepath.Dir(ex)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to change directory: %v\n", err)
			os.Exit(1)
		}
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// File logging failures are reported by InitLogger, the console logger still works
	_ = logging.InitLogger(cfg)
	defer logging.Close()

	logging.Info("Configuration loaded",
		"env", cfg.Env,
		"address", cfg.Address,
		"port", cfg.Port,
		"model", cfg.CompletionModel)

	kb := drugdb.Default()
	mode, err := drugdb.ParseMatchMode(cfg.DrugMatchMode)
	if err != nil {
		logging.Warn("Falling back to substring matching", "error", err)
	}
	matcher := drugdb.NewMatcher(kb, mode)
	enricher := enrichment.NewEnricher(matcher)

	client := completion.NewClient(completion.OptionsFromConfig(cfg))
	conversations := conversation.NewFileLogger(cfg.ConversationLogDir)

	logging.Info("Assistant ready",
		"drugs", kb.Len(),
		"match_mode", matcher.Mode().String(),
		"conversation_dir", conversations.Dir(),
		"conversation_retention_days", cfg.ConversationRetentionDays)

	service := assistant.NewService(kb, enricher, client, conversations)
	healthChecker := health.NewHealthChecker(kb, client, cfg.ConversationLogDir)
	httpHandler := handlers.NewHTTPHandler(service, validation.NewInputValidator(), healthChecker)

	retention := time.Duration(cfg.ConversationRetentionDays) * 24 * time.Hour
	jobs := scheduler.NewScheduler(conversations, client, retention)
	if err := jobs.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}

	// Profiling endpoint (accessible at /debug/pprof/) - only for local dev
	if cfg.Env == config.EnvDevelopment {
		go func() {
			logging.Info("Profiling server started at http://localhost:6060/debug/pprof/")
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				logging.Error("Profiling server failed", "error", err)
			}
		}()
	}

	srv := server.NewServer(cfg, httpHandler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	// Block until a signal is received
	sig := <-quit
	logging.Info("Received shutdown signal", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Server shutdown error", "error", err)
	}
	jobs.Stop()
}
