package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mindbuddy/mindbuddy/internal/api"
	"github.com/mindbuddy/mindbuddy/internal/config"
	"github.com/mindbuddy/mindbuddy/internal/llm"
	"github.com/mindbuddy/mindbuddy/internal/pipeline"
	"github.com/mindbuddy/mindbuddy/internal/room"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize clients and stores.
	stats := llm.NewStats(cfg.StatsWindow)
	ai := llm.NewAnythingLLMClient(cfg.AnythingLLMURL, cfg.AnythingLLMAPIKey, cfg.LLMTimeout, stats)
	store := room.NewStore()

	// Initialize pipeline and HTTP server.
	svc := pipeline.NewService(cfg, store, ai, log)
	srv := api.NewServer(svc, store, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.LLMTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)

		ai.Close()
	}()

	log.Info("starting mindbuddy", "port", cfg.Port, "anythingllm", cfg.AnythingLLMURL)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
