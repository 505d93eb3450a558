package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lattice-viz/layoutengine/internal/config"
	"github.com/lattice-viz/layoutengine/internal/errorreporting"
	"github.com/lattice-viz/layoutengine/internal/layoutserver"
	"github.com/lattice-viz/layoutengine/internal/logger"
	"github.com/lattice-viz/layoutengine/internal/tracing"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger.Init(cfg.LogLevel)
	logger.Info("Initializing layout server", "log_level", cfg.LogLevel)

	if err := errorreporting.Init(cfg.Environment); err != nil {
		logger.Warn("Failed to initialize error reporting", "error", err)
	} else if errorreporting.IsSentryEnabled() {
		logger.Info("Error reporting initialized", "environment", cfg.Environment)
		defer func() {
			logger.Info("Flushing error reports...")
			errorreporting.Flush(2 * time.Second)
		}()
	}

	shutdownTracing, err := tracing.Init(cfg.OTelServiceName)
	if err != nil {
		logger.Warn("Failed to initialize tracing", "error", err)
	} else {
		defer func() {
			logger.Info("Shutting down tracer...")
			if err := shutdownTracing(context.Background()); err != nil {
				logger.Error("Failed to shutdown tracer", "error", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, err := layoutserver.NewServer(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize layout server", "error", err)
		log.Fatalf("layout server init failed: %v", err)
	}
	defer srv.Close()

	router := layoutserver.NewRouter(srv, cfg)
	httpServer := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: time.Duration(cfg.ServerReadHdr) * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Received shutdown signal")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", "error", err)
		}
		cancel()
	}()

	logger.Info("Layout server running", "address", httpServer.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server failed", "error", err)
		log.Fatalf("server failed: %v", err)
	}
}
