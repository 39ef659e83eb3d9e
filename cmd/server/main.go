package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fleetfuel/reconciliation-engine/internal/api"
	"github.com/fleetfuel/reconciliation-engine/internal/config"
	"github.com/fleetfuel/reconciliation-engine/internal/narrative"
	"github.com/fleetfuel/reconciliation-engine/internal/observability"
	"github.com/fleetfuel/reconciliation-engine/internal/service"
	"github.com/fleetfuel/reconciliation-engine/pkg/resilience"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	var narrator service.NarrativeGenerator
	if cfg.AnalysisAgentURL != "" {
		narrator = narrative.NewAgentClient(
			&http.Client{Timeout: cfg.HTTPTimeout},
			cfg.AnalysisAgentURL,
			resilience.Config{
				MaxRetries:     cfg.MaxRetries,
				InitialBackoff: cfg.InitialBackoff,
			},
		)
		logger.Info("narrative agent enabled", zap.String("url", cfg.AnalysisAgentURL))
	} else {
		logger.Info("narrative agent disabled")
	}

	handler := api.NewHandler(cfg, narrator, logger)
	router := api.NewRouter(handler, logger, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("server stopped")
}
