package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pravaah/internal/bootstrap"
	"pravaah/internal/config"
	"pravaah/internal/handler"
	"pravaah/internal/logging"
	"pravaah/internal/metrics"
	"pravaah/internal/router"
)

// @title Pravaah Document Pipeline API
// @version 1.0
// @description OCR, classification, LLM extraction, validation and risk analysis for financial documents.
// @BasePath /
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(&cfg.Log, "pravaah-api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	app, err := bootstrap.New(ctx, cfg, m)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.Close()

	r := router.Setup(router.Handlers{
		Document:    handler.NewDocumentHandler(app.Processing),
		Dashboard:   handler.NewDashboardHandler(app.Dashboard),
		ReviewQueue: handler.NewReviewQueueHandler(app.ReviewQueue),
		Health:      handler.NewHealthHandler(app.Pingers),
	}, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Metrics:        m,
		EnableSwagger:  cfg.Server.Environment != "production",
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
