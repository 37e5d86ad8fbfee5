package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/sea-level-dashboard/internal/adapter/earthengine"
	"github.com/couchcryptid/sea-level-dashboard/internal/adapter/httpadapter"
	"github.com/couchcryptid/sea-level-dashboard/internal/auth"
	"github.com/couchcryptid/sea-level-dashboard/internal/config"
	"github.com/couchcryptid/sea-level-dashboard/internal/dashboard"
	"github.com/couchcryptid/sea-level-dashboard/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Credentials are a startup requirement: without an Earth Engine
	// session there is nothing to serve.
	session, err := auth.NewAuthenticator(cfg).Session(context.Background())
	if err != nil {
		logger.Error("earth engine authentication failed", "error", err)
		os.Exit(1)
	}
	metrics.Authenticated.Set(1)
	logger.Info("earth engine authentication succeeded",
		"project", session.ProjectID,
		"service_account", session.ClientEmail,
	)

	mapper := earthengine.NewClient(session, cfg, metrics, logger)
	dash := dashboard.New(mapper, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, dash, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
