package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/adirathodd/cs-490-project-sub009/internal/delivery"
	"github.com/adirathodd/cs-490-project-sub009/internal/infrastructure"
	"github.com/adirathodd/cs-490-project-sub009/internal/scheduler"
	"github.com/adirathodd/cs-490-project-sub009/internal/usecase"
	"github.com/adirathodd/cs-490-project-sub009/pkg/config"
	"github.com/adirathodd/cs-490-project-sub009/pkg/logger"
	"github.com/adirathodd/cs-490-project-sub009/pkg/metrics"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info("Starting career dashboard gateway")

	m := metrics.New()

	careerClient := infrastructure.NewCareerHTTPClient(
		cfg.Upstream.BaseURL,
		cfg.Upstream.RequestTimeout,
		cfg.Upstream.RateLimitPerSecond,
		cfg.Upstream.RateBurst,
		log,
		m,
	)

	workspaces := infrastructure.NewWorkspaceStore(log)

	dashboardService := usecase.NewDashboardService(workspaces, careerClient, log, m)
	goalsService := usecase.NewGoalsService(workspaces, careerClient, dashboardService, log, m)
	negotiationService := usecase.NewNegotiationService(workspaces, careerClient, log, m)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watchScheduler := scheduler.New(dashboardService, cfg.Watch.RefreshInterval, log)
	if err := watchScheduler.Start(ctx); err != nil {
		log.WithError(err).Fatal("Failed to start watch scheduler")
	}

	handlers := delivery.NewHTTPHandlers(dashboardService, goalsService, negotiationService, log, m)
	router := delivery.NewHTTPRouter(handlers, log, m, cfg.Server.RequestTimeout)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router.SetupRoutes(),
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	cancel()
	watchScheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Shutdown error")
	}
	log.Info("Stopped")
}
