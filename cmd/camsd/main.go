package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cams/internal/app"
	"cams/internal/domain/assignment"
	"cams/internal/domain/attorney"
	"cams/internal/domain/legacy"
	"cams/internal/infra/config"
	idb "cams/internal/infra/database"
	"cams/internal/infra/dxtr"
	"cams/internal/infra/httpapi"
	"cams/internal/infra/logger"
	"cams/internal/infra/scheduler"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	log := logger.Get().WithField("component", "main")
	log.WithFields(logrus.Fields{
		"environment":  cfg.Environment,
		"store_driver": cfg.StoreDriver,
	}).Info("Configuration loaded")

	var (
		assignmentRepo assignment.Repository
		attorneyRepo   attorney.Repository
		recordSource   legacy.Source
	)

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		assignmentRepo = idb.NewInMemoryAssignmentRepository()
		attorneyRepo = idb.NewInMemoryAttorneyRepository(nil)
		recordSource = dxtr.NewStaticSource(nil)
		log.Info("Using in-memory stores")
	default:
		db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Could not connect to database: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := idb.EnsureSchema(ctx, db); err != nil {
			cancel()
			log.Fatalf("Could not ensure database schema: %v", err)
		}
		cancel()

		assignmentRepo = idb.NewPostgresAssignmentRepository(db)
		attorneyRepo = idb.NewPostgresAttorneyRepository(db)
		recordSource = dxtr.NewPostgresSource(db)
		log.Info("Database connection established")
	}

	assignmentService := app.NewAssignmentService(assignmentRepo, logger.Get().WithField("component", "assignment_service"))
	detailService := app.NewCaseDetailService(recordSource, logger.Get().WithField("component", "casedetail_service"))

	reconciler := scheduler.NewReconciliationScheduler(
		assignmentRepo,
		logger.Get().WithField("component", "scheduler"),
		cfg.CronSpecReconcile,
	)
	if err := reconciler.Start(); err != nil {
		log.Fatalf("Could not start reconciliation scheduler: %v", err)
	}

	api := httpapi.New(assignmentService, detailService, attorneyRepo, logger.Get().WithField("component", "httpapi"))
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.Router(),
	}

	go func() {
		log.WithField("addr", cfg.ListenAddr).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down application...")
	reconciler.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server shutdown was not clean")
	}
	log.Info("Application shut down gracefully")
}
