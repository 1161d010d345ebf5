package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filedrop/internal/api"
	"filedrop/internal/app/service"
	"filedrop/internal/domain/repository"
	"filedrop/internal/platform/config"
	"filedrop/internal/platform/database"
	"filedrop/internal/platform/logging"
	"filedrop/internal/platform/metrics"

	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load Configuration
	config.Load()
	logging.Init()
	logrus.Info("Configuration loaded")

	// 2. Initialize Storage
	var (
		eventRepo      repository.EventRepository
		submissionRepo repository.SubmissionRepository
		activityRepo   repository.ActivityRepository
		fileRepo       repository.FileRepository
	)
	switch config.AppConfig.StorageDriver {
	case "postgres":
		database.Connect()
		defer database.Close()
		eventRepo = repository.NewPgEventRepository(database.DB)
		submissionRepo = repository.NewPgSubmissionRepository(database.DB)
		activityRepo = repository.NewPgActivityRepository(database.DB)
		fileRepo = repository.NewPgFileRepository(database.DB)
		logrus.Info("Using postgres storage")
	default:
		store := repository.NewMemoryStore()
		eventRepo, submissionRepo, activityRepo, fileRepo = store, store, store, store
		logrus.Info("Using in-memory storage")
	}

	// 3. Initialize Metrics
	m := metrics.NewManager()

	// 4. Initialize Services
	activityService := service.NewActivityService(activityRepo)
	fileService := service.NewFileService(fileRepo, m)
	eventService := service.NewEventService(eventRepo, submissionRepo, activityService)
	submissionService := service.NewSubmissionService(submissionRepo, eventRepo, activityService)
	dashboardService := service.NewDashboardService(eventRepo, submissionRepo)

	// 5. Initialize Router & HTTP Server
	router := api.NewRouter(eventService, submissionService, dashboardService, activityService, fileService, m)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  60 * time.Second, // uploads can be slow
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 6. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logrus.Infof("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Could not listen on %s: %v", config.AppConfig.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	logrus.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server shutdown failed: %v", err)
	}

	logrus.Info("Server stopped gracefully")
}
