/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the compliance obligation engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (env vars + optional .env)
  2. Initialize structured logging
  3. Initialize SQLite store, seed the default catalog if empty
  4. Create API handler and router
  5. Start the risk snapshot scheduler
  6. Start server with graceful shutdown

CONFIGURATION (environment variables, all optional):
  PORT                       HTTP server port (default: 8080)
  DB_PATH                    SQLite database path (default: ./compliance.db)
                             Use ":memory:" for in-memory database
  LOG_LEVEL                  debug/info/warn/error (default: info)
  ENVIRONMENT                development/production (default: development)
  CRON_SPEC_RISK_SNAPSHOTS   Snapshot refresh schedule (default: hourly)
  CORS_ORIGINS               Comma-separated allowed origins

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the snapshot scheduler, draining any in-flight run
  4. Close database connection
  5. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - api/scheduler.go: Risk snapshot refresh
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/warp/compliance-engine/api"
	"github.com/warp/compliance-engine/catalog"
	"github.com/warp/compliance-engine/config"
	"github.com/warp/compliance-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := newLogger(cfg)

	// Initialize store
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Seed the default catalog on first run
	ctx := context.Background()
	defs, err := store.ListDefinitions(ctx)
	if err != nil {
		log.Fatalf("Failed to read catalog: %v", err)
	}
	if len(defs) == 0 {
		if err := store.ReplaceCatalog(ctx, catalog.DefaultCatalog()); err != nil {
			log.Fatalf("Failed to seed default catalog: %v", err)
		}
		log.Info("seeded default obligation catalog")
	}

	// Handler and router
	handler := api.NewHandler(store, store, store, log)
	router := api.NewRouter(handler, cfg.CORSOrigins)

	// Background risk snapshot refresh
	scheduler := api.NewScheduler(store, store, log)
	if err := scheduler.Start(cfg.CronSpec); err != nil {
		log.Fatalf("Failed to start snapshot scheduler: %v", err)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port": cfg.Port,
			"env":  cfg.Environment,
		}).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	scheduler.Stop()

	log.Info("server stopped")
}

func newLogger(cfg *config.AppConfig) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Environment == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
