package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	httpapi "github.com/LeonardoRFragoso/AndaimesPini-Project/internal/api/http"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/config"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/logger"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/repository/postgres"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	migrationsDir := flag.String("migrations", "migrations", "Path to goose migrations")
	skipMigrations := flag.Bool("skip-migrations", false, "Skip running migrations on startup")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting AndaimesPini rental backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if !*skipMigrations {
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatalf("Failed to set goose dialect: %v", err)
		}
		if err := goose.Up(db, *migrationsDir); err != nil {
			logger.Error("Failed to run migrations", "error", err)
			log.Fatalf("Failed to run migrations: %v", err)
		}
		logger.Info("Migrations applied", "dir", *migrationsDir)
	}

	store := postgres.NewStore(db)

	handlers := &httpapi.Handlers{
		Rentals:       service.NewRentalService(store, cfg.Billing.LateFeePerDay),
		Inventory:     service.NewInventoryService(store),
		LineItems:     service.NewLineItemService(store),
		Damages:       service.NewDamageService(store),
		Notifications: service.NewNotificationService(store, cfg.Inventory.CriticalStockFraction),
		Clients:       service.NewClientService(store),
		Reports:       service.NewReportService(store),
	}

	router := httpapi.NewRouter(handlers, cfg.Metrics.Enabled)
	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
