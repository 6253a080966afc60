package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/sponnect/sponnect/api"
	dbfs "github.com/sponnect/sponnect/db"
	"github.com/sponnect/sponnect/internal/account"
	"github.com/sponnect/sponnect/internal/config"
	"github.com/sponnect/sponnect/internal/db"
	"github.com/sponnect/sponnect/internal/moderation"
	"github.com/sponnect/sponnect/internal/repository/sqlite"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	api.SetLogger(logger)

	log.Printf("Starting sponnect server version %s (built at %s)", version, buildTime)

	ctx := context.Background()

	// Open database connection and bring the schema up to date
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the default admin on an empty database
	repo := sqlite.New(database, logger)
	mod := moderation.New(repo, repo, repo, repo, logger)
	accounts := account.New(repo, repo, repo, mod, logger)
	if err := accounts.EnsureDefaultAdmin(ctx); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	handler := api.SetupRoutes(cfg, version, buildTime, database)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Close database connection
	if err := database.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}

	log.Println("Server exited")
}
