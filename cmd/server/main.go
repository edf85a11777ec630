// Package main implements the entry point for the TaskDeck API server,
// a multi-user task tracker with JWT-authenticated, per-user task lists.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/jmallory/taskdeck-api/internal/config"
	"github.com/jmallory/taskdeck-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status) and exit")
	flag.Parse()

	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if *migrateCmd != "" {
		if err := runMigrations(db, *migrateCmd, appLogger); err != nil {
			appLogger.Error("Migration failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		appLogger.Info("Migration completed", "command", *migrateCmd)
		return
	}

	// Apply pending migrations on normal startup so the schema is always
	// current before the server accepts traffic.
	if err := runMigrations(db, "up", appLogger); err != nil {
		appLogger.Error("Failed to apply migrations", "error", err)
		os.Exit(1)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		appLogger.Error("Failed to build application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(context.Background()); err != nil {
		appLogger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	return cfg, appLogger, nil
}
