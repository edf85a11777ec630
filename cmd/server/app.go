package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jmallory/taskdeck-api/internal/config"
	"github.com/jmallory/taskdeck-api/internal/platform/postgres"
	"github.com/jmallory/taskdeck-api/internal/service"
	"github.com/jmallory/taskdeck-api/internal/service/auth"
	"github.com/jmallory/taskdeck-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	taskStore store.TaskStore

	// Service interfaces
	jwtService  auth.JWTService
	authService auth.Service
	taskService service.TaskService
}

// newApplication creates a new application instance with all dependencies
// initialized. Configuration, logger, and database connection must be
// established by the caller first.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	app.authService = auth.NewService(
		app.userStore,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewBcryptVerifier(),
		app.jwtService,
		db,
		logger,
	)

	app.taskService = service.NewTaskService(app.taskStore, db, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
