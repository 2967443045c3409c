package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/nolanpk/taskwell-api/internal/api"
	apimiddleware "github.com/nolanpk/taskwell-api/internal/api/middleware"
	"github.com/nolanpk/taskwell-api/internal/config"
	"github.com/nolanpk/taskwell-api/internal/platform/logger"
	"github.com/nolanpk/taskwell-api/internal/platform/postgres"
	"github.com/nolanpk/taskwell-api/internal/service"
	"github.com/nolanpk/taskwell-api/internal/service/auth"
)

// application holds the initialized dependencies of the server.
type application struct {
	config       *config.Config
	logger       *slog.Logger
	db           *sql.DB
	userService  service.UserService
	taskService  service.TaskService
	tokenService auth.TokenService
}

// newApplication loads configuration and wires all application components:
// logger, database (with migrations), stores, and services.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, appLogger); err != nil {
		return nil, err
	}

	userStore := postgres.NewPostgresUserStore(db, appLogger)
	taskStore := postgres.NewPostgresTaskStore(db, appLogger)
	tokenStore := postgres.NewPostgresTokenStore(db, appLogger)

	// Reclaim rows from sessions that expired while the server was down.
	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := tokenStore.DeleteExpired(startupCtx); err != nil {
		appLogger.Warn("failed to remove expired auth tokens", "error", err)
	}

	tokenService, err := auth.NewTokenService(cfg.Auth, tokenStore)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	userService := service.NewUserService(userStore, hasher, hasher, appLogger)
	taskService := service.NewTaskService(taskStore, appLogger)

	return &application{
		config:       cfg,
		logger:       appLogger,
		db:           db,
		userService:  userService,
		taskService:  taskService,
		tokenService: tokenService,
	}, nil
}

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.Trace)

	authHandler := api.NewAuthHandler(app.userService, app.tokenService)
	userHandler := api.NewUserHandler(app.userService)
	taskHandler := api.NewTaskHandler(app.taskService)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.tokenService)

	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/users/me", userHandler.Me)

			r.Get("/tasks", taskHandler.List)
			r.Post("/tasks", taskHandler.Create)
			r.Get("/tasks/{id}", taskHandler.Get)
			r.Patch("/tasks/{id}", taskHandler.Update)
			r.Delete("/tasks/{id}", taskHandler.Delete)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
