package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"focusboard/backend/internal/config"
	"focusboard/backend/internal/db"
	"focusboard/backend/internal/handler"
	"focusboard/backend/internal/logger"
	"focusboard/backend/internal/repository"
	"focusboard/backend/internal/router"
	"focusboard/backend/internal/service"
)

type App struct {
	httpServer *http.Server
	database   *sql.DB
}

// New opens and migrates the database and wires the HTTP server.
func New(cfg config.Config) (*App, error) {
	database, err := db.Open(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		return nil, err
	}

	if err := db.RunMigrations(database, db.MigrationsFS(cfg.MigrationsDir)); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database ready", map[string]any{
		"driver": cfg.DBDriver,
		"path":   cfg.DBPath,
	})

	return &App{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewEngine(database, cfg),
			ReadHeaderTimeout: 10 * time.Second,
		},
		database: database,
	}, nil
}

// NewEngine builds the routed gin engine on an already migrated database.
func NewEngine(database *sql.DB, cfg config.Config) *gin.Engine {
	userRepo := repository.NewUserRepository(database)
	sessionRepo := repository.NewSessionRepository(database)
	taskRepo := repository.NewTaskRepository(database)
	settingsRepo := repository.NewSettingsRepository(database)

	sessionService := service.NewSessionService(sessionRepo, cfg.SessionTTL)
	authService := service.NewAuthService(userRepo, sessionService)
	taskService := service.NewTaskService(taskRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	return router.New(sessionService, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Tasks:    handler.NewTaskHandler(taskService),
		Pomodoro: handler.NewPomodoroHandler(settingsService),
	}, cfg.CORSOrigins)
}

func (a *App) Run() error {
	if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	return a.database.Close()
}
