package main

import (
	"context"

	"focusboard/backend/internal/config"
	"focusboard/backend/internal/db"
	"focusboard/backend/internal/logger"
	"focusboard/backend/internal/repository"
	"focusboard/backend/internal/service"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	database, err := db.Open(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		logger.Fatal("open database", map[string]any{"error": err.Error()})
	}
	defer database.Close()

	if err := db.RunMigrations(database, db.MigrationsFS(cfg.MigrationsDir)); err != nil {
		logger.Fatal("run migrations", map[string]any{"error": err.Error()})
	}

	sessions := service.NewSessionService(repository.NewSessionRepository(database), cfg.SessionTTL)
	purged, err := sessions.PurgeExpired(context.Background())
	if err != nil {
		logger.Fatal("purge expired sessions", map[string]any{"error": err.Error()})
	}

	logger.Info("migrations applied successfully", map[string]any{
		"expired_sessions_removed": purged,
	})
}
