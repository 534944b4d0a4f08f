package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"focusboard/backend/internal/model"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context, userID string) (*model.PomodoroSettings, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, study_time, break_time, created_at, updated_at
		 FROM pomodoro_settings
		 WHERE user_id = ?`,
		userID,
	)
	return scanSettings(row)
}

// Create inserts a new record. A second record for the same user returns
// ErrConflict.
func (r *SettingsRepository) Create(ctx context.Context, settings *model.PomodoroSettings) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO pomodoro_settings (id, user_id, study_time, break_time, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		settings.ID,
		settings.UserID,
		settings.StudyTime,
		settings.BreakTime,
		formatTime(settings.CreatedAt),
		formatTime(settings.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("create settings: %w", err)
	}
	return nil
}

// Upsert creates the user's record or overwrites both durations in a single
// statement. The stored row is returned.
func (r *SettingsRepository) Upsert(ctx context.Context, settings *model.PomodoroSettings) (*model.PomodoroSettings, error) {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO pomodoro_settings (id, user_id, study_time, break_time, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		     study_time = excluded.study_time,
		     break_time = excluded.break_time,
		     updated_at = excluded.updated_at`,
		settings.ID,
		settings.UserID,
		settings.StudyTime,
		settings.BreakTime,
		formatTime(settings.CreatedAt),
		formatTime(settings.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert settings: %w", err)
	}
	return r.Get(ctx, settings.UserID)
}

func scanSettings(s scanner) (*model.PomodoroSettings, error) {
	settings := model.PomodoroSettings{}
	var createdAt string
	var updatedAt string
	err := s.Scan(
		&settings.ID,
		&settings.UserID,
		&settings.StudyTime,
		&settings.BreakTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan settings: %w", err)
	}

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse settings created_at: %w", err)
	}
	settings.CreatedAt = parsedCreatedAt

	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse settings updated_at: %w", err)
	}
	settings.UpdatedAt = parsedUpdatedAt

	return &settings, nil
}
