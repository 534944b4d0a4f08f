package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"focusboard/backend/internal/model"
)

// TaskChanges lists the columns to overwrite. Nil fields are left as stored.
type TaskChanges struct {
	Title       *string
	Description *string
	Status      *model.TaskStatus
}

func (c TaskChanges) empty() bool {
	return c.Title == nil && c.Description == nil && c.Status == nil
}

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO tasks (id, user_id, title, description, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		string(task.Status),
		formatTime(task.CreatedAt),
		formatTime(task.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// ListByOwner returns the user's tasks, newest first.
func (r *TaskRepository) ListByOwner(ctx context.Context, userID string) ([]model.Task, error) {
	return r.list(ctx,
		`SELECT id, user_id, title, description, status, created_at, updated_at
		 FROM tasks
		 WHERE user_id = ?
		 ORDER BY created_at DESC, rowid DESC`,
		userID,
	)
}

func (r *TaskRepository) ListByOwnerAndStatus(ctx context.Context, userID string, status model.TaskStatus) ([]model.Task, error) {
	return r.list(ctx,
		`SELECT id, user_id, title, description, status, created_at, updated_at
		 FROM tasks
		 WHERE user_id = ? AND status = ?
		 ORDER BY created_at DESC, rowid DESC`,
		userID,
		string(status),
	)
}

func (r *TaskRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// GetOwned loads a task only if it belongs to userID.
func (r *TaskRepository) GetOwned(ctx context.Context, userID, taskID string) (*model.Task, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, title, description, status, created_at, updated_at
		 FROM tasks
		 WHERE id = ? AND user_id = ?`,
		taskID,
		userID,
	)
	return scanTask(row)
}

// UpdateOwned writes only the columns present in changes.
func (r *TaskRepository) UpdateOwned(ctx context.Context, userID, taskID string, changes TaskChanges, now time.Time) error {
	if changes.empty() {
		return nil
	}

	sets := make([]string, 0, 4)
	args := make([]interface{}, 0, 6)
	if changes.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *changes.Title)
	}
	if changes.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *changes.Description)
	}
	if changes.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*changes.Status))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(now), taskID, userID)

	result, err := r.db.ExecContext(
		ctx,
		`UPDATE tasks SET `+strings.Join(sets, ", ")+` WHERE id = ? AND user_id = ?`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TaskRepository) DeleteOwned(ctx context.Context, userID, taskID string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM tasks WHERE id = ? AND user_id = ?`,
		taskID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTask(s scanner) (*model.Task, error) {
	task := model.Task{}
	var status string
	var createdAt string
	var updatedAt string
	err := s.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}

	parsedStatus, ok := model.ParseTaskStatus(status)
	if !ok {
		return nil, fmt.Errorf("scan task: unknown status %q", status)
	}
	task.Status = parsedStatus

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse task created_at: %w", err)
	}
	task.CreatedAt = parsedCreatedAt

	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse task updated_at: %w", err)
	}
	task.UpdatedAt = parsedUpdatedAt

	return &task, nil
}
