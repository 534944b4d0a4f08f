package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "focusboard/backend/internal/errors"
	"focusboard/backend/internal/logger"
	"focusboard/backend/internal/model"
	"focusboard/backend/internal/repository"
)

type TaskService struct {
	repo TaskStore
}

type CreateTaskInput struct {
	Title       string
	Description *string
}

// TaskPatch carries the fields a client sent. Absent fields are left alone.
type TaskPatch struct {
	Title       model.Optional[string]
	Description model.Optional[string]
	Status      model.Optional[string]
}

// BatchDeleteResult reports a best-effort bulk delete. Deletes are not
// rolled back when a later one fails.
type BatchDeleteResult struct {
	Deleted []string `json:"deleted"`
	Failed  []string `json:"failed"`
}

func NewTaskService(repo TaskStore) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) List(ctx context.Context, userID string) ([]model.Task, *apperrors.APIError) {
	tasks, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list tasks").WithCause(err)
	}
	return tasks, nil
}

func (s *TaskService) Create(ctx context.Context, userID string, input CreateTaskInput) (*model.Task, *apperrors.APIError) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.BadRequest("invalid_title", "title is required")
	}

	description := ""
	if input.Description != nil {
		description = *input.Description
	}

	now := time.Now().UTC()
	task := model.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      model.TaskStatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, &task); err != nil {
		return nil, apperrors.Internal("failed to create task").WithCause(err)
	}
	return &task, nil
}

func (s *TaskService) Update(ctx context.Context, userID, taskID string, patch TaskPatch) (*model.Task, *apperrors.APIError) {
	if _, err := s.repo.GetOwned(ctx, userID, taskID); err != nil {
		return nil, taskLookupError(err)
	}

	changes, apiErr := patch.changes()
	if apiErr != nil {
		return nil, apiErr
	}

	if err := s.repo.UpdateOwned(ctx, userID, taskID, changes, time.Now().UTC()); err != nil {
		return nil, taskLookupError(err)
	}

	updated, err := s.repo.GetOwned(ctx, userID, taskID)
	if err != nil {
		return nil, taskLookupError(err)
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) *apperrors.APIError {
	if err := s.repo.DeleteOwned(ctx, userID, taskID); err != nil {
		return taskLookupError(err)
	}
	return nil
}

// DeleteCompleted removes the user's completed tasks one at a time and
// reports which deletes failed. A task already gone counts as deleted.
func (s *TaskService) DeleteCompleted(ctx context.Context, userID string) (*BatchDeleteResult, *apperrors.APIError) {
	tasks, err := s.repo.ListByOwnerAndStatus(ctx, userID, model.TaskStatusCompleted)
	if err != nil {
		return nil, apperrors.Internal("failed to list completed tasks").WithCause(err)
	}

	result := &BatchDeleteResult{
		Deleted: make([]string, 0, len(tasks)),
		Failed:  make([]string, 0),
	}
	for _, task := range tasks {
		err := s.repo.DeleteOwned(ctx, userID, task.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			logger.Error("delete completed task failed", map[string]any{
				"task_id": task.ID,
				"error":   err.Error(),
			})
			result.Failed = append(result.Failed, task.ID)
			continue
		}
		result.Deleted = append(result.Deleted, task.ID)
	}
	return result, nil
}

func (p TaskPatch) changes() (repository.TaskChanges, *apperrors.APIError) {
	var changes repository.TaskChanges

	if p.Title.Set {
		title, ok := p.Title.Get()
		title = strings.TrimSpace(title)
		if !ok || title == "" {
			return changes, apperrors.BadRequest("invalid_title", "title must be a non-empty string")
		}
		changes.Title = &title
	}

	if p.Description.Set {
		description, ok := p.Description.Get()
		if !ok {
			return changes, apperrors.BadRequest("invalid_description", "description must be a string")
		}
		changes.Description = &description
	}

	if p.Status.Set {
		raw, _ := p.Status.Get()
		status, ok := model.ParseTaskStatus(raw)
		if !ok {
			return changes, apperrors.BadRequest("invalid_status", "status must be one of TODO, ONGOING, COMPLETED")
		}
		changes.Status = &status
	}

	return changes, nil
}

func taskLookupError(err error) *apperrors.APIError {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("task_not_found", "task not found")
	}
	return apperrors.Internal("failed to access task").WithCause(err)
}
