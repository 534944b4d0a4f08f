package service

import (
	"context"
	"time"

	"focusboard/backend/internal/model"
	"focusboard/backend/internal/repository"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	GetUser(ctx context.Context, sessionID string, now time.Time) (*model.User, error)
	Delete(ctx context.Context, sessionID string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	ListByOwner(ctx context.Context, userID string) ([]model.Task, error)
	ListByOwnerAndStatus(ctx context.Context, userID string, status model.TaskStatus) ([]model.Task, error)
	GetOwned(ctx context.Context, userID, taskID string) (*model.Task, error)
	UpdateOwned(ctx context.Context, userID, taskID string, changes repository.TaskChanges, now time.Time) error
	DeleteOwned(ctx context.Context, userID, taskID string) error
}

type SettingsStore interface {
	Get(ctx context.Context, userID string) (*model.PomodoroSettings, error)
	Create(ctx context.Context, settings *model.PomodoroSettings) error
	Upsert(ctx context.Context, settings *model.PomodoroSettings) (*model.PomodoroSettings, error)
}

var (
	_ UserStore     = (*repository.UserRepository)(nil)
	_ SessionStore  = (*repository.SessionRepository)(nil)
	_ TaskStore     = (*repository.TaskRepository)(nil)
	_ SettingsStore = (*repository.SettingsRepository)(nil)
)
