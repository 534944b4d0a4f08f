package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	apperrors "focusboard/backend/internal/errors"
	"focusboard/backend/internal/model"
	"focusboard/backend/internal/repository"
)

type SettingsService struct {
	repo SettingsStore
}

func NewSettingsService(repo SettingsStore) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the user's settings, writing the defaults on first access.
func (s *SettingsService) Get(ctx context.Context, userID string) (*model.PomodoroSettings, *apperrors.APIError) {
	settings, err := s.repo.Get(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal("failed to get settings").WithCause(err)
	}

	now := time.Now().UTC()
	defaults := model.PomodoroSettings{
		ID:        uuid.NewString(),
		UserID:    userID,
		StudyTime: model.DefaultStudyMinutes,
		BreakTime: model.DefaultBreakMinutes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.repo.Create(ctx, &defaults)
	if err == nil {
		return &defaults, nil
	}
	if !errors.Is(err, repository.ErrConflict) {
		return nil, apperrors.Internal("failed to create settings").WithCause(err)
	}

	// A concurrent request created the record first.
	settings, err = s.repo.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to get settings").WithCause(err)
	}
	return settings, nil
}

func (s *SettingsService) Save(ctx context.Context, userID string, studyTime, breakTime float64) (*model.PomodoroSettings, *apperrors.APIError) {
	if !validMinutes(studyTime) || !validMinutes(breakTime) {
		return nil, apperrors.BadRequest("invalid_settings", "studyTime and breakTime must be positive whole minutes")
	}

	now := time.Now().UTC()
	settings, err := s.repo.Upsert(ctx, &model.PomodoroSettings{
		ID:        uuid.NewString(),
		UserID:    userID,
		StudyTime: int(studyTime),
		BreakTime: int(breakTime),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, apperrors.Internal("failed to save settings").WithCause(err)
	}
	return settings, nil
}

func validMinutes(v float64) bool {
	return v > 0 && v <= math.MaxInt32 && v == math.Trunc(v)
}
