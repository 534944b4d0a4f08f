package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	apperrors "focusboard/backend/internal/errors"
	"focusboard/backend/internal/model"
	"focusboard/backend/internal/repository"
)

const DefaultSessionTTL = 7 * 24 * time.Hour

type SessionService struct {
	store SessionStore
	ttl   time.Duration
	now   func() time.Time
}

func NewSessionService(store SessionStore, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{
		store: store,
		ttl:   ttl,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source.
func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	s.now = now
	return s
}

func (s *SessionService) Create(ctx context.Context, userID string) (*model.Session, *apperrors.APIError) {
	token, err := newSessionToken()
	if err != nil {
		return nil, apperrors.Internal("failed to generate session").WithCause(err)
	}

	now := s.now()
	session := model.Session{
		ID:        token,
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.store.Create(ctx, &session); err != nil {
		return nil, apperrors.Internal("failed to create session").WithCause(err)
	}
	return &session, nil
}

// Resolve returns the user behind a live session. Missing, unknown and
// expired tokens are indistinguishable to the caller.
func (s *SessionService) Resolve(ctx context.Context, token string) (*model.User, *apperrors.APIError) {
	if token == "" {
		return nil, apperrors.Unauthorized("")
	}

	user, err := s.store.GetUser(ctx, token, s.now())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Unauthorized("")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to resolve session").WithCause(err)
	}
	return user, nil
}

func (s *SessionService) Invalidate(ctx context.Context, token string) *apperrors.APIError {
	if token == "" {
		return nil
	}
	if _, err := s.store.Delete(ctx, token); err != nil {
		return apperrors.Internal("failed to delete session").WithCause(err)
	}
	return nil
}

func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.store.DeleteExpired(ctx, s.now())
}

func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
