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

const minPasswordLength = 6

type AuthService struct {
	users    UserStore
	sessions *SessionService
}

func NewAuthService(users UserStore, sessions *SessionService) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
	}
}

type AuthResult struct {
	Session model.Session
	User    model.User
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, *apperrors.APIError) {
	normalizedEmail := normalizeEmail(email)
	if normalizedEmail == "" {
		return nil, apperrors.BadRequest("invalid_email", "email is required")
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.BadRequest("invalid_password", "password must be at least 6 characters")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, apperrors.Internal("failed to secure password").WithCause(err)
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        normalizedEmail,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.Conflict("email_exists", "email already registered", nil)
		}
		return nil, apperrors.Internal("failed to create user").WithCause(err)
	}

	return s.startSession(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, *apperrors.APIError) {
	normalizedEmail := normalizeEmail(email)
	if normalizedEmail == "" || password == "" {
		return nil, apperrors.BadRequest("missing_credentials", "email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, normalizedEmail)
	if errors.Is(err, repository.ErrNotFound) {
		burnPasswordCheck(password)
		return nil, apperrors.Unauthorized("invalid credentials")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to query user").WithCause(err)
	}

	if !verifyPassword(user.PasswordHash, password) {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	return s.startSession(ctx, *user)
}

// Logout drops the server-side session. Store failures are logged and
// otherwise ignored so the client cookie can always be cleared.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if apiErr := s.sessions.Invalidate(ctx, token); apiErr != nil {
		logger.Error("logout: session delete failed", map[string]any{
			"error": errorString(apiErr.Cause),
		})
	}
}

func (s *AuthService) startSession(ctx context.Context, user model.User) (*AuthResult, *apperrors.APIError) {
	session, apiErr := s.sessions.Create(ctx, user.ID)
	if apiErr != nil {
		return nil, apiErr
	}

	user.PasswordHash = ""
	return &AuthResult{
		Session: *session,
		User:    user,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
