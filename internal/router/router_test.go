package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"focusboard/backend/internal/app"
	"focusboard/backend/internal/config"
	"focusboard/backend/internal/dbtest"
	"focusboard/backend/internal/model"
	"focusboard/backend/internal/repository"
)

type userBody struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type taskBody struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type settingsBody struct {
	ID        string `json:"id"`
	StudyTime int    `json:"studyTime"`
	BreakTime int    `json:"breakTime"`
}

type apiErrorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	handler http.Handler
	users   *repository.UserRepository
}

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestServer(t *testing.T) testServer {
	t.Helper()

	database := dbtest.Open(t)
	engine := app.NewEngine(database, config.Config{
		SessionTTL:  7 * 24 * time.Hour,
		CORSOrigins: []string{"http://localhost:3000"},
	})
	return testServer{handler: engine, users: repository.NewUserRepository(database)}
}

// seedUser stores a user directly, the way an out-of-band signup would.
func (s testServer) seedUser(t *testing.T, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	now := time.Now().UTC()
	if err := s.users.Create(context.Background(), &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func (s testServer) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	recorder := s.do(t, http.MethodPost, "/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("login %s failed with status %d: %s", email, recorder.Code, recorder.Body.String())
	}
	cookie := sessionCookie(recorder)
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("login %s did not set a session cookie", email)
	}
	return cookie
}

func (s testServer) do(t *testing.T, method, path string, cookie *http.Cookie, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		raw, ok := body.(string)
		if ok {
			payload = []byte(raw)
		} else {
			encoded, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("marshal request body: %v", err)
			}
			payload = encoded
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}

	recorder := httptest.NewRecorder()
	s.handler.ServeHTTP(recorder, req)
	return recorder
}

func sessionCookie(recorder *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == "session" {
			return cookie
		}
	}
	return nil
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), out); err != nil {
		t.Fatalf("unmarshal %q: %v", recorder.Body.String(), err)
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	server := setupTestServer(t)
	server.seedUser(t, "student@example.com", "hunter22")

	recorder := server.do(t, http.MethodPost, "/auth/login", nil, map[string]string{
		"email":    "student@example.com",
		"password": "hunter22",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var user userBody
	decode(t, recorder, &user)
	if user.ID == "" || user.Email != "student@example.com" {
		t.Fatalf("unexpected login body: %+v", user)
	}

	cookie := sessionCookie(recorder)
	if cookie == nil {
		t.Fatal("expected session cookie")
	}
	if !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode || cookie.Path != "/" || cookie.Secure {
		t.Fatalf("unexpected cookie attributes: %+v", cookie)
	}
	if ttl := time.Until(cookie.Expires); ttl < 6*24*time.Hour || ttl > 7*24*time.Hour {
		t.Fatalf("expected cookie to expire in about 7 days, got %s", ttl)
	}

	me := server.do(t, http.MethodGet, "/auth/me", cookie, nil)
	if me.Code != http.StatusOK {
		t.Fatalf("expected 200 from /auth/me, got %d", me.Code)
	}
}

func TestLoginFailures(t *testing.T) {
	server := setupTestServer(t)
	server.seedUser(t, "student@example.com", "hunter22")

	tests := []struct {
		name   string
		body   interface{}
		status int
		code   string
	}{
		{name: "missing password", body: map[string]string{"email": "student@example.com"}, status: http.StatusBadRequest, code: "missing_credentials"},
		{name: "malformed json", body: `{"email":`, status: http.StatusBadRequest, code: "invalid_json"},
		{name: "wrong password", body: map[string]string{"email": "student@example.com", "password": "nope"}, status: http.StatusUnauthorized, code: "unauthorized"},
		{name: "unknown email", body: map[string]string{"email": "ghost@example.com", "password": "nope"}, status: http.StatusUnauthorized, code: "unauthorized"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := server.do(t, http.MethodPost, "/auth/login", nil, tc.body)
			if recorder.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, recorder.Code, recorder.Body.String())
			}
			var resp apiErrorEnvelope
			decode(t, recorder, &resp)
			if resp.Error.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, resp.Error.Code)
			}
			if tc.status == http.StatusUnauthorized && resp.Error.Message != "invalid credentials" {
				t.Fatalf("expected generic message, got %q", resp.Error.Message)
			}
			if sessionCookie(recorder) != nil {
				t.Fatal("failed login must not set a cookie")
			}
		})
	}
}

func TestLogoutClearsCookieAndSession(t *testing.T) {
	server := setupTestServer(t)
	server.seedUser(t, "student@example.com", "hunter22")
	cookie := server.login(t, "student@example.com", "hunter22")

	for i := 0; i < 2; i++ {
		recorder := server.do(t, http.MethodPost, "/auth/logout", cookie, nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("logout %d: expected 200, got %d", i+1, recorder.Code)
		}
		cleared := sessionCookie(recorder)
		if cleared == nil || cleared.Value != "" || cleared.MaxAge >= 0 {
			t.Fatalf("logout %d: expected cleared cookie, got %+v", i+1, cleared)
		}
	}

	recorder := server.do(t, http.MethodPost, "/auth/logout", nil, nil)
	if recorder.Code != http.StatusOK || sessionCookie(recorder) == nil {
		t.Fatalf("logout without cookie should still clear, got %d", recorder.Code)
	}

	if status := server.do(t, http.MethodGet, "/tasks", cookie, nil).Code; status != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", status)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	server := setupTestServer(t)
	bogus := &http.Cookie{Name: "session", Value: "not-a-session"}

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/tasks"},
		{http.MethodPost, "/tasks"},
		{http.MethodPut, "/tasks/abc"},
		{http.MethodDelete, "/tasks/abc"},
		{http.MethodDelete, "/tasks?status=COMPLETED"},
		{http.MethodGet, "/pomodoro"},
		{http.MethodPost, "/pomodoro"},
		{http.MethodGet, "/auth/me"},
	}
	for _, route := range routes {
		for _, cookie := range []*http.Cookie{nil, bogus} {
			recorder := server.do(t, route.method, route.path, cookie, nil)
			if recorder.Code != http.StatusUnauthorized {
				t.Fatalf("%s %s: expected 401, got %d", route.method, route.path, recorder.Code)
			}
		}
	}
}

func TestTaskBoardFlow(t *testing.T) {
	server := setupTestServer(t)
	server.seedUser(t, "alice@example.com", "hunter22")
	server.seedUser(t, "bob@example.com", "hunter22")
	alice := server.login(t, "alice@example.com", "hunter22")
	bob := server.login(t, "bob@example.com", "hunter22")

	recorder := server.do(t, http.MethodPost, "/tasks", alice, map[string]string{"title": "Older"})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", recorder.Code)
	}
	var older taskBody
	decode(t, recorder, &older)

	recorder = server.do(t, http.MethodPost, "/tasks", alice, map[string]string{"title": "Write essay"})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", recorder.Code)
	}
	var task taskBody
	decode(t, recorder, &task)
	if task.Status != "TODO" || task.Description != "" || task.Title != "Write essay" {
		t.Fatalf("unexpected created task: %+v", task)
	}

	if status := server.do(t, http.MethodPost, "/tasks", alice, map[string]string{"description": "no title"}).Code; status != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing title, got %d", status)
	}

	recorder = server.do(t, http.MethodGet, "/tasks", alice, nil)
	var list []taskBody
	decode(t, recorder, &list)
	if len(list) != 2 || list[0].ID != task.ID || list[1].ID != older.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}

	// Another user can neither see nor touch the task.
	recorder = server.do(t, http.MethodPut, "/tasks/"+task.ID, bob, map[string]string{"status": "COMPLETED"})
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign update, got %d", recorder.Code)
	}
	if status := server.do(t, http.MethodDelete, "/tasks/"+task.ID, bob, nil).Code; status != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign delete, got %d", status)
	}

	recorder = server.do(t, http.MethodPut, "/tasks/"+task.ID, alice, map[string]string{"status": "INVALID"})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid status, got %d", recorder.Code)
	}

	recorder = server.do(t, http.MethodPut, "/tasks/"+task.ID, alice, map[string]string{"description": "first draft"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var updated taskBody
	decode(t, recorder, &updated)
	if updated.Status != "TODO" || updated.Description != "first draft" || updated.Title != "Write essay" {
		t.Fatalf("partial update changed other fields: %+v", updated)
	}

	recorder = server.do(t, http.MethodPut, "/tasks/"+task.ID, alice, map[string]string{"status": "COMPLETED"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	if status := server.do(t, http.MethodDelete, "/tasks?status=TODO", alice, nil).Code; status != http.StatusBadRequest {
		t.Fatalf("expected 400 for bulk delete of TODO, got %d", status)
	}

	recorder = server.do(t, http.MethodDelete, "/tasks?status=COMPLETED", alice, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 from bulk delete, got %d", recorder.Code)
	}
	var batch struct {
		Deleted []string `json:"deleted"`
		Failed  []string `json:"failed"`
	}
	decode(t, recorder, &batch)
	if len(batch.Deleted) != 1 || batch.Deleted[0] != task.ID || len(batch.Failed) != 0 {
		t.Fatalf("unexpected bulk delete result: %+v", batch)
	}

	recorder = server.do(t, http.MethodDelete, "/tasks/"+older.ID, alice, nil)
	if recorder.Code != http.StatusOK || recorder.Body.String() != `{"ok":true}` {
		t.Fatalf("expected ok delete, got %d %s", recorder.Code, recorder.Body.String())
	}
	if status := server.do(t, http.MethodDelete, "/tasks/"+older.ID, alice, nil).Code; status != http.StatusNotFound {
		t.Fatalf("expected 404 for repeated delete, got %d", status)
	}
}

func TestPomodoroSettings(t *testing.T) {
	server := setupTestServer(t)
	server.seedUser(t, "timer@example.com", "hunter22")
	cookie := server.login(t, "timer@example.com", "hunter22")

	recorder := server.do(t, http.MethodGet, "/pomodoro", cookie, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var defaults settingsBody
	decode(t, recorder, &defaults)
	if defaults.StudyTime != 25 || defaults.BreakTime != 5 {
		t.Fatalf("expected 25/5 defaults, got %+v", defaults)
	}

	invalid := []interface{}{
		map[string]interface{}{"studyTime": 10, "breakTime": 0},
		map[string]interface{}{"studyTime": "10", "breakTime": 2},
		map[string]interface{}{"studyTime": 10},
		`not json`,
	}
	for i, body := range invalid {
		if status := server.do(t, http.MethodPost, "/pomodoro", cookie, body).Code; status != http.StatusBadRequest {
			t.Fatalf("invalid body %d: expected 400, got %d", i, status)
		}
	}

	recorder = server.do(t, http.MethodPost, "/pomodoro", cookie, map[string]int{"studyTime": 10, "breakTime": 2})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 on save, got %d: %s", recorder.Code, recorder.Body.String())
	}

	recorder = server.do(t, http.MethodGet, "/pomodoro", cookie, nil)
	var saved settingsBody
	decode(t, recorder, &saved)
	if saved.StudyTime != 10 || saved.BreakTime != 2 || saved.ID != defaults.ID {
		t.Fatalf("expected saved values on the same record, got %+v", saved)
	}
}

func TestRegisterThenUseSession(t *testing.T) {
	server := setupTestServer(t)

	recorder := server.do(t, http.MethodPost, "/auth/register", nil, map[string]string{
		"email":    "new@example.com",
		"password": "secret1",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	cookie := sessionCookie(recorder)
	if cookie == nil {
		t.Fatal("expected session cookie after register")
	}
	if status := server.do(t, http.MethodGet, "/tasks", cookie, nil).Code; status != http.StatusOK {
		t.Fatalf("expected 200 with fresh session, got %d", status)
	}

	recorder = server.do(t, http.MethodPost, "/auth/register", nil, map[string]string{
		"email":    "new@example.com",
		"password": "secret1",
	})
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", recorder.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	server := setupTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	recorder := httptest.NewRecorder()

	server.handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", recorder.Code)
	}
	if recorder.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Fatalf("unexpected allow-origin header: %s", recorder.Header().Get("Access-Control-Allow-Origin"))
	}
	if recorder.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatal("expected credentials to be allowed")
	}
}
