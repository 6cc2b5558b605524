package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/blogcms/admin-api/internal/api/middleware"
	"github.com/blogcms/admin-api/internal/core/domain"
	"github.com/blogcms/admin-api/internal/core/ports"
	"github.com/blogcms/admin-api/internal/infrastructure/session"
)

func newAuthFixture() (*AuthHandler, *session.MemoryStore, *captureAudit) {
	auth := &fakeAuthService{
		email:    "admin@example.com",
		password: "s3cret",
		user:     domain.PublicUser{ID: 1, Email: "admin@example.com", Roles: []string{domain.RoleUser, domain.RoleAdmin}},
		token:    "api-token",
	}
	store := session.NewMemoryStore()
	audit := &captureAudit{}
	return NewAuthHandler(auth, store, audit, time.Hour, zerolog.Nop()), store, audit
}

// brokenDeleteStore simulates a session store whose backend is unreachable
// at teardown time.
type brokenDeleteStore struct {
	*session.MemoryStore
	deleteErr error
}

func (s *brokenDeleteStore) Delete(context.Context, string) error {
	return s.deleteErr
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}
	t.Fatalf("session cookie not set")
	return nil
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	h, store, _ := newAuthFixture()
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"admin@example.com","password":"s3cret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Message != "Authentication successful" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.User.Email != "admin@example.com" || body.Token != "api-token" {
		t.Fatalf("unexpected user/token: %+v", body)
	}

	cookie := sessionCookieFrom(t, rec)
	if cookie.Value == "" || !cookie.HttpOnly {
		t.Fatalf("expected http-only session cookie, got %+v", cookie)
	}

	identity, err := store.Get(context.Background(), cookie.Value)
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	if identity.Email != "admin@example.com" || identity.UserID != 1 {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestAuthHandler_LoginFailureIsUniform(t *testing.T) {
	h, _, _ := newAuthFixture()
	e := echo.New()

	// Unknown email and wrong password must be indistinguishable.
	for _, payload := range []string{
		`{"email":"ghost@example.com","password":"s3cret"}`,
		`{"email":"admin@example.com","password":"wrong"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(payload))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := h.Login(c); err != nil {
			t.Fatalf("login: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("payload %s: expected 401, got %d", payload, rec.Code)
		}

		var body authFailureResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Success || body.Message != "Invalid credentials" || body.Error != "Invalid credentials" {
			t.Fatalf("payload %s: unexpected body %+v", payload, body)
		}
	}
}

func TestAuthHandler_LoginMissingFields(t *testing.T) {
	h, _, _ := newAuthFixture()
	e := echo.New()

	for _, payload := range []string{
		`{}`,
		`{"email":"admin@example.com"}`,
		`{"password":"s3cret"}`,
		`not json`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(payload))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := h.Login(c); err != nil {
			t.Fatalf("login: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("payload %s: expected 400, got %d", payload, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Email and password are required") {
			t.Fatalf("payload %s: unexpected body %s", payload, rec.Body.String())
		}
	}
}

func TestAuthHandler_LogoutDestroysSession(t *testing.T) {
	h, store, audit := newAuthFixture()
	e := echo.New()

	identity := ports.Identity{UserID: 1, Email: "admin@example.com", Roles: []string{domain.RoleAdmin}}
	sessionID, err := store.Create(context.Background(), identity, time.Hour)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: sessionID})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("identity", &identity)

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Logged out successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	if _, err := store.Get(context.Background(), sessionID); err == nil {
		t.Fatalf("session should be destroyed")
	}

	cookie := sessionCookieFrom(t, rec)
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got %+v", cookie)
	}

	events := audit.all()
	if len(events) != 1 || events[0].Action != domain.ActionLogout {
		t.Fatalf("expected logout audit event, got %+v", events)
	}
	if events[0].Actor != "admin@example.com" {
		t.Fatalf("unexpected actor %q", events[0].Actor)
	}
}

func TestAuthHandler_LogoutWithoutSessionSucceeds(t *testing.T) {
	h, _, _ := newAuthFixture()
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_LogoutSucceedsWhenStoreDeleteFails(t *testing.T) {
	auth := &fakeAuthService{email: "admin@example.com", password: "s3cret"}
	store := &brokenDeleteStore{MemoryStore: session.NewMemoryStore(), deleteErr: errors.New("redis: connection refused")}
	h := NewAuthHandler(auth, store, &captureAudit{}, time.Hour, zerolog.Nop())
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "sess-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 despite store failure, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Logged out successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	cookie := sessionCookieFrom(t, rec)
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("cookie should be expired even when delete fails, got %+v", cookie)
	}
}

func TestAuthHandler_StatusAuthenticated(t *testing.T) {
	h, _, _ := newAuthFixture()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("identity", &ports.Identity{UserID: 1, Email: "admin@example.com", Roles: []string{domain.RoleAdmin}})

	if err := h.Status(c); err != nil {
		t.Fatalf("status: %v", err)
	}

	var body statusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Authenticated || body.User == nil || body.User.Email != "admin@example.com" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestAuthHandler_StatusAnonymous(t *testing.T) {
	h, _, _ := newAuthFixture()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Status(c); err != nil {
		t.Fatalf("status: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body statusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Authenticated || body.User != nil {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Message != "This endpoint is for stateless authentication only" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}
