package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/blogcms/admin-api/internal/core/domain"
	"github.com/blogcms/admin-api/internal/core/ports"
)

func newAdminFixture() (*AdminHandler, *stubUserRepo, *stubArticleRepo, *stubAuditRepo) {
	users := &stubUserRepo{users: []*domain.User{
		{ID: 1, Email: "admin@example.com", Roles: []string{domain.RoleAdmin}},
		{ID: 2, Email: "user@example.com", Roles: nil},
	}}
	articles := &stubArticleRepo{articles: []*domain.Article{
		domain.NewArticle("One", "body", 1),
		domain.NewArticle("Two", "body", 2),
	}}
	audit := &stubAuditRepo{lastLogin: time.Date(2026, 8, 30, 10, 15, 0, 0, time.UTC)}
	return NewAdminHandler(users, articles, audit), users, articles, audit
}

func adminContext(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("identity", &ports.Identity{UserID: 1, Email: "admin@example.com", Roles: []string{domain.RoleUser, domain.RoleAdmin}})
	return c, rec
}

func TestAdminHandler_Dashboard(t *testing.T) {
	h, _, _, _ := newAdminFixture()
	e := echo.New()
	c, rec := adminContext(e, "/api/admin")

	if err := h.Dashboard(c); err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body dashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Title != "Admin Dashboard" {
		t.Fatalf("unexpected title %q", body.Title)
	}
	if body.Message != "Welcome to the administration panel" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if body.User.Email != "admin@example.com" {
		t.Fatalf("unexpected user %+v", body.User)
	}
	if len(body.Modules) != 3 {
		t.Fatalf("expected 3 modules, got %d", len(body.Modules))
	}
	if body.Modules[0].ID != "users" || body.Modules[1].ID != "content" || body.Modules[2].ID != "settings" {
		t.Fatalf("unexpected module order: %+v", body.Modules)
	}
	if body.Stats.TotalUsers != 2 {
		t.Fatalf("expected 2 users, got %d", body.Stats.TotalUsers)
	}
	if body.Stats.LastLogin != "2026-08-30 10:15:00" {
		t.Fatalf("unexpected last login %q", body.Stats.LastLogin)
	}
}

func TestAdminHandler_DashboardNoLoginsYet(t *testing.T) {
	h, _, _, audit := newAdminFixture()
	audit.lastLogin = time.Time{}

	e := echo.New()
	c, rec := adminContext(e, "/api/admin")

	if err := h.Dashboard(c); err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	var body dashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Stats.LastLogin != "" {
		t.Fatalf("expected empty last login, got %q", body.Stats.LastLogin)
	}
}

func TestAdminHandler_Users(t *testing.T) {
	h, _, _, _ := newAdminFixture()
	e := echo.New()
	c, rec := adminContext(e, "/api/admin/users")

	if err := h.Users(c); err != nil {
		t.Fatalf("users: %v", err)
	}

	var body adminUsersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Title != "User Management" || body.Total != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}

	// Roles are the effective set: stored roles plus the implicit base role.
	for _, u := range body.Users {
		found := false
		for _, r := range u.Roles {
			if r == domain.RoleUser {
				found = true
			}
		}
		if !found {
			t.Fatalf("user %q missing base role: %+v", u.Email, u.Roles)
		}
	}
}

func TestAdminHandler_Content(t *testing.T) {
	h, _, _, _ := newAdminFixture()
	e := echo.New()
	c, rec := adminContext(e, "/api/admin/content")

	if err := h.Content(c); err != nil {
		t.Fatalf("content: %v", err)
	}

	var body contentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Title != "Content Management" {
		t.Fatalf("unexpected title %q", body.Title)
	}
	if len(body.Content) != 3 || body.Content[0].ID != "posts" {
		t.Fatalf("unexpected content: %+v", body.Content)
	}
	if body.Content[0].Count != 2 {
		t.Fatalf("expected 2 posts, got %d", body.Content[0].Count)
	}
}

func TestAdminHandler_Settings(t *testing.T) {
	h, _, _, _ := newAdminFixture()
	e := echo.New()
	c, rec := adminContext(e, "/api/admin/settings")

	if err := h.Settings(c); err != nil {
		t.Fatalf("settings: %v", err)
	}

	var body settingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Title != "System Settings" || len(body.Settings) != 3 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Settings[0].Key != "site_name" {
		t.Fatalf("unexpected settings order: %+v", body.Settings)
	}
}
