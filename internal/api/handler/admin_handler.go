package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blogcms/admin-api/internal/core/ports"
)

// AdminHandler serves the admin console backend endpoints. All routes are
// admin-gated in the router; handlers assume an identity is present.
type AdminHandler struct {
	users    ports.UserRepository
	articles ports.ArticleRepository
	audit    ports.AuditRepository
}

func NewAdminHandler(users ports.UserRepository, articles ports.ArticleRepository, audit ports.AuditRepository) *AdminHandler {
	return &AdminHandler{users: users, articles: articles, audit: audit}
}

type adminModule struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	URL         string `json:"url"`
}

type dashboardStats struct {
	TotalUsers int    `json:"total_users"`
	LastLogin  string `json:"last_login"`
}

type dashboardResponse struct {
	Title   string         `json:"title"`
	Message string         `json:"message"`
	User    adminUser      `json:"user"`
	Modules []adminModule  `json:"modules"`
	Stats   dashboardStats `json:"stats"`
}

// adminUser is the trimmed identity echoed on admin payloads; the frontend
// keys off email and roles only.
type adminUser struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

type adminUsersResponse struct {
	Title string         `json:"title"`
	Users []userResponse `json:"users"`
	Total int            `json:"total"`
}

type contentItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type contentResponse struct {
	Title   string        `json:"title"`
	Message string        `json:"message"`
	Content []contentItem `json:"content"`
}

type settingItem struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
	Type  string `json:"type"`
}

type settingsResponse struct {
	Title    string        `json:"title"`
	Message  string        `json:"message"`
	Settings []settingItem `json:"settings"`
}

// Dashboard returns the admin landing payload: the caller's identity, the
// available modules and live stats.
//
// @Summary      Admin dashboard
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Security     SessionCookie
// @Router       /api/admin [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	identity := actor(c)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	users, err := h.users.FindAll(c.Request().Context())
	if err != nil {
		return err
	}

	lastLogin := ""
	if ts, err := h.audit.LastLogin(c.Request().Context()); err == nil && !ts.IsZero() {
		lastLogin = ts.UTC().Format("2006-01-02 15:04:05")
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Title:   "Admin Dashboard",
		Message: "Welcome to the administration panel",
		User:    adminUser{Email: identity.Email, Roles: identity.Roles},
		Modules: []adminModule{
			{
				ID:          "users",
				Title:       "User Management",
				Description: "Manage application users and permissions",
				Icon:        "users",
				URL:         "/api/admin/users",
			},
			{
				ID:          "content",
				Title:       "Content Management",
				Description: "Manage application content and settings",
				Icon:        "content",
				URL:         "/api/admin/content",
			},
			{
				ID:          "settings",
				Title:       "System Settings",
				Description: "Configure application settings",
				Icon:        "settings",
				URL:         "/api/admin/settings",
			},
		},
		Stats: dashboardStats{TotalUsers: len(users), LastLogin: lastLogin},
	})
}

// Users lists all user accounts.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200  {object}  adminUsersResponse
// @Failure      403  {object}  errorResponse
// @Security     SessionCookie
// @Router       /api/admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	users, err := h.users.FindAll(c.Request().Context())
	if err != nil {
		return err
	}

	items := make([]userResponse, 0, len(users))
	for _, u := range users {
		items = append(items, userResponse{ID: u.ID, Email: u.Email, Roles: u.EffectiveRoles()})
	}

	return c.JSON(http.StatusOK, adminUsersResponse{
		Title: "User Management",
		Users: items,
		Total: len(items),
	})
}

// Content summarizes the manageable content types with live counts.
//
// @Summary      Content overview
// @Tags         admin
// @Produce      json
// @Success      200  {object}  contentResponse
// @Failure      403  {object}  errorResponse
// @Security     SessionCookie
// @Router       /api/admin/content [get]
func (h *AdminHandler) Content(c echo.Context) error {
	articles, err := h.articles.FindAll(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, contentResponse{
		Title:   "Content Management",
		Message: "Content management endpoint",
		Content: []contentItem{
			{ID: "posts", Name: "Blog Posts", Count: len(articles)},
			{ID: "pages", Name: "Static Pages", Count: 0},
			{ID: "media", Name: "Media Files", Count: 0},
		},
	})
}

// Settings returns the editable system settings.
//
// @Summary      System settings
// @Tags         admin
// @Produce      json
// @Success      200  {object}  settingsResponse
// @Failure      403  {object}  errorResponse
// @Security     SessionCookie
// @Router       /api/admin/settings [get]
func (h *AdminHandler) Settings(c echo.Context) error {
	return c.JSON(http.StatusOK, settingsResponse{
		Title:   "System Settings",
		Message: "System settings endpoint",
		Settings: []settingItem{
			{Key: "site_name", Value: "My Blog", Type: "text"},
			{Key: "maintenance_mode", Value: false, Type: "boolean"},
			{Key: "max_upload_size", Value: "10MB", Type: "text"},
		},
	})
}
