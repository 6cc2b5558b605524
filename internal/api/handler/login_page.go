package handler

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/blogcms/admin-api/internal/api/metrics"
	"github.com/blogcms/admin-api/internal/api/middleware"
	"github.com/blogcms/admin-api/internal/core/domain"
	"github.com/blogcms/admin-api/internal/core/ports"
)

// LoginPageHandler serves the browser-facing form login and the console
// landing page. It shares the session store with the JSON auth endpoints so
// a form login and an API login produce interchangeable sessions.
type LoginPageHandler struct {
	authService ports.AuthService
	sessions    ports.SessionStore
	audit       ports.AuditService
	sessionTTL  time.Duration
	loginPath   string
	log         zerolog.Logger
}

func NewLoginPageHandler(authService ports.AuthService, sessions ports.SessionStore, audit ports.AuditService, sessionTTL time.Duration, loginPath string, log zerolog.Logger) *LoginPageHandler {
	return &LoginPageHandler{
		authService: authService,
		sessions:    sessions,
		audit:       audit,
		sessionTTL:  sessionTTL,
		loginPath:   loginPath,
		log:         log,
	}
}

const loginPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Log in</title>
</head>
<body>
    <form method="post" action="%s">
        <h1>Please sign in</h1>
        %s
        <label for="inputEmail">Email</label>
        <input type="email" name="email" id="inputEmail" autocomplete="email" required autofocus>
        <label for="inputPassword">Password</label>
        <input type="password" name="password" id="inputPassword" autocomplete="current-password" required>
        <input type="hidden" name="_csrf_token" value="%s">
        <button type="submit">Sign in</button>
    </form>
</body>
</html>
`

const consolePageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Admin Dashboard</title>
</head>
<body>
    <h1>Admin Dashboard</h1>
    <p>Welcome, %s</p>
    <p>Welcome to the administration panel</p>
    <a href="/logout">Logout</a>
</body>
</html>
`

// Show renders the login form with a CSRF token. The token is injected by
// the CSRF middleware under the "csrf" context key.
func (h *LoginPageHandler) Show(c echo.Context) error {
	// Already signed in: straight to the console.
	if actor(c) != nil {
		return c.Redirect(http.StatusFound, "/admin")
	}

	token, _ := c.Get("csrf").(string)

	errorBlock := ""
	if c.QueryParam("error") != "" {
		errorBlock = `<p role="alert">Invalid credentials.</p>`
	}

	page := fmt.Sprintf(loginPageTemplate, h.loginPath, errorBlock, html.EscapeString(token))
	return c.HTML(http.StatusOK, page)
}

// Submit handles the form POST. Success opens a session and redirects to the
// console; failure re-renders nothing and returns 401 so programmatic
// clients can detect it, with a link back to the form.
func (h *LoginPageHandler) Submit(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	result, err := h.authService.Login(c.Request().Context(), email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return c.HTML(http.StatusUnauthorized,
				fmt.Sprintf(`<p>Invalid credentials. <a href="%s?error=1">Try again</a></p>`, h.loginPath))
		}
		return err
	}

	sessionID, err := h.sessions.Create(c.Request().Context(), ports.Identity{
		UserID: result.User.ID,
		Email:  result.User.Email,
		Roles:  result.User.Roles,
	}, h.sessionTTL)
	if err != nil {
		return err
	}

	c.SetCookie(sessionCookie(sessionID, h.sessionTTL))
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsActive.Inc()

	return c.Redirect(http.StatusSeeOther, "/admin")
}

// Console is the landing page the form login redirects to. Auth and role
// gating happen in the router; by the time this runs an identity is present.
func (h *LoginPageHandler) Console(c echo.Context) error {
	email := ""
	if identity := actor(c); identity != nil {
		email = identity.Email
	}
	return c.HTML(http.StatusOK, fmt.Sprintf(consolePageTemplate, html.EscapeString(email)))
}

// Logout destroys the session and sends the browser back to the login form.
// Teardown is best-effort: an unreachable session store must not leave the
// browser stuck, so the cookie is expired regardless.
func (h *LoginPageHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(c.Request().Context(), cookie.Value); err != nil {
			h.log.Warn().Err(err).Msg("session delete failed during logout")
		} else {
			metrics.SessionsActive.Dec()
		}
	}

	if identity := actor(c); identity != nil && h.audit != nil {
		_ = h.audit.Record(c.Request().Context(), domain.AuthEvent{
			Actor:     identity.Email,
			Action:    domain.ActionLogout,
			Timestamp: time.Now().UTC(),
		})
	}

	c.SetCookie(sessionCookie("", -time.Second))
	return c.Redirect(http.StatusFound, h.loginPath)
}
