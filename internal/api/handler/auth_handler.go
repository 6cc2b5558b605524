package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/blogcms/admin-api/internal/api/metrics"
	"github.com/blogcms/admin-api/internal/api/middleware"
	"github.com/blogcms/admin-api/internal/core/domain"
	"github.com/blogcms/admin-api/internal/core/ports"
)

// AuthHandler serves the JSON authentication endpoints consumed by the
// admin console frontend.
type AuthHandler struct {
	authService ports.AuthService
	sessions    ports.SessionStore
	audit       ports.AuditService
	sessionTTL  time.Duration
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, sessions ports.SessionStore, audit ports.AuditService, sessionTTL time.Duration, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, audit: audit, sessionTTL: sessionTTL, log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    userResponse `json:"user"`
	Token   string       `json:"token,omitempty"`
}

type authFailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type statusResponse struct {
	Authenticated bool          `json:"authenticated"`
	Message       string        `json:"message,omitempty"`
	User          *userResponse `json:"user"`
}

type logoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func authFailure(msg string) authFailureResponse {
	return authFailureResponse{Success: false, Message: msg, Error: msg}
}

// Login authenticates credentials, opens a server-side session and returns
// a bearer token for non-browser clients.
//
// @Summary      Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      loginRequest  true  "Credentials"
// @Success      200          {object}  loginResponse
// @Failure      400          {object}  authFailureResponse
// @Failure      401          {object}  authFailureResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, authFailure("Email and password are required"))
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return c.JSON(http.StatusUnauthorized, authFailure("Invalid credentials"))
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

	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: "Authentication successful",
		User:    userResponse{ID: result.User.ID, Email: result.User.Email, Roles: result.User.Roles},
		Token:   result.Token,
	})
}

// Logout destroys the session and expires the cookie. Logging out without a
// live session is not an error.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.destroySession(c)
	return c.JSON(http.StatusOK, logoutResponse{Success: true, Message: "Logged out successfully"})
}

// Status reports whether the caller is authenticated. It never returns an
// error status so the frontend can poll it cheaply.
//
// @Summary      Authentication status
// @Tags         auth
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /api/auth/status [get]
func (h *AuthHandler) Status(c echo.Context) error {
	if identity := actor(c); identity != nil {
		return c.JSON(http.StatusOK, statusResponse{
			Authenticated: true,
			User:          &userResponse{ID: identity.UserID, Email: identity.Email, Roles: identity.Roles},
		})
	}

	return c.JSON(http.StatusOK, statusResponse{
		Authenticated: false,
		Message:       "This endpoint is for stateless authentication only",
		User:          nil,
	})
}

// destroySession removes the server-side session when one exists, expires
// the cookie and records the logout for the audit trail. Store teardown is
// best-effort: logout always succeeds from the caller's point of view, and
// the cookie is expired even when the store is unreachable.
func (h *AuthHandler) destroySession(c echo.Context) {
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
}

// sessionCookie builds the admin session cookie. A negative ttl expires it.
func sessionCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
