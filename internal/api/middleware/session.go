package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/blogcms/admin-api/internal/api/metrics"
	"github.com/blogcms/admin-api/internal/core/ports"
)

// SessionCookieName is the cookie carrying the opaque session id.
const SessionCookieName = "admin_session"

// identityKey is the echo context key holding the resolved *ports.Identity.
const identityKey = "identity"

// TokenVerifier parses a bearer token into the identity it binds.
type TokenVerifier interface {
	VerifyToken(token string) (*ports.Identity, error)
}

// Session resolves the caller's identity from the session cookie, falling
// back to an Authorization bearer token, and injects it into the request
// context. Resolution is fail-closed: malformed cookies, unknown session
// ids and invalid tokens all leave the request unauthenticated. The request
// always proceeds; gating happens in RequireAuth/RBAC.
func Session(store ports.SessionStore, verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				if identity, err := store.Get(c.Request().Context(), cookie.Value); err == nil {
					c.Set(identityKey, identity)
					return next(c)
				}
			}

			if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					if identity, err := verifier.VerifyToken(parts[1]); err == nil {
						c.Set(identityKey, identity)
					}
				}
			}

			return next(c)
		}
	}
}

// Identity returns the authenticated identity for the request, or nil when
// the caller is anonymous.
func Identity(c echo.Context) *ports.Identity {
	identity, _ := c.Get(identityKey).(*ports.Identity)
	return identity
}

// RequireAuth is the entry point for protected routes: unauthenticated
// requests from browser-style clients (Accept mentions text/html or
// application/ld+json) are redirected to the login page, API clients get a
// 401 JSON body.
func RequireAuth(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Identity(c) != nil {
				return next(c)
			}

			metrics.GuardDecisionsTotal.WithLabelValues("unauthenticated").Inc()

			accept := c.Request().Header.Get("Accept")
			if strings.Contains(accept, "text/html") || strings.Contains(accept, "application/ld+json") {
				return c.Redirect(http.StatusFound, loginPath)
			}

			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error":   "Authentication required",
				"message": "You must be authenticated to access this resource",
			})
		}
	}
}
