package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/blogcms/admin-api/internal/api/metrics"
	"github.com/blogcms/admin-api/internal/core/domain"
	"github.com/blogcms/admin-api/internal/core/ports"
)

// RBAC enforces role-based access control on an already-authenticated
// request. The identity must carry at least one of the allowed roles; a
// denial is a bare 403 with no detail about the missing role. Denials are
// recorded to the audit trail when a recorder is provided.
func RBAC(recorder ports.AuditService, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := Identity(c)
			if identity != nil {
				for _, role := range identity.Roles {
					if _, ok := allowed[role]; ok {
						metrics.GuardDecisionsTotal.WithLabelValues("allowed").Inc()
						return next(c)
					}
				}
			}

			metrics.GuardDecisionsTotal.WithLabelValues("forbidden").Inc()
			if recorder != nil && identity != nil {
				_ = recorder.Record(c.Request().Context(), domain.AuthEvent{
					Actor:     identity.Email,
					Action:    domain.ActionAccessDenied,
					Subject:   c.Request().Method + " " + c.Path(),
					Timestamp: time.Now().UTC(),
				})
			}

			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
