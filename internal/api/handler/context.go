package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/blogcms/admin-api/internal/api/middleware"
	"github.com/blogcms/admin-api/internal/core/ports"
)

// actor extracts the authenticated identity injected by the Session
// middleware. Anonymous requests yield nil; handlers pass that through so
// services skip authorship bookkeeping rather than failing.
func actor(c echo.Context) *ports.Identity {
	return middleware.Identity(c)
}
