package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/blogcms/admin-api/docs"
	"github.com/blogcms/admin-api/internal/api/handler"
	"github.com/blogcms/admin-api/internal/api/middleware"
	"github.com/blogcms/admin-api/internal/core/domain"
	"github.com/blogcms/admin-api/internal/core/ports"
	"github.com/blogcms/admin-api/internal/core/service"
	"github.com/blogcms/admin-api/internal/infrastructure/config"
	mongorepo "github.com/blogcms/admin-api/internal/infrastructure/db/mongo"
	"github.com/blogcms/admin-api/internal/infrastructure/session"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The recorder is the async audit pipeline; it outlives individual requests
// and is started/stopped by the caller.
func NewRouter(cfg *config.Config, log zerolog.Logger, db *mongo.Database, rdb *redis.Client, recorder ports.AuditService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("adminapi"))

	// --- Dependencies ---
	users := mongorepo.NewUserRepository(db)
	articles := mongorepo.NewArticleRepository(db)
	audit := mongorepo.NewAuditRepository(db)
	sessions := session.NewRedisStore(rdb)

	authService := service.NewAuthService(users, recorder, cfg.JWTSecret, cfg.TokenTTL, log)
	articleService := service.NewArticleService(articles, users, recorder, log)

	e.Use(middleware.Session(sessions, authService))

	authHandler := handler.NewAuthHandler(authService, sessions, recorder, cfg.SessionTTL, log)
	articleHandler := handler.NewArticleHandler(articleService)
	adminHandler := handler.NewAdminHandler(users, articles, audit)
	loginPage := handler.NewLoginPageHandler(authService, sessions, recorder, cfg.SessionTTL, cfg.LoginPath, log)

	requireAuth := middleware.RequireAuth(cfg.LoginPath)
	requireAdmin := middleware.RBAC(recorder, domain.RoleAdmin)

	// --- JSON auth endpoints ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/status", authHandler.Status)

	// --- Admin console backend (admin-only) ---
	admin := e.Group("/api/admin", requireAuth, requireAdmin)
	admin.GET("", adminHandler.Dashboard)
	admin.GET("/users", adminHandler.Users)
	admin.GET("/content", adminHandler.Content)
	admin.GET("/settings", adminHandler.Settings)

	// --- Articles: reads are public, writes are admin-only ---
	e.GET("/api/articles", articleHandler.List)
	e.GET("/api/articles/:id", articleHandler.Get)
	e.POST("/api/articles", articleHandler.Create, requireAuth, requireAdmin)
	e.PATCH("/api/articles/:id", articleHandler.Patch, requireAuth, requireAdmin)
	e.PUT("/api/articles/:id", articleHandler.Put, requireAuth, requireAdmin)
	e.DELETE("/api/articles/:id", articleHandler.Delete, requireAuth, requireAdmin)

	// --- Browser form login ---
	csrf := echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		TokenLookup:    "form:_csrf_token",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	})
	e.GET(cfg.LoginPath, loginPage.Show, csrf)
	e.POST(cfg.LoginPath, loginPage.Submit, csrf)
	e.GET("/admin", loginPage.Console, requireAuth, requireAdmin)
	e.GET("/logout", loginPage.Logout)
	e.POST("/logout", loginPage.Logout)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
