package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/Bhupesh-Khordia/auth-service/internal/api/handler"
	"github.com/Bhupesh-Khordia/auth-service/internal/api/middleware"
	"github.com/Bhupesh-Khordia/auth-service/internal/core/domain"
	"github.com/Bhupesh-Khordia/auth-service/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(sessions ports.SessionService, guard ports.AuthGuard, checks map[string]ports.HealthCheck, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(sessions)
	userHandler := handler.NewUserHandler(sessions)
	healthHandler := handler.NewHealthHandler(checks)

	authRequired := middleware.Auth(guard)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Public routes ---
	e.POST("/login", authHandler.Login)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Protected routes ---
	e.GET("/profile", userHandler.Profile, authRequired)
	e.GET("/users", userHandler.List, authRequired, adminOnly)
	e.POST("/create_user", userHandler.Create, authRequired, adminOnly)

	return e
}
