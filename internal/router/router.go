// Package router builds the Echo instance: global middlewares, the error
// handler and every route group.
package router

import (
	"github.com/deppfellow/fieldservice/internal/handler"
	"github.com/deppfellow/fieldservice/internal/middleware"
	"github.com/deppfellow/fieldservice/internal/server"
	"github.com/deppfellow/fieldservice/internal/service"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services.Auth)

	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id and the New Relic transaction must exist
	// before the logger is enriched, and the logger before anything logs.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		middlewares.Global.BodyLimit(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerUserRoutes(v1, h)
	registerClientRoutes(v1, h)
	registerTechnicianRoutes(v1, h)
	registerCatalogRoutes(v1, h)
	registerAppointmentRoutes(v1, h)

	admin := router.Group("/admin", middlewares.Auth.RequireAdmin())
	registerAdminRoutes(admin, h)

	return router
}
