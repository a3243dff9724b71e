package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/contacts-service/internal/handler"
	"github.com/deppfellow/contacts-service/internal/server"
)

// registerSystemRoutes registers endpoints outside the contacts API.
// /status is left out when health checks are disabled.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	if obs := s.Config.Observability; obs == nil || obs.HealthChecks.Enabled {
		r.GET("/status", h.Health.CheckHealth)
	}

	r.GET("/docs", h.OpenAPI.ServeOpenAPISpec)
	r.GET("/docs/ui", h.OpenAPI.ServeOpenAPIUI)
}
