// Package router builds the echo instance: the global middleware chain,
// the error handler, the contact routes and the system routes.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/contacts-service/internal/handler"
	"github.com/deppfellow/contacts-service/internal/middleware"
	"github.com/deppfellow/contacts-service/internal/server"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, s, h)
	registerContactRoutes(router, h)

	return router
}

func registerContactRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Contact.Welcome)

	contacts := r.Group("/contacts")
	contacts.GET("", h.Contact.List())
	contacts.POST("", h.Contact.Create())
	contacts.GET("/:id", h.Contact.Get())
	contacts.PATCH("/:id", h.Contact.Update())
	contacts.DELETE("/:id", h.Contact.Delete())
}
