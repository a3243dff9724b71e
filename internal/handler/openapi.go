package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/contacts-service/internal/server"
	"github.com/deppfellow/contacts-service/static"
)

// OpenAPIHandler serves the embedded OpenAPI document and a browser UI
// that renders it.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

func (h *OpenAPIHandler) ServeOpenAPISpec(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, static.OpenAPISpec)
}

func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	if err := c.HTMLBlob(http.StatusOK, static.OpenAPIUI); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
