package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/contacts-service/internal/middleware"
	"github.com/deppfellow/contacts-service/internal/server"
)

// Pinger is a dependency the health check can ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves GET /status for load balancers and uptime checks.
type HealthHandler struct {
	Handler
	store Pinger
}

func NewHealthHandler(s *server.Server, store Pinger) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		store:   store,
	}
}

// CheckHealth pings the contact store and answers 200 when it responds,
// 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"driver":      h.server.Config.Database.Driver,
		"checks":      make(map[string]interface{}),
	}

	checks := response["checks"].(map[string]interface{})
	isHealthy := true

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout())
	defer cancel()

	storeStart := time.Now()

	if err := h.store.Ping(ctx); err != nil {
		checks["store"] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": time.Since(storeStart).String(),
			"error":         err.Error(),
		}

		isHealthy = false

		logger.Error().
			Err(err).
			Dur("response_time", time.Since(storeStart)).
			Msg("store health check failed")

		h.recordEvent(map[string]interface{}{
			"check_type":       "store",
			"operation":        "health_check",
			"error_type":       "store_unhealthy",
			"response_time_ms": time.Since(storeStart).Milliseconds(),
			"error_message":    err.Error(),
		})
	} else {
		checks["store"] = map[string]interface{}{
			"status":        "healthy",
			"response_time": time.Since(storeStart).String(),
		}

		logger.Debug().
			Dur("response_time", time.Since(storeStart)).
			Msg("store health check passed")
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")

		h.recordEvent(map[string]interface{}{
			"check_type":    "response",
			"operation":     "health_check",
			"error_type":    "json_response_error",
			"error_message": err.Error(),
		})

		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) timeout() time.Duration {
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		return obs.HealthChecks.Timeout
	}
	return 5 * time.Second
}

// recordEvent sends a HealthCheckError custom event when New Relic is on.
func (h *HealthHandler) recordEvent(params map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", params)
	}
}
