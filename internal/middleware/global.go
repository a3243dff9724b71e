package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/contacts-service/internal/errs"
	"github.com/deppfellow/contacts-service/internal/model"
	"github.com/deppfellow/contacts-service/internal/server"
	"github.com/deppfellow/contacts-service/internal/storeerr"
)

// RouteNotFound is the envelope message for requests that match no route.
const RouteNotFound = "Route not found"

// GlobalMiddlewares groups the middleware every route runs through and
// the global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
	})
}

// RequestLogger writes one "API" line per request, at a level picked from
// the final status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			// The error handler has not written the response yet when a
			// handler returns an error, so v.Status may still be 200.
			// https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			statusCode := v.Status
			if v.Error != nil {
				statusCode = statusOf(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler renders every error returned by a handler or
// middleware as a Failure envelope.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err

	httpErr := toHTTPError(err)

	logger := *GetLogger(c)

	var e *zerolog.Event
	if httpErr.Status >= 500 {
		e = logger.Error().Stack()
	} else {
		e = logger.Warn()
	}

	var storeErr *storeerr.Error
	if errors.As(originalErr, &storeErr) {
		e = e.Str("store_op", storeErr.Op).
			Str("store_collection", storeErr.Collection).
			Str("store_error", storeerr.FormatMessage(storeErr))
		if storeErr.Index != "" {
			e = e.Str("store_index", storeErr.Index).Str("store_field", storeErr.Field)
		}
	}

	e.Err(originalErr).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Str("error_kind", string(httpErr.Kind)).
		Msg(httpErr.Message)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(httpErr.Status)
		return
	}

	_ = c.JSON(httpErr.Status, model.Failure(httpErr.Message, httpErr.Detail))
}

// toHTTPError maps any error onto the application error type.
//
// echo's own errors keep their status; route 404s get RouteNotFound.
// Store errors become store failures and anything else an internal error.
func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusNotFound {
			return errs.NewNotFoundError(RouteNotFound, nil).WithCause(err)
		}

		message := http.StatusText(echoErr.Code)
		detail := ""
		if msg, ok := echoErr.Message.(string); ok && msg != message {
			detail = msg
		}

		kind := errs.KindValidation
		if echoErr.Code >= 500 {
			kind = errs.KindInternal
		}

		return (&errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Kind:    kind,
			Message: message,
			Detail:  detail,
			Status:  echoErr.Code,
		}).WithCause(err)
	}

	if storeerr.IsStoreError(err) && errors.As(storeerr.HandleError(err), &httpErr) {
		return httpErr
	}

	return errs.NewInternalServerError().WithCause(err)
}

func statusOf(err error) int {
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	default:
		return http.StatusInternalServerError
	}
}
