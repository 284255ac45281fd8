package server

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/alphaprime/internal/middleware"
)

// setupErrorHandling installs an error handler that logs unhandled errors
// with a stack trace and answers with a plain status page.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		logger := middleware.FromContext(c.Request().Context())
		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
			if code >= http.StatusInternalServerError {
				logger.Error("HTTP error", "status", code, "error", err)
			}
		} else {
			logger.Error("Internal Server Error (Unhandled)",
				"error", err.Error(),
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"stack_trace", string(debug.Stack()),
			)
		}

		var respErr error
		if c.Request().Method == http.MethodHead {
			respErr = c.NoContent(code)
		} else {
			respErr = c.String(code, message)
		}
		if respErr != nil {
			slog.Error("Failed to write error response", "error", respErr)
		}
	}
}
