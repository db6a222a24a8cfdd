package http

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "openupload/pkg/errors"

	"github.com/labstack/echo/v4"
)

// CustomHTTPErrorHandler handles all errors returned by handlers and middleware.
// It maps sentinel errors to appropriate HTTP status codes, sanitizes internal errors,
// and logs errors with request context.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = fmt.Sprintf("%v", httpErr.Message)
	} else {
		code = apperrors.StatusOf(err)
		message = http.StatusText(code)

		// Prefer the AppError message for client errors
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && code < 500 && code != http.StatusBadGateway {
			message = appErr.Message
		}
	}

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = c.Response().Header().Get("X-Request-ID")
	}
	if requestID == "" {
		requestID = "unknown"
	}

	if code >= 500 {
		c.Logger().Errorf("server_error request_id=%s status=%d error=%v", requestID, code, err)
		// Don't expose internal errors to clients
		message = http.StatusText(code)
	} else {
		c.Logger().Warnf("client_error request_id=%s status=%d error=%v", requestID, code, err)
	}

	if err := c.JSON(code, map[string]interface{}{
		"error":      message,
		"request_id": requestID,
	}); err != nil {
		c.Logger().Error(err)
	}
}
