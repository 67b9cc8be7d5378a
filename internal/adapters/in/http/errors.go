package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the envelope of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable code, a client-safe message and the request id.
type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

var httpErrorCodes = map[int]string{
	http.StatusBadRequest:            "bad_request",
	http.StatusNotFound:              "not_found",
	http.StatusMethodNotAllowed:      "method_not_allowed",
	http.StatusRequestEntityTooLarge: "payload_too_large",
	http.StatusUnsupportedMediaType:  "unsupported_media_type",
	http.StatusServiceUnavailable:    "store_unavailable",
}

// classify maps an error returned by a handler or middleware to a response
// status, a stable machine-readable code and a client-safe message.
func classify(err error) (int, string, string) {
	var httpErr *echo.HTTPError
	var validationErr *requestValidationError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, "invalid_input", validationErr.Error()
	case errors.As(err, &httpErr):
		code, ok := httpErrorCodes[httpErr.Code]
		if !ok {
			code = "http_error"
		}
		return httpErr.Code, code, fmt.Sprint(httpErr.Message)
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusBadRequest, "bad_request", err.Error()
	case errors.Is(err, errs.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input", err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "not_found", "order not found"
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, "conflict", "version mismatch"
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, "invalid_transition", err.Error()
	case errors.Is(err, errs.ErrStoreUnavailable), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "store_unavailable", "store unavailable, retry later"
	default:
		return http.StatusInternalServerError, "internal", "internal server error"
	}
}

// ErrorHandler renders errors in the ErrorBody envelope. It is installed as
// echo's HTTPErrorHandler, so it also covers routing errors.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code, message := classify(err)
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)

		ctx := c.Request().Context()
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(ctx, "request failed",
				"request_id", requestID, "status", status, "error", err)
		} else {
			logger.DebugContext(ctx, "request rejected",
				"request_id", requestID, "status", status, "error", err)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, ErrorBody{Error: ErrorDetail{
				Code:      code,
				Message:   message,
				RequestID: requestID,
			}})
		}
		if writeErr != nil {
			logger.ErrorContext(ctx, "write error response", "request_id", requestID, "error", writeErr)
		}
	}
}
