package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/midas/product-tracker/internal/api/handler"
	"github.com/midas/product-tracker/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "code": "<code>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, handler.ErrorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Known domain errors → deterministic HTTP codes and user-facing messages.
	switch {
	case errors.Is(err, domain.ErrInvalidRetailer):
		return http.StatusUnprocessableEntity, handler.ErrorResponse{
			Error: "Invalid retailer. Please select a supported retailer from the dropdown.",
			Code:  "invalid_retailer",
		}
	case errors.Is(err, domain.ErrInvalidURL):
		return http.StatusUnprocessableEntity, handler.ErrorResponse{
			Error: "The URL doesn't match the selected retailer. Please enter a valid product URL.",
			Code:  "invalid_url",
		}
	case errors.Is(err, domain.ErrLoginRejected):
		return http.StatusUnauthorized, handler.ErrorResponse{Error: err.Error(), Code: "login_rejected"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, handler.ErrorResponse{Error: "An error occurred. Please try again."}
}
