package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fai-lds/lds-client/internal/api/middleware"
	"github.com/fai-lds/lds-client/internal/core/domain"
	"github.com/fai-lds/lds-client/internal/infrastructure/httpclient"
)

const viewError = "error"

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Sends requests that lost their session back to sign-in.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the generic error view.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrUnauthenticated) || errors.Is(err, domain.ErrSessionNotFound) {
			_ = c.Redirect(http.StatusSeeOther, middleware.SignInPath)
			return
		}

		code, msg := resolveError(err, log, c)
		data := echo.Map{
			"status":  code,
			"message": msg,
			"current": currentUser(c),
		}
		if rerr := c.Render(code, viewError, data); rerr != nil {
			log.Error().Err(rerr).Msg("render error view")
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, "the request is missing required fields"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	}

	if httpclient.IsTransport(err) {
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("backend unreachable")
		return http.StatusBadGateway, "the user service is unavailable, try again later"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func currentUser(c echo.Context) *domain.User {
	if sess := middleware.SessionFromContext(c); sess != nil {
		return &sess.User
	}
	return nil
}
