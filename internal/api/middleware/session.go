package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fai-lds/lds-client/internal/core/domain"
	"github.com/fai-lds/lds-client/internal/core/ports"
)

// SessionKey is the echo context key holding the *domain.Session.
const SessionKey = "session"

// SignInPath is where anonymous requests to protected routes are sent.
const SignInPath = "/account/sign-in"

// Session loads the session named by the cookie, if any, and slides its
// expiry. Requests without a valid session continue anonymously.
func Session(store ports.SessionStore, cookieName string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			sess, err := store.Get(ctx, cookie.Value)
			switch {
			case errors.Is(err, domain.ErrSessionNotFound):
				return next(c)
			case err != nil:
				return fmt.Errorf("load session: %w", err)
			}

			if err := store.Touch(ctx, sess.ID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
				log.Warn().Err(err).Str("session_id", sess.ID).Msg("session touch failed")
			}

			c.Set(SessionKey, sess)
			return next(c)
		}
	}
}

// RequireSession redirects anonymous requests to the sign-in page.
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if SessionFromContext(c) == nil {
			return c.Redirect(http.StatusSeeOther, SignInPath)
		}
		return next(c)
	}
}

// SessionFromContext returns the request's session, or nil when anonymous.
func SessionFromContext(c echo.Context) *domain.Session {
	sess, _ := c.Get(SessionKey).(*domain.Session)
	return sess
}
