package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fai-lds/lds-client/internal/core/domain"
)

// RequireUserType lets through only sessions whose user has one of the
// allowed types. Anonymous requests are sent to sign-in.
func RequireUserType(allowedTypes ...domain.UserType) echo.MiddlewareFunc {
	allowed := make(map[domain.UserType]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := SessionFromContext(c)
			if sess == nil {
				return c.Redirect(http.StatusSeeOther, SignInPath)
			}
			if _, ok := allowed[sess.User.Type]; !ok {
				return fmt.Errorf("user type %q: %w", sess.User.Type, domain.ErrForbidden)
			}
			return next(c)
		}
	}
}
