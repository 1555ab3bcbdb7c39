package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fai-lds/lds-client/internal/api/middleware"
	"github.com/fai-lds/lds-client/internal/core/domain"
)

// ctxSession returns the session injected by the Session middleware. Routes
// are guarded by RequireSession, so a missing session means the handler was
// mounted without it.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		return nil, domain.ErrUnauthenticated
	}
	return sess, nil
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid user id %q", c.Param("id")))
	}
	return id, nil
}

// formValue distinguishes a field that was never submitted (nil) from one
// submitted empty.
func formValue(c echo.Context, name string) *string {
	form, err := c.FormParams()
	if err != nil {
		return nil
	}
	values, ok := form[name]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
