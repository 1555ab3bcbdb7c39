package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fai-lds/lds-client/internal/core/domain"
)

func newContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withSession(c echo.Context, userType domain.UserType) {
	c.Set(SessionKey, domain.NewSession("sid", domain.User{ID: 1, Username: "u", Type: userType}, time.Now()))
}

func TestRequireUserType_Allows(t *testing.T) {
	c, rec := newContext(http.MethodPost, "/")
	withSession(c, domain.UserTypeAdministrator)

	called := false
	mw := RequireUserType(domain.UserTypeAdministrator)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireUserType_Forbids(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/")
	withSession(c, domain.UserTypeRegular)

	mw := RequireUserType(domain.UserTypeAdministrator)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireUserType_AnonymousRedirects(t *testing.T) {
	c, rec := newContext(http.MethodPost, "/")

	handler := RequireUserType(domain.UserTypeAdministrator)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != SignInPath {
		t.Fatalf("expected redirect to sign-in, got %d %s", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}
