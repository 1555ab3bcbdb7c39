package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fai-lds/lds-client/internal/api/metrics"
	"github.com/fai-lds/lds-client/internal/api/middleware"
	"github.com/fai-lds/lds-client/internal/core/domain"
	"github.com/fai-lds/lds-client/internal/core/ports"
)

const (
	viewSignIn = "account/sign-in"
	viewSignUp = "account/sign-up"
	pathList   = "/user/list"
)

// CookieConfig describes the session cookie handed to the browser.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// AccountHandler serves sign-in, sign-up and sign-out.
type AccountHandler struct {
	users    ports.UserService
	sessions ports.SessionStore
	cookie   CookieConfig
	log      zerolog.Logger
	now      func() time.Time
	newID    func() string
}

func NewAccountHandler(users ports.UserService, sessions ports.SessionStore, cookie CookieConfig, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		users:    users,
		sessions: sessions,
		cookie:   cookie,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (h *AccountHandler) SignInPage(c echo.Context) error {
	if middleware.SessionFromContext(c) != nil {
		return c.Redirect(http.StatusSeeOther, pathList)
	}
	return c.Render(http.StatusOK, viewSignIn, echo.Map{"username": ""})
}

// SignIn checks the submitted credentials with the backend and opens a
// session. A request missing either field altogether is a bad request.
func (h *AccountHandler) SignIn(c echo.Context) error {
	username := formValue(c, "username")
	password := formValue(c, "password")

	user, err := h.users.ValidateUsernameAndPassword(c.Request().Context(), username, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	if user == nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		h.log.Info().Str("username", *username).Msg("sign-in rejected")
		return c.Render(http.StatusUnauthorized, viewSignIn, echo.Map{
			"username": *username,
			"error":    "Invalid username or password.",
		})
	}

	sess := domain.NewSession(h.newID(), *user, h.now())
	if err := h.sessions.Create(c.Request().Context(), sess); err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsCreatedTotal.Inc()

	c.SetCookie(h.sessionCookie(sess.ID, int(h.cookie.TTL.Seconds())))
	h.log.Info().Int("user_id", user.ID).Str("session_id", sess.ID).Msg("signed in")
	return c.Redirect(http.StatusSeeOther, pathList)
}

func (h *AccountHandler) SignUpPage(c echo.Context) error {
	return c.Render(http.StatusOK, viewSignUp, echo.Map{})
}

func (h *AccountHandler) SignUp(c echo.Context) error {
	var form signUpForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, viewSignUp, echo.Map{"error": "Invalid form submission."})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, viewSignUp, echo.Map{"form": form.redisplay(), "error": err.Error()})
	}

	id, err := h.users.Create(c.Request().Context(), form.toUser())
	if err != nil {
		return err
	}
	if id < 0 {
		return c.Render(http.StatusUnprocessableEntity, viewSignUp, echo.Map{
			"form":  form.redisplay(),
			"error": "The account could not be created.",
		})
	}

	h.log.Info().Int("user_id", id).Str("username", form.Username).Msg("account created")
	return c.Redirect(http.StatusSeeOther, middleware.SignInPath)
}

// SignOut is safe to call without a session.
func (h *AccountHandler) SignOut(c echo.Context) error {
	if sess := middleware.SessionFromContext(c); sess != nil {
		if err := h.sessions.Delete(c.Request().Context(), sess.ID); err != nil {
			return fmt.Errorf("sign out: %w", err)
		}
		h.log.Info().Str("session_id", sess.ID).Msg("signed out")
	}
	c.SetCookie(h.sessionCookie("", -1))
	return c.Redirect(http.StatusSeeOther, middleware.SignInPath)
}

func (h *AccountHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
