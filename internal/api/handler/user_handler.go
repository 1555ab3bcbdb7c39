package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fai-lds/lds-client/internal/core/domain"
	"github.com/fai-lds/lds-client/internal/core/ports"
)

const (
	viewList   = "user/list"
	viewDetail = "user/detail"
	viewEdit   = "user/edit"
)

// UserHandler renders the user management pages.
type UserHandler struct {
	users ports.UserService
	log   zerolog.Logger
}

func NewUserHandler(users ports.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// List renders every user. The model carries the signed-in user as "user"
// and the backend's users, in backend order, as "users".
func (h *UserHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	users, err := h.users.Find(c.Request().Context(), sess)
	if err != nil {
		return err
	}

	current := sess.User
	return c.Render(http.StatusOK, viewList, echo.Map{
		"user":    &current,
		"current": &current,
		"users":   users,
		"admin":   current.IsAdministrator(),
	})
}

// Detail redirects to the list when the user does not exist.
func (h *UserHandler) Detail(c echo.Context) error {
	return h.show(c, viewDetail)
}

// Edit redirects to the list when the user does not exist.
func (h *UserHandler) Edit(c echo.Context) error {
	return h.show(c, viewEdit)
}

func (h *UserHandler) show(c echo.Context, view string) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.users.FindByID(c.Request().Context(), sess, id)
	if err != nil {
		return err
	}
	if user == nil {
		return c.Redirect(http.StatusFound, pathList)
	}

	return c.Render(http.StatusOK, view, echo.Map{
		"user":    user,
		"current": &sess.User,
	})
}

// Update sends the edited user to the backend and shows its detail page on
// success. A refused update re-renders the form. Only administrators may
// change a user's type.
func (h *UserHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var form updateForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	user := form.toUser(id)
	if err := c.Validate(&form); err != nil {
		return h.renderEdit(c, sess, user, http.StatusBadRequest, err.Error())
	}
	if !sess.User.IsAdministrator() && user.Type != sess.User.Type {
		h.log.Warn().
			Int("user_id", id).
			Str("by", sess.User.Username).
			Str("type", string(user.Type)).
			Msg("user type change denied")
		return fmt.Errorf("change user type to %q: %w", user.Type, domain.ErrForbidden)
	}

	ok, err := h.users.Update(c.Request().Context(), sess, id, user)
	if err != nil {
		return err
	}
	if !ok {
		h.log.Warn().Int("user_id", id).Msg("update refused")
		return h.renderEdit(c, sess, user, http.StatusUnprocessableEntity, "The user could not be updated.")
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/user/detail/%d", id))
}

// Delete always returns to the list; a refused delete is only logged.
func (h *UserHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ok, err := h.users.DeleteByID(c.Request().Context(), sess, id)
	if err != nil {
		return err
	}
	if !ok {
		h.log.Warn().Int("user_id", id).Msg("delete refused")
	}
	return c.Redirect(http.StatusSeeOther, pathList)
}

func (h *UserHandler) renderEdit(c echo.Context, sess *domain.Session, user *domain.User, status int, msg string) error {
	shown := user.WithoutPassword()
	return c.Render(status, viewEdit, echo.Map{
		"user":    &shown,
		"current": &sess.User,
		"error":   msg,
	})
}
