package handler

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fai-lds/lds-client/internal/api/middleware"
	"github.com/fai-lds/lds-client/internal/api/views"
	"github.com/fai-lds/lds-client/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserService struct {
	users    []domain.User
	byID     map[int]*domain.User
	createID int
	updateOK bool
	deleteOK bool
	valid    *domain.User
	err      error

	created    *domain.User
	updated    *domain.User
	updatedID  int
	deletedID  int
	credsSeen  [2]*string
	findCalls  int
	sessionSaw *domain.Session
}

func (s *stubUserService) Create(_ context.Context, user *domain.User) (int, error) {
	s.created = user
	return s.createID, s.err
}

func (s *stubUserService) Find(_ context.Context, sess *domain.Session) ([]domain.User, error) {
	s.findCalls++
	s.sessionSaw = sess
	return s.users, s.err
}

func (s *stubUserService) FindByID(_ context.Context, sess *domain.Session, id int) (*domain.User, error) {
	s.sessionSaw = sess
	return s.byID[id], s.err
}

func (s *stubUserService) Update(_ context.Context, sess *domain.Session, id int, user *domain.User) (bool, error) {
	s.sessionSaw = sess
	s.updatedID = id
	s.updated = user
	return s.updateOK, s.err
}

func (s *stubUserService) DeleteByID(_ context.Context, sess *domain.Session, id int) (bool, error) {
	s.sessionSaw = sess
	s.deletedID = id
	return s.deleteOK, s.err
}

func (s *stubUserService) ValidateUsernameAndPassword(_ context.Context, username, password *string) (*domain.User, error) {
	s.credsSeen = [2]*string{username, password}
	if username == nil || password == nil {
		return nil, domain.ErrInvalidArgument
	}
	return s.valid, s.err
}

type stubSessionStore struct {
	sessions  map[string]*domain.Session
	createErr error
	deleted   []string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: map[string]*domain.Session{}}
}

func (s *stubSessionStore) Create(_ context.Context, sess *domain.Session) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.sessions[sess.ID] = sess
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *stubSessionStore) Touch(_ context.Context, id string) error { return nil }

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	delete(s.sessions, id)
	return nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func firstMockUser() domain.User {
	return domain.User{
		ID:       1,
		Username: "tiburssinho",
		FullName: "Tiburssinho Tiburssius",
		Email:    "tiburssinho@gmail.com",
		Type:     domain.UserTypeAdministrator,
		Active:   true,
	}
}

func secondMockUser() domain.User {
	return domain.User{
		ID:       2,
		Username: "aroldo",
		FullName: "Aroldo Aroldus",
		Email:    "aroldo@gmail.com",
		Type:     domain.UserTypeRegular,
		Active:   true,
	}
}

func adminSession() *domain.Session {
	return domain.NewSession("admin-session", firstMockUser(), time.Now())
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	r, err := views.New()
	if err != nil {
		t.Fatalf("views: %v", err)
	}
	e := echo.New()
	e.Renderer = r
	e.Validator = NewValidator()
	return e
}

// newRequest builds a context for target. A non-nil form is sent urlencoded;
// params are name/value pairs for the route parameters.
func newRequest(e *echo.Echo, method, target string, form url.Values, sess *domain.Session, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if len(params) > 0 {
		var names, values []string
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if sess != nil {
		c.Set(middleware.SessionKey, sess)
	}
	return c, rec
}
