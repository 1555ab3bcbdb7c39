package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/fai-lds/lds-client/internal/core/domain"
	"github.com/fai-lds/lds-client/internal/core/ports"
)

const (
	createEndpoint   = "user/create"
	findEndpoint     = "user/find"
	findByIDEndpoint = "user/find/"
	updateEndpoint   = "user/update/"
	deleteEndpoint   = "user/delete/"
	loginEndpoint    = "account/login"
)

// UserService forwards user operations to the backend after local
// validation. It never talks to sockets itself.
type UserService struct {
	rest     ports.RestService[domain.User]
	exchange ports.Exchanger
	log      zerolog.Logger
}

func NewUserService(rest ports.RestService[domain.User], exchange ports.Exchanger, log zerolog.Logger) *UserService {
	return &UserService{rest: rest, exchange: exchange, log: log}
}

// Create returns the backend-assigned id, or -1 when the backend refused the
// user.
func (s *UserService) Create(ctx context.Context, user *domain.User) (int, error) {
	if user == nil {
		return -1, nil
	}

	id, err := s.rest.Post(ctx, createEndpoint, *user)
	if err != nil {
		return -1, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// Find lists every user visible to the session. It returns an empty slice,
// never nil, when there are none.
func (s *UserService) Find(ctx context.Context, sess *domain.Session) ([]domain.User, error) {
	headers, err := s.rest.RequestHeaders(sess)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	users, err := s.rest.Get(ctx, findEndpoint, headers)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// FindByID returns nil without a backend call when id is negative.
func (s *UserService) FindByID(ctx context.Context, sess *domain.Session, id int) (*domain.User, error) {
	if id < 0 {
		return nil, nil
	}

	headers, err := s.rest.RequestHeaders(sess)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}

	user, err := s.rest.GetByID(ctx, findByIDEndpoint+strconv.Itoa(id), headers)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return user, nil
}

// Update rejects a negative id, a nil user, or a user whose own id differs
// from id, all without contacting the backend.
func (s *UserService) Update(ctx context.Context, sess *domain.Session, id int, user *domain.User) (bool, error) {
	if id < 0 || user == nil || user.ID != id {
		return false, nil
	}

	headers, err := s.rest.RequestHeaders(sess)
	if err != nil {
		return false, fmt.Errorf("update user %d: %w", id, err)
	}

	ok, err := s.rest.Put(ctx, updateEndpoint+strconv.Itoa(id), *user, headers)
	if err != nil {
		return false, fmt.Errorf("update user %d: %w", id, err)
	}
	return ok, nil
}

func (s *UserService) DeleteByID(ctx context.Context, sess *domain.Session, id int) (bool, error) {
	headers, err := s.rest.RequestHeaders(sess)
	if err != nil {
		return false, fmt.Errorf("delete user %d: %w", id, err)
	}

	ok, err := s.rest.DeleteByID(ctx, deleteEndpoint+strconv.Itoa(id), headers)
	if err != nil {
		return false, fmt.Errorf("delete user %d: %w", id, err)
	}
	return ok, nil
}

// ValidateUsernameAndPassword logs in against the backend with basic auth
// built from the raw credentials. Absent arguments fail with
// domain.ErrInvalidArgument. Empty ones, a non-200 status, and an empty or
// null body yield a nil user.
func (s *UserService) ValidateUsernameAndPassword(ctx context.Context, username, password *string) (*domain.User, error) {
	if username == nil || password == nil {
		return nil, fmt.Errorf("validate credentials: %w", domain.ErrInvalidArgument)
	}
	if *username == "" || *password == "" {
		return nil, nil
	}

	resp, err := s.exchange.Exchange(ctx, ports.Request{
		Method:  http.MethodPost,
		Path:    loginEndpoint,
		Headers: s.rest.AuthenticationHeaders(*username, *password),
	})
	if err != nil {
		return nil, fmt.Errorf("validate credentials: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		s.log.Debug().
			Str("username", *username).
			Int("status", resp.StatusCode).
			Msg("login rejected by backend")
		return nil, nil
	}
	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 {
		return nil, nil
	}

	var user *domain.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("validate credentials: decode user: %w", err)
	}
	return user, nil
}
