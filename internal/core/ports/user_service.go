package ports

import (
	"context"

	"github.com/fai-lds/lds-client/internal/core/domain"
)

// UserService defines the user use-cases the controllers depend on.
type UserService interface {
	Create(ctx context.Context, user *domain.User) (int, error)
	Find(ctx context.Context, sess *domain.Session) ([]domain.User, error)
	FindByID(ctx context.Context, sess *domain.Session, id int) (*domain.User, error)
	Update(ctx context.Context, sess *domain.Session, id int, user *domain.User) (bool, error)
	DeleteByID(ctx context.Context, sess *domain.Session, id int) (bool, error)
	// ValidateUsernameAndPassword checks credentials against the backend.
	// A nil argument is an error; an empty one is simply no match.
	ValidateUsernameAndPassword(ctx context.Context, username, password *string) (*domain.User, error)
}
