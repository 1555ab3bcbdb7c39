package ports

import (
	"context"

	"github.com/fai-lds/lds-client/internal/core/domain"
)

// SessionStore persists browser sessions between requests.
type SessionStore interface {
	Create(ctx context.Context, sess *domain.Session) error
	// Get returns domain.ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Touch extends the session's lifetime.
	Touch(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
