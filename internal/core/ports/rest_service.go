package ports

import (
	"context"

	"github.com/fai-lds/lds-client/internal/core/domain"
)

// Headers are the outgoing request headers for a single backend call.
type Headers map[string]string

// RestService is a typed verb façade over the backend. Backend-reported
// failures come back as sentinels (empty, nil, -1, false); only transport
// failures are returned as errors.
type RestService[T any] interface {
	// Get returns every T at path, or an empty slice when there are none.
	Get(ctx context.Context, path string, headers Headers) ([]T, error)
	// GetByID returns the T at path, or nil when the backend has none.
	GetByID(ctx context.Context, path string, headers Headers) (*T, error)
	// Post creates body at path and returns the backend-assigned id, or -1
	// when the backend rejects it.
	Post(ctx context.Context, path string, body T) (int, error)
	Put(ctx context.Context, path string, body T, headers Headers) (bool, error)
	DeleteByID(ctx context.Context, path string, headers Headers) (bool, error)

	// RequestHeaders derives the identity headers for a signed-in session.
	RequestHeaders(sess *domain.Session) (Headers, error)
	// AuthenticationHeaders builds one-off basic-auth headers.
	AuthenticationHeaders(username, password string) Headers
}
