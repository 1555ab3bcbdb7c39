package ports

import "context"

// Request is a raw backend call.
type Request struct {
	Method  string
	Path    string
	Headers Headers
	Body    any
}

// Response is the raw backend reply. StatusCode is reported as-is; callers
// decide what counts as success.
type Response struct {
	StatusCode int
	Body       []byte
}

// Exchanger issues a raw request against the backend. Only transport
// failures (connection refused, timeout, unreadable body) are errors.
type Exchanger interface {
	Exchange(ctx context.Context, req Request) (*Response, error)
}
