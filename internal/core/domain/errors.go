package domain

import "errors"

var (
	// ErrInvalidArgument is returned when a required argument is absent
	// altogether, as opposed to present but empty.
	ErrInvalidArgument = errors.New("invalid argument")
	ErrForbidden       = errors.New("access forbidden")
	ErrUnauthenticated = errors.New("authentication required")
)
