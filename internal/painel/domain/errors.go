package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the remote API rejects the bearer token.
	ErrUnauthorized = errors.New("remote api rejected the token")
	ErrNotFound     = errors.New("not found")
	ErrDecode       = errors.New("unexpected response body")
)

// StatusError is a non-2xx answer from the remote API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote api returned status %d: %s", e.Code, e.Body)
}
