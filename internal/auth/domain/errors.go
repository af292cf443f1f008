package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthUnavailable    = errors.New("authentication service unavailable")
	ErrTokenExpired       = errors.New("token already expired")
	ErrSessionNotFound    = errors.New("session not found")
	ErrStoreUnavailable   = errors.New("session store unavailable")
)

// AuthError is returned by login when it cannot produce a session.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return "auth " + e.Op + ": " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
