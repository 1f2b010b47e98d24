package session

import "errors"

var (
	// ErrNotConfigured is returned when sessions are used but the app has no session store.
	ErrNotConfigured = errors.New("session: not configured")
	ErrNotFound      = errors.New("session: not found")
	ErrExpired       = errors.New("session: expired")
	ErrTypeMismatch  = errors.New("session: type mismatch")
	ErrClosed        = errors.New("session: store closed")
	ErrMarshal       = errors.New("session: failed to marshal session")
	ErrUnmarshal     = errors.New("session: failed to unmarshal session")
)
