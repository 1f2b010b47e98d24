package session

import "context"

// Store persists sessions.
type Store interface {
	// Create persists a new session.
	Create(ctx context.Context, s *Session) error

	// Get retrieves a session by its cookie token.
	// Returns ErrNotFound if the session doesn't exist, ErrExpired if it expired.
	Get(ctx context.Context, token string) (*Session, error)

	// Update saves an existing session. A changed token replaces the old one.
	Update(ctx context.Context, s *Session) error

	// Delete removes a session by its ID.
	Delete(ctx context.Context, id string) error
}
