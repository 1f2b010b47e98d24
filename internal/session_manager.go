package internal

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sigcraft/pkg/cookie"
	"github.com/dmitrymomot/sigcraft/pkg/logger"
	"github.com/dmitrymomot/sigcraft/pkg/session"
)

// Default session configuration.
const (
	defaultSessionCookieName = "__sid"
	defaultSessionMaxAge     = 8 * time.Hour
)

// SessionManager ties sessions in a store to the session cookie.
type SessionManager struct {
	store      session.Store
	cookies    *cookie.Manager
	logger     *slog.Logger
	cookieName string
	maxAge     time.Duration
}

// SessionOption configures the SessionManager.
type SessionOption func(*SessionManager)

// NewSessionManager creates a SessionManager over store.
func NewSessionManager(store session.Store, opts ...SessionOption) *SessionManager {
	sm := &SessionManager{
		store:      store,
		logger:     logger.NewNope(),
		cookieName: defaultSessionCookieName,
		maxAge:     defaultSessionMaxAge,
	}
	for _, opt := range opts {
		opt(sm)
	}
	return sm
}

// WithSessionCookieName sets the session cookie name.
func WithSessionCookieName(name string) SessionOption {
	return func(sm *SessionManager) {
		if name != "" {
			sm.cookieName = name
		}
	}
}

// WithSessionMaxAge sets how long a session lives. Non-positive values are ignored.
func WithSessionMaxAge(d time.Duration) SessionOption {
	return func(sm *SessionManager) {
		if d > 0 {
			sm.maxAge = d
		}
	}
}

// setup is called by New once all app options are applied.
func (sm *SessionManager) setup(l *slog.Logger, cookies *cookie.Manager) {
	if l != nil {
		sm.logger = l
	}
	sm.cookies = cookies
}

// LoadSession loads the session named by the request cookie.
// Returns nil, nil if the request carries no session cookie.
// Store errors such as session.ErrNotFound and session.ErrExpired are returned as is.
func (sm *SessionManager) LoadSession(ctx context.Context, r *http.Request) (*session.Session, error) {
	token, err := sm.cookies.Get(r, sm.cookieName)
	if err != nil || token == "" {
		return nil, nil
	}
	return sm.store.Get(ctx, token)
}

// CreateSession creates and stores an anonymous session.
func (sm *SessionManager) CreateSession(ctx context.Context) (*session.Session, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	sess := session.New(id.String(), token, time.Now().Add(sm.maxAge))
	if err := sm.store.Create(ctx, sess); err != nil {
		return nil, err
	}
	sess.ClearNew()
	sess.ClearDirty()

	sm.logger.DebugContext(ctx, "session created", slog.String("session_id", sess.ID))
	return sess, nil
}

// SaveSession writes the session cookie.
func (sm *SessionManager) SaveSession(w http.ResponseWriter, sess *session.Session) {
	sm.cookies.Set(w, sm.cookieName, sess.Token, sm.maxAge)
}

// RotateToken replaces the session token and persists it, so a token
// planted before sign-in is worthless afterwards. The old token is kept
// on failure.
func (sm *SessionManager) RotateToken(ctx context.Context, sess *session.Session) error {
	oldToken := sess.Token
	newToken, err := generateToken()
	if err != nil {
		return err
	}
	sess.Token = newToken
	sess.MarkDirty()

	if err := sm.store.Update(ctx, sess); err != nil {
		sess.Token = oldToken
		return err
	}
	return nil
}

// DeleteSession clears the session cookie.
func (sm *SessionManager) DeleteSession(w http.ResponseWriter) {
	sm.cookies.Delete(w, sm.cookieName)
}

// Store returns the underlying session store.
func (sm *SessionManager) Store() session.Store {
	return sm.store
}

// generateToken returns 32 random bytes, base64url encoded.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
