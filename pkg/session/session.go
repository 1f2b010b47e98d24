package session

import (
	"encoding/json"
	"fmt"
	"time"
)

// Session is a server-side session addressed by a cookie token.
type Session struct {
	ID    string `json:"id"`
	Token string `json:"token"` // cookie value, rotated on sign-in

	// UserID is nil for anonymous sessions.
	UserID       *string        `json:"user_id"`
	Values       map[string]any `json:"values"`
	CreatedAt    time.Time      `json:"created_at"`
	LastActiveAt time.Time      `json:"last_active_at"`
	ExpiresAt    time.Time      `json:"expires_at"`

	dirty bool
	isNew bool
}

// New creates a session that expires at expiresAt.
func New(id, token string, expiresAt time.Time) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		Token:        token,
		Values:       make(map[string]any),
		CreatedAt:    now,
		LastActiveAt: now,
		ExpiresAt:    expiresAt,
		isNew:        true,
		dirty:        true,
	}
}

func (s *Session) IsAuthenticated() bool {
	return s.UserID != nil && *s.UserID != ""
}

// SetValue stores a value and marks the session dirty.
func (s *Session) SetValue(key string, val any) {
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	s.Values[key] = val
	s.dirty = true
}

func (s *Session) GetValue(key string) (any, bool) {
	val, ok := s.Values[key]
	return val, ok
}

// DeleteValue removes a value. The session is marked dirty only if the key existed.
func (s *Session) DeleteValue(key string) {
	if _, ok := s.Values[key]; ok {
		delete(s.Values, key)
		s.dirty = true
	}
}

func (s *Session) IsDirty() bool { return s.dirty }
func (s *Session) MarkDirty()    { s.dirty = true }
func (s *Session) ClearDirty()   { s.dirty = false }
func (s *Session) IsNew() bool   { return s.isNew }
func (s *Session) ClearNew()     { s.isNew = false }

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// TTL returns the time left until expiry, or zero if already expired.
func (s *Session) TTL() time.Duration {
	return max(time.Until(s.ExpiresAt), 0)
}

// Value returns the value stored under key as T.
// Values that went through a serializing store (and came back as generic
// JSON maps) are decoded into T.
func Value[T any](s *Session, key string) (T, error) {
	var zero T
	if s == nil {
		return zero, ErrNotFound
	}
	val, ok := s.GetValue(key)
	if !ok {
		return zero, ErrNotFound
	}
	if typed, ok := val.(T); ok {
		return typed, nil
	}

	data, err := json.Marshal(val)
	if err != nil {
		return zero, fmt.Errorf("%w: %s", ErrTypeMismatch, key)
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, fmt.Errorf("%w: %s", ErrTypeMismatch, key)
	}
	return out, nil
}

// ValueOr is like Value but returns defaultVal on any error.
func ValueOr[T any](s *Session, key string, defaultVal T) T {
	val, err := Value[T](s, key)
	if err != nil {
		return defaultVal
	}
	return val
}
