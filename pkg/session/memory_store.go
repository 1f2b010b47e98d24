package session

import (
	"context"
	"maps"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Sessions are lost on restart
// and not shared between replicas.
type MemoryStore struct {
	byToken map[string]*Session
	tokens  map[string]string // id -> token
	done    chan struct{}
	mu      sync.Mutex
	closed  bool
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	cleanupInterval time.Duration
}

// WithCleanupInterval sets how often expired sessions are purged.
// Zero disables the background purge; expired sessions are then removed on access.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.cleanupInterval = max(d, 0)
	}
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	o := &memoryOptions{cleanupInterval: time.Minute}
	for _, opt := range opts {
		opt(o)
	}

	m := &MemoryStore{
		byToken: make(map[string]*Session),
		tokens:  make(map[string]string),
		done:    make(chan struct{}),
	}
	if o.cleanupInterval > 0 {
		go m.janitor(o.cleanupInterval)
	}
	return m
}

func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.put(s)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.byToken[token]
	if !ok {
		return nil, ErrNotFound
	}
	if s.IsExpired() {
		m.remove(s.ID)
		return nil, ErrExpired
	}
	return clone(s), nil
}

func (m *MemoryStore) Update(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if _, ok := m.tokens[s.ID]; !ok {
		return ErrNotFound
	}
	m.remove(s.ID)
	m.put(s)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.remove(id)
	return nil
}

// Close stops the background purge. Close is idempotent.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byToken)
}

// put stores a copy so callers can't mutate stored state. Caller holds mu.
func (m *MemoryStore) put(s *Session) {
	c := clone(s)
	m.byToken[c.Token] = c
	m.tokens[c.ID] = c.Token
}

// remove drops a session by ID. Caller holds mu.
func (m *MemoryStore) remove(id string) {
	if token, ok := m.tokens[id]; ok {
		delete(m.byToken, token)
		delete(m.tokens, id)
	}
}

func (m *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.deleteExpired()
		}
	}
}

func (m *MemoryStore) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.byToken {
		if s.IsExpired() {
			m.remove(s.ID)
		}
	}
}

func clone(s *Session) *Session {
	c := *s
	c.Values = maps.Clone(s.Values)
	if s.UserID != nil {
		uid := *s.UserID
		c.UserID = &uid
	}
	c.dirty = false
	c.isNew = false
	return &c
}

var _ Store = (*MemoryStore)(nil)
