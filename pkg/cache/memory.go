package cache

import (
	"container/list"
	"sync"
)

type entry[V any] struct {
	key   string
	value V
}

// Memory is an in-memory LRU cache. With a maximum entry count the least
// recently used entry is evicted on insert.
type Memory[V any] struct {
	items      map[string]*list.Element
	order      *list.List
	maxEntries int
	onEvict    func(key string, value V)
	mu         sync.Mutex
	closed     bool
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	maxEntries int
}

// WithMaxEntries bounds the number of entries. Zero means unlimited.
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) {
		if n >= 0 {
			o.maxEntries = n
		}
	}
}

// NewMemory creates an empty cache.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	var o memoryOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Memory[V]{
		items:      make(map[string]*list.Element),
		order:      list.New(),
		maxEntries: o.maxEntries,
	}
}

// SetEvictCallback sets a function called for every evicted entry.
func (m *Memory[V]) SetEvictCallback(fn func(key string, value V)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEvict = fn
}

// Get returns the value under key and marks it recently used.
func (m *Memory[V]) Get(key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	m.order.MoveToFront(elem)
	return elem.Value.(*entry[V]).value, true
}

// Set stores value under key, evicting the least recently used entry when
// the cache is full.
func (m *Memory[V]) Set(key string, value V) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if elem, ok := m.items[key]; ok {
		elem.Value.(*entry[V]).value = value
		m.order.MoveToFront(elem)
		return nil
	}

	if m.maxEntries > 0 && len(m.items) >= m.maxEntries {
		if oldest := m.order.Back(); oldest != nil {
			m.remove(oldest)
		}
	}
	m.items[key] = m.order.PushFront(&entry[V]{key: key, value: value})
	return nil
}

// Len returns the number of entries.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close drops every entry. Later calls to Set fail with ErrClosed.
// Close is idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.items = make(map[string]*list.Element)
	m.order.Init()
	return nil
}

// remove deletes elem. Caller must hold the mutex.
func (m *Memory[V]) remove(elem *list.Element) {
	m.order.Remove(elem)
	e := elem.Value.(*entry[V])
	delete(m.items, e.key)
	if m.onEvict != nil {
		m.onEvict(e.key, e.value)
	}
}

var _ Cache[any] = (*Memory[any])(nil)
