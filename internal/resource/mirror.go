// Package resource maintains client-side mirrors of backend collections. A
// mirror holds the last successfully fetched items; a failed refresh leaves
// the mirror untouched and reports the error instead of substituting
// fabricated records.
package resource

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrWriteInFlight is returned when a second write is attempted while an
// earlier one has not finished.
var ErrWriteInFlight = errors.New("another write is in progress")

// Mirror caches a collection of T keyed by the id function. All methods are
// safe for concurrent use.
type Mirror[T any] struct {
	mu      sync.Mutex
	items   []T
	loaded  bool
	writing bool

	id   func(T) string
	list func(context.Context) ([]T, error)
}

// NewMirror creates a mirror over a collection. id extracts the record key;
// list fetches the full collection from the backend.
func NewMirror[T any](id func(T) string, list func(context.Context) ([]T, error)) *Mirror[T] {
	return &Mirror[T]{id: id, list: list}
}

// Refresh replaces the mirrored items with a fresh fetch. On failure the
// previously held items are kept and the error is returned.
func (m *Mirror[T]) Refresh(ctx context.Context) error {
	items, err := m.list(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.items = items
	m.loaded = true
	m.mu.Unlock()
	return nil
}

// Items returns a copy of the mirrored collection.
func (m *Mirror[T]) Items() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.items)
}

// Loaded reports whether at least one refresh has succeeded.
func (m *Mirror[T]) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

// Len returns the number of mirrored items.
func (m *Mirror[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Create runs do under the write guard and appends its result to the mirror.
func (m *Mirror[T]) Create(ctx context.Context, do func(context.Context) (*T, error)) (*T, error) {
	if err := m.beginWrite(); err != nil {
		return nil, err
	}
	defer m.endWrite()

	created, err := do(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.items = append(m.items, *created)
	m.mu.Unlock()
	return created, nil
}

// Update runs do under the write guard and replaces the matching record. A
// record the mirror has not seen yet is appended.
func (m *Mirror[T]) Update(ctx context.Context, do func(context.Context) (*T, error)) (*T, error) {
	if err := m.beginWrite(); err != nil {
		return nil, err
	}
	defer m.endWrite()

	updated, err := do(ctx)
	if err != nil {
		return nil, err
	}
	key := m.id(*updated)
	m.mu.Lock()
	idx := slices.IndexFunc(m.items, func(it T) bool { return m.id(it) == key })
	if idx >= 0 {
		m.items[idx] = *updated
	} else {
		m.items = append(m.items, *updated)
	}
	m.mu.Unlock()
	return updated, nil
}

// Delete runs do under the write guard and drops the record from the mirror.
func (m *Mirror[T]) Delete(ctx context.Context, id string, do func(context.Context) error) error {
	if err := m.beginWrite(); err != nil {
		return err
	}
	defer m.endWrite()

	if err := do(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	m.items = slices.DeleteFunc(m.items, func(it T) bool { return m.id(it) == id })
	m.mu.Unlock()
	return nil
}

func (m *Mirror[T]) beginWrite() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writing {
		return ErrWriteInFlight
	}
	m.writing = true
	return nil
}

func (m *Mirror[T]) endWrite() {
	m.mu.Lock()
	m.writing = false
	m.mu.Unlock()
}
