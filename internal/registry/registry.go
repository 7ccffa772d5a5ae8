// Package registry keeps per-session component instances in memory and
// drops the ones left idle.
package registry

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value    T
	lastUsed time.Time
}

// Registry maps a key to a lazily created value.
type Registry[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
	now     func() time.Time
}

// New returns an empty Registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]*entry[T]), now: time.Now}
}

// GetOrCreate returns the value stored under key, calling create when there
// is none. Every call refreshes the idle timer of the entry.
func (r *Registry[T]) GetOrCreate(key string, create func() T) T {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		e = &entry[T]{value: create()}
		r.entries[key] = e
	}
	e.lastUsed = r.now()
	return e.value
}

// Get returns the value under key without creating one.
func (r *Registry[T]) Get(key string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	e.lastUsed = r.now()
	return e.value, true
}

// Put replaces the value under key.
func (r *Registry[T]) Put(key string, v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = &entry[T]{value: v, lastUsed: r.now()}
}

// Delete removes key.
func (r *Registry[T]) Delete(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
}

// Evict removes every entry unused for longer than idle and returns how many
// were dropped.
func (r *Registry[T]) Evict(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	n := 0
	for k, e := range r.entries {
		if e.lastUsed.Before(cutoff) {
			delete(r.entries, k)
			n++
		}
	}
	return n
}

// Len reports the number of live entries.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
