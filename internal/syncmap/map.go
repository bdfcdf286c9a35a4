package syncmap

import (
	"sort"
	"sync"
)

// Map is a thread-safe generic map structure
type Map[T any] struct {
	mux sync.RWMutex
	m   map[string]T
}

// New creates a new instance of Map
func New[T any]() *Map[T] {
	return &Map[T]{
		m: make(map[string]T),
	}
}

// Get retrieves an item by key, reporting whether it was present.
func (r *Map[T]) Get(key string) (T, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	v, ok := r.m[key]
	return v, ok
}

// Set adds or updates an item by key
func (r *Map[T]) Set(key string, value T) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.m[key] = value
}

// Delete removes an item by key
func (r *Map[T]) Delete(key string) {
	r.mux.Lock()
	defer r.mux.Unlock()
	delete(r.m, key)
}

// Keys returns the keys in sorted order.
func (r *Map[T]) Keys() []string {
	r.mux.RLock()
	defer r.mux.RUnlock()
	keys := make([]string, 0, len(r.m))
	for k := range r.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of items.
func (r *Map[T]) Len() int {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return len(r.m)
}
