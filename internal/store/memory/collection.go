package memory

import (
	"strings"
	"sync"
)

// collection is a mutex-guarded key-value map. Each entity type gets its own
// collection so writers to different types never contend. Reads hand out
// snapshots; entity values are stored by value, so callers never share
// memory with the map.
type collection[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{items: make(map[string]T)}
}

func (c *collection[T]) get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[key]
	return v, ok
}

// insert stores the value only if the key is absent, reporting whether it
// was stored.
func (c *collection[T]) insert(key string, v T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[key]; exists {
		return false
	}
	c.items[key] = v
	return true
}

// put unconditionally replaces the value for key.
func (c *collection[T]) put(key string, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = v
}

// remove deletes the key, reporting whether it was present.
func (c *collection[T]) remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, existed := c.items[key]
	delete(c.items, key)
	return existed
}

func (c *collection[T]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *collection[T]) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]T)
}

// entries returns a copy of the whole map. The O(n) scan is acceptable at
// the target scale (<10k series).
func (c *collection[T]) entries() map[string]T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]T, len(c.items))
	for k, v := range c.items {
		out[k] = v
	}
	return out
}

// withPrefix returns the values whose composite key starts with prefix.
func (c *collection[T]) withPrefix(prefix string) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []T
	for k, v := range c.items {
		if strings.HasPrefix(k, prefix) {
			out = append(out, v)
		}
	}
	return out
}
