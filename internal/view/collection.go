package view

import "sync"

// Collection holds one polled remote collection together with its loading
// flag. Every replacement bumps a revision counter that the memoized derived
// views key on. Replacement is last-write-wins: overlapping refreshes are
// legal and the latest response simply takes the slot.
type Collection[T any] struct {
	mu      sync.Mutex
	items   []T
	rev     uint64
	loading bool
}

// Replace swaps the whole collection.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.rev++
}

// Patch applies apply to every element matched by match, in place element-wise
// but via a fresh slice, and reports how many elements changed. Untouched
// elements keep their value. Used for optimistic status patches.
func (c *Collection[T]) Patch(match func(T) bool, apply func(T) T) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	patched := 0
	next := make([]T, len(c.items))
	for i, item := range c.items {
		if match(item) {
			next[i] = apply(item)
			patched++
		} else {
			next[i] = item
		}
	}
	if patched > 0 {
		c.items = next
		c.rev++
	}
	return patched
}

// Snapshot returns the current slice and its revision. Callers must treat the
// slice as read-only.
func (c *Collection[T]) Snapshot() ([]T, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items, c.rev
}

func (c *Collection[T]) Items() []T {
	items, _ := c.Snapshot()
	return items
}

func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Collection[T]) Rev() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rev
}

// SetLoading flips the per-collection loading flag. Callers set it true right
// before the fetch and false unconditionally (defer) when the call settles,
// so the flag cannot get stuck.
func (c *Collection[T]) SetLoading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = v
}

func (c *Collection[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}
