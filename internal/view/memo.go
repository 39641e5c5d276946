package view

import "sync"

// Memo caches the last derived projection, keyed by the source collection's
// revision and the filter value. Unchanged inputs return the cached slice
// without recomputation; any input change recomputes exactly once.
type Memo[F comparable, T any] struct {
	mu     sync.Mutex
	valid  bool
	rev    uint64
	filter F
	out    []T
}

func (m *Memo[F, T]) Get(rev uint64, filter F, compute func() []T) []T {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && m.rev == rev && m.filter == filter {
		return m.out
	}

	m.out = compute()
	m.rev = rev
	m.filter = filter
	m.valid = true
	return m.out
}

// Invalidate drops the cached projection.
func (m *Memo[F, T]) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.valid = false
}
