package hashing

import (
	"sync"
)

// ThreadSafePerftTable wraps PerftTable with mutex protection for concurrent access.
// It satisfies engine.PerftCache and can be shared by divide workers.
type ThreadSafePerftTable struct {
	table *PerftTable
	mu    sync.RWMutex
}

// NewThreadSafePerftTable creates a new thread-safe table.
// maxCapacity of 0 means unlimited capacity.
func NewThreadSafePerftTable(maxCapacity int) *ThreadSafePerftTable {
	return &ThreadSafePerftTable{
		table: NewPerftTable(maxCapacity),
	}
}

// Lookup returns the node count stored for key at depth.
func (t *ThreadSafePerftTable) Lookup(key uint64, depth int) (uint64, bool) {
	// Lookups update the hit counters
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.table.Lookup(key, depth)
}

// Store records nodes for key at depth.
func (t *ThreadSafePerftTable) Store(key uint64, depth int, nodes uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.table.Store(key, depth, nodes)
}

// Len returns the number of stored entries.
func (t *ThreadSafePerftTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table.Len()
}

// Stats returns the number of hits and misses so far.
func (t *ThreadSafePerftTable) Stats() (hits, misses int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table.Hits(), t.table.Misses()
}

// IsFull returns true if the table has reached its capacity limit.
func (t *ThreadSafePerftTable) IsFull() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table.IsFull()
}

// Reset clears the table.
func (t *ThreadSafePerftTable) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.table.Reset()
}
