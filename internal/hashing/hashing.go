// Package hashing provides node count tables for move path enumeration.
package hashing

// tableKey identifies a stored count: the same position searched to a
// different depth has a different count.
type tableKey struct {
	key   uint64
	depth int
}

// PerftTable stores perft node counts by position key and depth.
// It is not safe for concurrent use; see ThreadSafePerftTable.
type PerftTable struct {
	// table stores the node counts
	table map[tableKey]uint64
	// maxCapacity limits the number of entries (0 = unlimited)
	maxCapacity int
	// hits and misses count lookups
	hits   int
	misses int
}

// NewPerftTable creates a table holding at most maxCapacity entries.
// maxCapacity of 0 means unlimited capacity.
func NewPerftTable(maxCapacity int) *PerftTable {
	return &PerftTable{
		table:       make(map[tableKey]uint64),
		maxCapacity: maxCapacity,
	}
}

// Lookup returns the node count stored for key at depth.
func (t *PerftTable) Lookup(key uint64, depth int) (uint64, bool) {
	nodes, ok := t.table[tableKey{key, depth}]
	if ok {
		t.hits++
	} else {
		t.misses++
	}
	return nodes, ok
}

// Store records nodes for key at depth. Once the table is full, new
// entries are dropped; existing entries are still updated.
func (t *PerftTable) Store(key uint64, depth int, nodes uint64) {
	k := tableKey{key, depth}
	if _, ok := t.table[k]; !ok && t.IsFull() {
		return
	}
	t.table[k] = nodes
}

// Len returns the number of stored entries.
func (t *PerftTable) Len() int {
	return len(t.table)
}

// IsFull returns true if the table has reached its capacity limit.
// Always returns false for unlimited capacity (maxCapacity = 0).
func (t *PerftTable) IsFull() bool {
	return t.maxCapacity > 0 && len(t.table) >= t.maxCapacity
}

// Hits returns the number of successful lookups.
func (t *PerftTable) Hits() int {
	return t.hits
}

// Misses returns the number of failed lookups.
func (t *PerftTable) Misses() int {
	return t.misses
}

// Reset clears the table and its counters.
func (t *PerftTable) Reset() {
	t.table = make(map[tableKey]uint64)
	t.hits = 0
	t.misses = 0
}
