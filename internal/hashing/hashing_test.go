package hashing

import (
	"testing"

	"github.com/lgbarn/variantboard-go/internal/engine"
)

func TestPerftTableLookup(t *testing.T) {
	table := NewPerftTable(0)

	if _, ok := table.Lookup(42, 3); ok {
		t.Error("empty table should miss")
	}
	table.Store(42, 3, 8902)

	nodes, ok := table.Lookup(42, 3)
	if !ok || nodes != 8902 {
		t.Errorf("Lookup(42, 3) = %d, %v; want 8902, true", nodes, ok)
	}
	if _, ok := table.Lookup(42, 2); ok {
		t.Error("a different depth should miss")
	}
	if table.Hits() != 1 || table.Misses() != 2 {
		t.Errorf("hits, misses = %d, %d; want 1, 2", table.Hits(), table.Misses())
	}

	table.Reset()
	if table.Len() != 0 || table.Hits() != 0 || table.Misses() != 0 {
		t.Error("Reset should clear entries and counters")
	}
}

func TestPerftTableCapacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		stores   int
		wantLen  int
		wantFull bool
	}{
		{"unlimited", 0, 10, 10, false},
		{"below capacity", 5, 3, 3, false},
		{"at capacity", 5, 5, 5, true},
		{"over capacity", 5, 10, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewPerftTable(tt.capacity)
			for i := 0; i < tt.stores; i++ {
				table.Store(uint64(i), 2, uint64(i*10))
			}
			if table.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", table.Len(), tt.wantLen)
			}
			if table.IsFull() != tt.wantFull {
				t.Errorf("IsFull() = %v, want %v", table.IsFull(), tt.wantFull)
			}
		})
	}
}

func TestPerftTableUpdatesWhenFull(t *testing.T) {
	table := NewPerftTable(1)
	table.Store(1, 2, 10)
	table.Store(1, 2, 20)
	if nodes, _ := table.Lookup(1, 2); nodes != 20 {
		t.Errorf("Lookup(1, 2) = %d, want 20", nodes)
	}
}

func TestPerftTableMatchesUncachedPerft(t *testing.T) {
	b := engine.New(engine.Western("standard"))
	if err := b.SetFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"); err != nil {
		t.Fatal(err)
	}

	table := NewPerftTable(0)
	want := b.Perft(3)
	if got := b.PerftCached(3, table); got != want {
		t.Errorf("PerftCached(3) = %d, want %d", got, want)
	}
	if table.Len() == 0 {
		t.Error("PerftCached should fill the table")
	}
	if got := b.PerftCached(3, table); got != want {
		t.Errorf("second PerftCached(3) = %d, want %d", got, want)
	}
	if table.Hits() == 0 {
		t.Error("second run should hit the table")
	}
}
