package engine_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/testutil"
)

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		nodes []uint64
		long  int // first depth skipped in short mode
	}{
		{"initial position", startFEN, []uint64{20, 400, 8902, 197281, 4865609}, 5},
		{"kiwipete", kiwipeteFEN, []uint64{48, 2039, 97862, 4085603}, 4},
		{"rook endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []uint64{14, 191, 2812, 43238, 674624}, 5},
		{"promotions", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []uint64{6, 264, 9467, 422333}, 4},
		{"castling through check", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", []uint64{44, 1486, 62379}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard(t, tt.fen)
			for i, want := range tt.nodes {
				depth := i + 1
				if depth >= tt.long && testing.Short() {
					t.Skipf("depth %d skipped in short mode", depth)
				}
				testutil.AssertEqual(t, b.Perft(depth), want, "depth %d", depth)
			}
			testutil.AssertEqual(t, b.FEN(engine.XFen), tt.fen)
		})
	}
}

type mapCache struct {
	mu sync.Mutex
	m  map[[2]uint64]uint64
}

func (c *mapCache) Lookup(key uint64, depth int) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.m[[2]uint64{key, uint64(depth)}]
	return n, ok
}

func (c *mapCache) Store(key uint64, depth int, nodes uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[[2]uint64{key, uint64(depth)}] = nodes
}

func TestPerftCached(t *testing.T) {
	cache := &mapCache{m: make(map[[2]uint64]uint64)}
	b := newBoard(t, kiwipeteFEN)
	testutil.AssertEqual(t, b.PerftCached(3, cache), uint64(97862))
	testutil.AssertEqual(t, b.PerftCached(3, cache), uint64(97862))
	testutil.AssertTrue(t, len(cache.m) > 0)
}

func TestDivide(t *testing.T) {
	b := newBoard(t, "")
	entries := b.Divide(2)
	testutil.AssertEqual(t, len(entries), 20)
	testutil.AssertEqual(t, entries[0], engine.DivideEntry{Move: "a2a3", Nodes: 20})

	var total uint64
	for _, e := range entries {
		total += e.Nodes
	}
	testutil.AssertEqual(t, total, uint64(400))
}

// cancelAfter is a cache that cancels its context after a number of
// stores, so the count is interrupted in the middle of a subtree.
type cancelAfter struct {
	stores int
	cancel context.CancelFunc
}

func (c *cancelAfter) Lookup(uint64, int) (uint64, bool) { return 0, false }

func (c *cancelAfter) Store(uint64, int, uint64) {
	c.stores--
	if c.stores == 0 {
		c.cancel()
	}
}

func TestPerftContext(t *testing.T) {
	b := newBoard(t, kiwipeteFEN)
	nodes, err := b.PerftContext(context.Background(), 3, nil)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, nodes, uint64(97862))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	nodes, err = b.PerftContext(ctx, 4, &cancelAfter{stores: 3, cancel: cancel})
	testutil.AssertTrue(t, errors.Is(err, context.Canceled), "got %v", err)
	testutil.AssertEqual(t, nodes, uint64(0))
	testutil.AssertEqual(t, b.FEN(engine.XFen), kiwipeteFEN)
	testutil.AssertEqual(t, b.PlyCount(), 0)
}

func TestDivideMoveCancelled(t *testing.T) {
	b := newBoard(t, "")
	m, err := b.MoveFromString("e2e4")
	testutil.AssertNoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err = b.DivideMove(ctx, m, 5, &cancelAfter{stores: 10, cancel: cancel})
	testutil.AssertTrue(t, errors.Is(err, context.Canceled), "got %v", err)

	e, err := b.DivideMove(context.Background(), m, 2, nil)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, e, engine.DivideEntry{Move: "e2e4", Nodes: 20})
}
