package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/hashing"
	"github.com/lgbarn/variantboard-go/internal/testutil"
	"github.com/lgbarn/variantboard-go/internal/variants"
)

func newBoard(t *testing.T, variant, fen string) *engine.Board {
	t.Helper()
	rules, err := variants.Default().Rules(variant)
	if err != nil {
		t.Fatal(err)
	}
	return testutil.MustBoard(t, rules, fen)
}

func TestDivideMatchesSerialDivide(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		fen     string
		depth   int
		workers int
		cache   bool
	}{
		{"standard one worker", "standard", "", 3, 1, false},
		{"standard four workers", "standard", "", 3, 4, false},
		{"kiwipete shared cache", "standard", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3, 4, true},
		{"crazyhouse", "crazyhouse", "", 3, 3, true},
		{"capablanca", "capablanca", "", 2, 8, false},
		{"depth one", "atomic", "", 1, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard(t, tt.variant, tt.fen)
			fen := b.FEN(engine.XFen)

			var cache engine.PerftCache
			if tt.cache {
				cache = hashing.NewThreadSafePerftTable(0)
			}
			got, err := Divide(context.Background(), b, tt.depth, tt.workers, cache)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, b.Divide(tt.depth))
			testutil.AssertEqual(t, b.FEN(engine.XFen), fen)
		})
	}
}

func TestPerft(t *testing.T) {
	b := newBoard(t, "standard", "")
	nodes, err := Perft(context.Background(), b, 4, 4, hashing.NewThreadSafePerftTable(1<<16))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, nodes, uint64(197281))

	nodes, err = Perft(context.Background(), b, 0, 4, nil)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, nodes, uint64(1))
}

func TestDivideCancelled(t *testing.T) {
	b := newBoard(t, "standard", "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entries, err := Divide(ctx, b, 5, 2, nil)
	testutil.AssertTrue(t, errors.Is(err, context.Canceled), "got %v", err)
	testutil.AssertNil(t, entries)
}

func TestDivideCancelledMidCount(t *testing.T) {
	b := newBoard(t, "standard", "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	entries, err := Divide(ctx, b, 5, 4, newCancellingCache(50, cancel))
	testutil.AssertTrue(t, errors.Is(err, context.Canceled), "got %v", err)
	testutil.AssertNil(t, entries)

	nodes, err := Perft(context.Background(), b, 3, 4, nil)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, nodes, uint64(8902))
}
