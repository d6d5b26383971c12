package variants_test

import (
	"testing"

	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/testutil"
)

func TestVariantPerft(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		fen     string
		nodes   []uint64
		long    int // first depth skipped in short mode
	}{
		{"crazyhouse", "crazyhouse", "", []uint64{20, 400, 8902, 197281, 4888832}, 4},
		{"capablanca", "capablanca", "", []uint64{28, 784, 25228}, 3},
		{"gothic", "gothic", "", []uint64{28, 784}, 3},
		{"atomic", "atomic", "", []uint64{20, 400, 8902}, 3},
		{"antichess", "antichess", "", []uint64{20, 400, 8067}, 3},
		{"horde", "horde", "", []uint64{8, 128, 1274}, 4},
		{"racing kings", "racingkings", "", []uint64{21, 421, 11264}, 3},
		{"three-check", "3check", "", []uint64{20, 400, 8902}, 3},
		{"makruk", "makruk", "", []uint64{23, 529}, 3},
		{"andernach", "andernach", "", []uint64{20, 400, 8902}, 4},
		{"berolina", "berolina", "", []uint64{30, 900}, 3},
		{"grid", "grid", "", []uint64{20, 400}, 3},
		{"gridolina", "gridolina", "", []uint64{30, 900}, 3},
		{"los alamos", "losalamos", "", []uint64{10, 100}, 3},
		{"minixiangqi", "minixiangqi", "", []uint64{19}, 2},
		{
			"fischer random castling on f and h",
			"fischerandom",
			"bqnb1rkr/pp3ppp/3ppn2/2p5/5P2/P2P4/NPP1P1PP/BQ1BNRKR w HFhf - 2 9",
			[]uint64{21, 528, 12189, 326672},
			4,
		},
		{
			"fischer random castling on e and h",
			"fischerandom",
			"2nnrbkr/p1qppppp/8/1ppb4/6PP/3PP3/PPP2P2/BQNNRBKR w HEhe - 1 9",
			[]uint64{21, 807, 18002, 667366},
			4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard(t, tt.variant, tt.fen)
			fen := b.FEN(engine.XFen)
			for i, want := range tt.nodes {
				depth := i + 1
				if depth >= tt.long && testing.Short() {
					t.Skipf("depth %d skipped in short mode", depth)
				}
				testutil.AssertEqual(t, b.Perft(depth), want, "depth %d", depth)
			}
			testutil.AssertEqual(t, b.FEN(engine.XFen), fen)
		})
	}
}

func TestShredderFENRoundTrip(t *testing.T) {
	fens := []string{
		"bqnb1rkr/pp3ppp/3ppn2/2p5/5P2/P2P4/NPP1P1PP/BQ1BNRKR w HFhf - 2 9",
		"2nnrbkr/p1qppppp/8/1ppb4/6PP/3PP3/PPP2P2/BQNNRBKR w HEhe - 1 9",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w HAha - 0 1",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			b := newBoard(t, "fischerandom", fen)
			testutil.AssertEqual(t, b.FEN(engine.ShredderFen), fen)
		})
	}
}
