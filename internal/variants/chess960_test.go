package variants_test

import (
	"strings"
	"testing"

	"github.com/lgbarn/variantboard-go/internal/testutil"
	"github.com/lgbarn/variantboard-go/internal/variants"
)

func TestChess960FEN(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "bbqnnrkr/pppppppp/8/8/8/8/PPPPPPPP/BBQNNRKR w KQkq - 0 1"},
		{518, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{959, "rkrnnqbb/pppppppp/8/8/8/8/PPPPPPPP/RKRNNQBB w KQkq - 0 1"},
		{960 + 518, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{-442, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			testutil.AssertEqual(t, variants.Chess960FEN(tt.n), tt.want)
		})
	}
}

func TestChess960PositionsAreDistinct(t *testing.T) {
	seen := make(map[string]int)
	for n := 0; n < 960; n++ {
		fen := variants.Chess960FEN(n)
		back := strings.SplitN(fen, "/", 2)[0]
		if prev, ok := seen[back]; ok {
			t.Fatalf("positions %d and %d share %s", prev, n, back)
		}
		seen[back] = n

		// The king stands between the rooks and the bishops on opposite colors
		r1, k, r2 := strings.IndexByte(back, 'r'), strings.IndexByte(back, 'k'), strings.LastIndexByte(back, 'r')
		testutil.AssertTrue(t, r1 < k && k < r2, "king outside the rooks in %s", back)
		b1, b2 := strings.IndexByte(back, 'b'), strings.LastIndexByte(back, 'b')
		testutil.AssertTrue(t, (b1+b2)%2 == 1, "bishops on one color in %s", back)

		b := newBoard(t, "fischerandom", fen)
		testutil.AssertTrue(t, b.CanMove())
	}
}
