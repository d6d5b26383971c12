package variants_test

import (
	"testing"

	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/testutil"
	"github.com/lgbarn/variantboard-go/internal/variants"
)

func TestCaparandomFEN(t *testing.T) {
	// The first eight draws build "qabbcnnrkr", whose f-pawn nothing
	// guards. The second attempt builds the Gothic setup.
	draws := []int{
		0, 0, 0, 0, 0, 0, 0, 0,
		1, 3, 1, 1, 2, 2, 1, 2,
	}
	next := 0
	intn := func(n int) int {
		v := draws[next]
		next++
		testutil.AssertTrue(t, v < n, "draw %d out of range %d", v, n)
		return v
	}

	fen := variants.CaparandomFEN(intn)
	testutil.AssertEqual(t, fen, "rnbqckabnr/pppppppppp/10/10/10/10/PPPPPPPPPP/RNBQCKABNR w KQkq - 0 1")
	testutil.AssertEqual(t, next, len(draws))

	b := newBoard(t, "caparandom", fen)
	testutil.AssertEqual(t, b.FEN(engine.XFen), fen)
}
