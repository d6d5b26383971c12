package variants_test

import (
	"testing"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/testutil"
)

func TestKnightmateRoyalKnight(t *testing.T) {
	b := newBoard(t, "knightmate", "")
	testutil.AssertEqual(t, movesFrom(b, "e1"), []string{"e1d3", "e1f3"})

	b = newBoard(t, "knightmate", "4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	testutil.PlayMoves(t, b, "O-O")
	testutil.AssertEqual(t, b.FEN(engine.XFen), "4k3/8/8/8/8/8/8/5RK1 b - - 1 1")
}

func TestCoregalQueenIsRoyal(t *testing.T) {
	const fen = "4k3/8/8/8/8/8/8/r2QK3 w - - 0 1"
	b := newBoard(t, "coregal", fen)
	testutil.AssertTrue(t, b.InCheck(chess.White))
	testutil.AssertFalse(t, b.IsLegalMove(b.MoveFromLAN("e1f1")))
	testutil.AssertTrue(t, b.IsLegalMove(b.MoveFromLAN("d1a1")))

	testutil.AssertFalse(t, newBoard(t, "standard", fen).InCheck(chess.White))
}

func TestThreeKingsAreNeverInCheck(t *testing.T) {
	b := newBoard(t, "threekings", "kk6/8/8/8/8/8/1R6/KK6 b - - 0 1")
	testutil.AssertFalse(t, b.InCheck(chess.Black))
	testutil.AssertEqual(t, movesFrom(b, "b8"), []string{"b8a7", "b8b7", "b8c7", "b8c8"})
}

func TestTwoKingsRoyalKing(t *testing.T) {
	t.Run("the other king may stand attacked", func(t *testing.T) {
		b := newBoard(t, "twokings", "4k3/8/8/8/8/8/8/K3K2r w - - 0 1")
		testutil.AssertFalse(t, b.InCheck(chess.White))
		testutil.PlayMoves(t, b, "Kb2")
		testutil.AssertEqual(t, b.KingSquare(chess.White), b.SquareIndexOf("b2"))
	})

	t.Run("the royal king is checked", func(t *testing.T) {
		b := newBoard(t, "twokings", "4k3/r7/8/8/8/8/8/K3K3 w - - 0 1")
		testutil.AssertTrue(t, b.InCheck(chess.White))
	})

	t.Run("castling with the royal king", func(t *testing.T) {
		b := newBoard(t, "twokings", "r3kk1r/8/8/8/8/8/8/R3KK1R w KQkq - 0 1")
		testutil.AssertTrue(t, b.MoveFromSAN("O-O").IsNull())

		m := b.MoveFromSAN("O-O-O")
		testutil.AssertFalse(t, m.IsNull())
		testutil.AssertEqual(t, b.MoveFromLAN("e1c1"), m)

		b.MakeMove(m, nil)
		testutil.AssertEqual(t, b.FEN(engine.XFen), "r3kk1r/8/8/8/8/8/8/2KR1K1R b kq - 1 1")
		testutil.AssertEqual(t, b.KingSquare(chess.White), b.SquareIndexOf("c1"))
	})
}
