package engine_test

import (
	"testing"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/testutil"
)

const (
	startFEN    = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
)

// newBoard returns an orthodox board set to fen, or to the starting
// position if fen is empty.
func newBoard(t *testing.T, fen string) *engine.Board {
	t.Helper()
	b := engine.New(engine.Western("standard"))
	if fen == "" {
		fen = b.DefaultFEN()
	}
	if err := b.SetFEN(fen); err != nil {
		t.Fatalf("SetFEN(%q): %v", fen, err)
	}
	return b
}

// play makes each move given in SAN or LAN.
func play(t *testing.T, b *engine.Board, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, err := b.MoveFromString(s)
		if err != nil {
			t.Fatalf("move %q in %s: %v", s, b.FEN(engine.XFen), err)
		}
		b.MakeMove(m, nil)
	}
}

func TestSquareIndexRoundTrip(t *testing.T) {
	b := newBoard(t, "")
	for file := 0; file < b.Width(); file++ {
		for rank := 0; rank < b.Height(); rank++ {
			sq := chess.NewSquare(file, rank)
			idx := b.SquareIndex(sq)
			testutil.AssertEqual(t, b.ChessSquare(idx), sq)
			testutil.AssertFalse(t, b.At(idx).IsWall(), "square %v", sq)
		}
	}
	testutil.AssertEqual(t, b.SquareIndex(chess.NewSquare(8, 0)), 0)
	testutil.AssertEqual(t, b.SquareString(b.SquareIndexOf("e4")), "e4")
	testutil.AssertEqual(t, b.ArraySize(), 10*12)
}

func TestPieceAt(t *testing.T) {
	b := newBoard(t, "")
	tests := []struct {
		square string
		want   chess.Piece
	}{
		{"e1", chess.NewPiece(chess.White, engine.King)},
		{"d8", chess.NewPiece(chess.Black, engine.Queen)},
		{"a2", chess.NewPiece(chess.White, engine.Pawn)},
		{"e4", chess.EmptyPiece},
	}
	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			testutil.AssertEqual(t, b.PieceAt(b.ParseSquare(tt.square)), tt.want)
		})
	}
	testutil.AssertTrue(t, b.PieceAt(chess.NewSquare(9, 9)).IsWall())
}

func TestCopyIsIndependent(t *testing.T) {
	b := newBoard(t, "")
	c := b.Copy()
	play(t, c, "e4", "e5")

	testutil.AssertEqual(t, b.FEN(engine.XFen), startFEN)
	testutil.AssertEqual(t, b.PlyCount(), 0)
	testutil.AssertEqual(t, c.PlyCount(), 2)
	testutil.AssertTrue(t, b.Key() != c.Key())
}

func TestPieceSymbols(t *testing.T) {
	b := newBoard(t, "")
	testutil.AssertEqual(t, b.PieceSymbol(chess.NewPiece(chess.Black, engine.Knight)), "n")
	testutil.AssertEqual(t, b.PieceSymbol(chess.NewPiece(chess.White, engine.Knight)), "N")
	testutil.AssertEqual(t, b.PieceFromSymbol("q"), chess.NewPiece(chess.Black, engine.Queen))
	testutil.AssertEqual(t, b.PieceFromSymbol("X"), chess.EmptyPiece)
	testutil.AssertEqual(t, b.PieceName(engine.Bishop), "bishop")
}

func TestNewPanicsOnInvalidRules(t *testing.T) {
	defer func() {
		testutil.AssertNotNil(t, recover())
	}()
	r := engine.Western("broken")
	r.Width = 40
	engine.New(r)
}
