package engine_test

import (
	stderrors "errors"
	"testing"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/errors"
	"github.com/lgbarn/variantboard-go/internal/testutil"
)

func TestSANMoveString(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		lan  string
		san  string
	}{
		{"knight move", startFEN, "g1f3", "Nf3"},
		{"pawn double step", startFEN, "e2e4", "e4"},
		{"kingside castling", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"queenside castling", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8c8", "O-O-O"},
		{"en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2", "e5d6", "exd6"},
		{"promotion", "8/4P1k1/8/8/8/8/8/4K3 w - - 0 1", "e7e8q", "e8=Q"},
		{"promotion with check", "8/4P1k1/8/8/8/8/8/4K3 w - - 0 1", "e7e8n", "e8=N+"},
		{"file disambiguation", "4k3/8/8/8/8/8/8/1N1NK3 w - - 0 1", "b1c3", "Nbc3"},
		{"rank disambiguation", "4k3/8/8/8/8/N7/8/N3K3 w - - 0 1", "a3c2", "N3c2"},
		{"capture", "4k3/8/8/3p4/8/2N5/8/4K3 w - - 0 1", "c3d5", "Nxd5"},
		{"mate", "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2", "d8h4", "Qh4#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard(t, tt.fen)
			m := b.MoveFromLAN(tt.lan)
			testutil.AssertTrue(t, b.IsLegalMove(m), "%s should be legal", tt.lan)
			testutil.AssertEqual(t, b.MoveString(m, engine.StandardAlgebraic), tt.san)
			testutil.AssertEqual(t, b.MoveString(m, engine.LongAlgebraic), tt.lan)
			testutil.AssertEqual(t, b.MoveFromSAN(tt.san), m)
		})
	}
}

func TestMoveStringsRoundTrip(t *testing.T) {
	for _, fen := range keyTestFENs {
		t.Run(fen, func(t *testing.T) {
			b := newBoard(t, fen)
			for _, m := range b.LegalMoves() {
				san := b.MoveString(m, engine.StandardAlgebraic)
				lan := b.MoveString(m, engine.LongAlgebraic)

				got, err := b.MoveFromString(san)
				testutil.AssertNoError(t, err, "SAN %s", san)
				testutil.AssertEqual(t, got, m, "SAN %s", san)

				got, err = b.MoveFromString(lan)
				testutil.AssertNoError(t, err, "LAN %s", lan)
				testutil.AssertEqual(t, got, m, "LAN %s", lan)
			}
		})
	}
}

func TestMoveFromStringErrors(t *testing.T) {
	tests := []struct {
		name string
		move string
		want error
	}{
		{"garbage", "hello", errors.ErrInvalidMoveString},
		{"empty", "", errors.ErrInvalidMoveString},
		{"illegal LAN", "e2e5", errors.ErrIllegalMove},
		{"illegal SAN", "Ke2", errors.ErrInvalidMoveString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard(t, "")
			m, err := b.MoveFromString(tt.move)
			testutil.AssertTrue(t, stderrors.Is(err, tt.want), "got %v, want %v", err, tt.want)
			testutil.AssertEqual(t, m, chess.NullMove)
		})
	}
}

func TestSANAnnotationsIgnored(t *testing.T) {
	b := newBoard(t, "")
	for _, s := range []string{"Nf3!", "Nf3?!", "Nf3+"} {
		testutil.AssertEqual(t, b.LANMoveString(b.MoveFromSAN(s)), "g1f3", s)
	}
	testutil.AssertEqual(t, b.MoveFromSAN("Pe4"), b.MoveFromLAN("e2e4"))
}

func TestGenericMove(t *testing.T) {
	b := newBoard(t, "")
	m := b.MoveFromLAN("g1f3")
	g := b.GenericMove(m)
	testutil.AssertEqual(t, g, chess.GenericMove{
		Source: chess.NewSquare(6, 0),
		Target: chess.NewSquare(5, 2),
	})
	testutil.AssertEqual(t, b.MoveFromGenericMove(g), m)
	testutil.AssertTrue(t, b.GenericMove(chess.NullMove).IsNull())
}
