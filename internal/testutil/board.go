package testutil

import (
	"testing"

	"github.com/lgbarn/variantboard-go/internal/engine"
)

// MustBoard returns a board of rules set to fen, or to the starting
// position when fen is empty. It calls t.Fatal if the position is
// rejected.
func MustBoard(t *testing.T, rules *engine.Rules, fen string) *engine.Board {
	t.Helper()
	b := engine.New(rules)
	if fen == "" {
		fen = b.DefaultFEN()
	}
	if err := b.SetFEN(fen); err != nil {
		t.Fatalf("SetFEN(%q): %v", fen, err)
	}
	return b
}

// PlayMoves makes each move, given in SAN or LAN. It calls t.Fatal on
// the first move that does not parse or is illegal.
func PlayMoves(t *testing.T, b *engine.Board, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, err := b.MoveFromString(s)
		if err != nil {
			t.Fatalf("move %q in %s: %v", s, b.FEN(engine.XFen), err)
		}
		b.MakeMove(m, nil)
	}
}

// LegalMoveStrings returns the legal moves of b in long algebraic
// notation.
func LegalMoveStrings(b *engine.Board) []string {
	moves := b.LegalMoves()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, b.LANMoveString(m))
	}
	return out
}
