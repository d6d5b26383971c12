package variants

import (
	"strings"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
)

// Andernach: a piece other than the king that captures changes sides.
func Andernach() *engine.Rules {
	r := engine.Western("andernach")
	sideSwitching(r, func(b *engine.Board, m chess.Move) bool {
		return b.CaptureType(m) != chess.NoPieceType && b.At(m.Source()).Type() != engine.King
	})
	return r
}

// AntiAndernach: a piece other than the king changes sides when it
// moves without capturing.
func AntiAndernach() *engine.Rules {
	r := engine.Western("antiandernach")
	sideSwitching(r, func(b *engine.Board, m chess.Move) bool {
		return b.CaptureType(m) == chess.NoPieceType && b.At(m.Source()).Type() != engine.King
	})
	return r
}

// SuperAndernach: every move by a piece other than the king changes
// the piece's side.
func SuperAndernach() *engine.Rules {
	r := engine.Western("superandernach")
	sideSwitching(r, func(b *engine.Board, m chess.Move) bool {
		return b.At(m.Source()).Type() != engine.King
	})
	return r
}

// sideSwitching flips the side of the moved piece after every move
// accepted by switches. SAN output records the change as "(=bN)".
func sideSwitching(r *engine.Rules, switches func(b *engine.Board, m chess.Move) bool) {
	r.MakeMove = func(b *engine.Board, m chess.Move, tr *chess.BoardTransition) {
		switched := switches(b, m)
		engine.WesternMakeMove(b, m, tr)
		pc := b.At(m.Target())
		if switched && pc.IsValid() {
			b.SetSquare(m.Target(), pc.WithSide(pc.Side().Opposite()))
			// A pawn that changed sides after a double step belongs to
			// the side to move and cannot be taken en passant
			b.SetEnpassantSquare(0, 0)
		}
	}
	r.UndoMove = func(b *engine.Board, m chess.Move) {
		pc := b.At(m.Target())
		if pc.Side() == b.SideToMove().Opposite() {
			b.SetSquare(m.Target(), pc.WithSide(b.SideToMove()))
		}
		engine.WesternUndoMove(b, m)
	}
	r.SANMoveString = func(b *engine.Board, m chess.Move) string {
		if !switches(b, m) {
			return engine.WesternSANMoveString(b, m)
		}
		pc := b.At(m.Source())
		t := pc.Type()
		if m.Promotion() != chess.NoPieceType {
			t = m.Promotion()
		}
		color := "w"
		if pc.Side() == chess.White {
			color = "b"
		}
		return engine.WesternSANMoveString(b, m) + "(=" + color + b.TypeSymbol(t) + ")"
	}
	r.MoveFromSAN = func(b *engine.Board, s string) chess.Move {
		if i := strings.IndexByte(s, '('); i >= 0 {
			s = s[:i]
		}
		return engine.WesternMoveFromSAN(b, s)
	}
}
