package variants

import (
	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/zobrist"
)

const explosionStateKey = "explosions"

// explosion records what one move destroyed.
type explosion struct {
	capture bool
	// piece is the piece that made the capture.
	piece chess.Piece
	// blast holds the neighbours of the target square, in the order of
	// neighbourOffsets. Only removed pieces are valid.
	blast [8]chess.Piece
}

type explosionState struct {
	history []explosion
}

func (s *explosionState) Clone() engine.State {
	return &explosionState{history: append([]explosion(nil), s.history...)}
}

func explosions(b *engine.Board) *explosionState {
	return b.State(explosionStateKey).(*explosionState)
}

// Atomic chess: every capture destroys the capturing piece and all
// pieces but pawns next to the target square. Kings may not capture,
// and a side whose king explodes loses.
func Atomic() *engine.Rules {
	r := engine.Western("atomic")
	r.KingCanCapture = false
	r.Zobrist = func(*engine.Rules) zobrist.Strategy { return zobrist.NewWestern() }
	r.AddState(explosionStateKey, func() engine.State { return &explosionState{} })
	// A finished game may have lost one king
	r.KingsCount = func(white, black int) bool {
		return white <= 1 && black <= 1 && white+black > 0
	}
	r.IsLegalPosition = func(b *engine.Board) bool {
		if b.PieceCount(b.SideToMove(), engine.King) == 0 {
			return true
		}
		return engine.WesternIsLegalPosition(b)
	}

	r.IsLegalMove = func(b *engine.Board, m chess.Move) bool {
		if b.CaptureType(m) != chess.NoPieceType {
			blowsEnemyKing := false
			for _, offset := range neighbourOffsets(b) {
				pc := b.At(m.Target() + offset)
				if pc.Type() != engine.King {
					continue
				}
				if pc.Side() == b.SideToMove() {
					return false
				}
				blowsEnemyKing = true
			}
			// Safe as long as the own king survives the blast
			if blowsEnemyKing {
				return true
			}
		}
		return engine.WesternIsLegalMove(b, m)
	}

	r.MakeMove = func(b *engine.Board, m chess.Move, tr *chess.BoardTransition) {
		e := explosion{
			capture: b.CaptureType(m) != chess.NoPieceType,
			piece:   b.At(m.Source()),
		}
		engine.WesternMakeMove(b, m, tr)

		if e.capture {
			target := m.Target()
			b.SetSquare(target, chess.EmptyPiece)
			for i, offset := range neighbourOffsets(b) {
				sq := target + offset
				pc := b.At(sq)
				if !pc.IsValid() || pc.Type() == engine.Pawn {
					continue
				}
				e.blast[i] = pc
				if pc.Type() == engine.King {
					b.RemoveCastlingRights(pc.Side())
				}
				removeCastlingRook(b, sq)
				b.SetSquare(sq, chess.EmptyPiece)
				if tr != nil {
					tr.AddSquare(b.ChessSquare(sq))
				}
			}
		}
		s := explosions(b)
		s.history = append(s.history, e)
	}

	r.UndoMove = func(b *engine.Board, m chess.Move) {
		s := explosions(b)
		e := s.history[len(s.history)-1]
		s.history = s.history[:len(s.history)-1]

		engine.WesternUndoMove(b, m)
		if !e.capture {
			return
		}

		target := m.Target()
		b.SetSquare(m.Source(), e.piece)
		for i, offset := range neighbourOffsets(b) {
			if e.blast[i].IsValid() {
				b.SetSquare(target+offset, e.blast[i])
			}
		}
	}

	r.Result = func(b *engine.Board) chess.Result {
		side := b.SideToMove()
		if b.At(b.KingSquare(side)) != chess.NewPiece(side, engine.King) {
			return chess.NewWin(side.Opposite(), side.String()+"'s king exploded")
		}
		return engine.WesternResult(b)
	}
	return r
}

// neighbourOffsets returns the offsets of the eight adjacent squares.
func neighbourOffsets(b *engine.Board) []int {
	return append(append([]int(nil), b.BishopOffsets()...), b.RookOffsets()...)
}

// removeCastlingRook drops the castling right that belongs to a rook on
// square.
func removeCastlingRook(b *engine.Board, square int) {
	for _, side := range []chess.Side{chess.White, chess.Black} {
		for cside := engine.QueenSide; cside <= engine.KingSide; cside++ {
			if b.CastlingRookSquare(side, cside) == square {
				b.SetCastlingSquare(side, cside, 0)
			}
		}
	}
}
