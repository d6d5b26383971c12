package variants

import (
	"fmt"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/errors"
	"github.com/lgbarn/variantboard-go/internal/zobrist"
)

// inSetup reports whether either side still has pieces in hand. The
// setup phase of the placement games ends with the last drop.
func inSetup(b *engine.Board) bool {
	for _, side := range []chess.Side{chess.White, chess.Black} {
		for t := 1; t < b.PieceTypeCount(); t++ {
			if b.ReserveCount(chess.NewPiece(side, t)) > 0 {
				return true
			}
		}
	}
	return false
}

// setupDrops removes the drop from the reserve before the Western move
// places the piece, and returns it on undo.
func setupDrops(r *engine.Rules) {
	r.MakeMove = func(b *engine.Board, m chess.Move, tr *chess.BoardTransition) {
		if m.IsDrop() {
			piece := chess.NewPiece(b.SideToMove(), m.Promotion())
			b.RemoveFromReserve(piece)
			if tr != nil {
				tr.AddReservePiece(piece)
			}
		}
		engine.WesternMakeMove(b, m, tr)
	}
	r.UndoMove = func(b *engine.Board, m chess.Move) {
		engine.WesternUndoMove(b, m)
		if m.IsDrop() {
			b.AddToReserve(chess.NewPiece(b.SideToMove(), m.Promotion()), 1)
		}
	}
}

// reserveKings accepts at most one king per side on the board and
// leaves the count with the reserve to reserveKingsTail.
func reserveKings(white, black int) bool {
	return white <= 1 && black <= 1
}

// reserveKingsTail wraps a FEN tail parser and checks that every side
// has exactly one king, on the board or in hand.
func reserveKingsTail(parse func(b *engine.Board, fields []string) error) func(b *engine.Board, fields []string) error {
	return func(b *engine.Board, fields []string) error {
		if err := parse(b, fields); err != nil {
			return err
		}
		for _, side := range []chess.Side{chess.White, chess.Black} {
			king := chess.NewPiece(side, engine.King)
			if n := b.PieceCount(side, engine.King) + b.ReserveCount(king); n != 1 {
				return fmt.Errorf("%d %s kings on the board and in hand: %w", n, side, errors.ErrInvalidFEN)
			}
		}
		return nil
	}
}

// Placement chess starts with the pawns on the board and the pieces in
// hand. Both sides drop their pieces on their first rank, bishops on
// squares of opposite colours, before the first move. A side whose
// king and rooks end up on their orthodox squares may castle.
func Placement() *engine.Rules {
	r := engine.Western("placement")
	r.HasDrops = true
	r.Zobrist = func(*engine.Rules) zobrist.Strategy { return zobrist.NewWestern() }
	r.StartFEN = staticFEN("8/pppppppp/8/8/8/8/PPPPPPPP/8[KQRRBBNNkqrrbbnn] w - - 0 1")
	r.KingsCount = reserveKings
	r.SetFenTail = reserveKingsTail(engine.WesternSetFenTail)
	setupDrops(r)

	r.GenerateMovesForPiece = func(b *engine.Board, moves []chess.Move, pieceType, square int) []chess.Move {
		if !inSetup(b) {
			if square == 0 {
				return moves
			}
			return engine.WesternMovesForPiece(b, moves, pieceType, square)
		}
		if square != 0 {
			return moves
		}
		return placementDrops(b, moves, pieceType)
	}

	// The last drop of the setup grants the castling rights
	makeMove := r.MakeMove
	r.MakeMove = func(b *engine.Board, m chess.Move, tr *chess.BoardTransition) {
		makeMove(b, m, tr)
		if m.IsDrop() && !inSetup(b) {
			grantOrthodoxCastling(b)
		}
	}
	r.IsLegalPosition = func(b *engine.Board) bool {
		if inSetup(b) {
			return true
		}
		return engine.WesternIsLegalPosition(b)
	}
	return r
}

// placementDrops adds the drops of pieceType on the empty squares of
// the first rank. Bishops go on different colours, and while a bishop
// is still in hand the other pieces leave a square of each colour free.
func placementDrops(b *engine.Board, moves []chess.Move, pieceType int) []chess.Move {
	side := b.SideToMove()
	w := b.ArrayWidth()
	size := b.ArraySize()
	start := 2*w + 1
	bishopsInHand := b.ReserveCount(chess.NewPiece(side, engine.Bishop)) > 0

	for i := start; i < start+b.Width(); i++ {
		index := i
		if side == chess.White {
			index = size - 1 - i
		}
		if !b.At(index).IsEmpty() {
			continue
		}
		a := 1 + index/w*w
		ok := true
		if pieceType == engine.Bishop {
			for s := a; s < a+b.Width(); s++ {
				if s%2 == index%2 && b.At(s).Type() == engine.Bishop {
					ok = false
				}
			}
		} else if bishopsInHand {
			var free [2]bool
			for s := a; s < a+b.Width(); s++ {
				if s == index {
					continue
				}
				if pc := b.At(s); pc.IsEmpty() || pc.Type() == engine.Bishop {
					free[s%2] = true
				}
			}
			ok = free[0] && free[1]
		}
		if ok {
			moves = append(moves, chess.NewDrop(pieceType, index))
		}
	}
	return moves
}

// grantOrthodoxCastling gives castling rights to each side whose king
// stands on the e-file of its first rank, towards every corner rook.
func grantOrthodoxCastling(b *engine.Board) {
	for _, side := range []chess.Side{chess.White, chess.Black} {
		ksq := b.KingSquare(side)
		if ksq == 0 || b.ChessSquare(ksq).File != b.Width()/2 || b.RelativeRank(ksq, side) != 0 {
			continue
		}
		rook := chess.NewPiece(side, engine.Rook)
		corners := [2]int{ksq - b.Width()/2, ksq - b.Width()/2 + b.Width() - 1}
		for cside := engine.QueenSide; cside <= engine.KingSide; cside++ {
			if b.At(corners[cside]) == rook {
				b.SetCastlingSquare(side, cside, corners[cside])
			}
		}
	}
}
