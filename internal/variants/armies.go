package variants

import (
	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/zobrist"
)

// Chigorin chess pits White's knights and chancellor against Black's
// bishops and queen. Pawns promote to the pieces of their own army.
func Chigorin() *engine.Rules {
	r := engine.Western("chigorin")
	r.Zobrist = func(*engine.Rules) zobrist.Strategy { return zobrist.NewWestern() }
	r.SetPiece(Chancellor, engine.PieceDef{Name: "chancellor", Symbol: "C", Movement: engine.KnightMovement | engine.RookMovement})
	r.StartFEN = staticFEN("rbbqkbbr/pppppppp/8/8/8/8/PPPPPPPP/RNNCKNNR w KQkq - 0 1")
	r.AddPromotions = func(b *engine.Board, moves []chess.Move, source, target int) []chess.Move {
		types := []int{engine.Knight, engine.Rook, Chancellor}
		if b.SideToMove() == chess.Black {
			types = []int{engine.Bishop, engine.Rook, engine.Queen}
		}
		for _, t := range types {
			moves = append(moves, chess.NewMove(source, target, t))
		}
		return moves
	}
	return r
}

// LosAlamos is chess on a 6x6 board without bishops, castling, pawn
// double steps or en passant.
func LosAlamos() *engine.Rules {
	r := engine.Western("losalamos")
	r.Width, r.Height = 6, 6
	r.SetPiece(engine.Bishop, engine.PieceDef{})
	r.HasCastling = false
	r.PawnDoubleStep = false
	r.EnPassant = false
	r.PromotionTypes = []int{engine.Knight, engine.Rook, engine.Queen}
	r.StartFEN = staticFEN("rnqknr/pppppp/6/6/PPPPPP/RNQKNR w - - 0 1")
	return r
}

// ChancellorChess is played on a 9x9 board with a chancellor (rook
// plus knight) next to the king. The king castles two squares to either
// side.
func ChancellorChess() *engine.Rules {
	r := engine.Western("chancellor")
	r.Width, r.Height = 9, 9
	r.Zobrist = func(*engine.Rules) zobrist.Strategy { return zobrist.NewWestern() }
	r.SetPiece(Chancellor, engine.PieceDef{Name: "chancellor", Symbol: "C", Movement: engine.KnightMovement | engine.RookMovement})
	r.PromotionTypes = append(r.PromotionTypes, Chancellor)
	r.CastlingFiles = [2]int{2, 6}
	r.StartFEN = staticFEN("rnbqkcnbr/ppppppppp/9/9/9/9/9/PPPPPPPPP/RNBQKCNBR w KQkq - 0 1")
	return r
}

// Rifle chess: a capturing piece shoots its victim and stays on its
// square.
func Rifle() *engine.Rules {
	r := engine.Western("rifle")
	rifleCaptures(r)
	return r
}

// Shoot is Rifle chess where capturing is compulsory.
func Shoot() *engine.Rules {
	r := Rifle()
	r.Variant = "shoot"
	forcedCapture(r)
	return r
}

// rifleCaptures leaves capturing pieces on their source square.
func rifleCaptures(r *engine.Rules) {
	r.Zobrist = func(*engine.Rules) zobrist.Strategy { return zobrist.NewWestern() }

	r.MakeMove = func(b *engine.Board, m chess.Move, tr *chess.BoardTransition) {
		isCapture := b.CaptureType(m) != chess.NoPieceType
		engine.WesternMakeMove(b, m, tr)
		if !isCapture {
			return
		}
		side := b.SideToMove()
		source, target := m.Source(), m.Target()
		piece := b.At(target)
		b.SetSquare(source, piece)
		b.SetSquare(target, chess.EmptyPiece)
		if piece.Type() == engine.King {
			b.SetKingSquare(side, source)
		}
		if tr != nil {
			tr.AddSquare(b.ChessSquare(source))
			tr.AddSquare(b.ChessSquare(target))
		}
	}
	r.UndoMove = func(b *engine.Board, m chess.Move) {
		md := b.LastEntry()
		source, target := m.Source(), m.Target()
		if md.Capture.Side() == b.SideToMove().Opposite() || md.EnpassantCapture.IsValid() {
			b.SetSquare(target, b.At(source))
			b.SetSquare(source, chess.EmptyPiece)
		}
		engine.WesternUndoMove(b, m)
	}

	// A pawn shooting onto the last rank stays behind unpromoted
	r.AddPromotions = func(b *engine.Board, moves []chess.Move, source, target int) []chess.Move {
		if !b.At(target).IsEmpty() {
			return append(moves, chess.NewMove(source, target, 0))
		}
		for _, t := range b.Rules().PromotionTypes {
			moves = append(moves, chess.NewMove(source, target, t))
		}
		return moves
	}
}
