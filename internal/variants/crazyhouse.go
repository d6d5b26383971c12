package variants

import (
	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/zobrist"
)

// Promoted piece types of Crazyhouse. They move like their base type
// but return to the reserve as pawns.
const (
	PromotedKnight = engine.King + 1 + iota
	PromotedBishop
	PromotedRook
	PromotedQueen
)

// Crazyhouse: captured pieces change sides and may be dropped back on
// the board instead of making a move. Promoted pieces are captured as
// pawns.
func Crazyhouse() *engine.Rules {
	r := engine.Western("crazyhouse")
	r.SetPiece(PromotedKnight, engine.PieceDef{Name: "promoted knight", Symbol: "N~", Movement: engine.KnightMovement, GSymbol: "N"})
	r.SetPiece(PromotedBishop, engine.PieceDef{Name: "promoted bishop", Symbol: "B~", Movement: engine.BishopMovement, GSymbol: "B"})
	r.SetPiece(PromotedRook, engine.PieceDef{Name: "promoted rook", Symbol: "R~", Movement: engine.RookMovement, GSymbol: "R"})
	r.SetPiece(PromotedQueen, engine.PieceDef{Name: "promoted queen", Symbol: "Q~", Movement: engine.BishopMovement | engine.RookMovement, GSymbol: "Q"})
	r.PromotionTypes = []int{PromotedKnight, PromotedBishop, PromotedRook, PromotedQueen}
	r.StartFEN = staticFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR[-] w KQkq - 0 1")

	r.ReserveType = func(t int) int {
		if t >= PromotedKnight && t <= PromotedQueen {
			return engine.Pawn
		}
		return t
	}
	r.DemotedType = demotedType

	r.LANMoveString = func(b *engine.Board, m chess.Move) string {
		if !m.IsDrop() && m.Promotion() != chess.NoPieceType {
			m = chess.NewMove(m.Source(), m.Target(), demotedType(m.Promotion()))
		}
		return engine.WesternLANMoveString(b, m)
	}
	r.MoveFromLAN = func(b *engine.Board, s string) chess.Move {
		m := engine.WesternMoveFromLAN(b, s)
		if m.IsNull() || m.IsDrop() || m.Promotion() == chess.NoPieceType {
			return m
		}
		return chess.NewMove(m.Source(), m.Target(), promotedType(m.Promotion()))
	}

	dropRules(r, func(b *engine.Board, rank int) bool {
		return rank >= 1 && rank <= b.Height()-2
	})
	return r
}

// Loop is Crazyhouse where promoted pieces keep their type in the
// reserve.
func Loop() *engine.Rules {
	r := engine.Western("loop")
	r.StartFEN = staticFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR[-] w KQkq - 0 1")
	dropRules(r, func(b *engine.Board, rank int) bool {
		return rank >= 1 && rank <= b.Height()-2
	})
	return r
}

// Chessgi is Loop with pawn drops allowed on the first rank.
func Chessgi() *engine.Rules {
	r := engine.Western("chessgi")
	r.StartFEN = staticFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR[-] w KQkq - 0 1")
	dropRules(r, func(b *engine.Board, rank int) bool {
		if b.SideToMove() == chess.White {
			return rank != b.Height()-1
		}
		return rank != 0
	})
	return r
}

// dropRules sends captured pieces to the capturing side's reserve and
// lets pieces in hand be dropped on any empty square. Pawns are only
// dropped on ranks accepted by pawnRankOK.
func dropRules(r *engine.Rules, pawnRankOK func(b *engine.Board, rank int) bool) {
	r.HasDrops = true
	r.Zobrist = func(*engine.Rules) zobrist.Strategy { return zobrist.NewWestern() }

	r.GenerateMovesForPiece = func(b *engine.Board, moves []chess.Move, pieceType, square int) []chess.Move {
		if square != 0 {
			return engine.WesternMovesForPiece(b, moves, pieceType, square)
		}
		for i := 0; i < b.ArraySize(); i++ {
			if !b.At(i).IsEmpty() {
				continue
			}
			if pieceType == engine.Pawn && !pawnRankOK(b, b.ChessSquare(i).Rank) {
				continue
			}
			moves = append(moves, chess.NewDrop(pieceType, i))
		}
		return moves
	}

	r.MakeMove = func(b *engine.Board, m chess.Move, tr *chess.BoardTransition) {
		side := b.SideToMove()
		if ctype := b.CaptureType(m); ctype != chess.NoPieceType {
			piece := chess.NewPiece(side, b.ReserveType(ctype))
			b.AddToReserve(piece, 1)
			if tr != nil {
				tr.AddReservePiece(piece)
			}
		} else if m.IsDrop() {
			piece := chess.NewPiece(side, m.Promotion())
			b.RemoveFromReserve(piece)
			if tr != nil {
				tr.AddReservePiece(piece)
			}
		}
		engine.WesternMakeMove(b, m, tr)
	}

	r.UndoMove = func(b *engine.Board, m chess.Move) {
		engine.WesternUndoMove(b, m)
		side := b.SideToMove()
		if ctype := b.CaptureType(m); ctype != chess.NoPieceType {
			b.RemoveFromReserve(chess.NewPiece(side, b.ReserveType(ctype)))
		} else if m.IsDrop() {
			b.AddToReserve(chess.NewPiece(side, m.Promotion()), 1)
		}
	}
}

func demotedType(t int) int {
	switch t {
	case PromotedKnight:
		return engine.Knight
	case PromotedBishop:
		return engine.Bishop
	case PromotedRook:
		return engine.Rook
	case PromotedQueen:
		return engine.Queen
	}
	return t
}

func promotedType(t int) int {
	switch t {
	case engine.Knight:
		return PromotedKnight
	case engine.Bishop:
		return PromotedBishop
	case engine.Rook:
		return PromotedRook
	case engine.Queen:
		return PromotedQueen
	}
	return t
}

// PocketKnight starts each side with a knight in hand that may be
// dropped on any empty square instead of a move. Captured pieces do
// not enter the reserve.
func PocketKnight() *engine.Rules {
	r := engine.Western("pocketknight")
	r.HasDrops = true
	r.Zobrist = func(*engine.Rules) zobrist.Strategy { return zobrist.NewWestern() }
	r.StartFEN = staticFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR[Nn] w KQkq - 0 1")

	r.GenerateMovesForPiece = func(b *engine.Board, moves []chess.Move, pieceType, square int) []chess.Move {
		if square != 0 {
			return engine.WesternMovesForPiece(b, moves, pieceType, square)
		}
		for i := 0; i < b.ArraySize(); i++ {
			if b.At(i).IsEmpty() {
				moves = append(moves, chess.NewDrop(pieceType, i))
			}
		}
		return moves
	}
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
	return r
}
