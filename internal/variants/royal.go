package variants

import (
	"strings"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/zobrist"
)

// Commoner is the mann of Knightmate: a non-royal piece with the
// king's steps.
const Commoner = engine.King + 1

// Knightmate swaps the roles of the king and the knights: the royal
// piece leaps like a knight and two manns step like kings.
func Knightmate() *engine.Rules {
	r := engine.Western("knightmate")
	r.SetPiece(engine.King, engine.PieceDef{Name: "king", Symbol: "K", Movement: engine.KnightMovement, GSymbol: "N"})
	r.SetPiece(Commoner, engine.PieceDef{Name: "mann", Symbol: "M", Movement: engine.FerzMovement | engine.WazirMovement, GSymbol: "K"})
	r.PromotionTypes = []int{Commoner, engine.Bishop, engine.Rook, engine.Queen}
	// The royal knight never stands next to the enemy king
	r.KingCanCapture = false
	r.StartFEN = staticFEN("rmbqkbmr/pppppppp/8/8/8/8/PPPPPPPP/RMBQKBMR w KQkq - 0 1")

	r.GenerateMovesForPiece = func(b *engine.Board, moves []chess.Move, pieceType, square int) []chess.Move {
		if pieceType != engine.King || square == 0 {
			return engine.WesternMovesForPiece(b, moves, pieceType, square)
		}
		moves = b.GenerateHoppingMoves(moves, square, b.KnightOffsets())
		return b.GenerateCastlingMoves(moves)
	}
	r.IsLegalMove = func(b *engine.Board, m chess.Move) bool {
		side := b.SideToMove()
		if isCastling(b, m) && b.InCheck(side) {
			return false
		}
		return b.LeavesLegalPosition(m)
	}

	// Castling may also be written as the king's move, like "Kg1"
	r.MoveFromSAN = func(b *engine.Board, s string) chess.Move {
		king := b.TypeSymbol(engine.King)
		if !strings.HasPrefix(s, king) {
			return engine.WesternMoveFromSAN(b, s)
		}
		side := b.SideToMove()
		target := b.SquareIndexOf(strings.TrimRight(s[len(king):], "+#!?"))
		for _, castling := range []struct {
			cside engine.CastlingSide
			san   string
		}{{engine.QueenSide, "O-O-O"}, {engine.KingSide, "O-O"}} {
			if target != 0 && b.HasCastlingRight(side, castling.cside) && target == b.CastleTarget(side, castling.cside) {
				return engine.WesternMoveFromSAN(b, castling.san)
			}
		}
		return engine.WesternMoveFromSAN(b, s)
	}
	return r
}

// isCastling reports whether m is a king taking its own rook.
func isCastling(b *engine.Board, m chess.Move) bool {
	if m.IsDrop() {
		return false
	}
	side := b.SideToMove()
	return b.At(m.Source()) == chess.NewPiece(side, engine.King) &&
		b.At(m.Target()) == chess.NewPiece(side, engine.Rook)
}

// Coregal chess makes the queen royal as well: a side is in check when
// its king or any of its queens is attacked.
func Coregal() *engine.Rules {
	r := engine.Western("coregal")
	r.Zobrist = func(*engine.Rules) zobrist.Strategy { return zobrist.NewWestern() }
	r.InCheck = royalTypesInCheck(engine.King, engine.Queen)
	return r
}

// royalTypesInCheck returns an InCheck hook where every piece of the
// given types is royal.
func royalTypesInCheck(types ...int) func(b *engine.Board, side chess.Side, square int) bool {
	return func(b *engine.Board, side chess.Side, square int) bool {
		if square != 0 {
			return engine.WesternInCheck(b, side, square)
		}
		for i := 0; i < b.ArraySize(); i++ {
			pc := b.At(i)
			if pc.Side() != side {
				continue
			}
			for _, t := range types {
				if pc.Type() == t && engine.WesternInCheck(b, side, i) {
					return true
				}
			}
		}
		return false
	}
}

// ThreeKings gives each side three kings that are never in check. The
// first side to capture a king wins.
func ThreeKings() *engine.Rules {
	r := engine.Western("threekings")
	r.HasCastling = false
	r.Zobrist = func(*engine.Rules) zobrist.Strategy { return zobrist.NewWestern() }
	r.StartFEN = staticFEN("knbqkbnk/pppppppp/8/8/8/8/PPPPPPPP/KNBQKBNK w - - 0 1")
	// Positions after a king capture are still valid
	r.KingsCount = func(white, black int) bool {
		return white >= 1 && white <= 3 && black >= 1 && black <= 3
	}
	r.InCheck = func(*engine.Board, chess.Side, int) bool { return false }
	r.Result = func(b *engine.Board) chess.Result {
		white := b.PieceCount(chess.White, engine.King)
		black := b.PieceCount(chess.Black, engine.King)
		switch {
		case white > black:
			return chess.NewWin(chess.White, "White wins")
		case black > white:
			return chess.NewWin(chess.Black, "Black wins")
		}
		return engine.WesternResult(b)
	}
	return r
}

// TwoKings gives each side two kings. Only the king standing on the
// lowest file is royal, the one nearer the first rank when both share a
// file. The king on the e-file of the first rank may castle.
func TwoKings() *engine.Rules {
	return twoKings("twokings", false)
}

// TwoKingsSymmetric is TwoKings where Black's royal king is the one
// nearer Black's first rank.
func TwoKingsSymmetric() *engine.Rules {
	return twoKings("twokingssymmetric", true)
}

const twoKingsCastlingFile = 4

func twoKings(variant string, symmetric bool) *engine.Rules {
	r := engine.Western(variant)
	r.Zobrist = func(*engine.Rules) zobrist.Strategy { return zobrist.NewWestern() }
	r.StartFEN = staticFEN("rnbqkknr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKKNR w KQkq - 0 1")
	r.KingsCount = func(white, black int) bool { return white > 0 && black > 0 }

	// The board's king square always holds the royal king
	track := func(b *engine.Board) {
		for _, side := range []chess.Side{chess.White, chess.Black} {
			b.SetKingSquare(side, royalKingSquare(b, side, symmetric))
		}
	}
	r.MakeMove = func(b *engine.Board, m chess.Move, tr *chess.BoardTransition) {
		engine.WesternMakeMove(b, m, tr)
		track(b)
	}
	r.UndoMove = func(b *engine.Board, m chess.Move) {
		engine.WesternUndoMove(b, m)
		track(b)
	}
	r.SetFenTail = func(b *engine.Board, fields []string) error {
		if err := engine.WesternSetFenTail(b, fields); err != nil {
			return err
		}
		track(b)
		return nil
	}

	r.GenerateMovesForPiece = func(b *engine.Board, moves []chess.Move, pieceType, square int) []chess.Move {
		if pieceType != engine.King || square == 0 {
			return engine.WesternMovesForPiece(b, moves, pieceType, square)
		}
		moves = b.GenerateHoppingMoves(moves, square, b.BishopOffsets())
		moves = b.GenerateHoppingMoves(moves, square, b.RookOffsets())
		return twoKingsCastlingMoves(b, moves, square)
	}
	r.IsLegalMove = func(b *engine.Board, m chess.Move) bool {
		if isCastling(b, m) && b.InCheck(b.SideToMove()) {
			return false
		}
		return b.LeavesLegalPosition(m)
	}

	r.MoveFromSAN = func(b *engine.Board, s string) chess.Move {
		if !strings.HasPrefix(s, "O-O") {
			return engine.WesternMoveFromSAN(b, s)
		}
		file := b.Width() - 1
		switch strings.TrimRight(s, "+#!?") {
		case "O-O":
		case "O-O-O":
			file = 0
		default:
			return chess.NullMove
		}
		rank := 0
		if b.SideToMove() == chess.Black {
			rank = b.Height() - 1
		}
		m := chess.NewMove(b.SquareIndex(chess.NewSquare(twoKingsCastlingFile, rank)), b.SquareIndex(chess.NewSquare(file, rank)), 0)
		if b.IsLegalMove(m) {
			return m
		}
		return chess.NullMove
	}
	// Either king may castle, so the royal king square does not tell
	// castling from a king step
	r.MoveFromLAN = func(b *engine.Board, s string) chess.Move {
		m := engine.BasicMoveFromLAN(b, s)
		if m.IsNull() || m.IsDrop() {
			return m
		}
		side := b.SideToMove()
		source, target := m.Source(), m.Target()
		if b.At(source) != chess.NewPiece(side, engine.King) ||
			abs(b.ChessSquare(source).File-b.ChessSquare(target).File) <= 1 {
			return m
		}
		for cside := engine.QueenSide; cside <= engine.KingSide; cside++ {
			rook := b.CastlingRookSquare(side, cside)
			if rook != 0 && target == b.CastleTarget(side, cside) {
				return chess.NewMove(source, rook, 0)
			}
		}
		return m
	}

	r.Result = func(b *engine.Board) chess.Result {
		side := b.SideToMove()
		if !b.CanMove() {
			if b.InCheck(side) {
				winner := side.Opposite()
				return chess.NewWin(winner, winner.String()+" mates")
			}
			return chess.NewDraw("Draw by stalemate")
		}
		// Both pairs of kings count as material
		kings := b.PieceCount(chess.NoSide, engine.King)
		if b.MatingMaterial()+2*kings-4 <= 1 {
			return chess.NewDraw("Draw by insufficient mating material")
		}
		return drawRules(b)
	}
	return r
}

// royalKingSquare returns the square of side's royal king: the first
// king found going file by file from the a-file, each file from the
// first rank up. In the symmetric variant Black's files are searched
// from the eighth rank down.
func royalKingSquare(b *engine.Board, side chess.Side, symmetric bool) int {
	king := chess.NewPiece(side, engine.King)
	reverse := symmetric && side == chess.Black
	for file := 0; file < b.Width(); file++ {
		for i := 0; i < b.Height(); i++ {
			rank := i
			if reverse {
				rank = b.Height() - 1 - i
			}
			sq := b.SquareIndex(chess.NewSquare(file, rank))
			if b.At(sq) == king {
				return sq
			}
		}
	}
	return 0
}

// twoKingsCastlingMoves adds castling for a king on the castling file
// of its first rank. The squares between the king and the corner rook
// must be empty.
func twoKingsCastlingMoves(b *engine.Board, moves []chess.Move, square int) []chess.Move {
	side := b.SideToMove()
	if b.ChessSquare(square).File != twoKingsCastlingFile || b.RelativeRank(square, side) != 0 {
		return moves
	}
	rooks := [2]int{square - twoKingsCastlingFile, square - twoKingsCastlingFile + b.Width() - 1}
	for cside := engine.QueenSide; cside <= engine.KingSide; cside++ {
		rook := rooks[cside]
		if b.CastlingRookSquare(side, cside) != rook {
			continue
		}
		free := true
		for i := min(square, rook) + 1; i < max(square, rook); i++ {
			if !b.At(i).IsEmpty() {
				free = false
				break
			}
		}
		if free {
			moves = append(moves, chess.NewMove(square, rook, 0))
		}
	}
	return moves
}
