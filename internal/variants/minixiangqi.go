package variants

import (
	"strings"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
)

// Xiangqi piece names for the Western type slots. The general is the
// king.
const (
	Soldier = engine.Pawn
	Horse   = engine.Knight
	Cannon  = engine.Bishop
	Chariot = engine.Rook
)

// horseStep is one horse move: an orthogonal step to the leg square,
// which must be empty, and the diagonal step on from it. Both are
// file and rank deltas from the horse.
type horseStep struct {
	leg, target [2]int
}

var horseSteps = []horseStep{
	{[2]int{1, 0}, [2]int{2, 1}}, {[2]int{1, 0}, [2]int{2, -1}},
	{[2]int{-1, 0}, [2]int{-2, 1}}, {[2]int{-1, 0}, [2]int{-2, -1}},
	{[2]int{0, 1}, [2]int{1, 2}}, {[2]int{0, 1}, [2]int{-1, 2}},
	{[2]int{0, -1}, [2]int{1, -2}}, {[2]int{0, -1}, [2]int{-1, -2}},
}

// MiniXiangqi is xiangqi on a 7x7 board without river, elephants or
// advisors. Soldiers step forward or sideways from the start, the
// generals stay in their palaces and may never face each other on an
// open file. A side without a legal move loses.
func MiniXiangqi() *engine.Rules {
	r := engine.Western("minixiangqi")
	r.Width, r.Height = 7, 7
	r.SetPiece(Soldier, engine.PieceDef{Name: "soldier", Symbol: "P"})
	r.SetPiece(Horse, engine.PieceDef{Name: "horse", Symbol: "N"})
	r.SetPiece(Cannon, engine.PieceDef{Name: "cannon", Symbol: "C"})
	r.SetPiece(Chariot, engine.PieceDef{Name: "chariot", Symbol: "R", Movement: engine.RookMovement})
	r.SetPiece(engine.Queen, engine.PieceDef{})
	r.SetPiece(engine.King, engine.PieceDef{Name: "general", Symbol: "K"})
	r.HasCastling = false
	r.PawnDoubleStep = false
	r.EnPassant = false
	r.PromotionTypes = nil
	r.IsPromotionSquare = func(*engine.Board, int, int) bool { return false }
	r.StartFEN = staticFEN("rcnkncr/p1ppp1p/7/7/7/P1PPP1P/RCNKNCR w - - 0 1")

	r.GenerateMovesForPiece = func(b *engine.Board, moves []chess.Move, pieceType, square int) []chess.Move {
		if square == 0 {
			return moves
		}
		switch pieceType {
		case Soldier:
			return b.GenerateHoppingMoves(moves, square, soldierOffsets(b, b.SideToMove()))
		case Horse:
			return horseMoves(b, moves, square)
		case Cannon:
			return cannonMoves(b, moves, square)
		case engine.King:
			for _, offset := range b.RookOffsets() {
				if miniPalace(b, square+offset) {
					moves = b.GenerateHoppingMoves(moves, square, []int{offset})
				}
			}
			return moves
		}
		return engine.WesternMovesForPiece(b, moves, pieceType, square)
	}
	r.InCheck = xiangqiInCheck

	// Soldiers reach a square three ways, so their moves always name
	// the source square
	r.SANMoveString = func(b *engine.Board, m chess.Move) string {
		if b.At(m.Source()).Type() != Soldier {
			return engine.WesternSANMoveString(b, m)
		}
		sep := ""
		if b.CaptureType(m) != chess.NoPieceType {
			sep = "x"
		}
		return b.SquareString(m.Source()) + sep + b.SquareString(m.Target()) + b.CheckSuffix(m)
	}
	r.MoveFromSAN = func(b *engine.Board, s string) chess.Move {
		want := strings.TrimRight(s, "+#!?")
		for _, m := range b.LegalMoves() {
			if strings.TrimRight(b.SANMoveString(m), "+#") == want {
				return m
			}
		}
		return engine.WesternMoveFromSAN(b, s)
	}

	r.Result = func(b *engine.Board) chess.Result {
		side := b.SideToMove()
		if !b.CanMove() {
			opp := side.Opposite()
			if b.InCheck(side) {
				return chess.NewWin(opp, opp.String()+" mates")
			}
			return chess.NewWin(opp, opp.String()+" wins by stalemate")
		}
		return drawRules(b)
	}
	return r
}

// miniPalace reports whether square lies in one of the 3x3 palaces on
// the c, d and e files.
func miniPalace(b *engine.Board, square int) bool {
	if b.At(square).IsWall() {
		return false
	}
	sq := b.ChessSquare(square)
	if sq.File < 2 || sq.File > 4 {
		return false
	}
	return (sq.Rank >= 0 && sq.Rank < 3) || (sq.Rank > 3 && sq.Rank < 7)
}

// soldierOffsets returns the forward and sideways steps of a soldier of
// side.
func soldierOffsets(b *engine.Board, side chess.Side) []int {
	forward := -b.ArrayWidth()
	if side == chess.Black {
		forward = b.ArrayWidth()
	}
	return []int{forward, -1, 1}
}

// offset converts a file and rank delta to an array offset.
func offset(b *engine.Board, d [2]int) int {
	return d[0] - d[1]*b.ArrayWidth()
}

func horseMoves(b *engine.Board, moves []chess.Move, square int) []chess.Move {
	for _, step := range horseSteps {
		if !b.At(square + offset(b, step.leg)).IsEmpty() {
			continue
		}
		moves = b.GenerateHoppingMoves(moves, square, []int{offset(b, step.target)})
	}
	return moves
}

// cannonMoves slides like a chariot onto empty squares and captures by
// jumping over exactly one piece, the screen.
func cannonMoves(b *engine.Board, moves []chess.Move, square int) []chess.Move {
	opSide := b.SideToMove().Opposite()
	for _, off := range b.RookOffsets() {
		target := square + off
		for b.At(target).IsEmpty() {
			moves = append(moves, chess.NewMove(square, target, 0))
			target += off
		}
		if b.At(target).IsWall() {
			continue
		}
		for target += off; b.At(target).IsEmpty(); target += off {
		}
		if b.At(target).Side() == opSide {
			moves = append(moves, chess.NewMove(square, target, 0))
		}
	}
	return moves
}

// xiangqiInCheck reports whether side's square, its general's by
// default, is attacked. Facing generals count as check.
func xiangqiInCheck(b *engine.Board, side chess.Side, square int) bool {
	if square == 0 {
		square = b.KingSquare(side)
		if square == 0 {
			return false
		}
	}
	opSide := side.Opposite()
	enemy := func(sq, t int) bool { return b.At(sq) == chess.NewPiece(opSide, t) }

	// An enemy soldier steps onto square from behind it or from beside
	for _, off := range soldierOffsets(b, opSide) {
		if enemy(square-off, Soldier) {
			return true
		}
	}

	for _, step := range horseSteps {
		horse := square - offset(b, step.target)
		if enemy(horse, Horse) && b.At(horse+offset(b, step.leg)).IsEmpty() {
			return true
		}
	}

	for _, off := range b.RookOffsets() {
		target := square + off
		for b.At(target).IsEmpty() {
			target += off
		}
		if b.At(target).IsWall() {
			continue
		}
		if enemy(target, Chariot) {
			return true
		}
		// The generals may not see each other along a file
		if enemy(target, engine.King) && (off == b.ArrayWidth() || off == -b.ArrayWidth()) {
			return true
		}
		for target += off; b.At(target).IsEmpty(); target += off {
		}
		if enemy(target, Cannon) {
			return true
		}
	}
	return false
}
