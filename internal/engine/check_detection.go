package engine

import "github.com/lgbarn/variantboard-go/internal/chess"

// InCheck reports whether side's king is attacked. Variants without a
// royal king answer false.
func (b *Board) InCheck(side chess.Side) bool {
	return b.SquareAttacked(side, 0)
}

// SquareAttacked reports whether square would be in check for side.
// A square of 0 means side's king square.
func (b *Board) SquareAttacked(side chess.Side, square int) bool {
	if b.rules.InCheck != nil {
		return b.rules.InCheck(b, side, square)
	}
	return WesternInCheck(b, side, square)
}

// WesternInCheck looks for attacks on square by every movement pattern
// the piece table knows.
func WesternInCheck(b *Board, side chess.Side, square int) bool {
	opSide := side.Opposite()
	if square == 0 {
		square = b.kingSquare[side]
		// Sides without a king, like the Horde, are never in check
		if square == 0 {
			return false
		}
	}

	// Pawn attacks
	sign := 1
	if side == chess.Black {
		sign = -1
	}
	opPawn := chess.NewPiece(opSide, Pawn)
	for _, ps := range b.rules.PawnSteps {
		if ps.Type&CaptureStep != 0 && b.squares[square-b.PawnPushOffset(ps, -sign)] == opPawn {
			return true
		}
	}

	if b.attackedByLeaper(square, opSide, b.knightOffsets, KnightMovement) {
		return true
	}

	opKing := chess.NewPiece(opSide, King)
	rays := [...]struct {
		offsets  []int
		movement Movement
	}{
		{b.bishopOffsets, BishopMovement},
		{b.rookOffsets, RookMovement},
	}
	for _, ray := range rays {
		for _, offset := range ray.offsets {
			target := square + offset
			if b.rules.KingCanCapture && b.squares[target] == opKing {
				return true
			}
			for {
				pc := b.squares[target]
				if !pc.IsEmpty() && pc.Side() != opSide {
					break
				}
				if !pc.IsEmpty() {
					if b.PieceHasCaptureMovement(pc, target, ray.movement) {
						return true
					}
					break
				}
				target += offset
			}
		}
	}

	if b.attackedByLeaper(square, opSide, b.bishopOffsets, FerzMovement) ||
		b.attackedByLeaper(square, opSide, b.rookOffsets, WazirMovement) ||
		b.attackedByLeaper(square, opSide, b.AlfilOffsets(), AlfilMovement) {
		return true
	}

	// Silver generals step forward, so look backwards from square
	for _, offset := range b.SilverOffsets(opSide) {
		source := square - offset
		if source < 0 || source >= len(b.squares) {
			continue
		}
		pc := b.squares[source]
		if pc.Side() == opSide && b.PieceHasCaptureMovement(pc, source, SilverMovement) {
			return true
		}
	}
	return false
}

// attackedByLeaper reports whether a piece of opSide with movement m
// leaps onto square along one of offsets.
func (b *Board) attackedByLeaper(square int, opSide chess.Side, offsets []int, m Movement) bool {
	for _, offset := range offsets {
		source := square + offset
		if source < 0 || source >= len(b.squares) {
			continue
		}
		pc := b.squares[source]
		if pc.Side() == opSide && b.PieceHasCaptureMovement(pc, source, m) {
			return true
		}
	}
	return false
}

// DefendedByKnight reports whether a knight of side guards square.
func (b *Board) DefendedByKnight(side chess.Side, square int) bool {
	for _, offset := range b.knightOffsets {
		source := square + offset
		pc := b.squares[source]
		if pc.Side() == side && b.PieceHasCaptureMovement(pc, source, KnightMovement) {
			return true
		}
	}
	return false
}

// IsLegalPosition reports whether the side that just moved left its
// king safe.
func (b *Board) IsLegalPosition() bool {
	if b.rules.IsLegalPosition != nil {
		return b.rules.IsLegalPosition(b)
	}
	return WesternIsLegalPosition(b)
}

// WesternIsLegalPosition also rejects castling through attacked squares.
func WesternIsLegalPosition(b *Board) bool {
	side := b.side.Opposite()
	if b.SquareAttacked(side, 0) {
		return false
	}
	if len(b.history) == 0 {
		return true
	}

	md := b.history[len(b.history)-1]
	if md.CastlingSide != NoCastlingSide {
		source := md.Move.Source()
		target := b.castleTarget[side][md.CastlingSide]
		offset := 1
		if source > target {
			offset = -1
		}
		for i := source; i != target; i += offset {
			if b.SquareAttacked(side, i) {
				return false
			}
		}
	}
	return true
}
