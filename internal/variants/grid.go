package variants

import (
	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/zobrist"
)

// Grid chess divides the board into 2x2 regions. Every move must end
// in another region than it started in.
func Grid() *engine.Rules {
	r := engine.Western("grid")
	gridRestriction(r, 0, 0)
	return r
}

// DisplacedGrid shifts the grid by one file and one rank.
func DisplacedGrid() *engine.Rules {
	r := engine.Western("displacedgrid")
	gridRestriction(r, -1, -1)
	return r
}

// SlippedGrid shifts the grid by one file.
func SlippedGrid() *engine.Rules {
	r := engine.Western("slippedgrid")
	gridRestriction(r, -1, 0)
	return r
}

// Gridolina is grid chess with Berolina pawns.
func Gridolina() *engine.Rules {
	r := engine.Western("gridolina")
	r.PawnSteps = berolinaPawnSteps()
	gridRestriction(r, 0, 0)
	return r
}

// gridRestriction forbids moves that stay inside a 2x2 region. The
// regions start at file fileShift and rank rankShift.
func gridRestriction(r *engine.Rules, fileShift, rankShift int) {
	r.Zobrist = func(*engine.Rules) zobrist.Strategy { return zobrist.NewWestern() }

	leavesRegion := func(b *engine.Board, m chess.Move) bool {
		src := b.ChessSquare(m.Source())
		dst := b.ChessSquare(m.Target())
		return floorDiv(src.File-fileShift, 2) != floorDiv(dst.File-fileShift, 2) ||
			floorDiv(src.Rank-rankShift, 2) != floorDiv(dst.Rank-rankShift, 2)
	}

	r.IsLegalMove = func(b *engine.Board, m chess.Move) bool {
		if !leavesRegion(b, m) {
			return false
		}
		return engine.WesternIsLegalMove(b, m)
	}

	r.InCheck = func(b *engine.Board, side chess.Side, square int) bool {
		if !engine.WesternInCheck(b, side, square) {
			return false
		}
		if square == 0 {
			square = b.KingSquare(side)
		}

		if b.SideToMove() == side {
			// Attacks are symmetric, so let each piece type move from
			// the attacked square and look for a like piece
			for t := engine.Pawn; t <= engine.King; t++ {
				for _, m := range b.GenerateMovesForPiece(nil, t, square) {
					if b.CaptureType(m) == t && leavesRegion(b, m) {
						return true
					}
				}
			}
			return false
		}
		for _, m := range b.GenerateMoves(nil, chess.NoPieceType) {
			if m.Target() == square && leavesRegion(b, m) {
				return true
			}
		}
		return false
	}
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}
