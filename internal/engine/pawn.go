package engine

import "github.com/lgbarn/variantboard-go/internal/chess"

// PawnPushOffset returns the array offset of a pawn step for the side
// whose forward sign is sign.
func (b *Board) PawnPushOffset(ps PawnStep, sign int) int {
	return sign*ps.File - sign*b.arwidth
}

// GeneratePawnMoves appends the moves of the pawn on source, including
// double steps, en passant captures and promotions.
func (b *Board) GeneratePawnMoves(moves []chess.Move, source int) []chess.Move {
	step := b.sign * b.arwidth
	opSide := b.side.Opposite()

	for _, ps := range b.rules.PawnSteps {
		target := source + b.PawnPushOffset(ps, b.sign)
		capture := b.squares[target]
		isCapture := capture.Side() == opSide || (target == b.enpassantSquare && b.enpassantSquare != 0)
		isNormalStep := capture.IsEmpty()

		if (isNormalStep && ps.Type&FreeStep != 0) || (isCapture && ps.Type&CaptureStep != 0) {
			if b.IsPromotionSquare(source, target) {
				moves = b.AddPromotions(moves, source, target)
			} else {
				moves = append(moves, chess.NewMove(source, target, 0))
			}

			// Double step
			if isNormalStep && ps.Type&FreeStep != 0 && b.rules.PawnDoubleStep && b.isDoubleStepRank(source, step) {
				target += b.PawnPushOffset(ps, b.sign)
				if b.squares[target].IsEmpty() {
					moves = append(moves, chess.NewMove(source, target, 0))
				}
			}
		}
	}
	return moves
}

// isDoubleStepRank reports whether a pawn on source stands on its
// side's second rank.
func (b *Board) isDoubleStepRank(source, step int) bool {
	return b.squares[source+step*2].IsWall()
}

// IsPromotionSquare reports whether a pawn moving from source to
// target promotes.
func (b *Board) IsPromotionSquare(source, target int) bool {
	if b.rules.IsPromotionSquare != nil {
		return b.rules.IsPromotionSquare(b, source, target)
	}
	return b.squares[source-b.sign*b.arwidth*2].IsWall()
}

// RelativeRank returns the rank of square counted from side's first
// rank.
func (b *Board) RelativeRank(square int, side chess.Side) int {
	rank := b.ChessSquare(square).Rank
	if side == chess.Black {
		return b.height - 1 - rank
	}
	return rank
}

// AddPromotions appends one move per promotion choice.
func (b *Board) AddPromotions(moves []chess.Move, source, target int) []chess.Move {
	if b.rules.AddPromotions != nil {
		return b.rules.AddPromotions(b, moves, source, target)
	}
	for _, t := range b.rules.PromotionTypes {
		moves = append(moves, chess.NewMove(source, target, t))
	}
	return moves
}
