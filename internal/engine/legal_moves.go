package engine

import "github.com/lgbarn/variantboard-go/internal/chess"

// IsLegalMove reports whether m can be played in the current position.
func (b *Board) IsLegalMove(m chess.Move) bool {
	return !m.IsNull() && b.MoveExists(m) && b.isLegal(m)
}

// isLegal checks a generated move against the variant's legality rules.
func (b *Board) isLegal(m chess.Move) bool {
	if b.rules.IsLegalMove != nil {
		return b.rules.IsLegalMove(b, m)
	}
	return WesternIsLegalMove(b, m)
}

// WesternIsLegalMove rejects king captures where kings may not capture
// and castling out of check, then plays the move to see whether it
// leaves a legal position.
func WesternIsLegalMove(b *Board, m chess.Move) bool {
	side := b.side
	if m.Source() == b.kingSquare[side] {
		if !b.rules.KingCanCapture && b.CaptureType(m) != chess.NoPieceType {
			return false
		}

		// No castling when in check
		pc := b.squares[m.Target()]
		if b.rules.HasCastling && pc.Type() == Rook && pc.Side() == side && b.InCheck(side) {
			return false
		}
	}
	return b.LeavesLegalPosition(m)
}

// LeavesLegalPosition plays m, checks IsLegalPosition and takes the
// move back.
func (b *Board) LeavesLegalPosition(m chess.Move) bool {
	b.MakeMove(m, nil)
	legal := b.IsLegalPosition()
	b.UndoMove()
	return legal
}

// LegalMoves returns every legal move, in reverse generation order.
func (b *Board) LegalMoves() []chess.Move {
	moves := b.GenerateMoves(nil, chess.NoPieceType)
	legal := make([]chess.Move, 0, len(moves))
	for i := len(moves) - 1; i >= 0; i-- {
		if b.isLegal(moves[i]) {
			legal = append(legal, moves[i])
		}
	}
	return legal
}

// CanMove reports whether the side to move has a legal move.
func (b *Board) CanMove() bool {
	for _, m := range b.GenerateMoves(nil, chess.NoPieceType) {
		if b.isLegal(m) {
			return true
		}
	}
	return false
}

// IsRepetition reports whether playing m repeats an earlier position.
func (b *Board) IsRepetition(m chess.Move) bool {
	b.MakeMove(m, nil)
	repeat := b.RepeatCount() > 0
	b.UndoMove()
	return repeat
}
