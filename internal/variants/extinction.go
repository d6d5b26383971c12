package variants

import (
	"fmt"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/errors"
)

// Extinction is won by capturing every piece of one type of the
// opponent. Kings are not royal and pawns may also promote to a king.
func Extinction() *engine.Rules {
	r := engine.Western("extinction")
	extinction(r, []int{engine.King, engine.Queen, engine.Rook, engine.Bishop, engine.Knight, engine.Pawn}, true)
	return r
}

// Kinglet is won by capturing all pawns of the opponent. Pawns promote
// to kings only.
func Kinglet() *engine.Rules {
	r := engine.Western("kinglet")
	extinction(r, []int{engine.Pawn}, false)
	return r
}

// extinction makes the piece types in set vital for both sides.
func extinction(r *engine.Rules, set []int, allPromotions bool) {
	promotions := []int{engine.King}
	if allPromotions {
		promotions = append(append([]int(nil), r.PromotionTypes...), engine.King)
	}
	r.PromotionTypes = promotions
	r.KingsCount = func(int, int) bool { return true }
	r.InCheck = func(*engine.Board, chess.Side, int) bool { return false }

	r.SetFenTail = func(b *engine.Board, fields []string) error {
		if err := engine.WesternSetFenTail(b, fields); err != nil {
			return err
		}
		if extinctPiece(b, set, chess.White).IsValid() && extinctPiece(b, set, chess.Black).IsValid() {
			return fmt.Errorf("both sides are missing a piece type: %w", errors.ErrInvalidFEN)
		}
		return nil
	}

	r.Result = func(b *engine.Board) chess.Result {
		side := b.SideToMove()
		// Captures first, then promotions
		piece := extinctPiece(b, set, side)
		if !piece.IsValid() {
			piece = extinctPiece(b, set, side.Opposite())
		}
		if piece.IsValid() {
			winner := piece.Side().Opposite()
			return chess.NewWin(winner, fmt.Sprintf("Missing %s: %s wins", b.PieceName(piece.Type()), winner))
		}

		if !b.CanMove() {
			return chess.NewDraw("Draw by stalemate")
		}
		if b.ReversibleMoveCount() >= 100 {
			return chess.NewDraw("Draw by fifty moves rule")
		}
		if b.RepeatCount() >= 2 {
			return chess.NewDraw("Draw by 3-fold repetition")
		}
		return chess.NoGameResult
	}
}

// extinctPiece returns the first type of set side has no piece of, or
// the empty piece.
func extinctPiece(b *engine.Board, set []int, side chess.Side) chess.Piece {
	for _, t := range set {
		if b.PieceCount(side, t) == 0 {
			return chess.NewPiece(side, t)
		}
	}
	return chess.EmptyPiece
}
