package variants

import (
	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/zobrist"
)

const captureStateKey = "forcedCapture"

// captureMemo caches whether the side to move has a legal capture in
// the position with the given key.
type captureMemo struct {
	key        uint64
	valid      bool
	canCapture bool
}

func (s *captureMemo) Clone() engine.State {
	c := *s
	return &c
}

// Antichess: captures are compulsory, the king is an ordinary piece and
// the side that loses all its pieces or cannot move wins.
func Antichess() *engine.Rules {
	r := engine.Western("antichess")
	r.HasCastling = false
	r.StartFEN = staticFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1")
	antiKings(r)
	forcedCapture(r)
	r.Result = losingResult(func(b *engine.Board) chess.Result {
		side := b.SideToMove()
		return chess.NewWin(side, side.String()+" wins")
	})
	return r
}

// Giveaway is Antichess with castling.
func Giveaway() *engine.Rules {
	r := Antichess()
	r.Variant = "giveaway"
	r.HasCastling = true
	r.StartFEN = staticFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	return r
}

// Suicide is Antichess where a stalemate is won by the side with fewer
// pieces.
func Suicide() *engine.Rules {
	r := Antichess()
	r.Variant = "suicide"
	r.Result = losingResult(func(b *engine.Board) chess.Result {
		white := b.PieceCount(chess.White, chess.NoPieceType)
		black := b.PieceCount(chess.Black, chess.NoPieceType)
		switch {
		case white == black:
			return chess.NewDraw("Draw")
		case white < black:
			return chess.NewWin(chess.White, "White wins")
		}
		return chess.NewWin(chess.Black, "Black wins")
	})
	return r
}

// Codrus is Giveaway where losing the king wins. Pawns do not promote
// to kings.
func Codrus() *engine.Rules {
	r := Giveaway()
	r.Variant = "codrus"
	r.PromotionTypes = []int{engine.Knight, engine.Bishop, engine.Rook, engine.Queen}
	r.KingsCount = func(white, black int) bool { return white+black > 0 }

	prevLegal := r.IsLegalMove
	r.IsLegalMove = func(b *engine.Board, m chess.Move) bool {
		if b.PieceCount(b.SideToMove(), engine.King) < 1 {
			return false
		}
		return prevLegal(b, m)
	}

	stalemate := losingResult(func(*engine.Board) chess.Result {
		return chess.NewDraw("Draw by stalemate")
	})
	r.Result = func(b *engine.Board) chess.Result {
		side := b.SideToMove()
		if b.PieceCount(side, engine.King) == 0 {
			return chess.NewWin(side, side.String()+" wins")
		}
		return stalemate(b)
	}
	return r
}

// Losers: captures are compulsory and the side that gets mated or loses
// every piece but the king wins.
func Losers() *engine.Rules {
	r := engine.Western("losers")
	r.Zobrist = func(*engine.Rules) zobrist.Strategy { return zobrist.NewWestern() }
	forcedCapture(r)

	r.Result = func(b *engine.Board) chess.Result {
		side := b.SideToMove()
		if !b.CanMove() {
			return chess.NewWin(side, side.String()+" gets mated")
		}
		if b.PieceCount(side, chess.NoPieceType) <= 1 {
			return chess.NewWin(side, side.String()+" lost all pieces")
		}
		return drawRules(b)
	}
	return r
}

// antiKings makes the king a common piece: it may be captured, pawns
// may promote to it and it never stands in check.
func antiKings(r *engine.Rules) {
	r.PromotionTypes = append(r.PromotionTypes, engine.King)
	r.KingsCount = func(int, int) bool { return true }
	r.InCheck = func(*engine.Board, chess.Side, int) bool { return false }

	// Only the first king of a side may castle; extra kings promoted
	// from pawns must not move the castling king's square.
	r.MakeMove = func(b *engine.Board, m chess.Move, tr *chess.BoardTransition) {
		side := b.SideToMove()
		kingSquare := b.KingSquare(side)
		if m.IsDrop() || b.At(m.Source()).Type() != engine.King || m.Source() == kingSquare {
			engine.WesternMakeMove(b, m, tr)
			return
		}
		rooks := [2]int{
			b.CastlingRookSquare(side, engine.QueenSide),
			b.CastlingRookSquare(side, engine.KingSide),
		}
		engine.WesternMakeMove(b, m, tr)
		b.SetKingSquare(side, kingSquare)
		b.SetCastlingSquare(side, engine.QueenSide, rooks[engine.QueenSide])
		b.SetCastlingSquare(side, engine.KingSide, rooks[engine.KingSide])
	}
}

// forcedCapture forbids quiet moves while a capture is available.
func forcedCapture(r *engine.Rules) {
	r.AddState(captureStateKey, func() engine.State { return &captureMemo{} })

	prevLegal := r.IsLegalMove
	baseLegal := func(b *engine.Board, m chess.Move) bool {
		if prevLegal != nil {
			return prevLegal(b, m)
		}
		return engine.WesternIsLegalMove(b, m)
	}

	r.IsLegalMove = func(b *engine.Board, m chess.Move) bool {
		if b.CaptureType(m) != chess.NoPieceType {
			return baseLegal(b, m)
		}
		memo := b.State(captureStateKey).(*captureMemo)
		if !memo.valid || memo.key != b.Key() {
			memo.key, memo.valid = b.Key(), true
			memo.canCapture = false
			for _, mv := range b.GenerateMoves(nil, chess.NoPieceType) {
				if b.CaptureType(mv) != chess.NoPieceType && baseLegal(b, mv) {
					memo.canCapture = true
					break
				}
			}
		}
		return !memo.canCapture && baseLegal(b, m)
	}
}

// losingResult ends the game with stalemate when the side to move has
// no move, and with the draw rules otherwise.
func losingResult(stalemate func(b *engine.Board) chess.Result) func(b *engine.Board) chess.Result {
	return func(b *engine.Board) chess.Result {
		if !b.CanMove() {
			return stalemate(b)
		}
		return drawRules(b)
	}
}

// drawRules applies the fifty moves rule and threefold repetition.
func drawRules(b *engine.Board) chess.Result {
	if b.ReversibleMoveCount() >= 100 {
		return chess.NewDraw("Draw by fifty moves rule")
	}
	if b.RepeatCount() >= 2 {
		return chess.NewDraw("Draw by 3-fold repetition")
	}
	return chess.NoGameResult
}
