package variants

import (
	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/zobrist"
)

// Extra piece types of Courier chess.
const (
	Courier = engine.King + 1 + iota
	Mann
	Schleich
)

// Shatranj is the medieval predecessor of chess: the ferz moves one
// square diagonally, the alfil leaps two squares diagonally and pawns
// have neither double steps nor promotions other than to a ferz.
// Baring the opponent's king wins.
func Shatranj() *engine.Rules {
	r := engine.Western("shatranj")
	shatranjRules(r)
	r.StartFEN = staticFEN("rnbkqbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBKQBNR w - - 0 1")
	return r
}

// CourierChess is a 12x8 shatranj with a long-range bishop (the
// courier), the mann and the schleich.
func CourierChess() *engine.Rules {
	r := engine.Western("courier")
	shatranjRules(r)
	r.Width = 12
	r.SetPiece(engine.Bishop, engine.PieceDef{Name: "alfil", Symbol: "E", Movement: engine.AlfilMovement})
	r.SetPiece(engine.Queen, engine.PieceDef{Name: "ferz", Symbol: "F", Movement: engine.FerzMovement})
	r.SetPiece(Courier, engine.PieceDef{Name: "courier", Symbol: "B", Movement: engine.BishopMovement})
	r.SetPiece(Mann, engine.PieceDef{Name: "mann", Symbol: "M", Movement: engine.FerzMovement | engine.WazirMovement})
	r.SetPiece(Schleich, engine.PieceDef{Name: "schleich", Symbol: "W", Movement: engine.WazirMovement})
	r.StartFEN = staticFEN("rnebmk1wbenr/1ppppp1pppp1/6f5/p5p4p/P5P4P/6F5/1PPPPP1PPPP1/RNEBMK1WBENR w - - 0 1")
	return r
}

// shatranjRules sets the medieval pieces and the bare king rule.
func shatranjRules(r *engine.Rules) {
	r.Zobrist = func(*engine.Rules) zobrist.Strategy { return zobrist.NewWestern() }
	r.SetPiece(engine.Queen, engine.PieceDef{Name: "ferz", Symbol: "Q", Movement: engine.FerzMovement, GSymbol: "F"})
	r.SetPiece(engine.Bishop, engine.PieceDef{Name: "alfil", Symbol: "B", Movement: engine.AlfilMovement, GSymbol: "E"})
	r.HasCastling = false
	r.PawnDoubleStep = false
	r.EnPassant = false
	r.PromotionTypes = []int{engine.Queen}
	r.Result = shatranjResult
}

func shatranjResult(b *engine.Board) chess.Result {
	side := b.SideToMove()
	opp := side.Opposite()

	if !b.CanMove() {
		if b.InCheck(side) {
			return chess.NewWin(opp, opp.String()+" mates")
		}
		return chess.NewWin(opp, opp.String()+" wins by stalemate")
	}

	if bareKing(b, side, 0) {
		if bareKing(b, opp, 0) {
			return chess.NewDraw("Both kings bare")
		}
		if !canBareOpponentKing(b) {
			return chess.NewWin(opp, "Bare king")
		}
	}
	// The side to move had its chance to bare the king back
	if bareKing(b, opp, 0) {
		return chess.NewWin(side, "Bare king")
	}

	if b.ReversibleMoveCount() >= 140 {
		return chess.NewDraw("Draw by seventy moves rule")
	}
	if b.RepeatCount() >= 2 {
		return chess.NewDraw("Draw by 3-fold repetition")
	}
	return chess.NoGameResult
}

// bareKing reports whether side has fewer than two pieces once spare
// is added to its count.
func bareKing(b *engine.Board, side chess.Side, spare int) bool {
	return b.PieceCount(side, chess.NoPieceType)+spare < 2
}

// canBareOpponentKing reports whether the king of the side to move can
// capture the last piece beside the opponent's king.
func canBareOpponentKing(b *engine.Board) bool {
	side := b.SideToMove()
	if !bareKing(b, side.Opposite(), -1) {
		return false
	}
	for _, m := range b.GenerateMovesForPiece(nil, engine.King, b.KingSquare(side)) {
		if b.CaptureType(m) != chess.NoPieceType && b.IsLegalMove(m) {
			return true
		}
	}
	return false
}
