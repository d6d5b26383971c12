package engine

import "github.com/lgbarn/variantboard-go/internal/chess"

// Result returns the result of the game in the current position, or a
// null result if the game goes on.
func (b *Board) Result() chess.Result {
	if b.rules.Result != nil {
		return b.rules.Result(b)
	}
	return WesternResult(b)
}

// WesternResult detects mate, stalemate, insufficient material, the
// fifty moves rule and threefold repetition.
func WesternResult(b *Board) chess.Result {
	// Checkmate/Stalemate
	if !b.CanMove() {
		if b.InCheck(b.side) {
			winner := b.side.Opposite()
			return chess.NewWin(winner, winner.String()+" mates")
		}
		return chess.NewDraw("Draw by stalemate")
	}

	if b.MatingMaterial() <= 1 {
		return chess.NewDraw("Draw by insufficient mating material")
	}
	if b.reversibleMoveCount >= 100 {
		return chess.NewDraw("Draw by fifty moves rule")
	}
	if b.RepeatCount() >= 2 {
		return chess.NewDraw("Draw by 3-fold repetition")
	}
	return chess.NoGameResult
}

// MatingMaterial scores the material on the board. Knights and one
// bishop per square colour count 1, every other piece but the king 2.
// A score of 1 or less cannot mate.
func (b *Board) MatingMaterial() int {
	material := 0
	var bishops [2]bool
	for i, pc := range b.squares {
		if !pc.IsValid() {
			continue
		}
		switch pc.Type() {
		case King:
		case Bishop:
			color := b.ChessSquare(i).Color()
			if color != chess.NoColor && !bishops[color] {
				material++
				bishops[color] = true
			}
		case Knight:
			material++
		default:
			material += 2
		}
	}
	return material
}

// RepeatCount returns how often the current position occurred before.
// Only the positions since the last irreversible move are searched.
func (b *Board) RepeatCount() int {
	window := min(b.reversibleMoveCount, len(b.history))
	count := 0
	for i := len(b.history) - window; i < len(b.history); i++ {
		if b.history[i].Key == b.key {
			count++
		}
	}
	return count
}

// WinPossible reports whether side has material besides its king, on
// the board or in hand.
func (b *Board) WinPossible(side chess.Side) bool {
	begin := 2*b.arwidth + 1
	for i := begin; i < len(b.squares)-begin-1; i++ {
		if b.squares[i].Side() == side && i != b.kingSquare[side] {
			return true
		}
	}
	for t, n := range b.reserve[side] {
		if t > 0 && n > 0 {
			return true
		}
	}
	return false
}
