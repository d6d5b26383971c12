package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/errors"
)

// CastlingRookSquare returns the square of the rook side may castle
// with on cside, or 0 without that right.
func (b *Board) CastlingRookSquare(side chess.Side, cside CastlingSide) int {
	return b.castlingRooks[side][cside]
}

// HasCastlingRight reports whether side may still castle on cside.
func (b *Board) HasCastlingRight(side chess.Side, cside CastlingSide) bool {
	return b.castlingRooks[side][cside] != 0
}

// CastleTarget returns the king's destination when side castles on cside.
func (b *Board) CastleTarget(side chess.Side, cside CastlingSide) int {
	return b.castleTarget[side][cside]
}

// SetCastlingSquare sets the castling rook of side on cside and
// updates the key. A square of 0 removes the right.
func (b *Board) SetCastlingSquare(side chess.Side, cside CastlingSide, square int) {
	rs := &b.castlingRooks[side][cside]
	if *rs == square {
		return
	}
	if *rs != 0 {
		b.key ^= b.zobrist.Castling(side, *rs)
	}
	if square != 0 {
		b.key ^= b.zobrist.Castling(side, square)
	}
	*rs = square
}

// RemoveCastlingRights removes both castling rights of side.
func (b *Board) RemoveCastlingRights(side chess.Side) {
	b.SetCastlingSquare(side, QueenSide, 0)
	b.SetCastlingSquare(side, KingSide, 0)
}

// removeCastlingRightsAt removes the right tied to a rook on square,
// or both rights of a side whose castling king stands there.
func (b *Board) removeCastlingRightsAt(square int) {
	pc := b.squares[square]
	if pc.Side().IsNull() {
		return
	}
	side := pc.Side()
	if pc.Type() == King && square == b.kingSquare[side] {
		b.RemoveCastlingRights(side)
		return
	}
	if pc.Type() != Rook {
		return
	}
	switch square {
	case b.castlingRooks[side][QueenSide]:
		b.SetCastlingSquare(side, QueenSide, 0)
	case b.castlingRooks[side][KingSide]:
		b.SetCastlingSquare(side, KingSide, 0)
	}
}

// CastlingSideOf returns the wing m castles to, or NoCastlingSide.
// Castling is encoded as the king capturing its own rook.
func (b *Board) CastlingSideOf(m chess.Move) CastlingSide {
	target := m.Target()
	rooks := b.castlingRooks[b.side]
	switch {
	case target == 0:
		return NoCastlingSide
	case target == rooks[QueenSide]:
		return QueenSide
	case target == rooks[KingSide]:
		return KingSide
	}
	return NoCastlingSide
}

// canCastle reports whether the squares between the king, the rook and
// their destinations are free.
func (b *Board) canCastle(cside CastlingSide) bool {
	side := b.side
	rookSq := b.castlingRooks[side][cside]
	if rookSq == 0 {
		return false
	}

	kingSq := b.kingSquare[side]
	target := b.castleTarget[side][cside]
	var left, right int

	if cside == QueenSide {
		rtarget := target + 1
		left = min(target, rookSq)
		right = max(rtarget, kingSq)
	} else {
		rtarget := target - 1
		left = min(rtarget, kingSq)
		right = max(target, rookSq)
	}

	for i := left; i <= right; i++ {
		if i != kingSq && i != rookSq && !b.squares[i].IsEmpty() {
			return false
		}
	}
	return true
}

// GenerateCastlingMoves appends the castling moves of the side to move.
func (b *Board) GenerateCastlingMoves(moves []chess.Move) []chess.Move {
	if !b.rules.HasCastling {
		return moves
	}
	source := b.kingSquare[b.side]
	if b.squares[source] != chess.NewPiece(b.side, King) {
		return moves
	}
	for cside := QueenSide; cside <= KingSide; cside++ {
		if b.canCastle(cside) {
			moves = append(moves, chess.NewMove(source, b.castlingRooks[b.side][cside], 0))
		}
	}
	return moves
}

// castlingRightsString writes the castling field. X-FEN uses K and Q
// unless an inner rook makes them ambiguous.
func (b *Board) castlingRightsString(n FenNotation) string {
	var sb strings.Builder
	for side := chess.White; side <= chess.Black; side++ {
		for cside := KingSide; cside >= QueenSide; cside-- {
			rs := b.castlingRooks[side][cside]
			if rs == 0 {
				continue
			}
			offset := 1
			if cside == QueenSide {
				offset = -1
			}

			ambiguous := false
			for i := rs + offset; !b.squares[i].IsWall(); i += offset {
				if b.squares[i] == chess.NewPiece(side, Rook) {
					ambiguous = true
					break
				}
			}

			var c rune
			switch {
			case ambiguous || n == ShredderFen:
				c = rune('a' + b.ChessSquare(rs).File)
			case cside == QueenSide:
				c = 'q'
			default:
				c = 'k'
			}
			if side == chess.White {
				c = unicode.ToUpper(c)
			}
			sb.WriteRune(c)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// parseCastlingRight applies one character of the castling field.
func (b *Board) parseCastlingRight(c rune) error {
	if !b.rules.HasCastling {
		return errors.FieldError(errors.ErrInvalidFEN, "castling", "no castling rights", string(c))
	}
	side := chess.Black
	if unicode.IsUpper(c) {
		side = chess.White
	}
	c = unicode.ToLower(c)
	kingSq := b.kingSquare[side]
	if kingSq == 0 {
		return errors.FieldError(errors.ErrInvalidFEN, "castling", "a king for the castling right", string(c))
	}
	rook := chess.NewPiece(side, Rook)

	if c == 'q' || c == 'k' {
		cside, offset := KingSide, 1
		if c == 'q' {
			cside, offset = QueenSide, -1
		}
		// The outermost rook on that wing
		rookSq := 0
		for i := kingSq + offset; !b.squares[i].IsWall(); i += offset {
			if b.squares[i] == rook {
				rookSq = i
			}
		}
		if rookSq == 0 {
			return errors.FieldError(errors.ErrInvalidFEN, "castling", "a rook for the castling right", string(c))
		}
		b.SetCastlingSquare(side, cside, rookSq)
		return nil
	}

	file := int(c - 'a')
	if file < 0 || file >= b.width {
		return errors.FieldError(errors.ErrInvalidFEN, "castling", "a castling right", string(c))
	}
	rookSq := 2*b.arwidth + 1 + file
	if side == chess.White {
		rookSq = (b.height+1)*b.arwidth + 1 + file
	}
	if abs(kingSq-rookSq) >= b.width || b.squares[rookSq] != rook {
		return fmt.Errorf("castling: no rook on the %c-file: %w", c, errors.ErrInvalidFEN)
	}
	cside := QueenSide
	if rookSq > kingSq {
		cside = KingSide
	}
	b.SetCastlingSquare(side, cside, rookSq)
	return nil
}
