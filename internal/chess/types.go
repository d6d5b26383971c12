// Package chess provides the variant-independent value types shared by
// every board: sides, squares, pieces, moves and game results.
package chess

import "strings"

// Side represents the side (colour) of a piece or player.
type Side int

const (
	White Side = iota
	Black
	NoSide
)

// String returns the string representation of a side.
func (s Side) String() string {
	switch s {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "NoSide"
}

// Symbol returns the FEN symbol of a side ("w" or "b").
func (s Side) Symbol() string {
	switch s {
	case White:
		return "w"
	case Black:
		return "b"
	}
	return ""
}

// Opposite returns the opposite side. NoSide stays NoSide.
func (s Side) Opposite() Side {
	switch s {
	case White:
		return Black
	case Black:
		return White
	}
	return NoSide
}

// IsNull reports whether s is NoSide.
func (s Side) IsNull() bool {
	return s != White && s != Black
}

// SideFromSymbol parses a FEN side symbol.
func SideFromSymbol(symbol string) Side {
	switch strings.ToLower(symbol) {
	case "w":
		return White
	case "b":
		return Black
	}
	return NoSide
}

// SquareColor is the colour of a board square.
type SquareColor int

const (
	Dark SquareColor = iota
	Light
	NoColor
)

// Square is a (file, rank) pair. File 0 is the a-file and rank 0 is
// White's first rank.
type Square struct {
	File int
	Rank int
}

// NullSquare is the invalid square sentinel.
var NullSquare = Square{File: -1, Rank: -1}

// NewSquare creates a square.
func NewSquare(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

// IsValid reports whether both coordinates are non-negative.
func (sq Square) IsValid() bool {
	return sq.File >= 0 && sq.Rank >= 0
}

// Color returns the colour of the square, a1 being dark.
func (sq Square) Color() SquareColor {
	if !sq.IsValid() {
		return NoColor
	}
	if (sq.File+sq.Rank)%2 == 0 {
		return Dark
	}
	return Light
}

// Reserved piece types.
const (
	NoPieceType   = 0
	WallPieceType = 100
)

// sideShift is the bit position of the side inside a packed Piece.
const sideShift = 10

// Piece is a (side, type) pair packed into a small integer. Piece types
// are registered per board, so the type number only has a meaning
// together with the board's piece table.
type Piece uint16

// Reserved square contents.
var (
	EmptyPiece = NewPiece(NoSide, NoPieceType)
	WallPiece  = NewPiece(NoSide, WallPieceType)
)

// NewPiece creates a packed piece.
func NewPiece(side Side, pieceType int) Piece {
	return Piece(pieceType | int(side)<<sideShift)
}

// Side returns the side of the piece.
func (p Piece) Side() Side {
	return Side(p >> sideShift)
}

// Type returns the piece type.
func (p Piece) Type() int {
	return int(p & (1<<sideShift - 1))
}

// IsEmpty reports whether p is an empty square.
func (p Piece) IsEmpty() bool {
	return p == EmptyPiece
}

// IsWall reports whether p is an off-board padding square.
func (p Piece) IsWall() bool {
	return p.Type() == WallPieceType
}

// IsValid reports whether p is a real piece belonging to a side.
func (p Piece) IsValid() bool {
	return !p.Side().IsNull() && p.Type() != NoPieceType && p.Type() != WallPieceType
}

// WithSide returns the same piece type owned by side.
func (p Piece) WithSide(side Side) Piece {
	return NewPiece(side, p.Type())
}
