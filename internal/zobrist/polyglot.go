package zobrist

import "github.com/lgbarn/variantboard-go/internal/chess"

const (
	polyglotPieceTypes = 7 // NoPiece plus pawn through king
	polyglotCastling   = 768
	polyglotEnpassant  = 772
	polyglotTurn       = 780

	polyglotArrayWidth = 10
	polyglotRanks      = 8
)

// Polyglot hashes standard 8x8 boards with the keys of the Polyglot
// opening book format, so a board key can be used directly to look up
// book entries.
//
// Piece types must follow the orthodox order: pawn, knight, bishop,
// rook, queen, king.
type Polyglot struct{}

// NewPolyglot returns the Polyglot strategy.
func NewPolyglot() *Polyglot {
	return &Polyglot{}
}

// Initialize implements Strategy. The Polyglot table is static.
func (p *Polyglot) Initialize(squareCount, pieceTypeCount int) {}

func polyglotSquare(square int) (file, rank int) {
	file = square%polyglotArrayWidth - 1
	rank = (polyglotRanks - 1) - (square/polyglotArrayWidth - 2)
	return file, rank
}

// Side implements Strategy.
func (p *Polyglot) Side() uint64 {
	return polyglotKeys[polyglotTurn]
}

// Piece implements Strategy.
func (p *Polyglot) Piece(piece chess.Piece, square int) uint64 {
	kind := 2 * (piece.Type() - 1)
	if piece.Side() == chess.White {
		kind++
	}
	file, rank := polyglotSquare(square)
	return polyglotKeys[64*kind+8*rank+file]
}

// ReservePiece implements Strategy. Polyglot boards have no reserve.
func (p *Polyglot) ReservePiece(piece chess.Piece, slot int) uint64 {
	return 0
}

// Enpassant implements Strategy.
func (p *Polyglot) Enpassant(square int) uint64 {
	file, _ := polyglotSquare(square)
	return polyglotKeys[polyglotEnpassant+file]
}

// Castling implements Strategy. Rooks on the king's wing map to the
// short castling keys.
func (p *Polyglot) Castling(side chess.Side, square int) uint64 {
	file, _ := polyglotSquare(square)
	i := polyglotCastling
	if file < 4 {
		i++
	}
	if side == chess.Black {
		i += 2
	}
	return polyglotKeys[i]
}
