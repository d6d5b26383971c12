package chess

// Move is a move packed into 32 bits. Squares are indices into a
// board's padded square array, so a Move is only meaningful together
// with the board that produced it.
//
// Layout: source in bits 0-9, target in bits 10-19, promotion type in
// bits 20-29. A source of 0 marks a piece drop, with the dropped piece
// type stored in the promotion field.
type Move uint32

const (
	moveSquareBits = 10
	moveSquareMask = 1<<moveSquareBits - 1
)

// NullMove is the zero move.
const NullMove Move = 0

// NewMove packs a move.
func NewMove(source, target, promotion int) Move {
	return Move(source&moveSquareMask |
		(target&moveSquareMask)<<moveSquareBits |
		(promotion&moveSquareMask)<<(2*moveSquareBits))
}

// NewDrop packs a drop of pieceType onto target.
func NewDrop(pieceType, target int) Move {
	return NewMove(0, target, pieceType)
}

// Source returns the source square index.
func (m Move) Source() int {
	return int(m & moveSquareMask)
}

// Target returns the target square index.
func (m Move) Target() int {
	return int(m>>moveSquareBits) & moveSquareMask
}

// Promotion returns the promotion type, or the dropped type for drops.
func (m Move) Promotion() int {
	return int(m>>(2*moveSquareBits)) & moveSquareMask
}

// IsNull reports whether m is the null move.
func (m Move) IsNull() bool {
	return m == NullMove
}

// IsDrop reports whether m places a piece from the reserve.
func (m Move) IsDrop() bool {
	return !m.IsNull() && m.Source() == 0
}

// GenericMove is a board-independent move expressed with squares
// instead of array indices. It is used at the boundary with opening
// books and user input.
type GenericMove struct {
	Source    Square
	Target    Square
	Promotion int
}

// NullGenericMove is the null generic move.
var NullGenericMove = GenericMove{Source: NullSquare, Target: NullSquare}

// IsNull reports whether g does not describe a move.
func (g GenericMove) IsNull() bool {
	return !g.Target.IsValid()
}

// IsDrop reports whether g places a piece from the reserve.
func (g GenericMove) IsDrop() bool {
	return !g.Source.IsValid() && g.Target.IsValid() && g.Promotion != NoPieceType
}
