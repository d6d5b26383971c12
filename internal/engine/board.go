package engine

import (
	"strconv"
	"strings"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/zobrist"
)

// HistoryEntry is one made move with the data needed to undo it.
type HistoryEntry struct {
	Move chess.Move
	// Key is the position key before the move.
	Key uint64

	Capture chess.Piece
	// EnpassantCapture is the pawn taken en passant, if any.
	EnpassantCapture    chess.Piece
	EnpassantSquare     int
	EnpassantTarget     int
	CastlingRooks       [2][2]int
	CastlingSide        CastlingSide
	ReversibleMoveCount int
}

// Board is a chess position of one variant together with its move
// history. The square array is padded with a one square wall on the
// sides and a two square wall above and below, so move generation
// never needs bounds checks.
//
// A Board is not safe for concurrent use.
type Board struct {
	rules   *Rules
	width   int
	height  int
	arwidth int

	squares         []chess.Piece
	maxSymbolLength int
	side            chess.Side
	startingSide    chess.Side
	startingFEN     string
	key             uint64
	zobrist         zobrist.Strategy
	reserve         [2][]int
	history         []HistoryEntry
	states          map[string]State

	knightOffsets []int
	bishopOffsets []int
	rookOffsets   []int

	sign                int
	kingSquare          [2]int
	enpassantSquare     int
	enpassantTarget     int
	castlingRooks       [2][2]int
	castleTarget        [2][2]int
	reversibleMoveCount int
	plyOffset           int
	pawnAmbiguous       bool
	multiDigit          bool
}

// New creates a board for rules. The board has no position until
// SetFEN or Reset is called. New panics if rules is invalid.
func New(rules *Rules) *Board {
	if err := rules.Validate(); err != nil {
		panic(err)
	}

	b := &Board{
		rules:   rules,
		width:   rules.Width,
		height:  rules.Height,
		arwidth: rules.Width + 2,
		side:    chess.White,
	}
	b.initialize()
	return b
}

// initialize builds the square array and the offset tables.
func (b *Board) initialize() {
	size := (b.width + 2) * (b.height + 4)
	b.squares = make([]chess.Piece, size)
	for i := range b.squares {
		b.squares[i] = chess.WallPiece
	}

	w := b.arwidth
	b.knightOffsets = []int{-2*w - 1, -2*w + 1, -w - 2, -w + 2, w - 2, w + 2, 2*w - 1, 2*w + 1}
	b.bishopOffsets = []int{-w - 1, -w + 1, w - 1, w + 1}
	b.rookOffsets = []int{-w, -1, 1, w}

	for cside := QueenSide; cside <= KingSide; cside++ {
		file := b.rules.CastlingFiles[cside]
		b.castleTarget[chess.White][cside] = (b.height+1)*w + 1 + file
		b.castleTarget[chess.Black][cside] = 2*w + 1 + file
	}

	free := 0
	for _, ps := range b.rules.PawnSteps {
		if ps.Type&FreeStep != 0 {
			free++
		}
	}
	b.pawnAmbiguous = free > 1
	b.multiDigit = b.height > 9

	b.maxSymbolLength = 1
	for _, pd := range b.rules.Pieces {
		if len(pd.Symbol) > b.maxSymbolLength {
			b.maxSymbolLength = len(pd.Symbol)
		}
	}

	if b.rules.Zobrist != nil {
		b.zobrist = b.rules.Zobrist(b.rules)
		b.zobrist.Initialize(size, len(b.rules.Pieces))
	} else {
		b.zobrist = zobrist.For(zobrist.Topology{
			Width:          b.width,
			Height:         b.height,
			PieceTypeCount: len(b.rules.Pieces),
			Random:         b.rules.Random,
		})
	}

	b.resetStates()
	if b.rules.Initialize != nil {
		b.rules.Initialize(b)
	}
}

// Copy returns an independent deep copy of the board.
func (b *Board) Copy() *Board {
	c := *b
	c.squares = append([]chess.Piece(nil), b.squares...)
	c.history = append([]HistoryEntry(nil), b.history...)
	for side := range b.reserve {
		c.reserve[side] = append([]int(nil), b.reserve[side]...)
	}
	c.states = b.cloneStates()
	return &c
}

// Rules returns the rules the board plays by.
func (b *Board) Rules() *Rules { return b.rules }

// Variant returns the variant name.
func (b *Board) Variant() string { return b.rules.Variant }

// Width returns the number of files.
func (b *Board) Width() int { return b.width }

// Height returns the number of ranks.
func (b *Board) Height() int { return b.height }

// ArrayWidth returns the width of the padded square array.
func (b *Board) ArrayWidth() int { return b.arwidth }

// ArraySize returns the length of the padded square array.
func (b *Board) ArraySize() int { return len(b.squares) }

// SideToMove returns the side to move.
func (b *Board) SideToMove() chess.Side { return b.side }

// StartingSide returns the side to move of the last FEN set.
func (b *Board) StartingSide() chess.Side { return b.startingSide }

// StartingFEN returns the last FEN set.
func (b *Board) StartingFEN() string { return b.startingFEN }

// Key returns the Zobrist key of the position.
func (b *Board) Key() uint64 { return b.key }

// XorKey toggles a key contribution.
func (b *Board) XorKey(k uint64) { b.key ^= k }

// Zobrist returns the board's hashing strategy.
func (b *Board) Zobrist() zobrist.Strategy { return b.zobrist }

// Sign is 1 when White is to move and -1 otherwise.
func (b *Board) Sign() int { return b.sign }

// KnightOffsets returns the knight leap offsets.
func (b *Board) KnightOffsets() []int { return b.knightOffsets }

// BishopOffsets returns the diagonal offsets.
func (b *Board) BishopOffsets() []int { return b.bishopOffsets }

// RookOffsets returns the orthogonal offsets.
func (b *Board) RookOffsets() []int { return b.rookOffsets }

// PlyCount returns the number of moves made since the position was set.
func (b *Board) PlyCount() int { return len(b.history) }

// FullMoveNumber returns the move number shown in FEN.
func (b *Board) FullMoveNumber() int { return (len(b.history)+b.plyOffset)/2 + 1 }

// History returns the made moves, oldest first. The slice must not be
// modified.
func (b *Board) History() []HistoryEntry { return b.history }

// LastEntry returns the most recent history entry.
func (b *Board) LastEntry() *HistoryEntry {
	if len(b.history) == 0 {
		return nil
	}
	return &b.history[len(b.history)-1]
}

// LastMove returns the last move made, or the null move.
func (b *Board) LastMove() chess.Move {
	if len(b.history) == 0 {
		return chess.NullMove
	}
	return b.history[len(b.history)-1].Move
}

// At returns the piece on an array index.
func (b *Board) At(square int) chess.Piece {
	return b.squares[square]
}

// SetSquare places piece on an array index and updates the key.
func (b *Board) SetSquare(square int, piece chess.Piece) {
	old := b.squares[square]
	if old.IsValid() {
		b.key ^= b.zobrist.Piece(old, square)
	}
	if piece.IsValid() {
		b.key ^= b.zobrist.Piece(piece, square)
	}
	b.squares[square] = piece
}

// PieceAt returns the piece on sq, or the wall piece for squares
// outside the board.
func (b *Board) PieceAt(sq chess.Square) chess.Piece {
	if !b.IsValidSquare(sq) {
		return chess.WallPiece
	}
	return b.squares[b.SquareIndex(sq)]
}

// IsValidSquare reports whether sq lies on the board.
func (b *Board) IsValidSquare(sq chess.Square) bool {
	return sq.IsValid() && sq.File < b.width && sq.Rank < b.height
}

// SquareIndex converts a square to an array index. Invalid squares map
// to 0.
func (b *Board) SquareIndex(sq chess.Square) int {
	if !b.IsValidSquare(sq) {
		return 0
	}
	rank := (b.height - 1) - sq.Rank
	return (rank+2)*b.arwidth + 1 + sq.File
}

// ChessSquare converts an array index to a square.
func (b *Board) ChessSquare(index int) chess.Square {
	file := index%b.arwidth - 1
	rank := (b.height - 1) - (index/b.arwidth - 2)
	return chess.NewSquare(file, rank)
}

// SquareString returns the algebraic name of an array index.
func (b *Board) SquareString(index int) string {
	return SquareName(b.ChessSquare(index))
}

// SquareName returns the algebraic name of sq, or "" if it is invalid.
func SquareName(sq chess.Square) string {
	if !sq.IsValid() {
		return ""
	}
	return string(rune('a'+sq.File)) + strconv.Itoa(sq.Rank+1)
}

// ParseSquare reads an algebraic square name. The result may lie off
// the board; check it with IsValidSquare.
func (b *Board) ParseSquare(s string) chess.Square {
	if len(s) < 2 {
		return chess.NullSquare
	}
	file := int(s[0]) - 'a'
	rank, err := strconv.Atoi(s[1:])
	if err != nil || file < 0 || s[1] == '+' || s[1] == '-' {
		return chess.NullSquare
	}
	return chess.NewSquare(file, rank-1)
}

// SquareIndexOf is ParseSquare followed by SquareIndex.
func (b *Board) SquareIndexOf(s string) int {
	return b.SquareIndex(b.ParseSquare(s))
}

// PieceDef returns the definition of a piece type.
func (b *Board) PieceDef(pieceType int) PieceDef {
	if pieceType <= 0 || pieceType >= len(b.rules.Pieces) {
		return PieceDef{}
	}
	return b.rules.Pieces[pieceType]
}

// PieceTypeCount returns the size of the piece table, including the
// unused type 0.
func (b *Board) PieceTypeCount() int { return len(b.rules.Pieces) }

// PieceSymbol returns the FEN symbol of a piece: upper case for White.
func (b *Board) PieceSymbol(piece chess.Piece) string {
	t := piece.Type()
	if t <= 0 || t >= len(b.rules.Pieces) {
		return ""
	}
	symbol := strings.ToUpper(b.rules.Pieces[t].Symbol)
	if piece.Side() == chess.White {
		return symbol
	}
	return strings.ToLower(symbol)
}

// PieceFromSymbol parses a piece symbol. The case of the symbol gives
// the side. Unknown symbols yield the empty piece.
func (b *Board) PieceFromSymbol(symbol string) chess.Piece {
	if symbol == "" {
		return chess.EmptyPiece
	}
	upper := strings.ToUpper(symbol)
	for t := 1; t < len(b.rules.Pieces); t++ {
		if strings.ToUpper(b.rules.Pieces[t].Symbol) != upper {
			continue
		}
		if symbol == upper {
			return chess.NewPiece(chess.White, t)
		}
		return chess.NewPiece(chess.Black, t)
	}
	return chess.EmptyPiece
}

// PieceName returns the name of a piece type.
func (b *Board) PieceName(pieceType int) string {
	return b.PieceDef(pieceType).Name
}

// PieceHasMovement reports whether the piece on square moves in
// pattern m.
func (b *Board) PieceHasMovement(piece chess.Piece, square int, m Movement) bool {
	if b.rules.PieceHasMovement != nil {
		return b.rules.PieceHasMovement(b, piece, square, m)
	}
	return b.TypeHasMovement(piece.Type(), m)
}

// PieceHasCaptureMovement reports whether the piece on square captures
// in pattern m.
func (b *Board) PieceHasCaptureMovement(piece chess.Piece, square int, m Movement) bool {
	if b.rules.PieceHasCaptureMovement != nil {
		return b.rules.PieceHasCaptureMovement(b, piece, square, m)
	}
	return b.PieceHasMovement(piece, square, m)
}

// TypeHasMovement checks the piece table.
func (b *Board) TypeHasMovement(pieceType int, m Movement) bool {
	if pieceType <= 0 || pieceType >= len(b.rules.Pieces) {
		panic("engine: movement query for unknown piece type " + strconv.Itoa(pieceType))
	}
	return b.rules.Pieces[pieceType].Movement&m != 0
}

// DemotedType returns the type SAN writes for pieceType.
func (b *Board) DemotedType(pieceType int) int {
	if b.rules.DemotedType != nil {
		return b.rules.DemotedType(pieceType)
	}
	return pieceType
}

// PieceCount counts the pieces of side and pieceType on the board.
// chess.NoSide counts both sides and chess.NoPieceType every type.
func (b *Board) PieceCount(side chess.Side, pieceType int) int {
	count := 0
	for _, pc := range b.squares {
		if !pc.IsValid() {
			continue
		}
		if (side == chess.NoSide || pc.Side() == side) && (pieceType == chess.NoPieceType || pc.Type() == pieceType) {
			count++
		}
	}
	return count
}

// ReserveType returns the type a captured piece takes in the reserve.
func (b *Board) ReserveType(pieceType int) int {
	if b.rules.ReserveType != nil {
		return b.rules.ReserveType(pieceType)
	}
	return pieceType
}

// ReserveCount returns how many copies of piece are in hand.
func (b *Board) ReserveCount(piece chess.Piece) int {
	if !piece.IsValid() || piece.Type() >= len(b.reserve[piece.Side()]) {
		return 0
	}
	return b.reserve[piece.Side()][piece.Type()]
}

// AddToReserve adds count copies of piece to its side's reserve.
func (b *Board) AddToReserve(piece chess.Piece, count int) {
	side, t := piece.Side(), piece.Type()
	for len(b.reserve[side]) <= t {
		b.reserve[side] = append(b.reserve[side], 0)
	}
	for i := 0; i < count; i++ {
		b.key ^= b.zobrist.ReservePiece(piece, b.reserve[side][t])
		b.reserve[side][t]++
	}
}

// RemoveFromReserve takes one copy of piece out of the reserve.
func (b *Board) RemoveFromReserve(piece chess.Piece) {
	side, t := piece.Side(), piece.Type()
	if t >= len(b.reserve[side]) || b.reserve[side][t] == 0 {
		panic("engine: removing a piece that is not in the reserve")
	}
	b.reserve[side][t]--
	b.key ^= b.zobrist.ReservePiece(piece, b.reserve[side][t])
}

// KingSquare returns the array index of side's king, or 0.
func (b *Board) KingSquare(side chess.Side) int { return b.kingSquare[side] }

// SetKingSquare records where side's king stands.
func (b *Board) SetKingSquare(side chess.Side, square int) { b.kingSquare[side] = square }

// EnpassantSquare returns the en passant square, or 0.
func (b *Board) EnpassantSquare() int { return b.enpassantSquare }

// EnpassantTarget returns the square of the pawn capturable en passant.
func (b *Board) EnpassantTarget() int { return b.enpassantTarget }

// ReversibleMoveCount returns the number of plies since the last
// irreversible move.
func (b *Board) ReversibleMoveCount() int { return b.reversibleMoveCount }

// SetReversibleMoveCount overrides the reversible move counter.
func (b *Board) SetReversibleMoveCount(n int) { b.reversibleMoveCount = n }

// SetPlyOffset sets the number of plies played before the position.
func (b *Board) SetPlyOffset(n int) { b.plyOffset = n }

// PlyOffset returns the number of plies played before the position.
func (b *Board) PlyOffset() int { return b.plyOffset }

// String returns a diagram of the board followed by its FEN.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := b.height - 1; rank >= 0; rank-- {
		for file := 0; file < b.width; file++ {
			pc := b.PieceAt(chess.NewSquare(file, rank))
			if pc.IsValid() {
				sb.WriteString(b.PieceSymbol(pc))
			} else {
				sb.WriteByte('.')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("FEN: ")
	sb.WriteString(b.FEN(XFen))
	sb.WriteByte('\n')
	return sb.String()
}
