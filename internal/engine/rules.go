// Package engine implements a variant-independent chess board.
//
// A Board is driven by a Rules descriptor: a piece table, a handful of
// flags and a set of hook functions. The hooks default to the rules of
// Western chess; variants replace or wrap the ones they need to change.
package engine

import (
	"fmt"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/errors"
	"github.com/lgbarn/variantboard-go/internal/zobrist"
)

// Movement is a bitmask of the basic movement patterns a piece type has.
// Shared generation code uses it to ask whether a type moves like a rook
// without knowing the variant's type numbering.
type Movement uint

const (
	KnightMovement Movement = 1 << (iota + 1)
	BishopMovement
	RookMovement
	FerzMovement
	AlfilMovement
	WazirMovement
	_
	SilverMovement
)

// Piece types of the Western baseline. Variants may reuse the slots for
// other pieces or register additional types after King.
const (
	Pawn = iota + 1
	Knight
	Bishop
	Rook
	Queen
	King
)

// PieceDef describes one registered piece type.
type PieceDef struct {
	Name     string
	Symbol   string
	Movement Movement
	// GSymbol is the graphical symbol; empty means Symbol.
	GSymbol string
}

// StepType tells whether a pawn step moves, captures or does both.
type StepType int

const (
	FreeStep StepType = 1 << iota
	CaptureStep
)

// PawnStep is one pawn step relative to the side's forward direction.
type PawnStep struct {
	Type StepType
	File int
}

// CastlingSide is the wing a castling move goes to.
type CastlingSide int

const (
	QueenSide CastlingSide = iota
	KingSide
	NoCastlingSide
)

// FenNotation selects the castling field dialect of FEN output.
type FenNotation int

const (
	// XFen writes K/Q where unambiguous and rook files otherwise.
	XFen FenNotation = iota
	// ShredderFen always writes rook files.
	ShredderFen
)

// MoveNotation selects between algebraic move formats.
type MoveNotation int

const (
	StandardAlgebraic MoveNotation = iota
	LongAlgebraic
)

// Rules describes a chess variant. A Rules value is shared by every
// board of the variant and must not be modified once a board uses it;
// per-game data belongs in a State registered under States.
//
// Every nil hook falls back to the Western chess behaviour. A variant
// that wants to extend a behaviour captures the previous hook in a
// closure and calls it.
type Rules struct {
	Variant string
	Width   int
	Height  int
	// Pieces is indexed by piece type. Index 0 is unused.
	Pieces []PieceDef

	Random             bool
	HasDrops           bool
	OptionalPromotions bool
	HasCastling        bool
	PawnDoubleStep     bool
	EnPassant          bool
	KingCanCapture     bool
	PawnSteps          []PawnStep
	// PromotionTypes lists the types a pawn may promote to.
	PromotionTypes []int
	// CastlingFiles holds the king's target file for the queen side and
	// the king side.
	CastlingFiles [2]int

	// Zobrist picks the hashing strategy. Nil selects a shared
	// strategy for the board's topology.
	Zobrist func(r *Rules) zobrist.Strategy

	// States registers per-game fragment state. Each factory is run
	// whenever a position is set up.
	States map[string]func() State

	StartFEN func(b *Board) string
	// Initialize runs once after the board's tables are built.
	Initialize func(b *Board)
	KingsCount func(white, black int) bool

	GenerateMovesForPiece   func(b *Board, moves []chess.Move, pieceType, square int) []chess.Move
	AddPromotions           func(b *Board, moves []chess.Move, source, target int) []chess.Move
	IsPromotionSquare       func(b *Board, source, target int) bool
	PieceHasMovement        func(b *Board, piece chess.Piece, square int, m Movement) bool
	PieceHasCaptureMovement func(b *Board, piece chess.Piece, square int, m Movement) bool
	CaptureType             func(b *Board, m chess.Move) int
	// ReserveType is the type a captured piece becomes in the reserve.
	ReserveType func(pieceType int) int
	// DemotedType maps promoted piece types to the type whose letter
	// SAN uses for them.
	DemotedType func(pieceType int) int

	MakeMove        func(b *Board, m chess.Move, tr *chess.BoardTransition)
	UndoMove        func(b *Board, m chess.Move)
	IsLegalMove     func(b *Board, m chess.Move) bool
	IsLegalPosition func(b *Board) bool
	InCheck         func(b *Board, side chess.Side, square int) bool
	Result          func(b *Board) chess.Result

	// FenTail writes the fields after the side to move; SetFenTail
	// parses them.
	FenTail    func(b *Board, n FenNotation) string
	SetFenTail func(b *Board, fields []string) error
	// FenInclude adds a field after the en passant field of the
	// Western tail.
	FenInclude func(b *Board, n FenNotation) string

	SANMoveString func(b *Board, m chess.Move) string
	MoveFromSAN   func(b *Board, s string) chess.Move
	LANMoveString func(b *Board, m chess.Move) string
	MoveFromLAN   func(b *Board, s string) chess.Move
}

// WesternPieces returns the orthodox piece table.
func WesternPieces() []PieceDef {
	return []PieceDef{
		{},
		{Name: "pawn", Symbol: "P"},
		{Name: "knight", Symbol: "N", Movement: KnightMovement},
		{Name: "bishop", Symbol: "B", Movement: BishopMovement},
		{Name: "rook", Symbol: "R", Movement: RookMovement},
		{Name: "queen", Symbol: "Q", Movement: BishopMovement | RookMovement},
		{Name: "king", Symbol: "K"},
	}
}

// StandardPawnSteps are the orthodox pawn steps: a diagonal capture to
// either side and a straight move.
func StandardPawnSteps() []PawnStep {
	return []PawnStep{
		{Type: CaptureStep, File: -1},
		{Type: FreeStep, File: 0},
		{Type: CaptureStep, File: 1},
	}
}

// Western returns the rules of orthodox chess under the given variant
// name. Variants start from this value and modify it.
func Western(variant string) *Rules {
	return &Rules{
		Variant:        variant,
		Width:          8,
		Height:         8,
		Pieces:         WesternPieces(),
		HasCastling:    true,
		PawnDoubleStep: true,
		EnPassant:      true,
		KingCanCapture: true,
		PawnSteps:      StandardPawnSteps(),
		PromotionTypes: []int{Knight, Bishop, Rook, Queen},
		CastlingFiles:  [2]int{2, 6},
		StartFEN: func(*Board) string {
			return "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
		},
	}
}

// Clone returns a shallow copy of r with its own slices and state
// table, ready to be modified into another variant.
func (r *Rules) Clone() *Rules {
	c := *r
	c.Pieces = append([]PieceDef(nil), r.Pieces...)
	c.PawnSteps = append([]PawnStep(nil), r.PawnSteps...)
	c.PromotionTypes = append([]int(nil), r.PromotionTypes...)
	c.States = make(map[string]func() State, len(r.States))
	for k, v := range r.States {
		c.States[k] = v
	}
	return &c
}

// SetPiece registers or replaces a piece type.
func (r *Rules) SetPiece(pieceType int, def PieceDef) {
	for len(r.Pieces) <= pieceType {
		r.Pieces = append(r.Pieces, PieceDef{})
	}
	r.Pieces[pieceType] = def
}

// AddState registers a fragment state factory under key.
func (r *Rules) AddState(key string, factory func() State) {
	if r.States == nil {
		r.States = make(map[string]func() State)
	}
	r.States[key] = factory
}

// Validate checks that r describes a playable board.
func (r *Rules) Validate() error {
	switch {
	case r.Variant == "":
		return fmt.Errorf("rules without a variant name: %w", errors.ErrInvalidConfig)
	case r.Width < 1 || r.Height < 1 || r.Width > 26:
		return fmt.Errorf("%s: invalid board size %dx%d: %w", r.Variant, r.Width, r.Height, errors.ErrInvalidConfig)
	case (r.Width+2)*(r.Height+4) >= 1<<10:
		return fmt.Errorf("%s: board too large for move encoding: %w", r.Variant, errors.ErrInvalidConfig)
	case len(r.Pieces) < 2:
		return fmt.Errorf("%s: empty piece table: %w", r.Variant, errors.ErrInvalidConfig)
	case r.StartFEN == nil:
		return fmt.Errorf("%s: no starting position: %w", r.Variant, errors.ErrInvalidConfig)
	}
	for i, p := range r.Pieces[1:] {
		if p.Symbol == "" && p.Name != "" {
			return fmt.Errorf("%s: piece type %d has no symbol: %w", r.Variant, i+1, errors.ErrInvalidConfig)
		}
	}
	return nil
}
