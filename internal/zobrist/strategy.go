// Package zobrist provides the hashing strategies boards use to keep
// an incrementally updated 64-bit position key.
//
// All square arguments are indices into a board's padded square array.
package zobrist

import (
	"sync"

	"github.com/lgbarn/variantboard-go/internal/chess"
)

// Strategy produces the key contributions of a board topology.
// A Strategy is initialized once and is read-only afterwards, so one
// instance may be shared by any number of boards.
type Strategy interface {
	// Initialize sizes the strategy for a board. Calls after the
	// first are no-ops.
	Initialize(squareCount, pieceTypeCount int)
	// Side is XORed into the key whenever White is to move.
	Side() uint64
	// Piece is the key of piece standing on square.
	Piece(piece chess.Piece, square int) uint64
	// ReservePiece is the key of the slot-th copy of piece in hand.
	ReservePiece(piece chess.Piece, slot int) uint64
	// Enpassant is the key of an en passant square.
	Enpassant(square int) uint64
	// Castling is the key of side's castling right with the rook on square.
	Castling(side chess.Side, square int) uint64
}

// Topology identifies the boards that can share one strategy.
type Topology struct {
	Width          int
	Height         int
	PieceTypeCount int
	// Random is set for variants with random starting positions,
	// whose castling rooks may stand on any file.
	Random bool
}

var (
	sharedMu         sync.Mutex
	sharedStrategies = make(map[Topology]Strategy)
)

// For returns the shared strategy for a topology. Standard sized boards
// with the six orthodox piece types and fixed rook files get Polyglot
// keys; everything else gets generated keys.
func For(topo Topology) Strategy {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if s, ok := sharedStrategies[topo]; ok {
		return s
	}
	var s Strategy
	if PolyglotCompatible(topo) {
		s = NewPolyglot()
	} else {
		s = NewWestern()
	}
	s.Initialize((topo.Width+2)*(topo.Height+4), topo.PieceTypeCount)
	sharedStrategies[topo] = s
	return s
}

// PolyglotCompatible reports whether boards of topo can be hashed with
// the Polyglot book keys.
func PolyglotCompatible(topo Topology) bool {
	return topo.Width == 8 && topo.Height == 8 &&
		topo.PieceTypeCount == polyglotPieceTypes && !topo.Random
}
