package zobrist

import (
	"fmt"
	"sync"

	"github.com/lgbarn/variantboard-go/internal/chess"
)

const keyTableSize = 0x2000

var (
	keyTableOnce sync.Once
	keyTable     [keyTableSize]uint64
)

// parkMiller is the "minimal standard" generator of Park and Miller.
// It yields integers between 1 and 2147483646.
type parkMiller struct {
	seed int32
}

func (r *parkMiller) next() int32 {
	const (
		a  = 16807
		m  = 2147483647
		q  = m / a
		rm = m % a
	)
	hi := r.seed / q
	lo := r.seed % q
	test := a*lo - rm*hi
	if test > 0 {
		r.seed = test
	} else {
		r.seed = test + m
	}
	return r.seed
}

func (r *parkMiller) next64() uint64 {
	r1 := uint64(r.next())
	r2 := uint64(r.next())
	r3 := uint64(r.next())
	return r1 ^ r2<<31 ^ r3<<62
}

// sharedKeys returns the process-wide key table, generating it on
// first use.
func sharedKeys() *[keyTableSize]uint64 {
	keyTableOnce.Do(func() {
		r := parkMiller{seed: 1}
		for i := range keyTable {
			keyTable[i] = r.next64()
		}
	})
	return &keyTable
}

// Western hashes boards with keys drawn from the shared generated
// table. The table is laid out as the side key, one en passant key per
// square, two castling keys per square (one per side) and then one key
// per side, piece type and square.
type Western struct {
	mu             sync.Mutex
	keys           *[keyTableSize]uint64
	squareCount    int
	pieceTypeCount int
	castlingIndex  int
	pieceIndex     int
}

// NewWestern creates an uninitialized generated-key strategy.
func NewWestern() *Western {
	return &Western{}
}

// Initialize implements Strategy.
func (w *Western) Initialize(squareCount, pieceTypeCount int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.keys != nil {
		return
	}
	if squareCount <= 0 || pieceTypeCount <= 1 {
		panic(fmt.Sprintf("zobrist: invalid dimensions %d squares, %d piece types", squareCount, pieceTypeCount))
	}
	castlingIndex := 1 + squareCount
	pieceIndex := castlingIndex + 2*squareCount
	if pieceIndex+2*squareCount*pieceTypeCount > keyTableSize {
		panic(fmt.Sprintf("zobrist: %d squares with %d piece types exceed the key table", squareCount, pieceTypeCount))
	}

	w.squareCount = squareCount
	w.pieceTypeCount = pieceTypeCount
	w.castlingIndex = castlingIndex
	w.pieceIndex = pieceIndex
	w.keys = sharedKeys()
}

// Side implements Strategy.
func (w *Western) Side() uint64 {
	return w.keys[0]
}

// Piece implements Strategy.
func (w *Western) Piece(piece chess.Piece, square int) uint64 {
	i := w.pieceIndex + w.squareCount*w.pieceTypeCount*int(piece.Side()) +
		piece.Type()*w.squareCount + square
	return w.keys[i]
}

// ReservePiece implements Strategy. The wall squares at the start of
// the array double as reserve slots.
func (w *Western) ReservePiece(piece chess.Piece, slot int) uint64 {
	return w.Piece(piece, slot)
}

// Enpassant implements Strategy.
func (w *Western) Enpassant(square int) uint64 {
	return w.keys[1+square]
}

// Castling implements Strategy.
func (w *Western) Castling(side chess.Side, square int) uint64 {
	return w.keys[w.castlingIndex+w.squareCount*int(side)+square]
}
