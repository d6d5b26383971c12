package zobrist

import (
	"sync"
	"testing"

	"github.com/lgbarn/variantboard-go/internal/chess"
)

func TestParkMillerSequence(t *testing.T) {
	r := parkMiller{seed: 1}
	want := []int32{16807, 282475249, 1622650073, 984943658}
	for i, w := range want {
		if got := r.next(); got != w {
			t.Fatalf("value %d = %d; want %d", i, got, w)
		}
	}
}

func TestSharedKeysDeterministic(t *testing.T) {
	keys := sharedKeys()
	if keys[0] != 0x486b1d78800041a7 {
		t.Errorf("keys[0] = %#x; want 0x486b1d78800041a7", keys[0])
	}

	seen := make(map[uint64]bool, keyTableSize)
	for i, k := range keys {
		if seen[k] {
			t.Fatalf("duplicate key at index %d", i)
		}
		seen[k] = true
	}
}

func TestWesternLayout(t *testing.T) {
	const squares, types = 120, 7
	w := NewWestern()
	w.Initialize(squares, types)
	w.Initialize(1, 2) // ignored

	keys := sharedKeys()
	wp := chess.NewPiece(chess.White, 1)
	bk := chess.NewPiece(chess.Black, 6)

	tests := []struct {
		name string
		got  uint64
		want uint64
	}{
		{"side", w.Side(), keys[0]},
		{"en passant", w.Enpassant(45), keys[1+45]},
		{"white castling", w.Castling(chess.White, 91), keys[1+squares+91]},
		{"black castling", w.Castling(chess.Black, 21), keys[1+squares+squares+21]},
		{"white pawn", w.Piece(wp, 85), keys[1+3*squares+types*squares*0+1*squares+85]},
		{"black king", w.Piece(bk, 25), keys[1+3*squares+types*squares*1+6*squares+25]},
		{"reserve slot", w.ReservePiece(wp, 2), w.Piece(wp, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %#x; want %#x", tt.got, tt.want)
			}
		})
	}
}

func TestWesternTooLarge(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Initialize did not panic for an oversized board")
		}
	}()
	NewWestern().Initialize(1000, 20)
}

func TestPolyglotKeys(t *testing.T) {
	p := NewPolyglot()

	// a1 is index 91 and h8 index 28 on a padded 8x8 board.
	tests := []struct {
		name string
		got  uint64
		want uint64
	}{
		{"black pawn a1", p.Piece(chess.NewPiece(chess.Black, 1), 91), polyglotKeys[0]},
		{"white pawn a1", p.Piece(chess.NewPiece(chess.White, 1), 91), polyglotKeys[64]},
		{"white king h8", p.Piece(chess.NewPiece(chess.White, 6), 28), polyglotKeys[64*11+63]},
		{"white short castling", p.Castling(chess.White, 98), polyglotKeys[768]},
		{"white long castling", p.Castling(chess.White, 91), polyglotKeys[769]},
		{"black short castling", p.Castling(chess.Black, 28), polyglotKeys[770]},
		{"black long castling", p.Castling(chess.Black, 21), polyglotKeys[771]},
		{"en passant e6", p.Enpassant(45), polyglotKeys[772+4]},
		{"turn", p.Side(), polyglotKeys[780]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %#x; want %#x", tt.got, tt.want)
			}
		})
	}
}

func TestForSharesStrategies(t *testing.T) {
	standard := Topology{Width: 8, Height: 8, PieceTypeCount: 7}
	capa := Topology{Width: 10, Height: 8, PieceTypeCount: 9}

	var wg sync.WaitGroup
	got := make([]Strategy, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = For(standard)
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(got); i++ {
		if got[i] != got[0] {
			t.Fatalf("For returned different strategies for the same topology")
		}
	}
	if _, ok := got[0].(*Polyglot); !ok {
		t.Errorf("standard topology got %T; want *Polyglot", got[0])
	}
	if _, ok := For(capa).(*Western); !ok {
		t.Errorf("capablanca topology got %T; want *Western", For(capa))
	}
	if PolyglotCompatible(Topology{Width: 8, Height: 8, PieceTypeCount: 7, Random: true}) {
		t.Error("random variants must not use Polyglot keys")
	}
}
