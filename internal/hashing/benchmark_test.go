package hashing

import (
	"testing"

	"github.com/lgbarn/variantboard-go/internal/engine"
)

var benchFENPositions = map[string]string{
	"Initial": "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"Midgame": "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	"Complex": "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
}

func BenchmarkPerftCached(b *testing.B) {
	for name, fen := range benchFENPositions {
		b.Run(name, func(b *testing.B) {
			board := engine.New(engine.Western("standard"))
			if err := board.SetFEN(fen); err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				board.PerftCached(3, NewPerftTable(0))
			}
		})
	}
}

func BenchmarkThreadSafeLookup(b *testing.B) {
	table := NewThreadSafePerftTable(0)
	for i := 0; i < 1024; i++ {
		table.Store(uint64(i), 3, uint64(i))
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		var i uint64
		for pb.Next() {
			table.Lookup(i%1024, 3)
			i++
		}
	})
}
