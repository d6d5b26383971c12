package engine_test

import (
	"testing"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/testutil"
)

func TestInCheck(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{"initial position", startFEN, false},
		{"rook on the file", "4k3/8/8/8/8/8/8/4K2r w - - 0 1", true},
		{"pawn", "4k3/8/8/8/8/8/3p4/4K3 w - - 0 1", true},
		{"pawn in front", "4k3/8/8/8/8/8/4p3/4K3 w - - 0 1", false},
		{"knight", "4k3/8/8/8/8/5n2/8/4K3 w - - 0 1", true},
		{"blocked bishop", "4k3/8/8/b7/8/2P5/8/4K3 w - - 0 1", false},
		{"bishop", "4k3/8/8/b7/8/8/8/4K3 w - - 0 1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard(t, tt.fen)
			testutil.AssertEqual(t, b.InCheck(chess.White), tt.want)
		})
	}
}

func TestCastlingLegality(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		legal map[string]bool
	}{
		{
			name:  "free castling",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			legal: map[string]bool{"O-O": true, "O-O-O": true},
		},
		{
			name:  "passing an attacked square",
			fen:   "r3k2r/8/8/8/8/8/5r2/R3K2R w KQkq - 0 1",
			legal: map[string]bool{"O-O": false, "O-O-O": true},
		},
		{
			name:  "in check",
			fen:   "4k3/4r3/8/8/8/8/8/R3K2R w KQ - 0 1",
			legal: map[string]bool{"O-O": false, "O-O-O": false},
		},
		{
			name:  "blocked",
			fen:   "4k3/8/8/8/8/8/8/RN2K1NR w KQ - 0 1",
			legal: map[string]bool{"O-O": false, "O-O-O": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard(t, tt.fen)
			for san, want := range tt.legal {
				_, err := b.MoveFromString(san)
				testutil.AssertEqual(t, err == nil, want, san)
			}
		})
	}
}
