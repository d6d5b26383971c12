package variants_test

import (
	"testing"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/testutil"
)

func TestVariantResults(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		fen     string
		moves   []string
		want    chess.Result
	}{
		{
			name:    "fool's mate",
			variant: "standard",
			moves:   []string{"f3", "e5", "g4", "Qh4#"},
			want:    chess.NewWin(chess.Black, "Black mates"),
		},
		{
			name:    "king reaches the center",
			variant: "kingofthehill",
			fen:     "4k3/8/8/8/8/4K3/8/8 w - - 0 1",
			moves:   []string{"Ke4"},
			want:    chess.NewWin(chess.White, "White wins with king in the center"),
		},
		{
			name:    "third check",
			variant: "3check",
			fen:     "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/8/PPPP1PPP/RNBQK1NR w KQkq - 1+3 2 3",
			moves:   []string{"Bxf7+"},
			want:    chess.NewWin(chess.White, "White checks 3 times"),
		},
		{
			name:    "horde without pieces",
			variant: "horde",
			fen:     "4k3/8/8/8/8/8/8/8 w - - 0 1",
			want:    chess.NewWin(chess.Black, "Black wins"),
		},
		{
			name:    "missing queen",
			variant: "extinction",
			fen:     "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			want:    chess.NewWin(chess.White, "Missing queen: White wins"),
		},
		{
			name:    "kinglet pawns gone",
			variant: "kinglet",
			fen:     "4k3/8/8/8/8/8/4P3/4K3 b - - 0 1",
			want:    chess.NewWin(chess.White, "Missing pawn: White wins"),
		},
		{
			name:    "race won",
			variant: "racingkings",
			fen:     "7K/8/8/8/8/8/k7/8 b - - 0 1",
			want:    chess.NewWin(chess.White, "White wins the race"),
		},
		{
			name:    "black may still draw the race",
			variant: "racingkings",
			fen:     "7K/k7/8/8/8/8/8/8 b - - 0 1",
			want:    chess.NoGameResult,
		},
		{
			name:    "drawn race",
			variant: "racingkings",
			fen:     "7K/k7/8/8/8/8/8/8 b - - 0 1",
			moves:   []string{"Ka8"},
			want:    chess.NewDraw("Drawn race"),
		},
		{
			name:    "king explodes",
			variant: "atomic",
			fen:     "4k3/3n4/8/8/8/3Q4/3n4/4K3 w - - 0 1",
			moves:   []string{"Qxd7"},
			want:    chess.NewWin(chess.White, "Black's king exploded"),
		},
		{
			name:    "antichess side without moves wins",
			variant: "antichess",
			fen:     "8/8/8/8/8/8/8/R7 b - - 0 1",
			want:    chess.NewWin(chess.Black, "Black wins"),
		},
		{
			name:    "suicide stalemate with fewer pieces",
			variant: "suicide",
			fen:     "8/8/8/8/8/p7/P7/8 w - - 0 1",
			want:    chess.NewDraw("Draw"),
		},
		{
			name:    "suicide stalemate counts pieces",
			variant: "suicide",
			fen:     "8/8/8/8/p7/P7/8/7r w - - 0 1",
			want:    chess.NewWin(chess.White, "White wins"),
		},
		{
			name:    "codrus king captured",
			variant: "codrus",
			fen:     "8/8/8/8/8/8/8/4K2R b - - 0 1",
			want:    chess.NewWin(chess.Black, "Black wins"),
		},
		{
			name:    "losers mated side wins",
			variant: "losers",
			fen:     "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1",
			want:    chess.NewWin(chess.Black, "Black gets mated"),
		},
		{
			name:    "losers bare king wins",
			variant: "losers",
			fen:     "6k1/8/8/8/8/8/8/R5K1 b - - 0 1",
			want:    chess.NewWin(chess.Black, "Black lost all pieces"),
		},
		{
			name:    "shatranj bare king",
			variant: "shatranj",
			fen:     "4k3/8/8/8/8/8/8/R3K3 b - - 0 1",
			want:    chess.NewWin(chess.White, "Bare king"),
		},
		{
			name:    "shatranj king bares back",
			variant: "shatranj",
			fen:     "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1",
			want:    chess.NoGameResult,
		},
		{
			name:    "shatranj stalemate wins",
			variant: "shatranj",
			fen:     "k7/2K5/8/2B5/8/8/8/8 b - - 0 1",
			want:    chess.NewWin(chess.White, "White wins by stalemate"),
		},
		{
			name:    "makruk stalemate draws",
			variant: "makruk",
			fen:     "k7/2K5/1S6/8/8/8/8/8 b - 0 0 1",
			want:    chess.NewDraw("Draw by stalemate"),
		},
		{
			name:    "makruk insufficient material",
			variant: "makruk",
			fen:     "4k3/8/8/8/8/8/8/3NK3 w - 0 0 1",
			want:    chess.NewDraw("Draw by insufficient mating material"),
		},
		{
			name:    "kar ouk check wins",
			variant: "karouk",
			fen:     "4k3/8/8/8/8/8/8/R3K3 w - 0 0 1",
			moves:   []string{"Ra8+"},
			want:    chess.NewWin(chess.White, "White wins by giving check"),
		},
		{
			name:    "three kings capture",
			variant: "threekings",
			fen:     "kk6/8/8/8/8/8/1R6/KK6 w - - 0 1",
			moves:   []string{"Rxb8"},
			want:    chess.NewWin(chess.White, "White wins"),
		},
		{
			name:    "minixiangqi stalemate loses",
			variant: "minixiangqi",
			fen:     "3k3/R6/7/7/7/2R4/4K2 b - - 0 1",
			want:    chess.NewWin(chess.White, "White wins by stalemate"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard(t, tt.variant, tt.fen)
			testutil.PlayMoves(t, b, tt.moves...)
			testutil.AssertEqual(t, b.Result(), tt.want)
		})
	}
}
