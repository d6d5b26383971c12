package variants_test

import (
	stderrors "errors"
	"sort"
	"strings"
	"testing"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/errors"
	"github.com/lgbarn/variantboard-go/internal/testutil"
	"github.com/lgbarn/variantboard-go/internal/variants"
)

// sortedMoves returns the legal moves of b in LAN, sorted.
func sortedMoves(b *engine.Board) []string {
	moves := testutil.LegalMoveStrings(b)
	sort.Strings(moves)
	return moves
}

// movesFrom returns the sorted legal moves whose LAN starts with prefix.
func movesFrom(b *engine.Board, prefix string) []string {
	var out []string
	for _, m := range sortedMoves(b) {
		if strings.HasPrefix(m, prefix) {
			out = append(out, m)
		}
	}
	return out
}

func TestForcedCapture(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		fen     string
		want    []string
	}{
		{
			name:    "antichess bishop must capture",
			variant: "antichess",
			fen:     "rnbqkbnr/p1pppppp/8/1p6/8/4P3/PPPP1PPP/RNBQKBNR w - - 0 2",
			want:    []string{"f1b5"},
		},
		{
			name:    "antichess king captures too",
			variant: "antichess",
			fen:     "8/8/8/8/8/8/3p4/4K3 w - - 0 1",
			want:    []string{"e1d2"},
		},
		{
			name:    "losers capture out of several",
			variant: "losers",
			fen:     "4k3/8/8/3p1p2/4P3/8/8/4K3 w - - 0 1",
			want:    []string{"e4d5", "e4f5"},
		},
		{
			name:    "losers quiet moves without captures",
			variant: "losers",
			fen:     "4k3/8/8/8/8/8/8/R3K3 w - - 0 1",
			want: []string{
				"a1a2", "a1a3", "a1a4", "a1a5", "a1a6", "a1a7", "a1a8",
				"a1b1", "a1c1", "a1d1",
				"e1d1", "e1d2", "e1e2", "e1f1", "e1f2",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard(t, tt.variant, tt.fen)
			testutil.AssertEqual(t, sortedMoves(b), tt.want)
		})
	}
}

func TestAntichessPromotesToKing(t *testing.T) {
	b := newBoard(t, "antichess", "8/P7/8/8/8/8/8/7k w - - 0 1")
	testutil.AssertEqual(t, sortedMoves(b), []string{"a7a8b", "a7a8k", "a7a8n", "a7a8q", "a7a8r"})

	testutil.PlayMoves(t, b, "a8=K")
	testutil.AssertEqual(t, b.FEN(engine.XFen), "K7/8/8/8/8/8/8/7k b - - 0 1")
}

func TestAtomicCaptureNextToKing(t *testing.T) {
	b := newBoard(t, "atomic", "4k3/3n4/8/8/8/3Q4/3n4/4K3 w - - 0 1")

	ownBlast := b.MoveFromLAN("d3d2")
	testutil.AssertFalse(t, b.IsLegalMove(ownBlast), "blowing up the own king")

	enemyBlast := b.MoveFromLAN("d3d7")
	testutil.AssertTrue(t, b.IsLegalMove(enemyBlast), "blowing up the enemy king")

	b.MakeMove(enemyBlast, nil)
	testutil.AssertEqual(t, b.FEN(engine.XFen), "8/8/8/8/8/8/3n4/4K3 b - - 0 1")
	b.UndoMove()
	testutil.AssertEqual(t, b.FEN(engine.XFen), "4k3/3n4/8/8/8/3Q4/3n4/4K3 w - - 0 1")
}

func TestAtomicKingCannotCapture(t *testing.T) {
	b := newBoard(t, "atomic", "4k3/8/8/8/8/8/4p3/4K3 w - - 0 1")
	testutil.AssertFalse(t, b.IsLegalMove(b.MoveFromLAN("e1e2")))
}

func TestAtomicExplosionSparesPawns(t *testing.T) {
	b := newBoard(t, "atomic", "4k3/8/3p4/3nr3/3P4/8/8/4K3 w - - 0 1")
	testutil.PlayMoves(t, b, "dxe5")
	// The capturing pawn, the rook and the knight vanish; the d6 pawn stays
	testutil.AssertEqual(t, b.FEN(engine.XFen), "4k3/8/3p4/8/8/8/8/4K3 b - - 0 1")

	b.UndoMove()
	testutil.AssertEqual(t, b.FEN(engine.XFen), "4k3/8/3p4/3nr3/3P4/8/8/4K3 w - - 0 1")
}

func TestAtomicExplosionRemovesCastlingRights(t *testing.T) {
	b := newBoard(t, "atomic", "r3k2r/1p6/8/8/8/5B2/8/R3K2R w KQkq - 0 1")
	testutil.PlayMoves(t, b, "Bxb7")
	testutil.AssertEqual(t, b.FEN(engine.XFen), "4k2r/8/8/8/8/8/8/R3K2R b KQk - 0 1")
}

func TestCrazyhouseReserve(t *testing.T) {
	b := newBoard(t, "crazyhouse", "")
	testutil.PlayMoves(t, b, "e4", "d5", "exd5")
	testutil.AssertEqual(t, b.FEN(engine.XFen), "rnbqkbnr/ppp1pppp/8/3P4/8/8/PPPP1PPP/RNBQKBNR[P] b KQkq - 0 2")
	testutil.AssertEqual(t, b.ReserveCount(chess.NewPiece(chess.White, engine.Pawn)), 1)

	testutil.PlayMoves(t, b, "Qxd5", "P@e4")
	testutil.AssertEqual(t, b.FEN(engine.XFen), "rnb1kbnr/ppp1pppp/8/3q4/4P3/8/PPPP1PPP/RNBQKBNR[p] b KQkq - 0 3")

	b.UndoMove()
	testutil.AssertEqual(t, b.FEN(engine.XFen), "rnb1kbnr/ppp1pppp/8/3q4/8/8/PPPP1PPP/RNBQKBNR[Pp] w KQkq - 0 3")
}

func TestCrazyhousePromotedPieceReturnsAsPawn(t *testing.T) {
	b := newBoard(t, "crazyhouse", "4k3/8/8/8/8/8/4q~3/4K3[-] w - - 0 1")
	testutil.AssertEqual(t, b.SANMoveString(b.MoveFromLAN("e1e2")), "Kxe2")

	testutil.PlayMoves(t, b, "Kxe2")
	testutil.AssertEqual(t, b.FEN(engine.XFen), "4k3/8/8/8/8/8/4K3/8[P] b - - 0 1")
	testutil.AssertEqual(t, b.ReserveCount(chess.NewPiece(chess.White, engine.Pawn)), 1)
	testutil.AssertEqual(t, b.ReserveCount(chess.NewPiece(chess.White, engine.Queen)), 0)
}

func TestCrazyhousePromotion(t *testing.T) {
	b := newBoard(t, "crazyhouse", "4k3/P7/8/8/8/8/8/4K3[-] w - - 0 1")
	testutil.AssertEqual(t, movesFrom(b, "a7"), []string{"a7a8b", "a7a8n", "a7a8q", "a7a8r"})

	m, err := b.MoveFromString("a7a8q")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, m.Promotion(), variants.PromotedQueen)
	testutil.AssertEqual(t, b.SANMoveString(m), "a8=Q+")

	b.MakeMove(m, nil)
	testutil.AssertEqual(t, b.FEN(engine.XFen), "Q~3k3/8/8/8/8/8/8/4K3[-] b - - 0 1")
}

func TestPawnDropRanks(t *testing.T) {
	tests := []struct {
		variant string
		fen     string
		want    int
	}{
		// Six ranks of eight squares and five king moves
		{"crazyhouse", "4k3/8/8/8/8/8/8/4K3[P] w - - 0 1", 53},
		{"loop", "4k3/8/8/8/8/8/8/4K3[P] w - - 0 1", 53},
		// The first rank is open too, minus the king's square
		{"chessgi", "4k3/8/8/8/8/8/8/4K3[P] w - - 0 1", 60},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			b := newBoard(t, tt.variant, tt.fen)
			moves := sortedMoves(b)
			testutil.AssertEqual(t, len(moves), tt.want)
			for _, m := range moves {
				testutil.AssertFalse(t, strings.HasSuffix(m, "8") && strings.HasPrefix(m, "P@"), "pawn drop %s", m)
			}
		})
	}
}

func TestDropsCanBlockCheck(t *testing.T) {
	b := newBoard(t, "crazyhouse", "4k3/8/8/8/8/8/8/r3K3[N] w - - 0 1")
	testutil.AssertEqual(t, movesFrom(b, "N@"), []string{"N@b1", "N@c1", "N@d1"})
}

func TestThreeCheckCounters(t *testing.T) {
	b := newBoard(t, "3check", "")
	testutil.PlayMoves(t, b, "e4", "e5", "Bc4", "Nc6", "Bxf7+")
	testutil.AssertEqual(t, b.FEN(engine.XFen), "r1bqkbnr/pppp1Bpp/2n5/4p3/4P3/8/PPPP1PPP/RNBQK1NR b KQkq - 2+3 0 3")
	testutil.AssertTrue(t, b.Result().IsNone())

	b.UndoMove()
	testutil.AssertEqual(t, b.FEN(engine.XFen), "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/8/PPPP1PPP/RNBQK1NR w KQkq - 3+3 2 3")
}

func TestCheckCounterFormats(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want string
	}{
		{
			name: "remaining checks",
			fen:  "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 2+1 0 1",
			want: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 2+1 0 1",
		},
		{
			name: "checks given",
			fen:  "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - +1+2 0 1",
			want: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 2+1 0 1",
		},
		{
			name: "no counters",
			fen:  "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			want: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 3+3 0 1",
		},
		{
			name: "no counters with a check on the board",
			fen:  "rnbqkbnr/ppppp1pp/5p2/7Q/4P3/8/PPPP1PPP/RNB1KBNR b KQkq - 1 2",
			want: "rnbqkbnr/ppppp1pp/5p2/7Q/4P3/8/PPPP1PPP/RNB1KBNR b KQkq - 2+3 1 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard(t, "3check", tt.fen)
			testutil.AssertEqual(t, b.FEN(engine.XFen), tt.want)
		})
	}
}

func TestMakrukCounting(t *testing.T) {
	t.Run("honour count starts", func(t *testing.T) {
		b := newBoard(t, "makruk", "8/8/8/3k4/8/8/n7/R3K3 w - 0 0 1")
		testutil.PlayMoves(t, b, "Rxa2")
		testutil.AssertEqual(t, b.FEN(engine.XFen), "8/8/8/3k4/8/8/R7/4K3 b - 32 6 1")
	})

	t.Run("count reaches the limit", func(t *testing.T) {
		b := newBoard(t, "makruk", "8/8/8/3k4/8/8/8/R3K3 w - 16 14 1")
		testutil.PlayMoves(t, b, "Ra2")
		testutil.AssertTrue(t, b.Result().IsNone())
		testutil.PlayMoves(t, b, "Kd4")
		testutil.AssertEqual(t, b.Result(), chess.NewDraw("Draw by counting rules."))

		b.UndoMove()
		testutil.AssertTrue(t, b.Result().IsNone())
	})

	t.Run("western counters select the fifty moves rule", func(t *testing.T) {
		b := newBoard(t, "makruk", "8/8/8/3k4/8/8/8/R3K3 w - - 99 60")
		testutil.PlayMoves(t, b, "Ra2")
		testutil.AssertEqual(t, b.Result(), chess.NewDraw("Draw by fifty move rule"))
		testutil.AssertEqual(t, b.FEN(engine.XFen), "8/8/8/3k4/8/8/R7/4K3 b - - 100 60")
	})

	t.Run("malformed counting fields", func(t *testing.T) {
		rules, err := variants.Default().Rules("makruk")
		testutil.AssertNoError(t, err)
		err = engine.New(rules).SetFEN("8/8/8/3k4/8/8/8/R3K3 w - 16 x 1")
		testutil.AssertTrue(t, stderrors.Is(err, errors.ErrInvalidFEN), "got %v", err)
	})
}

func TestMakrukPromotion(t *testing.T) {
	b := newBoard(t, "makruk", "4k3/8/8/P7/8/8/8/4K3 w - 0 0 1")
	testutil.AssertEqual(t, movesFrom(b, "a5"), []string{"a5a6m"})
	testutil.PlayMoves(t, b, "a6=M")
	testutil.AssertEqual(t, b.FEN(engine.XFen), "4k3/8/M7/8/8/8/8/4K3 b - 128 6 1")
}

func TestOukInitialLeaps(t *testing.T) {
	b := newBoard(t, "cambodian", "")
	testutil.AssertEqual(t, movesFrom(b, "d1"), []string{"d1b2", "d1c2", "d1d2", "d1e2", "d1f2"})
	testutil.AssertEqual(t, movesFrom(b, "e1"), []string{"e1d2", "e1f2"})

	// The maiden leaps once the pawn in front of her has moved
	testutil.PlayMoves(t, b, "e4", "e5")
	testutil.AssertEqual(t, movesFrom(b, "e1"), []string{"e1d2", "e1e3", "e1f2"})

	testutil.PlayMoves(t, b, "e1e3")
	testutil.AssertEqual(t, b.FEN(engine.XFen), "rnsmksnr/8/pppp1ppp/4p3/4P3/PPPPMPPP/8/RNSK1SNR b Dde 0 0 2")

	b.UndoMove()
	fen := b.FEN(engine.XFen)
	testutil.AssertEqual(t, fen, "rnsmksnr/8/pppp1ppp/4p3/4P3/PPPP1PPP/8/RNSKMSNR w DEde 0 0 2")
	testutil.AssertEqual(t, newBoard(t, "cambodian", fen).FEN(engine.XFen), fen)
}

func TestOukLeapRightsNeedThePiece(t *testing.T) {
	rules, err := variants.Default().Rules("cambodian")
	testutil.AssertNoError(t, err)
	err = engine.New(rules).SetFEN("rnsmksnr/8/pppppppp/8/8/PPPPPPPP/8/RNS1KSNR w DEde 0 0 1")
	testutil.AssertTrue(t, stderrors.Is(err, errors.ErrInvalidFEN), "got %v", err)
}

func TestGridRegions(t *testing.T) {
	tests := []struct {
		variant string
		want    []string
	}{
		{
			variant: "grid",
			want: []string{
				"a1a3", "a1a4", "a1a5", "a1a6", "a1a7", "a1a8",
				"a1c1", "a1d1",
				"e1d1", "e1d2",
			},
		},
		{
			variant: "displacedgrid",
			want: []string{
				"a1a2", "a1a3", "a1a4", "a1a5", "a1a6", "a1a7", "a1a8",
				"a1b1", "a1c1", "a1d1",
				"e1d2", "e1e2", "e1f1", "e1f2",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			b := newBoard(t, tt.variant, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
			testutil.AssertEqual(t, sortedMoves(b), tt.want)
		})
	}
}

func TestGridCheckMustCrossRegions(t *testing.T) {
	// The queen next to the king shares its region and gives no check
	b := newBoard(t, "grid", "8/8/8/8/8/8/3q4/2K4k w - - 0 1")
	testutil.AssertFalse(t, b.InCheck(chess.White))

	b = newBoard(t, "standard", "8/8/8/8/8/8/3q4/2K4k w - - 0 1")
	testutil.AssertTrue(t, b.InCheck(chess.White))
}

func TestGrandPromotions(t *testing.T) {
	b := newBoard(t, "grand", "r8r/1nbqkcabn1/P9/10/10/10/10/10/1NB1KCA1N1/R8R w - - 0 1")
	testutil.AssertEqual(t, movesFrom(b, "a8"), []string{"a8a9", "a8a9b", "a8a9q", "a8b9", "a8b9b", "a8b9q"})
}

func TestGrandDoubleStep(t *testing.T) {
	b := newBoard(t, "grand", "")
	testutil.AssertEqual(t, movesFrom(b, "e3"), []string{"e3e4", "e3e5"})
	testutil.PlayMoves(t, b, "e5")
	testutil.AssertEqual(t, b.FEN(engine.XFen), "r8r/1nbqkcabn1/pppppppppp/10/10/4P5/10/PPPP1PPPPP/1NBQKCABN1/R8R b - - 0 1")
}

func TestAndernachSwitchesSides(t *testing.T) {
	b := newBoard(t, "andernach", "")
	testutil.PlayMoves(t, b, "e4", "d5")

	m, err := b.MoveFromString("exd5")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, b.SANMoveString(m), "exd5(=bP)")

	b.MakeMove(m, nil)
	testutil.AssertEqual(t, b.FEN(engine.XFen), "rnbqkbnr/ppp1pppp/8/3p4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2")

	b.UndoMove()
	testutil.AssertEqual(t, b.FEN(engine.XFen), "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")

	_, err = b.MoveFromString("exd5(=bP)")
	testutil.AssertNoError(t, err)
}

func TestAntiAndernachQuietMovesSwitch(t *testing.T) {
	b := newBoard(t, "antiandernach", "")
	testutil.PlayMoves(t, b, "Nc3")
	testutil.AssertEqual(t, b.FEN(engine.XFen), "rnbqkbnr/pppppppp/8/8/8/2n5/PPPPPPPP/R1BQKBNR b KQkq - 1 1")
}

func TestExtinctionRejectsDoubleExtinction(t *testing.T) {
	rules, err := variants.Default().Rules("extinction")
	testutil.AssertNoError(t, err)
	err = engine.New(rules).SetFEN("rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNB1KBNR w KQkq - 0 1")
	testutil.AssertTrue(t, stderrors.Is(err, errors.ErrInvalidFEN), "got %v", err)
}

func TestKingletPromotesToKing(t *testing.T) {
	b := newBoard(t, "kinglet", "4k3/P7/8/8/8/8/7p/4K3 w - - 0 1")
	testutil.AssertEqual(t, movesFrom(b, "a7"), []string{"a7a8k"})
}

func TestBerolinaPawns(t *testing.T) {
	b := newBoard(t, "berolina", "4k3/8/8/8/8/8/3P4/4K3 w - - 0 1")
	testutil.AssertEqual(t, movesFrom(b, "d2"), []string{"d2b4", "d2c3", "d2e3", "d2f4"})
}

func TestKnightRelay(t *testing.T) {
	b := newBoard(t, "knightrelay", "4k3/8/8/8/8/8/8/1N2K3 w - - 0 1")
	// Kings are never relayed
	testutil.AssertEqual(t, movesFrom(b, "e1"), []string{"e1d1", "e1d2", "e1e2", "e1f1", "e1f2"})

	b = newBoard(t, "knightrelay", "4k3/8/8/8/8/1N6/8/2R1K3 w - - 0 1")
	testutil.AssertEqual(t, movesFrom(b, "c1"), []string{
		"c1a1", "c1a2", "c1b1",
		"c1c2", "c1c3", "c1c4", "c1c5", "c1c6", "c1c7", "c1c8",
		"c1d1", "c1d3", "c1e2",
	})
}

func TestRacingKingsForbidsChecks(t *testing.T) {
	b := newBoard(t, "racingkings", "")
	for _, m := range b.LegalMoves() {
		b.MakeMove(m, nil)
		testutil.AssertFalse(t, b.InCheck(b.SideToMove()), "check after %s", b.FEN(engine.XFen))
		b.UndoMove()
	}
}

func TestShatranjPieces(t *testing.T) {
	b := newBoard(t, "shatranj", "4k3/8/8/8/3Q4/8/8/2B1K3 w - - 0 1")
	testutil.AssertEqual(t, movesFrom(b, "d4"), []string{"d4c3", "d4c5", "d4e3", "d4e5"})
	testutil.AssertEqual(t, movesFrom(b, "c1"), []string{"c1a3", "c1e3"})
}

func TestSideSwitchedDoubleStepLeavesNoEnpassant(t *testing.T) {
	const fen = "rnbqkbnr/pp3ppp/3P4/4P3/2p2p2/7n/PP1PP1PP/RNBQKB1R w KQkq - 0 4"
	for _, variant := range []string{"superandernach", "antiandernach"} {
		t.Run(variant, func(t *testing.T) {
			b := newBoard(t, variant, fen)
			m := b.MoveFromLAN("e2e4")
			testutil.AssertEqual(t, b.SANMoveString(m), "e4(=bP)")

			b.MakeMove(m, nil)
			testutil.AssertEqual(t, b.FEN(engine.XFen), "rnbqkbnr/pp3ppp/3P4/4P3/2p1pp2/7n/PP1P2PP/RNBQKB1R b KQkq - 0 4")
			testutil.AssertEqual(t, b.EnpassantSquare(), 0)
			testutil.AssertEqual(t, movesFrom(b, "f4"), []string{"f4f3"})
			testutil.AssertEqual(t, b.Key(), newBoard(t, variant, b.FEN(engine.XFen)).Key())

			b.UndoMove()
			testutil.AssertEqual(t, b.FEN(engine.XFen), fen)
			testutil.AssertEqual(t, b.Key(), newBoard(t, variant, fen).Key())
		})
	}
}

func TestAndernachEnpassantUndo(t *testing.T) {
	const fen = "4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1"
	b := newBoard(t, "andernach", fen)
	m := b.MoveFromLAN("d4e3")
	testutil.AssertEqual(t, b.SANMoveString(m), "dxe3(=wP)")

	b.MakeMove(m, nil)
	testutil.AssertEqual(t, b.FEN(engine.XFen), "4k3/8/8/8/8/4P3/8/4K3 w - - 0 2")
	b.UndoMove()
	testutil.AssertEqual(t, b.FEN(engine.XFen), fen)
}

func TestPawnDropFromSAN(t *testing.T) {
	b := newBoard(t, "crazyhouse", "")
	testutil.PlayMoves(t, b, "e4", "d5", "exd5", "Qxd5")

	m := b.MoveFromSAN("P@e4")
	testutil.AssertFalse(t, m.IsNull())
	testutil.AssertTrue(t, m.IsDrop())
	testutil.AssertEqual(t, b.SANMoveString(m), "P@e4")
	testutil.AssertTrue(t, b.MoveFromSAN("P@e8").IsNull(), "pawn drop on the last rank")
	testutil.AssertTrue(t, b.MoveFromSAN("N@e4").IsNull(), "no knight in hand")
}

func TestBerolinaSANNamesTheSource(t *testing.T) {
	for _, variant := range []string{"berolina", "gridolina"} {
		t.Run(variant, func(t *testing.T) {
			b := newBoard(t, variant, "")
			m := b.MoveFromLAN("h2f4")
			testutil.AssertEqual(t, b.SANMoveString(m), "h2f4")
			testutil.AssertEqual(t, b.MoveFromSAN("h2f4"), m)

			// Two pawns reach f3
			testutil.AssertEqual(t, b.MoveFromSAN("e2f3"), b.MoveFromLAN("e2f3"))
			testutil.AssertEqual(t, b.MoveFromSAN("g2f3"), b.MoveFromLAN("g2f3"))
			testutil.AssertTrue(t, b.MoveFromSAN("f3").IsNull())
			testutil.AssertTrue(t, b.MoveFromSAN("h2xf4").IsNull(), "capture mark on a quiet move")
		})
	}

	b := newBoard(t, "berolina", "4k3/8/8/8/3p4/3P4/8/4K3 w - - 0 1")
	m := b.MoveFromLAN("d3d4")
	testutil.AssertEqual(t, b.SANMoveString(m), "d3xd4")
	testutil.AssertEqual(t, b.MoveFromSAN("d3xd4"), m)
}

func TestKingCaptureRemovesCastlingRights(t *testing.T) {
	tests := []struct {
		variant string
		want    string
		over    bool
	}{
		{"giveaway", "r3Q2r/8/8/8/8/8/8/R3K2R b KQ - 0 1", false},
		{"codrus", "r3Q2r/8/8/8/8/8/8/R3K2R b KQ - 0 1", true},
		{"atomic", "r6r/8/8/8/8/8/8/R3K2R b KQ - 0 1", true},
	}
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			fen := "r3k2r/8/8/8/8/8/4Q3/R3K2R w KQkq - 0 1"
			capture := "e2e8"
			if tt.variant == "atomic" {
				fen = "r3k2r/3p4/8/8/8/8/8/R2QK2R w KQkq - 0 1"
				capture = "d1d7"
			}
			b := newBoard(t, tt.variant, fen)
			m := b.MoveFromLAN(capture)
			testutil.AssertTrue(t, b.IsLegalMove(m))

			b.MakeMove(m, nil)
			testutil.AssertEqual(t, b.FEN(engine.XFen), tt.want)
			testutil.AssertEqual(t, !b.Result().IsNone(), tt.over)

			fresh := newBoard(t, tt.variant, tt.want)
			testutil.AssertEqual(t, fresh.Key(), b.Key())
			testutil.AssertEqual(t, fresh.Result(), b.Result())

			b.UndoMove()
			testutil.AssertEqual(t, b.FEN(engine.XFen), fen)
		})
	}
}

func TestKnightRelayLeapSAN(t *testing.T) {
	b := newBoard(t, "knightrelay", "4k3/8/8/8/8/8/3PP3/1N2K3 w - - 0 1")
	push, leap := b.MoveFromLAN("e2e4"), b.MoveFromLAN("d2e4")
	testutil.AssertTrue(t, b.IsLegalMove(leap))

	testutil.AssertEqual(t, b.SANMoveString(push), "e4")
	testutil.AssertEqual(t, b.SANMoveString(leap), "d2e4")
	testutil.AssertEqual(t, b.MoveFromSAN("e4"), push)
	testutil.AssertEqual(t, b.MoveFromSAN("d2e4"), leap)
	testutil.AssertEqual(t, b.MoveFromSAN("d2f3"), b.MoveFromLAN("d2f3"))
}
