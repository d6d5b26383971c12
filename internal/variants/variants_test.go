package variants_test

import (
	"math/rand/v2"
	"testing"

	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/testutil"
	"github.com/lgbarn/variantboard-go/internal/variants"
)

// newBoard returns a board of the named variant set to fen, or to the
// variant's starting position if fen is empty.
func newBoard(t *testing.T, variant, fen string) *engine.Board {
	t.Helper()
	rules, err := variants.Default().Rules(variant)
	if err != nil {
		t.Fatalf("Rules(%q): %v", variant, err)
	}
	return testutil.MustBoard(t, rules, fen)
}

func TestStartingPositionRoundTrip(t *testing.T) {
	for _, name := range variants.Names() {
		t.Run(name, func(t *testing.T) {
			b, err := variants.Create(name)
			testutil.AssertNoError(t, err)

			fen := b.FEN(engine.XFen)
			if !b.Rules().Random {
				testutil.AssertEqual(t, fen, b.DefaultFEN())
			}
			testutil.AssertTrue(t, b.CanMove(), "no legal move in %s", fen)
			testutil.AssertTrue(t, b.Result().IsNone(), "result in %s", fen)

			fresh := newBoard(t, name, fen)
			testutil.AssertEqual(t, fresh.FEN(engine.XFen), fen)
			testutil.AssertEqual(t, fresh.Key(), b.Key())
		})
	}
}

// playout makes plies moves, picking a different legal move at every
// ply so that each variant reaches captures and special moves. It
// returns early when the game ends.
func playout(b *engine.Board, plies int, visit func()) {
	randomPlayout(b, plies, func(ply, n int) int { return (ply*7 + 3) % n }, visit)
}

// randomPlayout is playout with the move at each ply chosen by pick.
func randomPlayout(b *engine.Board, plies int, pick func(ply, n int) int, visit func()) {
	for ply := 0; ply < plies; ply++ {
		if !b.Result().IsNone() {
			return
		}
		moves := b.LegalMoves()
		if len(moves) == 0 {
			return
		}
		b.MakeMove(moves[pick(ply, len(moves))], nil)
		visit()
	}
}

func TestMakeUndoRestoresPositionInEveryVariant(t *testing.T) {
	for _, name := range variants.Names() {
		t.Run(name, func(t *testing.T) {
			b, err := variants.Create(name)
			testutil.AssertNoError(t, err)

			check := func() {
				fen, key := b.FEN(engine.XFen), b.Key()
				for _, m := range b.LegalMoves() {
					lan := b.LANMoveString(m)
					b.MakeMove(m, nil)
					b.UndoMove()
					testutil.AssertEqual(t, b.FEN(engine.XFen), fen, "after %s", lan)
					testutil.AssertEqual(t, b.Key(), key, "after %s", lan)
				}
			}
			check()
			playout(b, 24, check)
		})
	}
}

func TestIncrementalKeyMatchesFreshKeyInEveryVariant(t *testing.T) {
	for _, name := range variants.Names() {
		t.Run(name, func(t *testing.T) {
			b, err := variants.Create(name)
			testutil.AssertNoError(t, err)

			playout(b, 24, func() {
				fen := b.FEN(engine.XFen)
				fresh := newBoard(t, name, fen)
				testutil.AssertEqual(t, fresh.FEN(engine.XFen), fen)
				testutil.AssertEqual(t, fresh.Key(), b.Key(), "in %s", fen)
			})
		})
	}
}

func TestLegalMovesHaveDistinctNotation(t *testing.T) {
	for _, name := range variants.Names() {
		t.Run(name, func(t *testing.T) {
			b, err := variants.Create(name)
			testutil.AssertNoError(t, err)

			check := func() {
				seen := make(map[string]bool)
				for _, m := range b.LegalMoves() {
					san := b.SANMoveString(m)
					testutil.AssertFalse(t, seen[san], "duplicate SAN %s in %s", san, b.FEN(engine.XFen))
					seen[san] = true
					testutil.AssertEqual(t, b.MoveFromSAN(san), m, "SAN %s in %s", san, b.FEN(engine.XFen))

					lan := b.LANMoveString(m)
					testutil.AssertEqual(t, b.MoveFromLAN(lan), m, "LAN %s in %s", lan, b.FEN(engine.XFen))
				}
			}
			check()
			playout(b, 12, check)
		})
	}
}

// TestSeededPlayouts plays several random games per variant. After
// every ply the position must survive a FEN round trip with the same
// key, and taking all moves back must restore the start.
func TestSeededPlayouts(t *testing.T) {
	seeds := []uint64{1, 7, 42, 1999}
	for _, name := range variants.Names() {
		t.Run(name, func(t *testing.T) {
			for _, seed := range seeds {
				b, err := variants.Create(name)
				testutil.AssertNoError(t, err)
				startFEN, startKey := b.FEN(engine.XFen), b.Key()
				rng := rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))

				randomPlayout(b, 60, func(_, n int) int { return rng.IntN(n) }, func() {
					fen := b.FEN(engine.XFen)
					fresh := newBoard(t, name, fen)
					testutil.AssertEqual(t, fresh.FEN(engine.XFen), fen, "seed %d", seed)
					testutil.AssertEqual(t, fresh.Key(), b.Key(), "seed %d in %s", seed, fen)
				})
				for b.PlyCount() > 0 {
					b.UndoMove()
				}
				testutil.AssertEqual(t, b.FEN(engine.XFen), startFEN, "seed %d", seed)
				testutil.AssertEqual(t, b.Key(), startKey, "seed %d", seed)
			}
		})
	}
}
