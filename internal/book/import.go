package book

import (
	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/errors"
	"github.com/lgbarn/variantboard-go/internal/movetext"
)

// Import adds up to maxPlies moves of g, played on b, to the book.
// The loser's moves are skipped. The winner's moves weigh 2 and moves
// of drawn or unfinished games weigh 1. b is reset to the game's FEN
// tag or to the variant's starting position first.
func (bk *Book) Import(b *engine.Board, g *movetext.Game, maxPlies int) error {
	fen, ok := g.Tags["FEN"]
	if !ok {
		fen = b.DefaultFEN()
	}
	if err := b.SetFEN(fen); err != nil {
		return err
	}

	winner := chess.NoSide
	switch g.Result {
	case "1-0":
		winner = chess.White
	case "0-1":
		winner = chess.Black
	}
	weight := uint16(1)
	if winner != chess.NoSide {
		weight = 2
	}

	for i, text := range g.Moves {
		if i >= maxPlies {
			break
		}
		m, err := b.MoveFromString(text)
		if err != nil {
			return &errors.PositionError{
				Err:      err,
				Variant:  b.Variant(),
				FEN:      b.FEN(engine.XFen),
				Ply:      i + 1,
				MoveText: text,
			}
		}
		if winner == chess.NoSide || winner == b.SideToMove() {
			bk.Add(b.Key(), b.GenericMove(m), weight)
		}
		b.MakeMove(m, nil)
	}
	return nil
}
