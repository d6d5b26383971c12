package movetext

import (
	"io"

	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/errors"
)

// Game is the main line read from movetext.
type Game struct {
	Tags   map[string]string
	Moves  []string
	Result string
}

// Read collects the tags, main-line moves and result of the first game
// in r. Variations, comments and NAGs are skipped.
func Read(r io.Reader, logw io.Writer) *Game {
	g, _ := readGame(NewLexer(r, logw))
	return g
}

// ReadAll reads every game in r.
func ReadAll(r io.Reader, logw io.Writer) []*Game {
	lex := NewLexer(r, logw)
	var games []*Game
	for {
		g, more := readGame(lex)
		if len(g.Tags) > 0 || len(g.Moves) > 0 || g.Result != "" {
			games = append(games, g)
		}
		if !more {
			return games
		}
	}
}

// readGame reads one game from lex. It reports false when the input
// ended before a result token.
func readGame(lex *Lexer) (*Game, bool) {
	g := &Game{Tags: make(map[string]string)}
	depth := 0
	for {
		tok := lex.NextToken()
		switch tok.Type {
		case EOFToken:
			return g, false
		case TagToken:
			g.Tags[tok.Text] = tok.Value
		case RAVStart:
			depth++
		case RAVEnd:
			depth--
		case MoveToken:
			if depth == 0 {
				g.Moves = append(g.Moves, tok.Text)
			}
		case ResultToken:
			if depth == 0 {
				g.Result = tok.Text
				return g, true
			}
		}
	}
}

// Replay plays the main line of the movetext in r on b and returns the
// game read. A FEN tag resets b to that position first. The first move
// that does not parse or is illegal stops the replay with a
// PositionError; b is left after the last good move.
func Replay(b *engine.Board, r io.Reader, logw io.Writer) (*Game, error) {
	g := Read(r, logw)
	if fen, ok := g.Tags["FEN"]; ok {
		if err := b.SetFEN(fen); err != nil {
			return g, err
		}
	}
	for _, text := range g.Moves {
		m, err := b.MoveFromString(text)
		if err != nil {
			return g, &errors.PositionError{
				Err:      err,
				Variant:  b.Variant(),
				FEN:      b.FEN(engine.XFen),
				Ply:      b.PlyCount() + 1,
				MoveText: text,
			}
		}
		b.MakeMove(m, nil)
	}
	return g, nil
}
