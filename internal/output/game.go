package output

import (
	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
)

// DefaultLineLength is the PGN movetext line length.
const DefaultLineLength = 80

// SevenTagRoster lists the mandatory PGN tags in their export order.
var SevenTagRoster = []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

// Game is the game played on a board together with its PGN tags.
type Game struct {
	Board *engine.Board
	Tags  map[string]string
}

// MoveRecord is one ply of a game with the position it leads to.
type MoveRecord struct {
	MoveNumber int
	Side       chess.Side
	SAN        string
	LAN        string
	FEN        string
}

// Moves replays the game from its initial position and returns the
// initial FEN with a record per ply. The game's board is not modified.
func (g *Game) Moves() (string, []MoveRecord) {
	history := g.Board.History()
	start := g.Board.Copy()
	for start.PlyCount() > 0 {
		start.UndoMove()
	}
	initialFEN := start.FEN(engine.XFen)

	records := make([]MoveRecord, 0, len(history))
	for _, h := range history {
		rec := MoveRecord{
			MoveNumber: start.FullMoveNumber(),
			Side:       start.SideToMove(),
			SAN:        start.SANMoveString(h.Move),
			LAN:        start.LANMoveString(h.Move),
		}
		start.MakeMove(h.Move, nil)
		rec.FEN = start.FEN(engine.XFen)
		records = append(records, rec)
	}
	return initialFEN, records
}

// Result returns the PGN result token: the board's result if the game
// is over, else the Result tag, else "*".
func (g *Game) Result() string {
	if result := g.Board.Result(); !result.IsNone() {
		return result.String()
	}
	if tag, ok := g.Tags["Result"]; ok && tag != "" {
		return tag
	}
	return "*"
}

// startsFromDefault reports whether initialFEN is the variant's
// standard starting position.
func (g *Game) startsFromDefault(initialFEN string) bool {
	return !g.Board.Rules().Random && initialFEN == g.Board.DefaultFEN()
}
