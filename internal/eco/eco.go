// Package eco classifies games by opening (Encyclopaedia of Chess
// Openings) using position keys.
package eco

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/movetext"
)

// HalfMoveLimit is the maximum distance in plies from an ECO line for
// a position-only match.
const HalfMoveLimit = 6

// TableSize is the number of buckets of the ECO hash table.
const TableSize = 4096

// Entry is a single ECO classification line.
type Entry struct {
	ECOCode        string // e.g., "B33"
	Opening        string // e.g., "Sicilian"
	Variation      string // e.g., "Sveshnikov"
	SubVariation   string
	RequiredHash   uint64 // Key of the line's final position
	CumulativeHash uint64 // XOR of the keys of every position of the line
	HalfMoves      int    // Number of plies of the line
	Next           *Entry
}

// Classifier maps positions reached in a game to ECO lines.
type Classifier struct {
	rules         *engine.Rules
	table         [TableSize]*Entry
	maxHalfMoves  int
	entriesLoaded int
	skipped       int
}

// NewClassifier creates an empty classifier for games played by rules.
func NewClassifier(rules *engine.Rules) *Classifier {
	return &Classifier{
		rules:        rules,
		maxHalfMoves: HalfMoveLimit,
	}
}

// LoadFromFile loads ECO lines from a PGN file.
func (ec *Classifier) LoadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("cannot open ECO file: %w", err)
	}
	defer file.Close()

	return ec.LoadFromReader(file)
}

// LoadFromReader loads ECO lines from PGN text. Every game with an ECO
// tag is one line. Lines stop at their first unplayable move.
func (ec *Classifier) LoadFromReader(r io.Reader) error {
	for _, game := range movetext.ReadAll(r, io.Discard) {
		if err := ec.addEntry(game); err != nil {
			return fmt.Errorf("error loading ECO line %q: %w", game.Tags["ECO"], err)
		}
	}
	return nil
}

func (ec *Classifier) addEntry(game *movetext.Game) error {
	ecoCode := game.Tags["ECO"]
	if ecoCode == "" {
		return nil
	}

	board := engine.New(ec.rules)
	if err := board.Reset(); err != nil {
		return err
	}
	var cumulativeHash uint64
	halfMoves := 0
	for _, text := range game.Moves {
		m, err := board.MoveFromString(text)
		if err != nil {
			ec.skipped++
			break
		}
		board.MakeMove(m, nil)
		halfMoves++
		cumulativeHash ^= board.Key()
	}
	if halfMoves == 0 {
		return nil
	}

	entry := &Entry{
		ECOCode:        ecoCode,
		Opening:        game.Tags["Opening"],
		Variation:      game.Tags["Variation"],
		SubVariation:   game.Tags["SubVariation"],
		RequiredHash:   board.Key(),
		CumulativeHash: cumulativeHash,
		HalfMoves:      halfMoves,
	}

	ix := entry.RequiredHash % TableSize
	for existing := ec.table[ix]; existing != nil; existing = existing.Next {
		if existing.RequiredHash == entry.RequiredHash &&
			existing.HalfMoves == entry.HalfMoves &&
			existing.CumulativeHash == entry.CumulativeHash {
			return nil
		}
	}

	entry.Next = ec.table[ix]
	ec.table[ix] = entry
	ec.entriesLoaded++

	if halfMoves+HalfMoveLimit > ec.maxHalfMoves {
		ec.maxHalfMoves = halfMoves + HalfMoveLimit
	}
	return nil
}

// Classify finds the best ECO match for the moves played on b.
// Returns nil if no line matches.
func (ec *Classifier) Classify(b *engine.Board) *Entry {
	if ec.entriesLoaded == 0 {
		return nil
	}

	history := b.History()
	var bestMatch *Entry
	var cumulativeHash uint64
	for halfMoves := 1; halfMoves <= len(history) && halfMoves <= ec.maxHalfMoves; halfMoves++ {
		// The key stored with a move is the key before it
		posHash := b.Key()
		if halfMoves < len(history) {
			posHash = history[halfMoves].Key
		}
		cumulativeHash ^= posHash

		if match := ec.findMatch(posHash, cumulativeHash, halfMoves); match != nil {
			bestMatch = match
		}
	}
	return bestMatch
}

// ClassifyGame replays game on a fresh board and classifies it. Moves
// after the first unplayable one are ignored.
func (ec *Classifier) ClassifyGame(game *movetext.Game) *Entry {
	board := engine.New(ec.rules)
	fen, ok := game.Tags["FEN"]
	if !ok || board.SetFEN(fen) != nil {
		if err := board.Reset(); err != nil {
			return nil
		}
	}
	for _, text := range game.Moves {
		m, err := board.MoveFromString(text)
		if err != nil {
			break
		}
		board.MakeMove(m, nil)
	}
	return ec.Classify(board)
}

func (ec *Classifier) findMatch(posHash, cumulativeHash uint64, halfMoves int) *Entry {
	ix := posHash % TableSize
	var possible *Entry

	for entry := ec.table[ix]; entry != nil; entry = entry.Next {
		if entry.RequiredHash == posHash {
			if entry.HalfMoves == halfMoves && entry.CumulativeHash == cumulativeHash {
				return entry
			}
			if abs(halfMoves-entry.HalfMoves) <= HalfMoveLimit {
				possible = entry
			}
		}
	}

	return possible
}

// AddTags adds ECO, Opening, Variation and SubVariation tags for the
// game on b. It reports whether a line matched.
func (ec *Classifier) AddTags(tags map[string]string, b *engine.Board) bool {
	match := ec.Classify(b)
	if match == nil {
		return false
	}

	if match.ECOCode != "" {
		tags["ECO"] = match.ECOCode
	}
	if match.Opening != "" {
		tags["Opening"] = match.Opening
	}
	if match.Variation != "" {
		tags["Variation"] = match.Variation
	}
	if match.SubVariation != "" {
		tags["SubVariation"] = match.SubVariation
	}
	return true
}

// EntriesLoaded returns the number of ECO lines loaded.
func (ec *Classifier) EntriesLoaded() int {
	return ec.entriesLoaded
}

// Skipped returns the number of lines cut short by an unplayable move.
func (ec *Classifier) Skipped() int {
	return ec.skipped
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
