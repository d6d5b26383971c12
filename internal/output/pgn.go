package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lgbarn/variantboard-go/internal/chess"
)

// PGNWriter writes games in PGN format.
type PGNWriter struct {
	w          io.Writer
	lineLength int
}

// NewPGNWriter creates a new PGN writer. A lineLength of 0 selects
// DefaultLineLength.
func NewPGNWriter(w io.Writer, lineLength int) *PGNWriter {
	return &PGNWriter{
		w:          w,
		lineLength: lineLength,
	}
}

// WriteGame writes a game in PGN format: the seven tag roster, then
// the Variant, SetUp and FEN tags when needed, then any other tags in
// name order, then the movetext.
func (pw *PGNWriter) WriteGame(game *Game) error {
	initialFEN, moves := game.Moves()
	result := game.Result()

	ow := NewOutputWriter(pw.w, pw.lineLength)
	writeTag := func(name, value string) {
		ow.print(fmt.Sprintf("[%s \"%s\"]\n", name, escapeTagValue(value)))
	}

	for _, tag := range SevenTagRoster {
		value := game.Tags[tag]
		switch {
		case tag == "Result":
			value = result
		case value == "":
			value = "?"
		}
		writeTag(tag, value)
	}

	written := map[string]bool{"SetUp": true, "FEN": true, "Variant": true}
	if variant := game.Board.Variant(); variant != "standard" {
		writeTag("Variant", variant)
	}
	if !game.startsFromDefault(initialFEN) {
		writeTag("SetUp", "1")
		writeTag("FEN", initialFEN)
	}

	for _, tag := range SevenTagRoster {
		written[tag] = true
	}
	var extra []string
	for tag := range game.Tags {
		if !written[tag] {
			extra = append(extra, tag)
		}
	}
	sort.Strings(extra)
	for _, tag := range extra {
		writeTag(tag, game.Tags[tag])
	}

	// Blank line between tags and moves
	ow.NewLine()

	for i, m := range moves {
		if m.Side == chess.White {
			ow.Write(fmt.Sprintf("%d.", m.MoveNumber))
		} else if i == 0 {
			// Black to move at start
			ow.Write(fmt.Sprintf("%d...", m.MoveNumber))
		}
		ow.Write(m.SAN)
	}
	ow.Write(result)
	ow.NewLine()

	// Blank line between games
	ow.NewLine()
	return ow.Err()
}

// Flush flushes the PGN writer (no-op for PGN as it writes immediately).
func (pw *PGNWriter) Flush() error {
	return nil
}

// Close closes the PGN writer.
func (pw *PGNWriter) Close() error {
	return nil
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
