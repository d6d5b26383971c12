package output

import (
	"encoding/json"
	"io"
	"strings"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	Variant    string            `json:"variant"`
	Tags       map[string]string `json:"tags"`
	Moves      []JSONMove        `json:"moves,omitempty"`
	Result     string            `json:"result"`
	PlyCount   int               `json:"plyCount"`
	InitialFEN string            `json:"initialFEN"`
	FinalFEN   string            `json:"finalFEN"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	MoveNumber int    `json:"moveNumber"`
	Color      string `json:"color"` // "white" or "black"
	SAN        string `json:"san"`
	LAN        string `json:"lan"`
	FEN        string `json:"fen,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON converts a game to JSON format. includeFEN adds the
// position after every move.
func GameToJSON(game *Game, includeFEN bool) *JSONGame {
	initialFEN, moves := game.Moves()
	jg := &JSONGame{
		Variant:    game.Board.Variant(),
		Tags:       copyTags(game.Tags),
		Result:     game.Result(),
		PlyCount:   len(moves),
		InitialFEN: initialFEN,
		FinalFEN:   initialFEN,
	}
	for _, m := range moves {
		jm := JSONMove{
			MoveNumber: m.MoveNumber,
			Color:      strings.ToLower(m.Side.String()),
			SAN:        m.SAN,
			LAN:        m.LAN,
		}
		if includeFEN {
			jm.FEN = m.FEN
		}
		jg.Moves = append(jg.Moves, jm)
		jg.FinalFEN = m.FEN
	}
	return jg
}

func copyTags(tags map[string]string) map[string]string {
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}

// JSONWriter writes games in JSON format.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w          io.Writer
	games      []*JSONGame
	single     bool // If true, write each game immediately instead of batching
	includeFEN bool
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches games and writes them as an array on Close().
func NewJSONWriter(w io.Writer, includeFEN bool) *JSONWriter {
	return &JSONWriter{
		w:          w,
		includeFEN: includeFEN,
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately.
func NewJSONWriterSingle(w io.Writer, includeFEN bool) *JSONWriter {
	return &JSONWriter{
		w:          w,
		single:     true,
		includeFEN: includeFEN,
	}
}

// WriteGame buffers a game for JSON output (or writes immediately in
// single mode). The game is converted at once, so its board may change
// afterwards.
func (jw *JSONWriter) WriteGame(game *Game) error {
	jg := GameToJSON(game, jw.includeFEN)
	if jw.single {
		return jw.encode(jg)
	}
	jw.games = append(jw.games, jg)
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.games) == 0 {
		return nil
	}
	err := jw.encode(&JSONOutput{Games: jw.games})
	jw.games = jw.games[:0]
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}

func (jw *JSONWriter) encode(v any) error {
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
