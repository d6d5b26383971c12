package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/lgbarn/variantboard-go/internal/eco"
	"github.com/lgbarn/variantboard-go/internal/output"
)

func (r *Registry) registerExportCommands() {
	r.Register(&Command{
		Name:        "tag",
		ShortName:   "t",
		Description: "Show the PGN tags, or set or clear one",
		Usage:       "tag [name [value...]]",
		Handler:     tagHandler,
	})
	r.Register(&Command{
		Name:        "eco",
		Description: "Load ECO lines from a PGN file, or classify the game",
		Usage:       "eco [file]",
		Handler:     ecoHandler,
	})
	r.Register(&Command{
		Name:        "pgn",
		Description: "Write the game as PGN",
		Usage:       "pgn [file]",
		Handler:     pgnHandler,
	})
	r.Register(&Command{
		Name:        "json",
		Description: "Write the game as JSON",
		Usage:       "json [file]",
		Handler:     jsonHandler,
	})
}

func tagHandler(s *Session, args []string) error {
	switch len(args) {
	case 0:
		names := make([]string, 0, len(s.tags))
		for name := range s.tags {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(s.out, "[%s %q]\n", name, s.tags[name])
		}
	case 1:
		delete(s.tags, args[0])
	default:
		s.tags[args[0]] = strings.Join(args[1:], " ")
	}
	return nil
}

func ecoHandler(s *Session, args []string) error {
	if len(args) == 1 {
		ec := eco.NewClassifier(s.board.Rules())
		if err := ec.LoadFromFile(args[0]); err != nil {
			return err
		}
		s.eco = ec
		s.infof("%s: %d ECO lines, %d cut short", args[0], ec.EntriesLoaded(), ec.Skipped())
		return nil
	}
	if s.eco == nil {
		return fmt.Errorf("no ECO lines loaded (use 'eco <file>')")
	}

	match := s.eco.Classify(s.board)
	if match == nil {
		fmt.Fprintln(s.out, "no ECO match")
		return nil
	}
	desc := []string{match.ECOCode, match.Opening, match.Variation, match.SubVariation}
	var parts []string
	for _, d := range desc {
		if d != "" {
			parts = append(parts, d)
		}
	}
	fmt.Fprintln(s.out, strings.Join(parts, ", "))
	return nil
}

// game returns the session's game with its tags, plus the ECO tags if
// ECO lines are loaded.
func (s *Session) game() *output.Game {
	tags := make(map[string]string, len(s.tags)+4)
	for k, v := range s.tags {
		tags[k] = v
	}
	if s.eco != nil {
		s.eco.AddTags(tags, s.board)
	}
	return &output.Game{Board: s.board, Tags: tags}
}

// writeGame writes the session's game with a writer from newWriter, to
// the file named in args or to the session output.
func writeGame(s *Session, args []string, newWriter func(io.Writer) output.GameWriter) error {
	out := s.out
	var file *os.File
	if len(args) > 0 {
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		file, out = f, f
	}

	gw := newWriter(out)
	err := gw.WriteGame(s.game())
	if cerr := gw.Close(); err == nil {
		err = cerr
	}
	if file != nil {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err == nil {
			s.infof("game written to %s", args[0])
		}
	}
	return err
}

func pgnHandler(s *Session, args []string) error {
	return writeGame(s, args, func(w io.Writer) output.GameWriter {
		return output.NewPGNWriter(w, output.DefaultLineLength)
	})
}

func jsonHandler(s *Session, args []string) error {
	return writeGame(s, args, func(w io.Writer) output.GameWriter {
		return output.NewJSONWriterSingle(w, true)
	})
}
