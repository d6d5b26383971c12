package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/lgbarn/variantboard-go/internal/book"
	"github.com/lgbarn/variantboard-go/internal/errors"
	"github.com/lgbarn/variantboard-go/internal/movetext"
	"github.com/lgbarn/variantboard-go/internal/variants"
)

const defaultImportPlies = 24

func (r *Registry) registerBookCommands() {
	r.Register(&Command{
		Name:        "book",
		ShortName:   "b",
		Description: "Open a Polyglot book, list its moves or play one",
		Usage:       "book open <file> | book import <pgn> [plies] | book save <file> | book [list] | book play",
		Handler:     bookHandler,
	})
}

func bookHandler(s *Session, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	if sub == "open" {
		if len(args) != 2 {
			return fmt.Errorf("usage: book open <file>")
		}
		bk, err := book.Open(args[1])
		if err != nil {
			return err
		}
		s.book = bk
		s.infof("%s: %d book entries", args[1], bk.Len())
		return nil
	}

	if sub == "import" {
		return bookImport(s, args[1:])
	}
	if s.book == nil {
		return fmt.Errorf("no book open (use 'book open <file>')")
	}

	switch sub {
	case "list":
		entries := s.book.Entries(s.board.Key())
		if len(entries) == 0 {
			fmt.Fprintln(s.out, "no book moves")
			return nil
		}
		for _, e := range entries {
			m := s.board.MoveFromGenericMove(e.Move)
			if !s.board.IsLegalMove(m) {
				continue
			}
			fmt.Fprintf(s.out, "%s %d\n", s.board.MoveString(m, s.notation()), e.Weight)
		}
	case "play":
		m, ok := s.book.Move(s.board, nil)
		if !ok {
			return fmt.Errorf("no book move for this position")
		}
		fmt.Fprintln(s.out, s.board.MoveString(m, s.notation()))
		s.board.MakeMove(m, nil)
	case "save":
		if len(args) != 2 {
			return fmt.Errorf("usage: book save <file>")
		}
		return bookSave(s, args[1])
	default:
		return fmt.Errorf("unknown book command %q", sub)
	}
	return nil
}

// bookImport adds the main line of a PGN game to the session's book,
// creating the book if none is open.
func bookImport(s *Session, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("usage: book import <pgn> [plies]")
	}
	plies := defaultImportPlies
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid ply count %q", args[1])
		}
		plies = n
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := variants.Create(s.board.Variant())
	if err != nil {
		return err
	}
	if s.book == nil {
		s.book = book.New()
	}
	game := movetext.Read(f, s.logger.Writer())
	if err := s.book.Import(b, game, plies); err != nil {
		return errors.Wrap(err, args[0])
	}
	s.infof("%s: book has %d entries", args[0], s.book.Len())
	return nil
}

func bookSave(s *Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.book.Write(f); err != nil {
		f.Close()
		return errors.Wrap(err, path)
	}
	return f.Close()
}
