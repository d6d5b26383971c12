package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/lgbarn/variantboard-go/internal/config"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/errors"
	"github.com/lgbarn/variantboard-go/internal/movetext"
	"github.com/lgbarn/variantboard-go/internal/variants"
)

func (r *Registry) registerBoardCommands() {
	r.Register(&Command{
		Name:        "new",
		ShortName:   "n",
		Description: "Start a new game, optionally of another variant",
		Usage:       "new [variant]",
		Handler:     newHandler,
	})
	r.Register(&Command{
		Name:        "variants",
		Description: "List the supported variants",
		Usage:       "variants",
		Handler:     variantsHandler,
	})
	r.Register(&Command{
		Name:        "fen",
		ShortName:   "f",
		Description: "Show the FEN, or set the position from a FEN",
		Usage:       "fen [shredder | <fen>]",
		Handler:     fenHandler,
	})
	r.Register(&Command{
		Name:        "show",
		ShortName:   "d",
		Description: "Display the board",
		Usage:       "show",
		Handler:     showHandler,
	})
	r.Register(&Command{
		Name:        "moves",
		ShortName:   "l",
		Description: "List the legal moves",
		Usage:       "moves",
		Handler:     movesHandler,
	})
	r.Register(&Command{
		Name:        "move",
		ShortName:   "m",
		Description: "Play one or more moves in SAN or LAN",
		Usage:       "move <move> [move...]",
		Handler:     moveHandler,
	})
	r.Register(&Command{
		Name:        "undo",
		ShortName:   "u",
		Description: "Take back moves",
		Usage:       "undo [count]",
		Handler:     undoHandler,
	})
	r.Register(&Command{
		Name:        "result",
		ShortName:   "r",
		Description: "Show the game result",
		Usage:       "result",
		Handler:     resultHandler,
	})
	r.Register(&Command{
		Name:        "key",
		ShortName:   "k",
		Description: "Show the position key and repetition count",
		Usage:       "key",
		Handler:     keyHandler,
	})
	r.Register(&Command{
		Name:        "notation",
		Description: "Select the move notation for output",
		Usage:       "notation san|lan",
		Handler:     notationHandler,
	})
	r.Register(&Command{
		Name:        "load",
		Description: "Replay the main line of a PGN game file",
		Usage:       "load <file>",
		Handler:     loadHandler,
	})
}

func newHandler(s *Session, args []string) error {
	name := s.board.Variant()
	if len(args) > 0 {
		name = args[0]
	}
	if err := s.setVariant(name, ""); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "New %s game\n", s.board.Variant())
	return nil
}

func variantsHandler(s *Session, _ []string) error {
	for _, name := range variants.Names() {
		marker := " "
		if name == s.board.Variant() {
			marker = "*"
		}
		fmt.Fprintf(s.out, "%s %s\n", marker, name)
	}
	return nil
}

func fenHandler(s *Session, args []string) error {
	switch {
	case len(args) == 0:
		fmt.Fprintln(s.out, s.board.FEN(engine.XFen))
		return nil
	case len(args) == 1 && args[0] == "shredder":
		fmt.Fprintln(s.out, s.board.FEN(engine.ShredderFen))
		return nil
	}
	fen := strings.Join(args, " ")
	if err := s.board.SetFEN(fen); err != nil {
		return err
	}
	s.debugf("position set: %s", s.board.FEN(engine.XFen))
	return nil
}

func showHandler(s *Session, _ []string) error {
	fmt.Fprint(s.out, s.board.String())
	fmt.Fprintf(s.out, "Variant: %s, %s to move\n", s.board.Variant(), s.board.SideToMove())
	if result := s.board.Result(); !result.IsNone() {
		fmt.Fprintln(s.out, result.Verbose())
	}
	return nil
}

func movesHandler(s *Session, _ []string) error {
	moves := s.board.LegalMoves()
	strs := make([]string, len(moves))
	for i, m := range moves {
		strs[i] = s.board.MoveString(m, s.notation())
	}
	sort.Strings(strs)
	fmt.Fprintf(s.out, "%d moves: %s\n", len(strs), strings.Join(strs, " "))
	return nil
}

func moveHandler(s *Session, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: move <move> [move...]")
	}
	for _, text := range args {
		if result := s.board.Result(); !result.IsNone() {
			return fmt.Errorf("game is over: %s", result.Verbose())
		}
		m, err := s.board.MoveFromString(text)
		if err != nil {
			return &errors.PositionError{
				Err:      err,
				Variant:  s.board.Variant(),
				FEN:      s.board.FEN(engine.XFen),
				Ply:      s.board.PlyCount() + 1,
				MoveText: text,
			}
		}
		str := s.board.MoveString(m, s.notation())
		s.board.MakeMove(m, nil)
		s.debugf("played %s", str)
	}
	if result := s.board.Result(); !result.IsNone() {
		fmt.Fprintln(s.out, result.Verbose())
	}
	return nil
}

func undoHandler(s *Session, args []string) error {
	count := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid undo count %q", args[0])
		}
		count = n
	}
	if count > s.board.PlyCount() {
		return fmt.Errorf("cannot undo %d plies: only %d played", count, s.board.PlyCount())
	}
	for i := 0; i < count; i++ {
		s.board.UndoMove()
	}
	return nil
}

func resultHandler(s *Session, _ []string) error {
	fmt.Fprintln(s.out, s.board.Result().Verbose())
	return nil
}

func keyHandler(s *Session, _ []string) error {
	fmt.Fprintf(s.out, "%016x (repetitions: %d)\n", s.board.Key(), s.board.RepeatCount())
	return nil
}

func notationHandler(s *Session, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(s.out, s.cfg.Board.Notation)
		return nil
	}
	notation := strings.ToLower(args[0])
	if notation != config.NotationSAN && notation != config.NotationLAN {
		return fmt.Errorf("unknown notation %q (use san or lan)", args[0])
	}
	s.cfg.Board.Notation = notation
	return nil
}

func loadHandler(s *Session, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: load <file>")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	if err := s.board.Reset(); err != nil {
		return err
	}
	game, err := movetext.Replay(s.board, f, s.logger.Writer())
	if err != nil {
		return errors.Wrap(err, args[0])
	}
	delete(game.Tags, "FEN")
	delete(game.Tags, "SetUp")
	s.tags = game.Tags
	s.infof("%s: replayed %d plies", args[0], len(game.Moves))
	fmt.Fprintf(s.out, "%d plies, result %s\n", len(game.Moves), resultOrStar(game.Result))
	return nil
}

func resultOrStar(result string) string {
	if result == "" {
		return "*"
	}
	return result
}
