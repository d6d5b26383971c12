package main

import (
	"context"
	"io"
	"log"

	"github.com/lgbarn/variantboard-go/internal/book"
	"github.com/lgbarn/variantboard-go/internal/config"
	"github.com/lgbarn/variantboard-go/internal/eco"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/hashing"
	"github.com/lgbarn/variantboard-go/internal/variants"
)

// Session is the state shared by the shell commands.
type Session struct {
	ctx    context.Context
	cfg    *config.Config
	board  *engine.Board
	book   *book.Book
	eco    *eco.Classifier
	tags   map[string]string
	cache  *hashing.ThreadSafePerftTable
	logger *log.Logger
	out    io.Writer
}

// NewSession creates a session with a board of the configured variant,
// set to the configured FEN or to the variant's starting position.
func NewSession(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Session, error) {
	s := &Session{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
		out:    cfg.OutputFile,
		tags:   make(map[string]string),
	}
	if cfg.Perft.CacheSize > 0 {
		s.cache = hashing.NewThreadSafePerftTable(cfg.Perft.CacheSize)
	}
	if err := s.setVariant(cfg.Board.Variant, cfg.Board.FEN); err != nil {
		return nil, err
	}
	return s, nil
}

// setVariant replaces the board. An empty fen selects the variant's
// starting position. On error the previous board is kept.
func (s *Session) setVariant(name, fen string) error {
	b, err := variants.Create(name)
	if err != nil {
		return err
	}
	if fen != "" {
		if err := b.SetFEN(fen); err != nil {
			return err
		}
	}
	if s.board != nil && s.board.Variant() != b.Variant() {
		// Equal keys mean different trees under different rules
		if s.cache != nil {
			s.cache.Reset()
		}
		s.eco = nil
	}
	s.board = b
	s.cfg.Board.Variant = b.Variant()
	s.debugf("board set to %s: %s", b.Variant(), b.FEN(engine.XFen))
	return nil
}

// perftCache returns the shared perft cache, or nil if caching is off.
func (s *Session) perftCache() engine.PerftCache {
	if s.cache == nil {
		return nil
	}
	return s.cache
}

func (s *Session) notation() engine.MoveNotation {
	if s.cfg.Board.Notation == config.NotationLAN {
		return engine.LongAlgebraic
	}
	return engine.StandardAlgebraic
}

func (s *Session) infof(format string, args ...any) {
	if s.cfg.Verbosity >= 1 {
		s.logger.Printf(format, args...)
	}
}

func (s *Session) debugf(format string, args ...any) {
	if s.cfg.Verbosity >= 2 {
		s.logger.Printf(format, args...)
	}
}
