package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lgbarn/variantboard-go/internal/worker"
)

func (r *Registry) registerAnalysisCommands() {
	r.Register(&Command{
		Name:        "perft",
		ShortName:   "p",
		Description: "Count the move paths to a depth",
		Usage:       "perft [depth]",
		Handler:     perftHandler,
	})
	r.Register(&Command{
		Name:        "divide",
		Description: "Count the move paths below every legal move",
		Usage:       "divide [depth]",
		Handler:     divideHandler,
	})
}

// depthArg returns the depth given in args, or the configured default.
func depthArg(s *Session, args []string) (int, error) {
	if len(args) == 0 {
		return s.cfg.Perft.Depth, nil
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 1 {
		return 0, fmt.Errorf("invalid depth %q", args[0])
	}
	return depth, nil
}

func perftHandler(s *Session, args []string) error {
	depth, err := depthArg(s, args)
	if err != nil {
		return err
	}

	start := time.Now()
	nodes, err := worker.Perft(s.ctx, s.board, depth, s.cfg.Perft.NumWorkers(), s.perftCache())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintf(s.out, "perft %d: %d\n", depth, nodes)
	s.infof("perft %d: %d nodes in %s (%.0f nodes/s)", depth, nodes, elapsed.Round(time.Millisecond), nodesPerSecond(nodes, elapsed))
	s.logCacheStats()
	return nil
}

func divideHandler(s *Session, args []string) error {
	depth, err := depthArg(s, args)
	if err != nil {
		return err
	}

	start := time.Now()
	entries, err := worker.Divide(s.ctx, s.board, depth, s.cfg.Perft.NumWorkers(), s.perftCache())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	var total uint64
	for _, e := range entries {
		fmt.Fprintf(s.out, "%s %d\n", e.Move, e.Nodes)
		total += e.Nodes
	}
	fmt.Fprintf(s.out, "\nMoves: %d\nNodes: %d\n", len(entries), total)
	s.infof("divide %d: %d nodes in %s", depth, total, elapsed.Round(time.Millisecond))
	s.logCacheStats()
	return nil
}

func (s *Session) logCacheStats() {
	if s.cache == nil {
		return
	}
	hits, misses := s.cache.Stats()
	s.debugf("perft cache: %d entries, %d hits, %d misses", s.cache.Len(), hits, misses)
}

func nodesPerSecond(nodes uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(nodes) / elapsed.Seconds()
}
