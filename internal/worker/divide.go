package worker

import (
	"context"

	"github.com/lgbarn/variantboard-go/internal/engine"
)

// DivideFunc returns a ProcessFunc counting the nodes below each item's
// move on a private copy of its board. cache may be nil. A count still
// running when ctx is done is abandoned with ctx.Err().
func DivideFunc(ctx context.Context, cache engine.PerftCache) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		entry, err := item.Board.DivideMove(ctx, item.Move, item.Depth, cache)
		return ProcessResult{Index: item.Index, Entry: entry, Error: err}
	}
}

// Divide counts the perft nodes below every legal move of b to depth,
// spreading the root moves over numWorkers goroutines. The entries are
// sorted by move string. If ctx is cancelled before all moves are
// counted, Divide stops the pool and returns ctx.Err().
func Divide(ctx context.Context, b *engine.Board, depth, numWorkers int, cache engine.PerftCache) ([]engine.DivideEntry, error) {
	if depth < 1 {
		return nil, nil
	}
	moves := b.LegalMoves()
	pool := NewPoolWithOptions(DivideFunc(ctx, cache),
		WithWorkers(numWorkers),
		WithBufferSize(len(moves)+1))
	pool.Start()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			pool.Stop()
		case <-done:
		}
	}()

	go func() {
		for i, m := range moves {
			pool.Submit(WorkItem{Board: b, Move: m, Depth: depth, Index: i})
		}
		pool.Close()
	}()

	entries := make([]engine.DivideEntry, 0, len(moves))
	var firstErr error
	for result := range pool.Results() {
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		entries = append(entries, result.Entry)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}
	engine.SortDivide(entries)
	return entries, nil
}

// Perft is the parallel counterpart of engine.Board.Perft.
func Perft(ctx context.Context, b *engine.Board, depth, numWorkers int, cache engine.PerftCache) (uint64, error) {
	if depth < 1 {
		return 1, nil
	}
	entries, err := Divide(ctx, b, depth, numWorkers, cache)
	if err != nil {
		return 0, err
	}
	var nodes uint64
	for _, e := range entries {
		nodes += e.Nodes
	}
	return nodes, nil
}
