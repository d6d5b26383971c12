package engine

import (
	"context"
	"sort"

	"github.com/lgbarn/variantboard-go/internal/chess"
)

// PerftCache stores node counts by position key and depth. It must be
// safe for concurrent use if shared between goroutines.
type PerftCache interface {
	Lookup(key uint64, depth int) (uint64, bool)
	Store(key uint64, depth int, nodes uint64)
}

// Perft counts the leaf nodes of the legal move tree to depth.
func (b *Board) Perft(depth int) uint64 {
	return b.PerftCached(depth, nil)
}

// PerftCached is Perft with an optional transposition cache.
func (b *Board) PerftCached(depth int, cache PerftCache) uint64 {
	nodes, _ := b.perft(context.Background(), depth, cache)
	return nodes
}

// PerftContext is PerftCached that gives up once ctx is done. The board
// is left in its starting position either way.
func (b *Board) PerftContext(ctx context.Context, depth int, cache PerftCache) (uint64, error) {
	return b.perft(ctx, depth, cache)
}

func (b *Board) perft(ctx context.Context, depth int, cache PerftCache) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}
	if cache != nil && depth > 1 {
		if nodes, ok := cache.Lookup(b.key, depth); ok {
			return nodes, nil
		}
	}

	moves := b.LegalMoves()
	if depth == 1 {
		return uint64(len(moves)), nil
	}
	// Leaves are cheap; only interior nodes look at ctx
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var nodes uint64
	for _, m := range moves {
		b.MakeMove(m, nil)
		n, err := b.perft(ctx, depth-1, cache)
		b.UndoMove()
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	if cache != nil {
		cache.Store(b.key, depth, nodes)
	}
	return nodes, nil
}

// DivideEntry is the node count below one root move.
type DivideEntry struct {
	Move  string
	Nodes uint64
}

// Divide returns the perft count below each legal move, sorted by the
// move's LAN string.
func (b *Board) Divide(depth int) []DivideEntry {
	moves := b.LegalMoves()
	entries := make([]DivideEntry, 0, len(moves))
	for _, m := range moves {
		e, _ := b.divideMove(context.Background(), m, depth, nil)
		entries = append(entries, e)
	}
	SortDivide(entries)
	return entries
}

// DivideMove plays m and counts the nodes below it to depth-1 on a
// copy of the board. It returns ctx.Err() if ctx is done before the
// count is complete.
func (b *Board) DivideMove(ctx context.Context, m chess.Move, depth int, cache PerftCache) (DivideEntry, error) {
	return b.Copy().divideMove(ctx, m, depth, cache)
}

func (b *Board) divideMove(ctx context.Context, m chess.Move, depth int, cache PerftCache) (DivideEntry, error) {
	e := DivideEntry{Move: b.LANMoveString(m)}
	b.MakeMove(m, nil)
	nodes, err := b.perft(ctx, depth-1, cache)
	b.UndoMove()
	if err != nil {
		return DivideEntry{}, err
	}
	e.Nodes = nodes
	return e, nil
}

// SortDivide orders entries by move string.
func SortDivide(entries []DivideEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Move < entries[j].Move })
}
