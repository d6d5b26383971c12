package variants

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
)

// maxChecks bounds the check limit of N-check variants.
const maxChecks = 99

const checkStateKey = "checks"

// checkState holds how many more checks each side needs to win.
type checkState struct {
	toWin [2]int
}

func (s *checkState) Clone() engine.State {
	c := *s
	return &c
}

func checks(b *engine.Board) *checkState {
	return b.State(checkStateKey).(*checkState)
}

// NCheck is orthodox chess that is also won by giving check n times.
// n is clamped to 1..99.
func NCheck(n int) *engine.Rules {
	n = max(1, min(n, maxChecks))
	r := engine.Western(fmt.Sprintf("%dcheck", n))
	r.StartFEN = staticFEN(fmt.Sprintf("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - %d+%d 0 1", n, n))
	checkCounting(r, n)
	return r
}

// checkCounting adds check counters with limit n to r.
func checkCounting(r *engine.Rules, n int) {
	r.AddState(checkStateKey, func() engine.State {
		return &checkState{toWin: [2]int{n, n}}
	})

	prevMake := r.MakeMove
	r.MakeMove = func(b *engine.Board, m chess.Move, tr *chess.BoardTransition) {
		if prevMake != nil {
			prevMake(b, m, tr)
		} else {
			engine.WesternMakeMove(b, m, tr)
		}
		updateCheckCounters(b, b.SideToMove(), -1)
	}

	prevUndo := r.UndoMove
	r.UndoMove = func(b *engine.Board, m chess.Move) {
		updateCheckCounters(b, b.SideToMove(), 1)
		if prevUndo != nil {
			prevUndo(b, m)
		} else {
			engine.WesternUndoMove(b, m)
		}
	}

	prevResult := r.Result
	r.Result = func(b *engine.Board) chess.Result {
		opp := b.SideToMove().Opposite()
		if checks(b).toWin[opp] == 0 {
			return chess.NewWin(opp, fmt.Sprintf("%s checks %d times", opp, n))
		}
		if prevResult != nil {
			return prevResult(b)
		}
		return engine.WesternResult(b)
	}

	r.FenInclude = func(b *engine.Board, _ engine.FenNotation) string {
		s := checks(b)
		return fmt.Sprintf(" %d+%d", s.toWin[chess.White], s.toWin[chess.Black])
	}

	prevTail := r.SetFenTail
	r.SetFenTail = func(b *engine.Board, fields []string) error {
		if len(fields) < 2 {
			return engine.WesternSetFenTail(b, fields)
		}
		s := checks(b)
		s.toWin = [2]int{n, n}

		rest, found := extractCheckCounters(fields, s, n)
		var err error
		if prevTail != nil {
			err = prevTail(b, rest)
		} else {
			err = engine.WesternSetFenTail(b, rest)
		}
		if err != nil {
			return err
		}
		// A FEN without counters still counts a check on the board
		if !found {
			updateCheckCounters(b, b.SideToMove().Opposite(), -1)
		}
		return nil
	}
}

// updateCheckCounters adds d to side's counter if side's opponent is
// in check.
func updateCheckCounters(b *engine.Board, side chess.Side, d int) {
	if b.InCheck(side.Opposite()) {
		checks(b).toWin[side] += d
	}
}

// extractCheckCounters finds the counter field, either the remaining
// checks ("3+3") or the checks already given ("+0+0"), applies it to s
// and returns the other fields.
func extractCheckCounters(fields []string, s *checkState, n int) ([]string, bool) {
	for i, field := range fields {
		marker := strings.LastIndexByte(field, '+')
		if marker < 0 {
			continue
		}
		white := atoiOrZero(field[:marker])
		black := atoiOrZero(field[marker+1:])
		if white < 0 || white > maxChecks || black < 0 || black > maxChecks {
			continue
		}
		if strings.Count(field, "+") == 1 {
			s.toWin = [2]int{clampChecks(white, n), clampChecks(black, n)}
		} else {
			s.toWin = [2]int{clampChecks(n-white, n), clampChecks(n-black, n)}
		}
		rest := make([]string, 0, len(fields)-1)
		rest = append(rest, fields[:i]...)
		return append(rest, fields[i+1:]...), true
	}
	return fields, false
}

func clampChecks(v, n int) int {
	return max(0, min(v, n))
}

// atoiOrZero parses a possibly signed integer, yielding 0 for
// malformed input.
func atoiOrZero(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
