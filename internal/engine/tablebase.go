package engine

import (
	"sync"

	"github.com/lgbarn/variantboard-go/internal/chess"
)

// TablebaseProber looks up endgame positions. Probe returns a null
// result when the position is not covered. Implementations need not
// be safe for concurrent use.
type TablebaseProber interface {
	Probe(fen string, pieceCount int) (result chess.Result, dtm int, ok bool)
}

var (
	tablebaseMu     sync.Mutex
	tablebaseProber TablebaseProber
)

// SetTablebaseProber installs the process-wide prober. Nil removes it.
func SetTablebaseProber(p TablebaseProber) {
	tablebaseMu.Lock()
	defer tablebaseMu.Unlock()
	tablebaseProber = p
}

// TablebaseResult probes the installed tablebase with the current
// position. Probes are serialized. It returns a null result and a
// distance to mate of 0 when no prober is installed or the position is
// not found.
func (b *Board) TablebaseResult() (chess.Result, int) {
	tablebaseMu.Lock()
	defer tablebaseMu.Unlock()

	if tablebaseProber == nil {
		return chess.NoGameResult, 0
	}
	pieces := 0
	for _, pc := range b.squares {
		if pc.IsValid() {
			pieces++
		}
	}
	result, dtm, ok := tablebaseProber.Probe(b.FEN(XFen), pieces)
	if !ok {
		return chess.NoGameResult, 0
	}
	return result, dtm
}
