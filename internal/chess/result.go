package chess

import "fmt"

// ResultType is the kind of a game result.
type ResultType int

const (
	// NoResult means the game is still in progress.
	NoResult ResultType = iota
	// Win is a decisive result reached on the board.
	Win
	// Draw is a drawn result reached on the board.
	Draw
	Resignation
	Timeout
	Adjudication
	IllegalMove
	Disconnection
	StalledConnection
	Agreement
	// ResultError marks an unparsable or inconsistent result.
	ResultError
)

// Result is the outcome of a game. The administrative kinds
// (Resignation, Timeout and so on) are produced by whoever runs the
// game, never by a board.
type Result struct {
	Type        ResultType
	Winner      Side
	Description string
}

// NewWin returns a win for winner.
func NewWin(winner Side, description string) Result {
	return Result{Type: Win, Winner: winner, Description: description}
}

// NewDraw returns a drawn result.
func NewDraw(description string) Result {
	return Result{Type: Draw, Winner: NoSide, Description: description}
}

// NoGameResult is the result of a game still in progress.
var NoGameResult = Result{Type: NoResult, Winner: NoSide}

// ParseResult reads a PGN result token, optionally followed by a
// description in braces: `0-1 {Black mates}`.
func ParseResult(s string) Result {
	r := Result{Type: ResultError, Winner: NoSide}
	switch {
	case hasPrefix(s, "1-0"):
		r.Type, r.Winner = Win, White
	case hasPrefix(s, "0-1"):
		r.Type, r.Winner = Win, Black
	case hasPrefix(s, "1/2-1/2"):
		r.Type = Draw
	case hasPrefix(s, "*"):
		r.Type = NoResult
	}
	start, end := -1, -1
	for i := 0; i < len(s); i++ {
		if s[i] == '{' && start == -1 {
			start = i
		}
		if s[i] == '}' {
			end = i
		}
	}
	if start != -1 && end > start {
		r.Description = s[start+1 : end]
	}
	return r
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// IsNone reports whether the game is still in progress.
func (r Result) IsNone() bool {
	return r.Type == NoResult
}

// IsDraw reports whether the game ended without a winner.
func (r Result) IsDraw() bool {
	return r.Winner == NoSide && r.Type != NoResult && r.Type != ResultError
}

// Loser returns the losing side, or NoSide.
func (r Result) Loser() Side {
	return r.Winner.Opposite()
}

// String returns the PGN result token.
func (r Result) String() string {
	switch {
	case r.Type == NoResult || r.Type == ResultError:
		return "*"
	case r.Winner == White:
		return "1-0"
	case r.Winner == Black:
		return "0-1"
	}
	return "1/2-1/2"
}

// Reason returns a human readable description of the result.
func (r Result) Reason() string {
	w, l := sideName(r.Winner), sideName(r.Loser())
	var str string
	switch r.Type {
	case Resignation:
		str = l + " resigns"
	case Timeout:
		str = orDraw(l, l+" loses on time", "Draw by timeout")
	case Adjudication:
		str = orDraw(w, w+" wins by adjudication", "Draw by adjudication")
	case IllegalMove:
		str = l + " makes an illegal move"
	case Disconnection:
		str = orDraw(l, l+" disconnects", "Draw by disconnection")
	case StalledConnection:
		str = orDraw(l, l+"'s connection stalls", "Draw by stalled connection")
	case Agreement:
		str = orDraw(w, w+" wins by agreement", "Draw by agreement")
	case NoResult:
		str = "No result"
	case ResultError:
		str = "Result error"
	}

	if r.Description == "" {
		switch r.Type {
		case Win:
			return w + " wins"
		case Draw:
			return "Drawn game"
		}
		return str
	}
	if str != "" {
		str += ": "
	}
	return str + r.Description
}

// Verbose returns the PGN token followed by the reason in braces.
func (r Result) Verbose() string {
	return fmt.Sprintf("%s {%s}", r.String(), r.Reason())
}

func sideName(s Side) string {
	if s.IsNull() {
		return ""
	}
	return s.String()
}

func orDraw(name, decisive, drawn string) string {
	if name == "" {
		return drawn
	}
	return decisive
}
