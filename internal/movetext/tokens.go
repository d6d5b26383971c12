// Package movetext tokenizes PGN-style movetext and replays it on a
// variant board.
package movetext

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Tokens returned to the caller
	EOFToken TokenType = iota
	TagToken
	CommentToken
	NAGToken
	MoveNumber
	RAVStart
	RAVEnd
	MoveToken
	ResultToken

	// Internal tokens used for identification
	Whitespace
	TagStart
	CommentStart
	CommentEnd
	LineComment
	Annotate
	Dot
	Alpha
	Digit
	Star
	NoToken
	ErrorToken
)

var tokenTypeNames = [...]string{
	EOFToken:     "EOF",
	TagToken:     "TAG",
	CommentToken: "COMMENT",
	NAGToken:     "NAG",
	MoveNumber:   "MOVE_NUMBER",
	RAVStart:     "RAV_START",
	RAVEnd:       "RAV_END",
	MoveToken:    "MOVE",
	ResultToken:  "RESULT",
	Whitespace:   "WHITESPACE",
	TagStart:     "TAG_START",
	CommentStart: "COMMENT_START",
	CommentEnd:   "COMMENT_END",
	LineComment:  "LINE_COMMENT",
	Annotate:     "ANNOTATE",
	Dot:          "DOT",
	Alpha:        "ALPHA",
	Digit:        "DIGIT",
	Star:         "STAR",
	NoToken:      "NO_TOKEN",
	ErrorToken:   "ERROR_TOKEN",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "UNKNOWN"
}

// Token represents a lexical token with its value.
type Token struct {
	Type TokenType

	// Text is the move, result, NAG, comment or tag name
	Text string

	// Value is the tag value of a TagToken
	Value string

	// MoveNum holds move numbers
	MoveNum int

	// Line for error reporting
	Line int
}
