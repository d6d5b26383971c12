package movetext

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Lexer tokenizes movetext.
type Lexer struct {
	reader   *bufio.Reader
	line     string
	pos      int
	lineNum  int
	ravLevel int
	log      io.Writer
}

// Character classification table
var chTab [256]TokenType

// moveChars are the characters that may follow the first letter of a
// move: board coordinates past h and 8, drops, promoted piece marks
// and Andernach annotations all occur.
var moveChars [256]bool

func init() {
	for i := range chTab {
		chTab[i] = ErrorToken
	}
	for _, c := range []byte{' ', '\t', '\r', '\n'} {
		chTab[c] = Whitespace
	}
	chTab['['] = TagStart
	chTab['{'] = CommentStart
	chTab['}'] = CommentEnd
	chTab[';'] = LineComment
	chTab['$'] = NAGToken
	chTab['!'] = Annotate
	chTab['?'] = Annotate
	chTab['.'] = Dot
	chTab['('] = RAVStart
	chTab[')'] = RAVEnd
	chTab['*'] = Star
	for c := byte('0'); c <= '9'; c++ {
		chTab[c] = Digit
		moveChars[c] = true
	}
	for c := byte('A'); c <= 'Z'; c++ {
		chTab[c] = Alpha
		chTab[c+32] = Alpha
		moveChars[c] = true
		moveChars[c+32] = true
	}
	for _, c := range []byte("x:-=@~+#") {
		moveChars[c] = true
	}
}

// NewLexer creates a new lexer for the given reader. Warnings about
// malformed input go to logw; nil discards them.
func NewLexer(r io.Reader, logw io.Writer) *Lexer {
	if logw == nil {
		logw = io.Discard
	}
	return &Lexer{
		reader: bufio.NewReader(r),
		log:    logw,
	}
}

// readLine reads the next line from input.
func (l *Lexer) readLine() bool {
	line, err := l.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return false
	}
	l.line = line
	l.pos = 0
	l.lineNum++
	return true
}

func (l *Lexer) currentChar() byte {
	if l.pos >= len(l.line) {
		return 0
	}
	return l.line[l.pos]
}

func (l *Lexer) skipWhile(tt TokenType) {
	for l.pos < len(l.line) && chTab[l.currentChar()] == tt {
		l.pos++
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() *Token {
	for {
		token := l.getNextSymbol()
		if token.Type != NoToken {
			if token.Line == 0 {
				token.Line = l.lineNum
			}
			return token
		}
	}
}

func (l *Lexer) getNextSymbol() *Token {
	if l.pos >= len(l.line) {
		if !l.readLine() {
			return &Token{Type: EOFToken}
		}
		// Escaped lines
		if strings.HasPrefix(l.line, "%") {
			l.pos = len(l.line)
		}
		return &Token{Type: NoToken}
	}

	ch := l.currentChar()
	start := l.pos
	l.pos++

	switch chTab[ch] {
	case Whitespace:
		l.skipWhile(Whitespace)
		return &Token{Type: NoToken}

	case TagStart:
		return l.gatherTag()

	case CommentStart:
		return l.gatherComment()

	case CommentEnd:
		fmt.Fprintf(l.log, "Unmatched comment end on line %d.\n", l.lineNum)
		return &Token{Type: NoToken}

	case LineComment:
		text := strings.TrimSpace(l.line[l.pos:])
		l.pos = len(l.line)
		return &Token{Type: CommentToken, Text: text}

	case NAGToken:
		for l.pos < len(l.line) && chTab[l.currentChar()] == Digit {
			l.pos++
		}
		return &Token{Type: NAGToken, Text: l.line[start:l.pos]}

	case Annotate:
		l.skipWhile(Annotate)
		return &Token{Type: NAGToken, Text: annotationToNAG(l.line[start:l.pos])}

	case Dot:
		l.skipWhile(Dot)
		return &Token{Type: NoToken}

	case RAVStart:
		l.ravLevel++
		return &Token{Type: RAVStart}

	case RAVEnd:
		if l.ravLevel > 0 {
			l.ravLevel--
			return &Token{Type: RAVEnd}
		}
		fmt.Fprintf(l.log, "Too many ')' found on line %d.\n", l.lineNum)
		return &Token{Type: NoToken}

	case Star:
		return &Token{Type: ResultToken, Text: "*"}

	case Alpha:
		return l.gatherMove(start)

	case Digit:
		return l.gatherNumeric(start)

	default:
		fmt.Fprintf(l.log, "Unknown character %q on line %d.\n", ch, l.lineNum)
		l.skipWhile(ErrorToken)
		return &Token{Type: NoToken}
	}
}

// gatherTag gathers a whole [Name "value"] pair.
func (l *Lexer) gatherTag() *Token {
	end := strings.IndexByte(l.line[l.pos:], ']')
	if end < 0 {
		fmt.Fprintf(l.log, "Missing ']' on line %d.\n", l.lineNum)
		l.pos = len(l.line)
		return &Token{Type: NoToken}
	}
	body := strings.TrimSpace(l.line[l.pos : l.pos+end])
	l.pos += end + 1

	name, value, _ := strings.Cut(body, " ")
	value = strings.TrimSpace(value)
	if unquoted, err := strconv.Unquote(value); err == nil {
		value = unquoted
	} else {
		value = strings.Trim(value, `"`)
	}
	return &Token{Type: TagToken, Text: name, Value: value}
}

// gatherComment gathers a comment block, which may span lines.
func (l *Lexer) gatherComment() *Token {
	var sb strings.Builder
	line := l.lineNum
	for {
		if end := strings.IndexByte(l.line[l.pos:], '}'); end >= 0 {
			sb.WriteString(l.line[l.pos : l.pos+end])
			l.pos += end + 1
			return &Token{Type: CommentToken, Text: strings.TrimSpace(sb.String()), Line: line}
		}
		sb.WriteString(l.line[l.pos:])
		if !l.readLine() {
			break
		}
	}
	fmt.Fprintf(l.log, "Missing end of comment started on line %d.\n", line)
	return &Token{Type: CommentToken, Text: strings.TrimSpace(sb.String()), Line: line}
}

// gatherMove gathers move text starting with a letter.
func (l *Lexer) gatherMove(start int) *Token {
	for l.pos < len(l.line) && moveChars[l.currentChar()] {
		l.pos++
	}
	// Andernach side switch annotations such as exd5(=bP)
	if strings.HasPrefix(l.line[l.pos:], "(=") {
		if end := strings.IndexByte(l.line[l.pos:], ')'); end >= 0 {
			l.pos += end + 1
		}
	}
	return &Token{Type: MoveToken, Text: l.line[start:l.pos]}
}

// gatherNumeric handles move numbers, results and 0-0 castling.
func (l *Lexer) gatherNumeric(start int) *Token {
	rest := l.line[start:]
	for _, result := range []string{"1/2-1/2", "1-0", "0-1"} {
		if strings.HasPrefix(rest, result) {
			l.pos = start + len(result)
			return &Token{Type: ResultToken, Text: result}
		}
	}
	for _, castle := range []string{"0-0-0", "0-0"} {
		if strings.HasPrefix(rest, castle) {
			l.pos = start + len(castle)
			l.skipCheckSymbols()
			return &Token{Type: MoveToken, Text: strings.ReplaceAll(castle, "0", "O")}
		}
	}

	for l.pos < len(l.line) && chTab[l.currentChar()] == Digit {
		l.pos++
	}
	num, _ := strconv.Atoi(l.line[start:l.pos])
	l.skipWhile(Dot)
	return &Token{Type: MoveNumber, MoveNum: num}
}

func (l *Lexer) skipCheckSymbols() {
	for l.pos < len(l.line) && (l.currentChar() == '+' || l.currentChar() == '#') {
		l.pos++
	}
}

// annotationToNAG converts annotation symbols to NAG strings.
func annotationToNAG(text string) string {
	switch text {
	case "!":
		return "$1"
	case "?":
		return "$2"
	case "!!":
		return "$3"
	case "??":
		return "$4"
	case "!?":
		return "$5"
	case "?!":
		return "$6"
	default:
		return "$0"
	}
}

// LineNumber returns the current line number.
func (l *Lexer) LineNumber() int {
	return l.lineNum
}

// RAVLevel returns the current variation nesting level.
func (l *Lexer) RAVLevel() int {
	return l.ravLevel
}
