package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/errors"
)

// DefaultFEN returns the variant's starting position.
func (b *Board) DefaultFEN() string {
	return b.rules.StartFEN(b)
}

// Reset sets up the starting position.
func (b *Board) Reset() error {
	return b.SetFEN(b.DefaultFEN())
}

// SetFEN sets up the position described by fen and clears the move
// history. On error the board keeps its previous position.
func (b *Board) SetFEN(fen string) error {
	nb := b.Copy()
	if err := nb.setFEN(fen); err != nil {
		return &errors.PositionError{Err: err, Variant: b.rules.Variant, FEN: fen}
	}
	*b = *nb
	return nil
}

func (b *Board) setFEN(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	for i := range b.squares {
		b.squares[i] = chess.WallPiece
	}
	b.key = 0
	b.reserve = [2][]int{}
	b.history = nil
	b.kingSquare = [2]int{}
	b.enpassantSquare, b.enpassantTarget = 0, 0
	b.castlingRooks = [2][2]int{}
	b.reversibleMoveCount, b.plyOffset = 0, 0
	b.resetStates()

	placement, hand, hasHand := strings.Cut(fields[0], "[")
	if err := b.parsePlacement(placement); err != nil {
		return err
	}
	if hasHand {
		if !b.rules.HasDrops {
			return errors.FieldError(errors.ErrInvalidFEN, "reserve", "no reserve", hand)
		}
		if err := b.parseReserve(hand); err != nil {
			return err
		}
	}

	if len(fields) < 2 {
		return errors.FieldError(errors.ErrInvalidFEN, "side to move", "w or b", "")
	}
	side := chess.SideFromSymbol(fields[1])
	if side.IsNull() {
		return errors.FieldError(errors.ErrInvalidFEN, "side to move", "w or b", fields[1])
	}
	b.side, b.startingSide = side, side
	b.sign = 1
	if side == chess.Black {
		b.sign = -1
	}
	b.startingFEN = fen

	var err error
	if b.rules.SetFenTail != nil {
		err = b.rules.SetFenTail(b, fields[2:])
	} else {
		err = WesternSetFenTail(b, fields[2:])
	}
	if err != nil {
		return err
	}

	if side == chess.White {
		b.key ^= b.zobrist.Side()
	}
	if !b.IsLegalPosition() {
		return fmt.Errorf("the side to move can capture a king: %w", errors.ErrInvalidFEN)
	}
	return nil
}

// parsePlacement reads the piece placement field. Ranks are listed
// from the top; empty runs may use two digits on wide boards.
func (b *Board) parsePlacement(placement string) error {
	boardSize := b.width * b.height
	square, rankEnd := 0, 0
	k := b.arwidth*2 + 1

	for i := 0; i < len(placement); i++ {
		c := placement[i]
		switch {
		case c == '/':
			if square-rankEnd != b.width {
				return fmt.Errorf("rank %d has %d squares: %w", b.height-rankEnd/b.width, square-rankEnd, errors.ErrInvalidFEN)
			}
			rankEnd = square
			k += 2
		case c >= '0' && c <= '9':
			nempty := int(c - '0')
			if i+1 < len(placement) && placement[i+1] >= '0' && placement[i+1] <= '9' {
				nempty = nempty*10 + int(placement[i+1]-'0')
				i++
			}
			if nempty > b.width || square+nempty > boardSize {
				return fmt.Errorf("too many empty squares: %w", errors.ErrInvalidFEN)
			}
			for j := 0; j < nempty; j++ {
				b.SetSquare(k, chess.EmptyPiece)
				k++
				square++
			}
		default:
			if square >= boardSize {
				return fmt.Errorf("too many squares: %w", errors.ErrInvalidFEN)
			}
			// Read ahead for multi-character symbols
			found := false
			for l := min(b.maxSymbolLength, len(placement)-i); l > 0; l-- {
				piece := b.PieceFromSymbol(placement[i : i+l])
				if piece.IsValid() {
					b.SetSquare(k, piece)
					k++
					square++
					i += l - 1
					found = true
					break
				}
			}
			if !found {
				return errors.FieldError(errors.ErrInvalidFEN, "placement", "a piece symbol", string(c))
			}
		}
	}

	if square != boardSize || square-rankEnd != b.width {
		return fmt.Errorf("placement covers %d of %d squares: %w", square, boardSize, errors.ErrInvalidFEN)
	}
	return nil
}

// parseReserve reads the pieces in hand following '['. A digit before
// a symbol repeats it.
func (b *Board) parseReserve(hand string) error {
	for i := 0; i < len(hand); i++ {
		c := hand[i]
		if c == ']' {
			return nil
		}
		if c == '-' && i == 0 {
			continue
		}

		count := 1
		if c >= '0' && c <= '9' {
			count = int(c - '0')
			i++
			if count <= 0 || i >= len(hand) {
				return errors.FieldError(errors.ErrInvalidFEN, "reserve", "a count followed by a piece", hand)
			}
			c = hand[i]
		}
		piece := b.PieceFromSymbol(string(c))
		if !piece.IsValid() {
			return errors.FieldError(errors.ErrInvalidFEN, "reserve", "a piece symbol", string(c))
		}
		b.AddToReserve(piece, count)
	}
	return errors.FieldError(errors.ErrInvalidFEN, "reserve", "a closing bracket", hand)
}

// findKings records the king squares and checks the king count.
func (b *Board) findKings() error {
	var count [2]int
	for sq, pc := range b.squares {
		if pc.Type() == King && !pc.Side().IsNull() {
			b.kingSquare[pc.Side()] = sq
			count[pc.Side()]++
		}
	}
	ok := count[chess.White] == 1 && count[chess.Black] == 1
	if b.rules.KingsCount != nil {
		ok = b.rules.KingsCount(count[chess.White], count[chess.Black])
	}
	if !ok {
		return fmt.Errorf("%d white and %d black kings: %w", count[chess.White], count[chess.Black], errors.ErrInvalidFEN)
	}
	return nil
}

// WesternSetFenTail parses the castling, en passant, halfmove and
// fullmove fields. Variants without castling and en passant may omit
// the first two.
func WesternSetFenTail(b *Board, fields []string) error {
	if len(fields) < 2 {
		return fmt.Errorf("missing castling or en passant field: %w", errors.ErrInvalidFEN)
	}
	if err := b.findKings(); err != nil {
		return err
	}

	// Short format: only the move counters
	isShortFormat := false
	if len(fields) < 3 {
		_, err := strconv.Atoi(fields[0])
		isShortFormat = err == nil
	}
	if isShortFormat && (b.rules.HasCastling || b.rules.EnPassant) {
		return fmt.Errorf("castling and en passant fields are required: %w", errors.ErrInvalidFEN)
	}

	i := 0
	if !isShortFormat {
		if fields[i] != "-" {
			for _, c := range fields[i] {
				if err := b.parseCastlingRight(c); err != nil {
					return err
				}
			}
		}
		i++
	}

	if b.rules.EnPassant && fields[i] != "-" {
		if err := b.parseEnpassant(fields[i]); err != nil {
			return err
		}
	}
	if !isShortFormat {
		i++
	}

	if i < len(fields) {
		n, err := strconv.Atoi(fields[i])
		if err != nil || n < 0 {
			return errors.FieldError(errors.ErrInvalidFEN, "halfmove clock", "a non-negative number", fields[i])
		}
		b.reversibleMoveCount = n
		i++
	}
	if i < len(fields) {
		n, err := strconv.Atoi(fields[i])
		if err != nil || n < 1 {
			return errors.FieldError(errors.ErrInvalidFEN, "fullmove number", "a positive number", fields[i])
		}
		b.plyOffset = 2 * (n - 1)
	}
	if b.side == chess.Black {
		b.plyOffset++
	}
	return nil
}

// parseEnpassant reads the en passant field. Boards whose pawns have
// several forward steps may append the square of the capturable pawn.
// The square is dropped if no pawn can capture en passant.
func (b *Board) parseEnpassant(field string) error {
	epSq := b.SquareIndexOf(field)
	fenEpTgt := 0
	if b.pawnAmbiguous {
		for i := 2; i <= len(field); i++ {
			epSq = b.SquareIndexOf(field[:i])
			fenEpTgt = b.SquareIndexOf(field[i:])
			if epSq != 0 && fenEpTgt != 0 {
				break
			}
		}
	}
	if epSq == 0 {
		return errors.FieldError(errors.ErrInvalidFEN, "en passant", "a square", field)
	}
	b.SetEnpassantSquare(epSq, 0)

	ownPawn := chess.NewPiece(b.side, Pawn)
	opPawn := chess.NewPiece(b.side.Opposite(), Pawn)
	matchesOwn, epTgt := 0, 0
	for _, ps := range b.rules.PawnSteps {
		sq := epSq - b.PawnPushOffset(ps, b.sign)
		if sq < 0 || sq >= len(b.squares) {
			continue
		}
		pc := b.squares[sq]
		if ps.Type&CaptureStep != 0 && pc == ownPawn {
			matchesOwn++
		} else if ps.Type&FreeStep != 0 && pc == opPawn && (fenEpTgt == 0 || fenEpTgt == sq) {
			epTgt = sq
		}
	}
	if matchesOwn == 0 {
		b.SetEnpassantSquare(0, 0)
	} else {
		b.SetEnpassantSquare(epSq, epTgt)
	}
	return nil
}

// FEN returns the position in FEN, with the castling field in the
// given dialect.
func (b *Board) FEN(n FenNotation) string {
	var sb strings.Builder

	i := b.arwidth * 2
	for y := 0; y < b.height; y++ {
		nempty := 0
		i++
		if y > 0 {
			sb.WriteByte('/')
		}
		for x := 0; x < b.width; x++ {
			pc := b.squares[i]
			if pc.IsEmpty() {
				nempty++
			}
			// Add the number of successive empty squares
			if nempty > 0 && (!pc.IsEmpty() || x == b.width-1) {
				sb.WriteString(strconv.Itoa(nempty))
				nempty = 0
			}
			if pc.IsValid() {
				sb.WriteString(b.PieceSymbol(pc))
			}
			i++
		}
		i++
	}

	if b.rules.HasDrops {
		sb.WriteByte('[')
		start := sb.Len()
		for side := chess.White; side <= chess.Black; side++ {
			for t := len(b.reserve[side]) - 1; t >= 1; t-- {
				symbol := b.PieceSymbol(chess.NewPiece(side, t))
				for j := 0; j < b.reserve[side][t]; j++ {
					sb.WriteString(symbol)
				}
			}
		}
		if sb.Len() == start {
			sb.WriteByte('-')
		}
		sb.WriteByte(']')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.side.Symbol())

	var tail string
	if b.rules.FenTail != nil {
		tail = b.rules.FenTail(b, n)
	} else {
		tail = WesternFenTail(b, n)
	}
	if tail != "" {
		sb.WriteByte(' ')
		sb.WriteString(tail)
	}
	return sb.String()
}

// WesternFenTail writes the castling, en passant, halfmove and
// fullmove fields.
func WesternFenTail(b *Board, n FenNotation) string {
	var sb strings.Builder
	sb.WriteString(b.castlingRightsString(n))
	sb.WriteByte(' ')

	if b.enpassantSquare != 0 {
		sb.WriteString(b.SquareString(b.enpassantSquare))
		if b.pawnAmbiguous {
			sb.WriteString(b.SquareString(b.enpassantTarget))
		}
	} else {
		sb.WriteByte('-')
	}

	if b.rules.FenInclude != nil {
		sb.WriteString(b.rules.FenInclude(b, n))
	}

	fmt.Fprintf(&sb, " %d %d", b.reversibleMoveCount, b.FullMoveNumber())
	return sb.String()
}
