package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/errors"
)

// TypeSymbol returns the upper case symbol of a piece type.
func (b *Board) TypeSymbol(pieceType int) string {
	return strings.ToUpper(b.PieceDef(pieceType).Symbol)
}

// MoveString formats a legal move in notation n.
func (b *Board) MoveString(m chess.Move, n MoveNotation) string {
	if n == StandardAlgebraic {
		return b.SANMoveString(m)
	}
	return b.LANMoveString(m)
}

// MoveFromString parses a move in SAN or, failing that, in LAN. The
// move must be legal.
func (b *Board) MoveFromString(s string) (chess.Move, error) {
	if m := b.MoveFromSAN(s); !m.IsNull() {
		return m, nil
	}
	m := b.MoveFromLAN(s)
	if m.IsNull() {
		return chess.NullMove, &errors.ParseError{Err: errors.ErrInvalidMoveString, Field: "move", Got: s}
	}
	if !b.IsLegalMove(m) {
		return chess.NullMove, fmt.Errorf("%s: %w", s, errors.ErrIllegalMove)
	}
	return m, nil
}

// SANMoveString formats a legal move in standard algebraic notation.
func (b *Board) SANMoveString(m chess.Move) string {
	if b.rules.SANMoveString != nil {
		return b.rules.SANMoveString(b, m)
	}
	return WesternSANMoveString(b, m)
}

// LANMoveString formats a move in long algebraic notation.
func (b *Board) LANMoveString(m chess.Move) string {
	if b.rules.LANMoveString != nil {
		return b.rules.LANMoveString(b, m)
	}
	return WesternLANMoveString(b, m)
}

// MoveFromSAN parses a legal move in standard algebraic notation. It
// returns the null move if s is malformed, ambiguous or illegal.
func (b *Board) MoveFromSAN(s string) chess.Move {
	if b.rules.MoveFromSAN != nil {
		return b.rules.MoveFromSAN(b, s)
	}
	return WesternMoveFromSAN(b, s)
}

// MoveFromLAN parses a move in long algebraic notation without
// checking its legality.
func (b *Board) MoveFromLAN(s string) chess.Move {
	if b.rules.MoveFromLAN != nil {
		return b.rules.MoveFromLAN(b, s)
	}
	return WesternMoveFromLAN(b, s)
}

// GenericMove converts m to board-independent squares.
func (b *Board) GenericMove(m chess.Move) chess.GenericMove {
	if m.IsNull() {
		return chess.NullGenericMove
	}
	g := chess.GenericMove{
		Source:    chess.NullSquare,
		Target:    b.ChessSquare(m.Target()),
		Promotion: m.Promotion(),
	}
	if m.Source() != 0 {
		g.Source = b.ChessSquare(m.Source())
	}
	return g
}

// MoveFromGenericMove converts a generic move to this board's indices.
func (b *Board) MoveFromGenericMove(g chess.GenericMove) chess.Move {
	return chess.NewMove(b.SquareIndex(g.Source), b.SquareIndex(g.Target), g.Promotion)
}

// CheckSuffix returns "+" if m gives check, "#" if it mates and ""
// otherwise.
func (b *Board) CheckSuffix(m chess.Move) string {
	b.MakeMove(m, nil)
	defer b.UndoMove()

	if !b.InCheck(b.side) {
		return ""
	}
	if b.CanMove() {
		return "+"
	}
	return "#"
}

// BasicLANMoveString writes a move as source and target squares
// followed by a lower case promotion symbol. Drops are written "N@e4".
func BasicLANMoveString(b *Board, m chess.Move) string {
	if m.IsDrop() {
		return b.TypeSymbol(m.Promotion()) + "@" + b.SquareString(m.Target())
	}
	s := b.SquareString(m.Source()) + b.SquareString(m.Target())
	if m.Promotion() != chess.NoPieceType {
		s += strings.ToLower(b.TypeSymbol(m.Promotion()))
	}
	return s
}

// WesternLANMoveString writes castling as the king's move to its
// destination, except in random variants where it stays king takes
// rook.
func WesternLANMoveString(b *Board, m chess.Move) string {
	if cside := b.CastlingSideOf(m); cside != NoCastlingSide && !b.rules.Random {
		m = chess.NewMove(m.Source(), b.castleTarget[b.side][cside], 0)
	}
	return BasicLANMoveString(b, m)
}

// BasicMoveFromLAN parses source and target squares of any length, an
// optional promotion symbol, or a drop.
func BasicMoveFromLAN(b *Board, s string) chess.Move {
	str := strings.Map(func(r rune) rune {
		if strings.ContainsRune("x=+#!?", r) {
			return -1
		}
		return r
	}, s)
	if len(str) < 4 {
		return chess.NullMove
	}

	if drop := strings.IndexByte(str, '@'); drop > 0 {
		piece := b.PieceFromSymbol(str[:drop])
		if !piece.IsValid() {
			return chess.NullMove
		}
		target := b.SquareIndexOf(str[drop+1:])
		if target == 0 {
			return chess.NullMove
		}
		return chess.NewDrop(piece.Type(), target)
	}

	n := len(str)
	promotion := chess.EmptyPiece
	if n > 4 {
		promotion = b.PieceFromSymbol(str[n-1:])
	}
	if promotion.IsValid() {
		n--
	}

	for i := 2; i < n-1; i++ {
		source := b.SquareIndexOf(str[:i])
		target := b.SquareIndexOf(str[i:n])
		if source == 0 || target == 0 {
			continue
		}
		return chess.NewMove(source, target, promotion.Type())
	}
	return chess.NullMove
}

// WesternMoveFromLAN also accepts castling written as the king's move
// to its destination.
func WesternMoveFromLAN(b *Board, s string) chess.Move {
	m := BasicMoveFromLAN(b, s)
	side := b.side
	source, target := m.Source(), m.Target()

	if !m.IsNull() && source == b.kingSquare[side] && abs(source-target) != 1 {
		switch target {
		case b.castleTarget[side][QueenSide]:
			target = b.castlingRooks[side][QueenSide]
		case b.castleTarget[side][KingSide]:
			target = b.castlingRooks[side][KingSide]
		default:
			target = 0
		}
		if target != 0 {
			return chess.NewMove(source, target, 0)
		}
	}
	return m
}

// WesternSANMoveString formats a legal move in SAN, with file and rank
// disambiguation, "O-O"/"O-O-O" for castling and LAN for drops.
func WesternSANMoveString(b *Board, m chess.Move) string {
	source, target := m.Source(), m.Target()
	piece := b.squares[source]
	capture := b.squares[target]
	square := b.ChessSquare(source)
	if source == target {
		capture = chess.EmptyPiece
	}

	checkOrMate := b.CheckSuffix(m)

	if source == 0 && m.Promotion() != chess.NoPieceType {
		return b.LANMoveString(m) + checkOrMate
	}

	needRank, needFile := false, false
	side := b.side

	switch piece.Type() {
	case Pawn:
		if b.pawnAmbiguous {
			needFile, needRank = true, true
		}
		if target == b.enpassantSquare {
			capture = chess.NewPiece(side.Opposite(), Pawn)
		}
		if capture.IsValid() {
			needFile = true
		}
	case King:
		if cside := b.CastlingSideOf(m); cside != NoCastlingSide {
			if cside == QueenSide {
				return "O-O-O" + checkOrMate
			}
			return "O-O" + checkOrMate
		}
	}

	var sb strings.Builder
	if piece.Type() != Pawn {
		sb.WriteString(b.TypeSymbol(b.DemotedType(piece.Type())))
		for _, m2 := range b.sanCandidates(piece.Type()) {
			if m2.Source() == 0 || m2.Source() == source || m2.Target() != target {
				continue
			}
			if !b.isLegal(m2) {
				continue
			}
			square2 := b.ChessSquare(m2.Source())
			if square2.File != square.File {
				needFile = true
			} else if square2.Rank != square.Rank {
				needRank = true
			}
		}
	}
	if needFile {
		sb.WriteByte(byte('a' + square.File))
	}
	if needRank {
		fmt.Fprintf(&sb, "%d", square.Rank+1)
	}
	if capture.IsValid() {
		sb.WriteByte('x')
	}
	sb.WriteString(b.SquareString(target))
	if m.Promotion() != chess.NoPieceType {
		sb.WriteString("=" + b.TypeSymbol(b.DemotedType(m.Promotion())))
	}
	sb.WriteString(checkOrMate)
	return sb.String()
}

// sanCandidates returns the board moves of every piece SAN writes
// with the same letter as pieceType.
func (b *Board) sanCandidates(pieceType int) []chess.Move {
	if b.rules.DemotedType == nil {
		return b.GenerateMoves(nil, pieceType)
	}
	var moves []chess.Move
	want := b.DemotedType(pieceType)
	for _, m := range b.GenerateMoves(nil, chess.NoPieceType) {
		if m.Source() != 0 && b.DemotedType(b.squares[m.Source()].Type()) == want {
			moves = append(moves, m)
		}
	}
	return moves
}

// sanDigits returns the longest run of digits in s on boards with
// multi-digit ranks, and 1 otherwise.
func (b *Board) sanDigits(s string) int {
	digits := 1
	if !b.multiDigit {
		return digits
	}
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			count++
			digits = max(digits, count)
		} else {
			count = 0
		}
	}
	return digits
}

// WesternMoveFromSAN parses a SAN move and returns the unique legal
// move it describes, or the null move.
func WesternMoveFromSAN(b *Board, str string) chess.Move {
	if len(str) < 2 {
		return chess.NullMove
	}

	// Ignore check, mate and annotation marks
	mstr := strings.TrimRight(str, "+#!?")
	if len(mstr) < 2 {
		return chess.NullMove
	}
	side := b.side

	// Castling
	if strings.HasPrefix(mstr, "O-O") {
		var cside CastlingSide
		switch mstr {
		case "O-O":
			cside = KingSide
		case "O-O-O":
			cside = QueenSide
		default:
			return chess.NullMove
		}
		m := chess.NewMove(b.kingSquare[side], b.castlingRooks[side][cside], 0)
		if b.IsLegalMove(m) {
			return m
		}
		return chess.NullMove
	}

	digits := b.sanDigits(mstr)
	sourceSq := chess.NullSquare
	targetSq := chess.NullSquare
	it := 0
	at := func(i int) byte {
		if i < len(mstr) {
			return mstr[i]
		}
		return 0
	}
	substr := func(from, n int) string {
		from = min(from, len(mstr))
		return mstr[from:min(from+n, len(mstr))]
	}

	// A SAN move can't start with the capture mark
	if mstr[0] == 'x' {
		return chess.NullMove
	}
	// A pawn move may name the pawn, a pawn drop always does
	if p := b.PieceFromSymbol(mstr[:1]); p.Type() == Pawn && p.Side() == chess.White && at(1) != '@' {
		it++
	}

	piece := b.PieceFromSymbol(substr(it, 1))
	if piece.Side() != chess.White {
		piece = chess.EmptyPiece
	} else {
		piece = piece.WithSide(side)
	}

	if piece.IsEmpty() {
		piece = chess.NewPiece(side, Pawn)
		// Pawns with several forward steps are written with their
		// source square
		if b.pawnAmbiguous {
			return b.PawnMoveFromSAN(mstr[it:])
		}
		targetSq = b.ParseSquare(substr(it, 1+digits))
		if b.IsValidSquare(targetSq) {
			it += 1 + digits
		}
	} else {
		it++
		// Drop moves
		if at(it) == '@' {
			targetSq = b.ParseSquare(mstr[max(0, len(mstr)-1-digits):])
			if !b.IsValidSquare(targetSq) {
				return chess.NullMove
			}
			m := chess.NewDrop(piece.Type(), b.SquareIndex(targetSq))
			if b.IsLegalMove(m) {
				return m
			}
			return chess.NullMove
		}
	}

	stringIsCapture := false

	if !b.IsValidSquare(targetSq) {
		// Source square's file
		sourceSq.File = int(at(it)) - 'a'
		if sourceSq.File < 0 || sourceSq.File >= b.width {
			sourceSq.File = -1
		} else if it++; it >= len(mstr) {
			return chess.NullMove
		}

		// Source square's rank
		if c := at(it); c >= '0' && c <= '9' {
			rank, err := strconv.Atoi(substr(it, digits))
			if err != nil || rank < 1 || rank > b.height {
				return chess.NullMove
			}
			sourceSq.Rank = rank - 1
			it += digits
		}

		if it >= len(mstr) {
			// What looked like the source square was the target
			if !b.IsValidSquare(sourceSq) {
				return chess.NullMove
			}
			targetSq = sourceSq
			sourceSq = chess.NullSquare
		} else if at(it) == 'x' {
			if it++; it >= len(mstr) {
				return chess.NullMove
			}
			stringIsCapture = true
		}

		// Target square
		if !b.IsValidSquare(targetSq) {
			if it+1 >= len(mstr) {
				return chess.NullMove
			}
			tmp := substr(it, 1+digits)
			targetSq = b.ParseSquare(tmp)
			it += len(tmp)
		}
	}
	if !b.IsValidSquare(targetSq) {
		return chess.NullMove
	}
	target := b.SquareIndex(targetSq)

	// The string must agree on whether the move is a capture
	isCapture := b.squares[target].Side() == side.Opposite() ||
		(target == b.enpassantSquare && piece.Type() == Pawn)
	if isCapture != stringIsCapture {
		return chess.NullMove
	}

	// Promotion
	promotion := chess.NoPieceType
	if it < len(mstr) {
		if c := at(it); c == '=' || c == '(' {
			if it++; it >= len(mstr) {
				return chess.NullMove
			}
		}
		promotion = b.PieceFromSymbol(substr(it, 1)).Type()
		if promotion == chess.NoPieceType {
			return chess.NullMove
		}
	}

	match := chess.NullMove
	for _, m := range b.sanCandidates(piece.Type()) {
		if m.Source() == 0 || m.Target() != target {
			continue
		}
		sourceSq2 := b.ChessSquare(m.Source())
		if sourceSq.Rank != -1 && sourceSq2.Rank != sourceSq.Rank {
			continue
		}
		if sourceSq.File != -1 && sourceSq2.File != sourceSq.File {
			continue
		}
		// Castling moves were handled earlier
		if b.squares[target] == chess.NewPiece(side, Rook) {
			continue
		}
		if b.DemotedType(m.Promotion()) != promotion {
			continue
		}
		if !b.isLegal(m) {
			continue
		}
		// Several matching moves make the string ambiguous
		if !match.IsNull() {
			return chess.NullMove
		}
		match = m
	}
	return match
}

// leadingSquare reads the square at the start of s and returns it with
// the number of bytes it used.
func (b *Board) leadingSquare(s string) (chess.Square, int) {
	n := 1
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	sq := b.ParseSquare(s[:n])
	if !b.IsValidSquare(sq) {
		return chess.NullSquare, 0
	}
	return sq, n
}

// PawnMoveFromSAN parses a legal pawn move written as source and
// target square, like "e2d3" or "e4xe5", with an optional promotion.
func (b *Board) PawnMoveFromSAN(s string) chess.Move {
	s = strings.TrimRight(s, "+#!?")
	sourceSq, n := b.leadingSquare(s)
	if n == 0 {
		return chess.NullMove
	}
	s = s[n:]
	stringIsCapture := strings.HasPrefix(s, "x")
	if stringIsCapture {
		s = s[1:]
	}
	targetSq, n := b.leadingSquare(s)
	if n == 0 {
		return chess.NullMove
	}
	s = strings.TrimSuffix(strings.TrimLeft(s[n:], "=("), ")")

	promotion := chess.NoPieceType
	if s != "" {
		promotion = b.PieceFromSymbol(s).Type()
		if promotion == chess.NoPieceType {
			return chess.NullMove
		}
	}

	source, target := b.SquareIndex(sourceSq), b.SquareIndex(targetSq)
	isCapture := b.squares[target].Side() == b.side.Opposite() || target == b.enpassantSquare
	if isCapture != stringIsCapture {
		return chess.NullMove
	}
	for _, m := range b.GenerateMoves(nil, Pawn) {
		if m.Source() == source && m.Target() == target &&
			b.DemotedType(m.Promotion()) == promotion && b.isLegal(m) {
			return m
		}
	}
	return chess.NullMove
}
