package variants

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/errors"
	"github.com/lgbarn/variantboard-go/internal/zobrist"
)

// Piece types of Seirawan chess. The gate types mark a castling move
// that gates its piece on the rook's square instead of the king's.
const (
	Hawk = engine.King + 1 + iota
	Elephant
	hawkRookGate
	elephantRookGate
)

const gateOffset = hawkRookGate - Hawk

const gateStateKey = "gates"

// gateState counts the moves that touched each first-rank square which
// started the game as a gate. A square with a zero count is still open.
type gateState struct {
	moves map[int]int
}

func (s *gateState) Clone() engine.State {
	c := &gateState{moves: make(map[int]int, len(s.moves))}
	for sq, n := range s.moves {
		c.moves[sq] = n
	}
	return c
}

func gates(b *engine.Board) *gateState {
	return b.State(gateStateKey).(*gateState)
}

// open reports whether a piece may still be gated on square.
func (s *gateState) open(square int) bool {
	n, ok := s.moves[square]
	return ok && n == 0
}

func (s *gateState) touch(m chess.Move, d int) {
	for _, sq := range []int{m.Source(), m.Target()} {
		if _, ok := s.moves[sq]; ok {
			s.moves[sq] += d
		}
	}
}

// Seirawan chess starts each side with a hawk (knight plus bishop) and
// an elephant (knight plus rook) in hand. When a piece leaves its
// original square on the first rank, a piece in hand may be gated onto
// the vacated square as part of the move.
func Seirawan() *engine.Rules {
	r := engine.Western("seirawan")
	r.HasDrops = true
	r.Zobrist = func(*engine.Rules) zobrist.Strategy { return zobrist.NewWestern() }
	r.SetPiece(Hawk, engine.PieceDef{Name: "hawk", Symbol: "H", Movement: engine.KnightMovement | engine.BishopMovement, GSymbol: "A"})
	r.SetPiece(Elephant, engine.PieceDef{Name: "elephant", Symbol: "E", Movement: engine.KnightMovement | engine.RookMovement, GSymbol: "C"})
	r.SetPiece(hawkRookGate, engine.PieceDef{Name: "auxhawk", Symbol: "X", GSymbol: "A"})
	r.SetPiece(elephantRookGate, engine.PieceDef{Name: "auxelephant", Symbol: "Y", GSymbol: "C"})
	r.PromotionTypes = append(r.PromotionTypes, Hawk, Elephant)
	r.StartFEN = staticFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR[EHeh] w BCDFGbcdfgKQkq - 0 1")
	r.AddState(gateStateKey, func() engine.State {
		return &gateState{moves: make(map[int]int)}
	})

	r.GenerateMovesForPiece = func(b *engine.Board, moves []chess.Move, pieceType, square int) []chess.Move {
		if square == 0 {
			return moves
		}
		start := len(moves)
		moves = engine.WesternMovesForPiece(b, moves, pieceType, square)
		if !gates(b).open(square) {
			return moves
		}
		side := b.SideToMove()
		plain := moves[start:len(moves):len(moves)]
		for _, m := range plain {
			for _, t := range []int{Hawk, Elephant} {
				if b.ReserveCount(chess.NewPiece(side, t)) == 0 {
					continue
				}
				moves = append(moves, chess.NewMove(m.Source(), m.Target(), t))
				if isCastling(b, m) {
					moves = append(moves, chess.NewMove(m.Source(), m.Target(), t+gateOffset))
				}
			}
		}
		return moves
	}

	r.MakeMove = func(b *engine.Board, m chess.Move, tr *chess.BoardTransition) {
		side := b.SideToMove()
		s := gates(b)
		gated := isGating(b, m) && s.open(m.Source())
		engine.WesternMakeMove(b, m, tr)
		if gated {
			square, t := gateSquare(m)
			piece := chess.NewPiece(side, t)
			b.RemoveFromReserve(piece)
			b.SetSquare(square, piece)
			if tr != nil {
				tr.AddDrop(piece, b.ChessSquare(square))
			}
		}
		s.touch(m, 1)
	}
	r.UndoMove = func(b *engine.Board, m chess.Move) {
		side := b.SideToMove()
		gates(b).touch(m, -1)
		if isGating(b, m) {
			square, t := gateSquare(m)
			if piece := b.At(square); piece == chess.NewPiece(side, t) {
				b.AddToReserve(piece, 1)
				b.SetSquare(square, chess.EmptyPiece)
			}
			m = chess.NewMove(m.Source(), m.Target(), 0)
		}
		engine.WesternUndoMove(b, m)
	}

	r.LANMoveString = func(b *engine.Board, m chess.Move) string {
		t := m.Promotion()
		if t == chess.NoPieceType || !isCastling(b, m) {
			return engine.WesternLANMoveString(b, m)
		}
		if t >= hawkRookGate {
			// The rook's square is written as the rook taking its king
			return engine.BasicLANMoveString(b, chess.NewMove(m.Target(), m.Source(), t-gateOffset))
		}
		return engine.WesternLANMoveString(b, chess.NewMove(m.Source(), m.Target(), 0)) +
			strings.ToLower(b.TypeSymbol(t))
	}
	r.MoveFromLAN = func(b *engine.Board, s string) chess.Move {
		side := b.SideToMove()
		basic := engine.BasicMoveFromLAN(b, s)
		if basic.IsNull() || basic.IsDrop() {
			return basic
		}
		t := basic.Promotion()
		if t != chess.NoPieceType && b.At(basic.Source()) == chess.NewPiece(side, engine.Rook) &&
			basic.Target() == b.KingSquare(side) {
			return chess.NewMove(basic.Target(), basic.Source(), t+gateOffset)
		}
		m := engine.WesternMoveFromLAN(b, s)
		if m.IsNull() {
			return m
		}
		return chess.NewMove(m.Source(), m.Target(), t)
	}

	// Gating is written with a slash, like "Nc3/H". Castling names the
	// gate square: "O-O/He1" or "O-O/Hh1".
	r.SANMoveString = func(b *engine.Board, m chess.Move) string {
		san := engine.WesternSANMoveString(b, m)
		if !isGating(b, m) {
			return san
		}
		if !isCastling(b, m) {
			return strings.Replace(san, "=", "/", 1)
		}
		square, t := gateSquare(m)
		mark := checkMark(san)
		return strings.TrimSuffix(san, mark) + "/" + b.TypeSymbol(t) + b.SquareString(square) + mark
	}
	r.MoveFromSAN = func(b *engine.Board, s string) chess.Move {
		slash := strings.IndexByte(s, '/')
		if slash < 0 {
			return engine.WesternMoveFromSAN(b, s)
		}
		m := engine.WesternMoveFromSAN(b, s[:slash])
		if m.IsNull() || slash+1 >= len(s) {
			return chess.NullMove
		}
		t := b.PieceFromSymbol(s[slash+1 : slash+2]).Type()
		if t != Hawk && t != Elephant {
			return chess.NullMove
		}
		// A castling gate on the rook's square names the rook's file
		if isCastling(b, m) && slash+2 < len(s) && int(s[slash+2]-'a') == b.ChessSquare(m.Target()).File {
			t += gateOffset
		}
		m = chess.NewMove(m.Source(), m.Target(), t)
		if !b.IsLegalMove(m) {
			return chess.NullMove
		}
		return m
	}

	r.FenTail = seirawanFenTail
	r.SetFenTail = seirawanSetFenTail
	return r
}

// isGating reports whether m gates a piece: a promotion by a piece
// leaving its first rank.
func isGating(b *engine.Board, m chess.Move) bool {
	if m.IsDrop() || m.Promotion() == chess.NoPieceType {
		return false
	}
	return b.RelativeRank(m.Source(), b.SideToMove()) == 0
}

// gateSquare returns where m gates its piece and the piece's type.
func gateSquare(m chess.Move) (int, int) {
	if t := m.Promotion(); t >= hawkRookGate {
		return m.Target(), t - gateOffset
	}
	return m.Source(), m.Promotion()
}

// seirawanFenTail lists the open gates before the castling rights, in
// the castling field. Gates implied by a castling right are left out,
// and so are the gates of a side with an empty hand.
func seirawanFenTail(b *engine.Board, n engine.FenNotation) string {
	s := gates(b)
	var field strings.Builder
	for _, side := range []chess.Side{chess.White, chess.Black} {
		if b.ReserveCount(chess.NewPiece(side, Hawk))+b.ReserveCount(chess.NewPiece(side, Elephant)) == 0 {
			continue
		}
		implied := make(map[int]bool)
		for cside := engine.QueenSide; cside <= engine.KingSide; cside++ {
			if rook := b.CastlingRookSquare(side, cside); rook != 0 {
				implied[rook] = true
				implied[b.KingSquare(side)] = true
			}
		}
		var files []int
		for sq := range s.moves {
			if s.open(sq) && !implied[sq] && b.RelativeRank(sq, side) == 0 {
				files = append(files, b.ChessSquare(sq).File)
			}
		}
		sort.Ints(files)
		for _, f := range files {
			c := rune('a' + f)
			if side == chess.White {
				c = unicode.ToUpper(c)
			}
			field.WriteRune(c)
		}
	}

	for _, right := range []struct {
		side  chess.Side
		cside engine.CastlingSide
		c     byte
	}{
		{chess.White, engine.KingSide, 'K'},
		{chess.White, engine.QueenSide, 'Q'},
		{chess.Black, engine.KingSide, 'k'},
		{chess.Black, engine.QueenSide, 'q'},
	} {
		if b.HasCastlingRight(right.side, right.cside) {
			field.WriteByte(right.c)
		}
	}
	if field.Len() == 0 {
		field.WriteByte('-')
	}

	_, rest, _ := strings.Cut(engine.WesternFenTail(b, n), " ")
	return field.String() + " " + rest
}

// seirawanSetFenTail reads the gates from the castling field and hands
// the castling rights to the Western parser. A castling right opens the
// king's and the rook's squares.
func seirawanSetFenTail(b *engine.Board, fields []string) error {
	if len(fields) == 0 {
		return engine.WesternSetFenTail(b, fields)
	}
	var rights strings.Builder
	var gateFiles []rune
	if fields[0] != "-" {
		for _, c := range fields[0] {
			switch unicode.ToLower(c) {
			case 'k', 'q':
				rights.WriteRune(c)
			default:
				gateFiles = append(gateFiles, c)
			}
		}
	}
	if rights.Len() == 0 {
		rights.WriteByte('-')
	}
	rest := append([]string{rights.String()}, fields[1:]...)
	if err := engine.WesternSetFenTail(b, rest); err != nil {
		return err
	}

	s := gates(b)
	for _, c := range gateFiles {
		side, rank := chess.White, 0
		if unicode.IsLower(c) {
			side, rank = chess.Black, b.Height()-1
		}
		file := int(unicode.ToLower(c) - 'a')
		if file < 0 || file >= b.Width() {
			return errors.FieldError(errors.ErrInvalidFEN, "gates", "a file letter", string(c))
		}
		sq := b.SquareIndex(chess.NewSquare(file, rank))
		if b.At(sq).Side() != side {
			return errors.FieldError(errors.ErrInvalidFEN, "gates", "a piece on the gate square", string(c))
		}
		s.moves[sq] = 0
	}
	for _, side := range []chess.Side{chess.White, chess.Black} {
		for cside := engine.QueenSide; cside <= engine.KingSide; cside++ {
			if rook := b.CastlingRookSquare(side, cside); rook != 0 {
				s.moves[rook] = 0
				s.moves[b.KingSquare(side)] = 0
			}
		}
	}
	return nil
}
