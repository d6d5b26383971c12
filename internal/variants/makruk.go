package variants

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/errors"
)

// Makruk piece names for the Western type slots.
const (
	Bia  = engine.Pawn
	Ma   = engine.Knight
	Khon = engine.Bishop
	Rua  = engine.Rook
	Met  = engine.Queen
	Khun = engine.King
)

const countingStateKey = "counting"

// countingRecord is the counting status after one ply.
type countingRecord struct {
	// honour is set once one side is reduced to a bare king or the last
	// pawn is gone and the piece's honour counting started.
	honour bool
	limit  int
	plies  int
}

type countingState struct {
	// western means the position came from a FEN with a halfmove
	// clock; the fifty moves rule applies instead of counting.
	western bool
	history []countingRecord
}

func (s *countingState) Clone() engine.State {
	return &countingState{western: s.western, history: append([]countingRecord(nil), s.history...)}
}

func (s *countingState) top() *countingRecord {
	return &s.history[len(s.history)-1]
}

func counting(b *engine.Board) *countingState {
	return b.State(countingStateKey).(*countingState)
}

// countingRules selects when counting starts.
type countingRules int

const (
	// makrukCounting starts the board's honour count when the last
	// pawn is gone.
	makrukCounting countingRules = iota
	// bareKingCounting starts the piece's honour count only when a
	// side is left with a bare king.
	bareKingCounting
)

// Makruk is Thai chess: shatranj-like pieces with the khon (silver
// general) and the met (ferz), pawns on the third rank promoting on the
// sixth, and counting rules instead of the fifty moves rule.
func Makruk() *engine.Rules {
	r := engine.Western("makruk")
	makrukPieces(r)
	r.StartFEN = staticFEN("rnsmksnr/8/pppppppp/8/8/PPPPPPPP/8/RNSKMSNR w - 0 0 1")
	countingFragment(r, makrukCounting, makrukLimit)
	countingFen(r)
	r.Result = makrukResult(insufficientMakrukMaterial)
	return r
}

// Makpong is Makruk where a king in check may only capture its single
// checker, and only bare kings are insufficient material.
func Makpong() *engine.Rules {
	r := Makruk()
	r.Variant = "makpong"
	r.GenerateMovesForPiece = makpongMoves
	r.Result = makrukResult(func(b *engine.Board) bool {
		return b.PieceCount(chess.NoSide, chess.NoPieceType) == b.PieceCount(chess.NoSide, engine.King)
	})
	return r
}

// Asean chess uses Western names and notation for the Makruk pieces.
// Pawns promote on the last rank to any piece and counting starts with
// a bare king.
func Asean() *engine.Rules {
	r := engine.Western("asean")
	makrukPieces(r)
	r.SetPiece(engine.Bishop, engine.PieceDef{Name: "bishop", Symbol: "B", Movement: engine.SilverMovement})
	r.SetPiece(engine.Queen, engine.PieceDef{Name: "queen", Symbol: "Q", Movement: engine.FerzMovement})
	r.SetPiece(engine.Pawn, engine.PieceDef{Name: "pawn", Symbol: "P"})
	r.SetPiece(engine.Knight, engine.PieceDef{Name: "knight", Symbol: "N", Movement: engine.KnightMovement})
	r.SetPiece(engine.Rook, engine.PieceDef{Name: "rook", Symbol: "R", Movement: engine.RookMovement})
	r.SetPiece(engine.King, engine.PieceDef{Name: "king", Symbol: "K"})
	r.PromotionTypes = []int{engine.Knight, engine.Bishop, engine.Rook, engine.Queen}
	r.IsPromotionSquare = promotionFromRank(7)
	r.StartFEN = staticFEN("rnbqkbnr/8/pppppppp/8/8/PPPPPPPP/8/RNBQKBNR w - - 0 1")
	countingFragment(r, bareKingCounting, aseanLimit)

	r.Result = func(b *engine.Board) chess.Result {
		res := engine.WesternResult(b)
		// Repetition does not end the game
		if !res.IsNone() && (!res.IsDraw() || b.RepeatCount() < 2) {
			return res
		}
		if insufficientMakrukMaterial(b) {
			return chess.NewDraw("Draw by insufficient mating material")
		}
		return countingResult(b)
	}
	return r
}

// AiWok is Makruk with the met replaced by the ai-wok, which moves as
// a rook, a knight and a ferz. Pawns promote to an ai-wok.
func AiWok() *engine.Rules {
	r := engine.Western("aiwok")
	makrukPieces(r)
	r.SetPiece(Met, engine.PieceDef{
		Name:     "ai-wok",
		Symbol:   "A",
		Movement: engine.RookMovement | engine.KnightMovement | engine.FerzMovement,
	})
	r.StartFEN = staticFEN("rnsaksnr/8/pppppppp/8/8/PPPPPPPP/8/RNSKASNR w - 0 0 1")
	countingFragment(r, makrukCounting, aiwokLimit)
	countingFen(r)
	r.Result = makrukResult(func(b *engine.Board) bool {
		return b.PieceCount(chess.NoSide, Met) == 0 && insufficientMakrukMaterial(b)
	})
	return r
}

// aiwokLimit counts the ai-wok as a rook.
func aiwokLimit(b *engine.Board) int {
	side := b.SideToMove()
	switch heavy := b.PieceCount(side, Rua) + b.PieceCount(side, Met); {
	case heavy > 1:
		return 8
	case heavy == 1:
		return 16
	}
	return makrukLimit(b)
}

// makrukPieces sets up the Thai pieces and the pawn rules.
func makrukPieces(r *engine.Rules) {
	shatranjRules(r)
	r.SetPiece(Bia, engine.PieceDef{Name: "bia", Symbol: "P"})
	r.SetPiece(Ma, engine.PieceDef{Name: "ma", Symbol: "N", Movement: engine.KnightMovement})
	r.SetPiece(Khon, engine.PieceDef{Name: "khon", Symbol: "S", Movement: engine.SilverMovement, GSymbol: "E"})
	r.SetPiece(Rua, engine.PieceDef{Name: "rua", Symbol: "R", Movement: engine.RookMovement})
	r.SetPiece(Met, engine.PieceDef{Name: "met", Symbol: "M", Movement: engine.FerzMovement, GSymbol: "F"})
	r.SetPiece(Khun, engine.PieceDef{Name: "khun", Symbol: "K"})
	r.PromotionTypes = []int{Met}
	r.IsPromotionSquare = promotionFromRank(5)
}

// promotionFromRank promotes pawns reaching the given relative rank or
// beyond.
func promotionFromRank(rank int) func(b *engine.Board, source, target int) bool {
	return func(b *engine.Board, _, target int) bool {
		return b.RelativeRank(target, b.SideToMove()) >= rank
	}
}

// countingFragment tracks the counting status in a state that follows
// every move.
func countingFragment(r *engine.Rules, rules countingRules, limit func(b *engine.Board) int) {
	r.AddState(countingStateKey, func() engine.State {
		return &countingState{history: []countingRecord{{}}}
	})

	prevMake := r.MakeMove
	r.MakeMove = func(b *engine.Board, m chess.Move, tr *chess.BoardTransition) {
		if prevMake != nil {
			prevMake(b, m, tr)
		} else {
			engine.WesternMakeMove(b, m, tr)
		}

		s := counting(b)
		rec := *s.top()
		if rec.limit > 0 {
			rec.plies++
		}

		side := b.SideToMove()
		noPawns := b.PieceCount(chess.NoSide, engine.Pawn) == 0
		bare := b.PieceCount(side, chess.NoPieceType) < 2 || b.PieceCount(side.Opposite(), chess.NoPieceType) < 2
		if !rec.honour && bare && (rules == bareKingCounting || noPawns) {
			rec.honour = true
			rec.plies = 2 * b.PieceCount(chess.NoSide, chess.NoPieceType)
			rec.limit = 2 * 64
			if noPawns {
				rec.limit = 2 * limit(b)
			}
		}
		if !rec.honour && noPawns && rules == makrukCounting && rec.limit <= 0 {
			rec.plies = 0
			rec.limit = 2 * 64
		}
		s.history = append(s.history, rec)
	}

	prevUndo := r.UndoMove
	r.UndoMove = func(b *engine.Board, m chess.Move) {
		s := counting(b)
		s.history = s.history[:len(s.history)-1]
		if prevUndo != nil {
			prevUndo(b, m)
		} else {
			engine.WesternUndoMove(b, m)
		}
	}

	// The honour count resumes from the position
	prevTail := r.SetFenTail
	r.SetFenTail = func(b *engine.Board, fields []string) error {
		var err error
		if prevTail != nil {
			err = prevTail(b, fields)
		} else {
			err = engine.WesternSetFenTail(b, fields)
		}
		if err != nil {
			return err
		}
		noPawns := b.PieceCount(chess.NoSide, engine.Pawn) == 0
		bare := b.PieceCount(chess.White, chess.NoPieceType) < 2 || b.PieceCount(chess.Black, chess.NoPieceType) < 2
		if bare && (rules == bareKingCounting || noPawns) {
			counting(b).top().honour = true
		}
		return nil
	}
}

// countingFen stores the counting limit and the ply count in the FEN
// fields that hold the en passant square and the halfmove clock in
// Western chess. A FEN in Western format selects the fifty moves rule.
func countingFen(r *engine.Rules) {
	r.FenTail = func(b *engine.Board, n engine.FenNotation) string {
		s := counting(b)
		if s.western {
			return engine.WesternFenTail(b, n)
		}
		rec := s.top()
		return fmt.Sprintf("- %d %d %d", rec.limit, rec.plies, b.FullMoveNumber())
	}

	prevTail := r.SetFenTail
	r.SetFenTail = func(b *engine.Board, fields []string) error {
		if err := prevTail(b, fields); err != nil {
			return err
		}
		if len(fields) <= 1 || len(fields) == 3 {
			return fmt.Errorf("expected castling, counting limit, ply count and move number: %w", errors.ErrInvalidFEN)
		}

		s := counting(b)
		limit, err := strconv.Atoi(fields[1])
		if err != nil || len(fields) == 2 {
			s.western = true
			return nil
		}
		plies, err := strconv.Atoi(fields[2])
		if err != nil {
			return errors.FieldError(errors.ErrInvalidFEN, "ply count", "a number", fields[2])
		}
		// Counting FENs have no halfmove clock
		b.SetReversibleMoveCount(0)
		rec := s.top()
		rec.limit, rec.plies = limit, plies
		return nil
	}
}

// makrukLimit returns the counting limit in moves for the side to move.
// Stronger material has to mate sooner.
func makrukLimit(b *engine.Board) int {
	side := b.SideToMove()
	rooks := b.PieceCount(side, Rua)
	khons := b.PieceCount(side, Khon)
	switch {
	case rooks > 1:
		return 8
	case rooks == 1:
		return 16
	case khons > 1:
		return 22
	case b.PieceCount(side, Ma) > 1:
		return 32
	case khons == 1:
		return 44
	}
	return 64
}

func aseanLimit(b *engine.Board) int {
	side := b.SideToMove()
	queens := b.PieceCount(side, engine.Queen)
	switch {
	case b.PieceCount(side, engine.Rook) > 0:
		return 16
	case b.PieceCount(side, engine.Bishop) > 0 && queens > 0:
		return 44
	case b.PieceCount(side, engine.Knight) > 0 && queens > 0:
		return 64
	}
	return 1000
}

// makrukMaterial scores the material on the board. Below 25 no side can
// force mate.
func makrukMaterial(b *engine.Board) int {
	material := 0
	var mets [2]bool
	for i := 0; i < b.ArraySize(); i++ {
		pc := b.At(i)
		if !pc.IsValid() {
			continue
		}
		switch pc.Type() {
		case Met:
			material++
			color := b.ChessSquare(i).Color()
			if color != chess.NoColor && !mets[color] {
				material += 2
				mets[color] = true
			}
		case Ma:
			material += 4
		default:
			material += 9
		}
	}
	return material
}

func insufficientMakrukMaterial(b *engine.Board) bool {
	return makrukMaterial(b) < 25
}

func makrukResult(insufficient func(b *engine.Board) bool) func(b *engine.Board) chess.Result {
	return func(b *engine.Board) chess.Result {
		side := b.SideToMove()
		if !b.CanMove() {
			if b.InCheck(side) {
				opp := side.Opposite()
				return chess.NewWin(opp, opp.String()+" mates")
			}
			return chess.NewDraw("Draw by stalemate")
		}
		if insufficient(b) {
			return chess.NewDraw("Draw by insufficient mating material")
		}
		if !counting(b).western {
			return countingResult(b)
		}
		if b.ReversibleMoveCount() >= 100 {
			return chess.NewDraw("Draw by fifty move rule")
		}
		return chess.NoGameResult
	}
}

// countingResult draws the game once the ply count reaches the limit.
func countingResult(b *engine.Board) chess.Result {
	rec := counting(b).top()
	if rec.limit <= 0 || rec.plies < rec.limit {
		return chess.NoGameResult
	}
	if rec.honour {
		return chess.NewDraw("Draw by counting rules.")
	}
	return chess.NewDraw("Draw by sixty-four move rule.")
}

// makpongMoves lets a checked king capture its only checker and
// nothing else.
func makpongMoves(b *engine.Board, moves []chess.Move, pieceType, square int) []chess.Move {
	side := b.SideToMove()
	if pieceType != engine.King || square != b.KingSquare(side) || !b.InCheck(side) {
		return engine.WesternMovesForPiece(b, moves, pieceType, square)
	}

	// A piece standing on the king square would capture the checkers
	attacker := 0
	begin := 2*b.ArrayWidth() + 1
	for i := begin; i < b.ArraySize()-begin; i++ {
		pc := b.At(i)
		if pc.Side() != side.Opposite() {
			continue
		}
		for _, m := range engine.WesternMovesForPiece(b, nil, pc.Type(), square) {
			if m.Target() != i {
				continue
			}
			if attacker != 0 {
				return moves
			}
			attacker = i
		}
	}

	for _, m := range engine.WesternMovesForPiece(b, nil, engine.King, square) {
		if m.Target() == attacker {
			moves = append(moves, m)
		}
	}
	return moves
}

// Indexes of the pieces with an initial leap in Ouk chess.
const (
	oukKing = iota
	oukMaiden
)

const oukStateKey = "initialMoves"

// oukState counts the moves that touched each side's initial king and
// maiden squares. A zero count keeps the initial leap available.
type oukState struct {
	moves [2][2]int
}

func (s *oukState) Clone() engine.State {
	c := *s
	return &c
}

func oukMoves(b *engine.Board) *oukState {
	return b.State(oukStateKey).(*oukState)
}

// Cambodian is Ouk chess: Makruk where the unmoved king may leap like a
// knight to the second rank and the unmoved maiden may leap two squares
// forward. Counting starts with a bare king.
func Cambodian() *engine.Rules {
	r := engine.Western("cambodian")
	makrukPieces(r)
	r.SetPiece(Bia, engine.PieceDef{Name: "trey", Symbol: "P"})
	r.SetPiece(Ma, engine.PieceDef{Name: "ses", Symbol: "N", Movement: engine.KnightMovement})
	r.SetPiece(Khon, engine.PieceDef{Name: "kol", Symbol: "S", Movement: engine.SilverMovement, GSymbol: "E"})
	r.SetPiece(Rua, engine.PieceDef{Name: "tuuk", Symbol: "R", Movement: engine.RookMovement})
	r.SetPiece(Met, engine.PieceDef{Name: "neang", Symbol: "M", Movement: engine.FerzMovement, GSymbol: "F"})
	r.SetPiece(Khun, engine.PieceDef{Name: "sdaach", Symbol: "K"})
	r.StartFEN = staticFEN("rnsmksnr/8/pppppppp/8/8/PPPPPPPP/8/RNSKMSNR w DEde 0 0 1")
	countingFragment(r, bareKingCounting, makrukLimit)
	countingFen(r)
	r.Result = makrukResult(insufficientMakrukMaterial)
	initialLeaps(r)
	return r
}

// KarOuk is Cambodian chess where the first check wins.
func KarOuk() *engine.Rules {
	r := Cambodian()
	r.Variant = "karouk"
	prevResult := r.Result
	r.Result = func(b *engine.Board) chess.Result {
		side := b.SideToMove()
		if !b.InCheck(side) {
			return prevResult(b)
		}
		opp := side.Opposite()
		return chess.NewWin(opp, opp.String()+" wins by giving check")
	}
	return r
}

// oukInitialSquare returns the square piece (oukKing or oukMaiden) of
// side starts on.
func oukInitialSquare(b *engine.Board, side chess.Side, piece int) int {
	file := 3 + piece
	rank := 0
	if side == chess.Black {
		file, rank = 4-piece, b.Height()-1
	}
	return b.SquareIndex(chess.NewSquare(file, rank))
}

// initialLeaps adds the first moves of the Ouk king and maiden. The
// castling field of the FEN lists the leaps still available: D and E
// for the white king and maiden, d and e for the black maiden and king.
func initialLeaps(r *engine.Rules) {
	r.AddState(oukStateKey, func() engine.State {
		return &oukState{moves: [2][2]int{{1, 1}, {1, 1}}}
	})

	prevGen := r.GenerateMovesForPiece
	r.GenerateMovesForPiece = func(b *engine.Board, moves []chess.Move, pieceType, square int) []chess.Move {
		if prevGen != nil {
			moves = prevGen(b, moves, pieceType, square)
		} else {
			moves = engine.WesternMovesForPiece(b, moves, pieceType, square)
		}

		side := b.SideToMove()
		piece := oukKing
		switch {
		case pieceType == Khun:
		case pieceType == Met:
			piece = oukMaiden
		default:
			return moves
		}
		if square != oukInitialSquare(b, side, piece) || oukMoves(b).moves[side][piece] != 0 {
			return moves
		}
		if piece == oukKing && b.InCheck(side) {
			return moves
		}
		for _, offset := range oukLeapOffsets(b, piece) {
			target := square - offset*b.Sign()
			if b.At(target).IsEmpty() {
				moves = append(moves, chess.NewMove(square, target, 0))
			}
		}
		return moves
	}

	prevCheck := r.InCheck
	var inCheck func(b *engine.Board, side chess.Side, square int) bool
	inCheck = func(b *engine.Board, side chess.Side, square int) bool {
		sign := 1
		if side == chess.Black {
			sign = -1
		}
		opp := side.Opposite()
		if square == 0 {
			square = b.KingSquare(side)
		}
		s := oukMoves(b)

		if s.moves[opp][oukMaiden] == 0 && oukInitialSquare(b, opp, oukMaiden) == square-2*sign*b.ArrayWidth() {
			return true
		}
		ksq := b.KingSquare(opp)
		w := b.ArrayWidth()
		if s.moves[opp][oukKing] == 0 && (ksq == square-(w-2)*sign || ksq == square-(w+2)*sign) {
			if square == b.KingSquare(side) || !inCheck(b, opp, 0) {
				return true
			}
		}
		if prevCheck != nil {
			return prevCheck(b, side, square)
		}
		return engine.WesternInCheck(b, side, square)
	}
	r.InCheck = inCheck

	update := func(b *engine.Board, m chess.Move, d int) {
		side := b.SideToMove()
		s := oukMoves(b)
		for piece := oukKing; piece <= oukMaiden; piece++ {
			sq := oukInitialSquare(b, side, piece)
			if m.Source() == sq || m.Target() == sq {
				s.moves[side][piece] += d
			}
		}
	}
	prevMake := r.MakeMove
	r.MakeMove = func(b *engine.Board, m chess.Move, tr *chess.BoardTransition) {
		prevMake(b, m, tr)
		update(b, m, 1)
	}
	prevUndo := r.UndoMove
	r.UndoMove = func(b *engine.Board, m chess.Move) {
		update(b, m, -1)
		prevUndo(b, m)
	}

	prevFen := r.FenTail
	r.FenTail = func(b *engine.Board, n engine.FenNotation) string {
		tail := prevFen(b, n)
		s := oukMoves(b)
		var rights strings.Builder
		for _, right := range []struct {
			side  chess.Side
			piece int
			c     byte
		}{
			{chess.White, oukKing, 'D'},
			{chess.White, oukMaiden, 'E'},
			{chess.Black, oukMaiden, 'd'},
			{chess.Black, oukKing, 'e'},
		} {
			if s.moves[right.side][right.piece] == 0 {
				rights.WriteByte(right.c)
			}
		}
		if rights.Len() == 0 {
			rights.WriteByte('-')
		}
		_, rest, _ := strings.Cut(tail, " ")
		return rights.String() + " " + rest
	}

	prevSetTail := r.SetFenTail
	r.SetFenTail = func(b *engine.Board, fields []string) error {
		if len(fields) == 0 {
			return prevSetTail(b, fields)
		}
		s := oukMoves(b)
		s.moves = [2][2]int{{1, 1}, {1, 1}}
		if fields[0] != "-" {
			for _, c := range fields[0] {
				switch c {
				case 'D':
					s.moves[chess.White][oukKing] = 0
				case 'E':
					s.moves[chess.White][oukMaiden] = 0
				case 'd':
					s.moves[chess.Black][oukMaiden] = 0
				case 'e':
					s.moves[chess.Black][oukKing] = 0
				default:
					return errors.FieldError(errors.ErrInvalidFEN, "initial moves", "D, E, d or e", string(c))
				}
			}
		}
		rest := append([]string{"-"}, fields[1:]...)
		if err := prevSetTail(b, rest); err != nil {
			return err
		}

		types := [2]int{Khun, Met}
		for _, side := range []chess.Side{chess.White, chess.Black} {
			for piece := oukKing; piece <= oukMaiden; piece++ {
				if s.moves[side][piece] == 0 && b.At(oukInitialSquare(b, side, piece)) != chess.NewPiece(side, types[piece]) {
					return fmt.Errorf("%s %s is not on its initial square: %w", side, b.PieceName(types[piece]), errors.ErrInvalidFEN)
				}
			}
		}
		return nil
	}
}

// oukLeapOffsets returns the forward offsets of the initial leaps.
func oukLeapOffsets(b *engine.Board, piece int) []int {
	w := b.ArrayWidth()
	if piece == oukKing {
		return []int{w - 2, w + 2}
	}
	return []int{2 * w}
}
