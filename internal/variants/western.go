package variants

import (
	"math/rand/v2"
	"strings"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/zobrist"
)

// staticFEN returns a StartFEN hook for a fixed position.
func staticFEN(fen string) func(*engine.Board) string {
	return func(*engine.Board) string { return fen }
}

// Standard is orthodox chess.
func Standard() *engine.Rules {
	return engine.Western("standard")
}

// FischerRandom is Chess960: the back rank pieces start on one of 960
// shuffled positions, and castling moves are written as the king
// taking its own rook.
func FischerRandom() *engine.Rules {
	r := engine.Western("fischerandom")
	r.Random = true
	r.StartFEN = func(*engine.Board) string {
		return Chess960FEN(rand.IntN(960))
	}
	return r
}

// KingOfTheHill is won by bringing the king to one of the four centre
// squares.
func KingOfTheHill() *engine.Rules {
	r := engine.Western("kingofthehill")
	r.Result = func(b *engine.Board) chess.Result {
		for _, side := range []chess.Side{chess.White, chess.Black} {
			if kingInCenter(b, side) {
				return chess.NewWin(side, side.String()+" wins with king in the center")
			}
		}
		return engine.WesternResult(b)
	}
	return r
}

func kingInCenter(b *engine.Board, side chess.Side) bool {
	ksq := b.KingSquare(side)
	if ksq == 0 || b.At(ksq) != chess.NewPiece(side, engine.King) {
		return false
	}
	sq := b.ChessSquare(ksq)
	return (sq.File == 3 || sq.File == 4) && (sq.Rank == 3 || sq.Rank == 4)
}

// Horde pits 36 white pawns against a full black army. White has no
// king and loses when every white piece is captured.
func Horde() *engine.Rules {
	r := engine.Western("horde")
	r.StartFEN = staticFEN("rnbqkbnr/pppppppp/8/1PP2PP1/PPPPPPPP/PPPPPPPP/PPPPPPPP/PPPPPPPP w kq - 0 1")
	r.KingsCount = func(white, black int) bool { return white+black == 1 }
	r.IsLegalMove = func(b *engine.Board, m chess.Move) bool {
		if !engine.WesternIsLegalMove(b, m) {
			return false
		}
		// En passant only on the third and sixth ranks
		tgt := m.Target()
		if b.At(m.Source()).Type() != engine.Pawn || tgt != b.EnpassantSquare() {
			return true
		}
		rank := b.ChessSquare(tgt).Rank
		return rank == 2 || rank == b.Height()-3
	}
	r.Result = func(b *engine.Board) chess.Result {
		side := b.SideToMove()
		if b.PieceCount(side, chess.NoPieceType) == 0 {
			opp := side.Opposite()
			return chess.NewWin(opp, opp.String()+" wins")
		}
		return engine.WesternResult(b)
	}
	return r
}

// Berolina pawns move diagonally and capture straight ahead.
func Berolina() *engine.Rules {
	r := engine.Western("berolina")
	r.PawnSteps = berolinaPawnSteps()
	return r
}

func berolinaPawnSteps() []engine.PawnStep {
	return []engine.PawnStep{
		{Type: engine.FreeStep, File: -1},
		{Type: engine.CaptureStep, File: 0},
		{Type: engine.FreeStep, File: 1},
	}
}

// KnightRelay gives every piece guarded by a friendly knight the
// knight's move. Knights can neither capture nor be captured, and there
// is no en passant.
func KnightRelay() *engine.Rules {
	r := engine.Western("knightrelay")
	knightRelay(r)
	return r
}

// knightRelay installs the relay movement on r.
func knightRelay(r *engine.Rules) {
	r.EnPassant = false
	r.GenerateMovesForPiece = func(b *engine.Board, moves []chess.Move, pieceType, square int) []chess.Move {
		moves = engine.WesternMovesForPiece(b, moves, pieceType, square)
		if pieceType == engine.Pawn && square != 0 && relayed(b, b.SideToMove(), square) {
			moves = b.GenerateHoppingMoves(moves, square, b.KnightOffsets())
		}
		return moves
	}
	r.PieceHasMovement = func(b *engine.Board, piece chess.Piece, square int, m engine.Movement) bool {
		if m&engine.KnightMovement != 0 && piece.Type() != engine.King && square != 0 &&
			relayed(b, piece.Side(), square) {
			return true
		}
		return b.TypeHasMovement(piece.Type(), m)
	}
	r.PieceHasCaptureMovement = func(b *engine.Board, piece chess.Piece, square int, m engine.Movement) bool {
		if piece.Type() == engine.Knight {
			return false
		}
		if piece.Type() == engine.Pawn && m&engine.KnightMovement != 0 {
			return relayed(b, piece.Side(), square)
		}
		return b.PieceHasMovement(piece, square, m)
	}
	r.IsLegalMove = func(b *engine.Board, m chess.Move) bool {
		if b.CaptureType(m) == engine.Knight {
			return false
		}
		// Pawns promote normally but never by a relayed leap
		if b.At(m.Source()).Type() == engine.Pawn && m.Promotion() == chess.NoPieceType {
			rank := b.ChessSquare(m.Target()).Rank
			if rank == 0 || rank == b.Height()-1 {
				return false
			}
		}
		return engine.WesternIsLegalMove(b, m)
	}

	// A relayed pawn leap names its source square so that it is not
	// read as a pawn push or capture
	r.SANMoveString = func(b *engine.Board, m chess.Move) string {
		if !relayLeap(b, m) {
			return engine.WesternSANMoveString(b, m)
		}
		sep := ""
		if b.CaptureType(m) != chess.NoPieceType {
			sep = "x"
		}
		return b.SquareString(m.Source()) + sep + b.SquareString(m.Target()) + b.CheckSuffix(m)
	}
	// A pawn push and a relayed leap may share a target square, which
	// the Western parser reports as ambiguous. Match the SAN of each
	// legal move first.
	r.MoveFromSAN = func(b *engine.Board, s string) chess.Move {
		want := strings.TrimRight(s, "+#!?")
		for _, m := range b.LegalMoves() {
			if strings.TrimRight(b.SANMoveString(m), "+#") == want {
				return m
			}
		}
		if m := engine.WesternMoveFromSAN(b, s); !m.IsNull() {
			return m
		}
		return b.PawnMoveFromSAN(s)
	}
}

// relayLeap reports whether m moves a pawn like a knight.
func relayLeap(b *engine.Board, m chess.Move) bool {
	if m.IsDrop() || b.At(m.Source()).Type() != engine.Pawn {
		return false
	}
	from, to := b.ChessSquare(m.Source()), b.ChessSquare(m.Target())
	df, dr := abs(to.File-from.File), abs(to.Rank-from.Rank)
	return (df == 1 && dr == 2) || (df == 2 && dr == 1)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// relayed reports whether a knight of side guards square.
func relayed(b *engine.Board, side chess.Side, square int) bool {
	knight := chess.NewPiece(side, engine.Knight)
	for _, offset := range b.KnightOffsets() {
		if b.At(square+offset) == knight {
			return true
		}
	}
	return false
}

// RacingKings is a race of the kings to the eighth rank. Checks are
// not allowed.
func RacingKings() *engine.Rules {
	r := engine.Western("racingkings")
	r.HasCastling = false
	r.StartFEN = staticFEN("8/8/8/8/8/8/krbnNBRK/qrbnNBRQ w - - 0 1")
	r.Zobrist = func(*engine.Rules) zobrist.Strategy { return zobrist.NewWestern() }
	r.IsLegalPosition = func(b *engine.Board) bool {
		if b.InCheck(b.SideToMove()) {
			return false
		}
		return engine.WesternIsLegalPosition(b)
	}
	r.Result = racingResult
	return r
}

func raceFinished(b *engine.Board, side chess.Side) bool {
	return b.ChessSquare(b.KingSquare(side)).Rank == b.Height()-1
}

// canFinish reports whether the side to move can step its king onto
// the last rank.
func canFinish(b *engine.Board) bool {
	side := b.SideToMove()
	for _, m := range b.GenerateMovesForPiece(nil, engine.King, b.KingSquare(side)) {
		if b.ChessSquare(m.Target()).Rank == b.Height()-1 && b.IsLegalMove(m) {
			return true
		}
	}
	return false
}

func racingResult(b *engine.Board) chess.Result {
	blackFinished := raceFinished(b, chess.Black)
	whiteFinished := raceFinished(b, chess.White)

	if blackFinished && whiteFinished {
		return chess.NewDraw("Drawn race")
	}
	if blackFinished {
		return chess.NewWin(chess.Black, "Black wins the race")
	}

	mobile := b.CanMove()
	// Black gets one move to draw the race
	if whiteFinished && (b.SideToMove() == chess.White || (mobile && !canFinish(b))) {
		return chess.NewWin(chess.White, "White wins the race")
	}

	if !mobile {
		return chess.NewDraw("Draw by stalemate")
	}
	if b.ReversibleMoveCount() >= 100 {
		return chess.NewDraw("Draw by fifty moves rule")
	}
	if b.RepeatCount() >= 2 {
		return chess.NewDraw("Draw by 3-fold repetition")
	}
	return chess.NoGameResult
}

// Almost chess replaces the queen with a chancellor.
func Almost() *engine.Rules {
	r := engine.Western("almost")
	r.SetPiece(engine.Queen, engine.PieceDef{
		Name:     "chancellor",
		Symbol:   "C",
		Movement: engine.KnightMovement | engine.RookMovement,
	})
	r.StartFEN = staticFEN("rnbckbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBCKBNR w KQkq - 0 1")
	return r
}

// Amazon chess replaces the queen with an amazon, which also moves
// like a knight.
func Amazon() *engine.Rules {
	r := engine.Western("amazon")
	r.SetPiece(engine.Queen, engine.PieceDef{
		Name:     "amazon",
		Symbol:   "A",
		Movement: engine.KnightMovement | engine.BishopMovement | engine.RookMovement,
	})
	r.StartFEN = staticFEN("rnbakbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBAKBNR w KQkq - 0 1")
	return r
}
