package variants

import (
	"math/rand/v2"
	"strings"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/zobrist"
)

// Compound piece types of the ten-file variants.
const (
	Archbishop = engine.King + 1 + iota
	Chancellor
)

// Janus is the archbishop-like piece of Janus chess.
const Janus = engine.King + 1

// Capablanca chess is played on a 10x8 board with the archbishop and
// the chancellor added to the orthodox pieces.
func Capablanca() *engine.Rules {
	r := engine.Western("capablanca")
	capablancaPieces(r)
	r.StartFEN = staticFEN("rnabqkbcnr/pppppppppp/10/10/10/10/PPPPPPPPPP/RNABQKBCNR w KQkq - 0 1")
	return r
}

// Gothic is Capablanca chess with another starting array.
func Gothic() *engine.Rules {
	r := Capablanca()
	r.Variant = "gothic"
	r.StartFEN = staticFEN("rnbqckabnr/pppppppppp/10/10/10/10/PPPPPPPPPP/RNBQCKABNR w KQkq - 0 1")
	return r
}

// Embassy is Capablanca chess with the king on the e-file, castling to
// the b- and i-files.
func Embassy() *engine.Rules {
	r := Capablanca()
	r.Variant = "embassy"
	r.CastlingFiles = [2]int{1, r.Width - 2}
	r.StartFEN = staticFEN("rnbqkcabnr/pppppppppp/10/10/10/10/PPPPPPPPPP/RNBQKCABNR w KQkq - 0 1")
	return r
}

// JanusChess adds two januses (knight plus bishop) on a 10x8 board.
// Castling moves the king to the b- or i-file and is written as a king
// move in SAN.
func JanusChess() *engine.Rules {
	r := engine.Western("janus")
	r.Width = 10
	r.Zobrist = func(*engine.Rules) zobrist.Strategy { return zobrist.NewWestern() }
	r.SetPiece(Janus, engine.PieceDef{Name: "janus", Symbol: "J", Movement: engine.KnightMovement | engine.BishopMovement, GSymbol: "A"})
	r.PromotionTypes = append(r.PromotionTypes, Janus)
	r.CastlingFiles = [2]int{1, r.Width - 2}
	r.StartFEN = staticFEN("rjnbkqbnjr/pppppppppp/10/10/10/10/PPPPPPPPPP/RJNBKQBNJR w KQkq - 0 1")

	r.SANMoveString = func(b *engine.Board, m chess.Move) string {
		san := engine.WesternSANMoveString(b, m)
		if !strings.HasPrefix(san, "O-O") {
			return san
		}
		return b.TypeSymbol(engine.King) + b.LANMoveString(m)[2:] + checkMark(san)
	}
	r.MoveFromSAN = func(b *engine.Board, s string) chess.Move {
		// The queen side castling of Janus chess is the short one
		switch {
		case strings.HasPrefix(s, "O-O-O"):
			return engine.WesternMoveFromSAN(b, "O-O")
		case strings.HasPrefix(s, "O-O"):
			return engine.WesternMoveFromSAN(b, "O-O-O")
		case !strings.HasPrefix(s, b.TypeSymbol(engine.King)):
			return engine.WesternMoveFromSAN(b, s)
		}
		for _, castling := range []struct {
			cside engine.CastlingSide
			san   string
		}{{engine.KingSide, "O-O"}, {engine.QueenSide, "O-O-O"}} {
			if !b.HasCastlingRight(b.SideToMove(), castling.cside) {
				continue
			}
			m := engine.WesternMoveFromSAN(b, castling.san)
			if !m.IsNull() && s == b.SANMoveString(m) {
				return m
			}
		}
		return engine.WesternMoveFromSAN(b, s)
	}
	return r
}

// Grand chess is played on a 10x10 board without castling. Pawns may
// double step from the third rank, may promote on the eighth and ninth
// ranks and must promote on the tenth, but only to a piece that was
// captured before.
func Grand() *engine.Rules {
	r := Capablanca()
	r.Variant = "grand"
	r.Height = 10
	r.HasCastling = false
	r.OptionalPromotions = true
	r.StartFEN = staticFEN("r8r/1nbqkcabn1/pppppppppp/10/10/10/10/PPPPPPPPPP/1NBQKCABN1/R8R w - - 0 1")

	r.GenerateMovesForPiece = func(b *engine.Board, moves []chess.Move, pieceType, square int) []chess.Move {
		moves = engine.WesternMovesForPiece(b, moves, pieceType, square)
		if pieceType != engine.Pawn || square == 0 {
			return moves
		}
		return grandPawnMoves(b, moves, square)
	}

	r.IsLegalMove = func(b *engine.Board, m chess.Move) bool {
		promotion := m.Promotion()
		if promotion == chess.NoPieceType || m.IsDrop() {
			return engine.WesternIsLegalMove(b, m)
		}
		limit := 2
		switch promotion {
		case engine.Queen, Chancellor, Archbishop:
			limit = 1
		case engine.Rook, engine.Bishop, engine.Knight:
		default:
			return false
		}
		if b.PieceCount(b.SideToMove(), promotion)+1 > limit {
			return false
		}
		return engine.WesternIsLegalMove(b, m)
	}
	return r
}

// grandPawnMoves adds the double steps from the third rank and the
// optional promotions of a Grand chess pawn.
func grandPawnMoves(b *engine.Board, moves []chess.Move, square int) []chess.Move {
	side := b.SideToMove()
	rank := b.RelativeRank(square, side)

	if rank == 2 {
		for _, ps := range b.Rules().PawnSteps {
			if ps.Type != engine.FreeStep {
				continue
			}
			offset := b.PawnPushOffset(ps, b.Sign())
			target := square + offset
			if b.At(target).IsEmpty() && b.At(target+offset).IsEmpty() {
				moves = append(moves, chess.NewMove(square, target+offset, 0))
			}
		}
	}

	if !b.Rules().OptionalPromotions || (rank != b.Height()-4 && rank != b.Height()-3) {
		return moves
	}
	for _, ps := range b.Rules().PawnSteps {
		target := square + b.PawnPushOffset(ps, b.Sign())
		capture := b.At(target)
		isCapture := capture.Side() == side.Opposite() ||
			(target == b.EnpassantSquare() && b.EnpassantSquare() != 0)
		if (capture.IsEmpty() && ps.Type == engine.FreeStep) || (isCapture && ps.Type == engine.CaptureStep) {
			moves = b.AddPromotions(moves, square, target)
		}
	}
	return moves
}

// Modern chess is played on a 9x9 board with a minister (knight plus
// bishop) next to the king.
func Modern() *engine.Rules {
	r := engine.Western("modern")
	r.Width, r.Height = 9, 9
	r.Zobrist = func(*engine.Rules) zobrist.Strategy { return zobrist.NewWestern() }
	r.SetPiece(Archbishop, engine.PieceDef{Name: "minister", Symbol: "M", Movement: engine.KnightMovement | engine.BishopMovement, GSymbol: "A"})
	r.PromotionTypes = append(r.PromotionTypes, Archbishop)
	r.CastlingFiles = [2]int{2, 6}
	r.StartFEN = staticFEN("rnbqkmbnr/ppppppppp/9/9/9/9/9/PPPPPPPPP/RNBMKQBNR w KQkq - 0 1")

	// Castling is named after the piece the king passes
	r.SANMoveString = func(b *engine.Board, m chess.Move) string {
		san := engine.WesternSANMoveString(b, m)
		if !strings.HasPrefix(san, "O-O") {
			return san
		}
		white := b.At(m.Source()).Side() == chess.White
		long := strings.HasPrefix(san, "O-O-O")
		if long == white {
			return "O-M-O" + checkMark(san)
		}
		return "O-Q-O" + checkMark(san)
	}
	r.MoveFromSAN = func(b *engine.Board, s string) chess.Move {
		white := b.SideToMove() == chess.White
		switch {
		case strings.HasPrefix(s, "O-M-O"):
			if white {
				return engine.WesternMoveFromSAN(b, "O-O-O")
			}
			return engine.WesternMoveFromSAN(b, "O-O")
		case strings.HasPrefix(s, "O-Q-O"):
			if white {
				return engine.WesternMoveFromSAN(b, "O-O")
			}
			return engine.WesternMoveFromSAN(b, "O-O-O")
		}
		return engine.WesternMoveFromSAN(b, s)
	}
	return r
}

// capablancaPieces adds the archbishop and the chancellor to a 10-file
// board.
func capablancaPieces(r *engine.Rules) {
	r.Width = 10
	r.CastlingFiles = [2]int{2, r.Width - 2}
	r.Zobrist = func(*engine.Rules) zobrist.Strategy { return zobrist.NewWestern() }
	r.SetPiece(Archbishop, engine.PieceDef{Name: "archbishop", Symbol: "A", Movement: engine.KnightMovement | engine.BishopMovement})
	r.SetPiece(Chancellor, engine.PieceDef{Name: "chancellor", Symbol: "C", Movement: engine.KnightMovement | engine.RookMovement})
	r.PromotionTypes = append(r.PromotionTypes, Archbishop, Chancellor)
}

// checkMark returns the check or mate suffix of a SAN string.
func checkMark(san string) string {
	if strings.HasSuffix(san, "+") || strings.HasSuffix(san, "#") {
		return san[len(san)-1:]
	}
	return ""
}

// Caparandom is Capablanca chess with a shuffled back rank. The
// bishops start on opposite colors, as do the queen and the
// archbishop, the king stands between the rooks and every pawn starts
// protected.
func Caparandom() *engine.Rules {
	r := Capablanca()
	r.Variant = "caparandom"
	r.Random = true
	r.StartFEN = func(*engine.Board) string {
		return CaparandomFEN(rand.IntN)
	}
	return r
}

// CaparandomFEN returns a random Caparandom starting position drawn
// with intn, which returns a number in [0, n). Positions with an
// unprotected pawn are rejected and drawn again.
func CaparandomFEN(intn func(n int) int) string {
	var rank [10]byte
	for {
		rank = [10]byte{}
		// place puts c on the i-th empty square among the files
		// start, start+step, ...
		place := func(c byte, i, start, step int) {
			for file := start; file < len(rank); file += step {
				if rank[file] != 0 {
					continue
				}
				if i == 0 {
					rank[file] = c
					return
				}
				i--
			}
		}

		even, odd := byte('q'), byte('a')
		if intn(2) != 0 {
			even, odd = odd, even
		}
		place(even, intn(5), 0, 2)
		place(odd, intn(5), 1, 2)
		place('b', intn(4), 0, 2)
		place('b', intn(4), 1, 2)
		place('c', intn(6), 0, 1)
		place('n', intn(5), 0, 1)
		place('n', intn(4), 0, 1)
		for _, c := range []byte("rkr") {
			place(c, 0, 0, 1)
		}
		if pawnsProtected(rank[:]) {
			break
		}
	}

	black := string(rank[:])
	return black + "/pppppppppp/10/10/10/10/PPPPPPPPPP/" + strings.ToUpper(black) + " w KQkq - 0 1"
}

// pawnsProtected reports whether every pawn in front of rank is
// guarded by a piece of rank.
func pawnsProtected(rank []byte) bool {
	has := func(i int, pieces string) bool {
		return i >= 0 && i < len(rank) && strings.IndexByte(pieces, rank[i]) >= 0
	}
	for i := range rank {
		if has(i, "rqck") || has(i-2, "nac") || has(i+2, "nac") ||
			has(i-1, "bqak") || has(i+1, "bqak") {
			continue
		}
		return false
	}
	return true
}
