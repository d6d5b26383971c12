package variants

import (
	"strings"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
)

// Sittuyin piece types. The general and the elephant take the queen's
// and the bishop's slots.
const (
	General          = engine.Queen
	SittuyinElephant = engine.Bishop
)

// Sittuyin is Burmese chess. The pawns start on the board and the
// pieces in hand; each side first drops its pieces on its own half, the
// rooks on the first rank. A pawn promotes to a general only while its
// side has none, on the diagonal squares of the far half, either in
// place or with one diagonal step. Counting rules replace the fifty
// moves rule once a king is bare.
func Sittuyin() *engine.Rules {
	r := engine.Western("sittuyin")
	makrukPieces(r)
	r.SetPiece(engine.Pawn, engine.PieceDef{Name: "pawn", Symbol: "P"})
	r.SetPiece(engine.Knight, engine.PieceDef{Name: "knight", Symbol: "N", Movement: engine.KnightMovement})
	r.SetPiece(SittuyinElephant, engine.PieceDef{Name: "elephant", Symbol: "S", Movement: engine.SilverMovement, GSymbol: "E"})
	r.SetPiece(engine.Rook, engine.PieceDef{Name: "rook", Symbol: "R", Movement: engine.RookMovement})
	r.SetPiece(General, engine.PieceDef{Name: "general", Symbol: "F", Movement: engine.FerzMovement})
	r.SetPiece(engine.King, engine.PieceDef{Name: "king", Symbol: "K"})
	r.HasDrops = true
	r.PromotionTypes = []int{General}
	r.IsPromotionSquare = func(*engine.Board, int, int) bool { return false }
	r.StartFEN = staticFEN("8/8/4pppp/pppp4/4PPPP/PPPP4/8/8[KFRRSSNNkfrrssnn] w - 0 0 1")
	r.KingsCount = reserveKings
	r.SetFenTail = reserveKingsTail(engine.WesternSetFenTail)
	setupDrops(r)
	countingFragment(r, bareKingCounting, aseanLimit)
	countingFen(r)

	r.GenerateMovesForPiece = func(b *engine.Board, moves []chess.Move, pieceType, square int) []chess.Move {
		if inSetup(b) {
			if square != 0 {
				return moves
			}
			return sittuyinDrops(b, moves, pieceType)
		}
		switch {
		case square == 0:
			return moves
		case pieceType == engine.Pawn:
			return sittuyinPawnMoves(b, moves, square)
		}
		return engine.WesternMovesForPiece(b, moves, pieceType, square)
	}

	r.IsLegalMove = func(b *engine.Board, m chess.Move) bool {
		// A promoted general may not attack the enemy king
		if !m.IsDrop() && m.Promotion() == General {
			oppKing := b.KingSquare(b.SideToMove().Opposite())
			for _, offset := range b.BishopOffsets() {
				if m.Target()+offset == oppKing {
					return false
				}
			}
		}
		return engine.WesternIsLegalMove(b, m)
	}
	r.IsLegalPosition = func(b *engine.Board) bool {
		side := b.SideToMove()
		mover := side.Opposite()
		if b.InCheck(mover) {
			return false
		}
		if inSetup(b) {
			return true
		}
		if b.PieceCount(chess.White, General) > 1 || b.PieceCount(chess.Black, General) > 1 {
			return false
		}
		// Nor may the promotion discover a check
		last := b.LastMove()
		if b.PlyCount() > 0 && !last.IsDrop() && last.Promotion() != chess.NoPieceType && b.InCheck(side) {
			return false
		}
		return true
	}

	// Two pawns may promote onto the same square, so a promotion names
	// its source when another one shares the target.
	r.SANMoveString = func(b *engine.Board, m chess.Move) string {
		san := engine.WesternSANMoveString(b, m)
		if m.IsDrop() || m.Promotion() == chess.NoPieceType {
			return san
		}
		for _, m2 := range b.LegalMoves() {
			if m2.Promotion() != chess.NoPieceType && m2.Target() == m.Target() && m2.Source() != m.Source() {
				return b.SquareString(m.Source()) + san
			}
		}
		return san
	}
	r.MoveFromSAN = func(b *engine.Board, s string) chess.Move {
		if strings.Contains(s, "=") {
			want := strings.TrimRight(s, "+#!?")
			for _, m := range b.LegalMoves() {
				if m.Promotion() != chess.NoPieceType && !m.IsDrop() &&
					strings.TrimRight(b.SANMoveString(m), "+#") == want {
					return m
				}
			}
			return chess.NullMove
		}
		// A promotion in LAN form is not SAN
		m := engine.WesternMoveFromSAN(b, s)
		if !m.IsDrop() && m.Promotion() != chess.NoPieceType {
			return chess.NullMove
		}
		return m
	}

	r.Result = sittuyinResult
	return r
}

// sittuyinDrops adds the setup drops on the empty squares of the side's
// own half. Rooks go on the first rank.
func sittuyinDrops(b *engine.Board, moves []chess.Move, pieceType int) []chess.Move {
	side := b.SideToMove()
	w := b.ArrayWidth()
	size := b.ArraySize()
	// The loop index walks Black's half
	for i := 2*w + 1; i < (size-w)/2; i++ {
		index := i
		if side == chess.White {
			index = size - 1 - i
		}
		if !b.At(index).IsEmpty() {
			continue
		}
		if pieceType == engine.Rook && b.RelativeRank(index, side) != 0 {
			continue
		}
		moves = append(moves, chess.NewDrop(pieceType, index))
	}
	return moves
}

// sittuyinPromotionRank returns the relative rank on which a pawn of
// the given file may promote: the square on one of the long diagonals
// in the far half of the board.
func sittuyinPromotionRank(b *engine.Board, file int) int {
	return max(file, b.Height()-1-file)
}

// sittuyinPawnMoves adds the pawn steps and captures, and the
// promotions to a general: in place, or with a diagonal step that does
// not capture. The side's last pawn may promote anywhere.
func sittuyinPawnMoves(b *engine.Board, moves []chess.Move, square int) []chess.Move {
	moves = engine.WesternMovesForPiece(b, moves, engine.Pawn, square)
	side := b.SideToMove()
	if b.PieceCount(side, General) > 0 {
		return moves
	}
	file := b.ChessSquare(square).File
	if b.RelativeRank(square, side) != sittuyinPromotionRank(b, file) && b.PieceCount(side, engine.Pawn) != 1 {
		return moves
	}
	moves = append(moves, chess.NewMove(square, square, General))
	for _, offset := range b.BishopOffsets() {
		if b.At(square + offset).IsEmpty() {
			moves = append(moves, chess.NewMove(square, square+offset, General))
		}
	}
	return moves
}

// canMakeNormalMove reports whether the side to move has a legal move
// that is not a promotion.
func canMakeNormalMove(b *engine.Board) bool {
	for _, m := range b.LegalMoves() {
		if m.Promotion() == chess.NoPieceType {
			return true
		}
	}
	return false
}

func sittuyinResult(b *engine.Board) chess.Result {
	side := b.SideToMove()
	if !b.CanMove() {
		if b.InCheck(side) {
			opp := side.Opposite()
			return chess.NewWin(opp, opp.String()+" mates")
		}
		return chess.NewDraw("Draw by stalemate")
	}
	// A promotion cannot be forced
	if !inSetup(b) && b.PieceCount(side, engine.Pawn) == 1 && !canMakeNormalMove(b) {
		return chess.NewDraw("Draw by promotion stalemate")
	}
	if b.ReversibleMoveCount() >= 100 {
		return chess.NewDraw("Draw by fifty moves rule")
	}
	if insufficientMakrukMaterial(b) {
		return chess.NewDraw("Draw by insufficient mating material")
	}
	if counting(b).western {
		return chess.NoGameResult
	}
	return countingResult(b)
}
