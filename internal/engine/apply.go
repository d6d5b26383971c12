package engine

import "github.com/lgbarn/variantboard-go/internal/chess"

// MakeMove plays a pseudo-legal move. The move is not validated; check
// it with IsLegalMove first. If tr is not nil it receives the squares
// the move changed.
func (b *Board) MakeMove(m chess.Move, tr *chess.BoardTransition) {
	if m.IsNull() || b.side.IsNull() {
		panic("engine: MakeMove without a move or a side to move")
	}

	b.history = append(b.history, HistoryEntry{
		Move:                m,
		Key:                 b.key,
		Capture:             b.squares[m.Target()],
		EnpassantSquare:     b.enpassantSquare,
		EnpassantTarget:     b.enpassantTarget,
		CastlingRooks:       b.castlingRooks,
		CastlingSide:        NoCastlingSide,
		ReversibleMoveCount: b.reversibleMoveCount,
	})

	if b.rules.MakeMove != nil {
		b.rules.MakeMove(b, m, tr)
	} else {
		WesternMakeMove(b, m, tr)
	}

	b.key ^= b.zobrist.Side()
	b.side = b.side.Opposite()
	b.sign = -b.sign
}

// UndoMove takes back the last move. The key is restored from the
// history rather than recomputed.
func (b *Board) UndoMove() {
	if len(b.history) == 0 {
		panic("engine: UndoMove with an empty history")
	}

	b.side = b.side.Opposite()
	b.sign = -b.sign
	md := b.history[len(b.history)-1]
	if b.rules.UndoMove != nil {
		b.rules.UndoMove(b, md.Move)
	} else {
		WesternUndoMove(b, md.Move)
	}

	b.key = md.Key
	b.history = b.history[:len(b.history)-1]
}

// SetEnpassantSquare sets the en passant square and the square of the
// pawn that can be captured there, updating the key.
func (b *Board) SetEnpassantSquare(square, target int) {
	if square != 0 {
		b.enpassantTarget = target
	} else {
		b.enpassantTarget = 0
	}
	if square == b.enpassantSquare {
		return
	}
	if b.enpassantSquare != 0 {
		b.key ^= b.zobrist.Enpassant(b.enpassantSquare)
	}
	if square != 0 {
		b.key ^= b.zobrist.Enpassant(square)
	}
	b.enpassantSquare = square
}

// WesternMakeMove applies a move under orthodox rules: castling as a
// king capturing its own rook, en passant, double steps, promotions and
// drops of reserve pieces.
func WesternMakeMove(b *Board, m chess.Move, tr *chess.BoardTransition) {
	side := b.side
	source, target := m.Source(), m.Target()
	promotionType := m.Promotion()
	pieceType := b.squares[source].Type()
	epSq, epTgt := b.enpassantSquare, b.enpassantTarget
	md := b.LastEntry()
	clearSource := true
	isReversible := true

	if source == 0 {
		pieceType = promotionType
		promotionType = chess.NoPieceType
		clearSource = false
		isReversible = false
		epSq = 0
	}
	if source == target {
		clearSource = false
	}

	b.SetEnpassantSquare(0, 0)

	switch pieceType {
	case King:
		// In case of a castling move, make the rook's move
		if cside := b.CastlingSideOf(m); cside != NoCastlingSide && source != 0 {
			md.CastlingSide = cside
			rookSource := target
			target = b.castleTarget[side][cside]
			rookTarget := target - 1
			if cside == QueenSide {
				rookTarget = target + 1
			}
			if rookTarget == source || target == source {
				clearSource = false
			}
			b.SetSquare(rookSource, chess.EmptyPiece)
			b.SetSquare(rookTarget, chess.NewPiece(side, Rook))
			// Castling does not reset the fifty-move counter.
			if tr != nil {
				tr.AddMove(b.ChessSquare(rookSource), b.ChessSquare(rookTarget))
			}
		}
		b.kingSquare[side] = target
		b.RemoveCastlingRights(side)
	case Pawn:
		isReversible = false
		if epSq != 0 && target == epSq {
			md.EnpassantCapture = b.squares[epTgt]
			b.SetSquare(epTgt, chess.EmptyPiece)
			if tr != nil {
				tr.AddSquare(b.ChessSquare(epTgt))
			}
		} else if b.rules.EnPassant && source != 0 && (source/b.arwidth-target/b.arwidth)*b.sign == 2 {
			// A double step creates an en passant square if an enemy
			// pawn can capture on it.
			ep := (source + target) / 2
			opPawn := chess.NewPiece(side.Opposite(), Pawn)
			for _, ps := range b.rules.PawnSteps {
				if ps.Type&CaptureStep != 0 && b.squares[ep+b.PawnPushOffset(ps, b.sign)] == opPawn {
					b.SetEnpassantSquare(ep, target)
				}
			}
		} else if promotionType != chess.NoPieceType {
			pieceType = promotionType
		}
	case Rook:
		for cside := QueenSide; cside <= KingSide; cside++ {
			if source != 0 && source == b.castlingRooks[side][cside] {
				b.SetCastlingSquare(side, cside, 0)
				break
			}
		}
	}

	if b.CaptureType(m) != chess.NoPieceType {
		b.removeCastlingRightsAt(target)
		isReversible = false
	}
	if promotionType != chess.NoPieceType {
		isReversible = false
	}

	if tr != nil {
		if source != 0 {
			tr.AddMove(b.ChessSquare(source), b.ChessSquare(target))
		} else {
			tr.AddDrop(chess.NewPiece(side, pieceType), b.ChessSquare(target))
		}
	}

	b.SetSquare(target, chess.NewPiece(side, pieceType))
	if clearSource {
		b.SetSquare(source, chess.EmptyPiece)
	}

	if isReversible {
		b.reversibleMoveCount++
	} else {
		b.reversibleMoveCount = 0
	}
}

// WesternUndoMove reverses WesternMakeMove. The side to move has
// already been switched back.
func WesternUndoMove(b *Board, m chess.Move) {
	md := b.LastEntry()
	source, target := m.Source(), m.Target()
	side := b.side

	b.SetEnpassantSquare(md.EnpassantSquare, md.EnpassantTarget)
	b.reversibleMoveCount = md.ReversibleMoveCount
	b.castlingRooks = md.CastlingRooks

	if cside := md.CastlingSide; cside != NoCastlingSide {
		b.kingSquare[side] = source
		// Move the rook back after castling
		kingTarget := b.castleTarget[side][cside]
		rookTarget := kingTarget - 1
		if cside == QueenSide {
			rookTarget = kingTarget + 1
		}
		b.SetSquare(kingTarget, chess.EmptyPiece)
		b.SetSquare(rookTarget, chess.EmptyPiece)
		b.SetSquare(target, chess.NewPiece(side, Rook))
		b.SetSquare(source, chess.NewPiece(side, King))
		return
	}

	if target == b.kingSquare[side] {
		b.kingSquare[side] = source
	}
	// Restore the pawn captured en passant
	if md.EnpassantCapture.IsValid() {
		b.SetSquare(md.EnpassantTarget, md.EnpassantCapture)
	}

	if m.Promotion() != chess.NoPieceType {
		if source != 0 {
			b.SetSquare(source, chess.NewPiece(side, Pawn))
		}
	} else if source != target {
		b.SetSquare(source, b.squares[target])
	}
	if source != target {
		b.SetSquare(target, md.Capture)
	}
}
