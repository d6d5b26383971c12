package engine

import "github.com/lgbarn/variantboard-go/internal/chess"

// GenerateMoves appends the pseudo-legal moves of the side to move to
// moves. A pieceType other than chess.NoPieceType restricts generation
// to that type, drops included.
func (b *Board) GenerateMoves(moves []chess.Move, pieceType int) []chess.Move {
	begin := b.arwidth * 2
	end := len(b.squares) - begin
	for sq := begin; sq < end; sq++ {
		pc := b.squares[sq]
		if pc.Side() == b.side && (pieceType == chess.NoPieceType || pc.Type() == pieceType) {
			moves = b.GenerateMovesForPiece(moves, pc.Type(), sq)
		}
	}
	return b.GenerateDropMoves(moves, pieceType)
}

// GenerateDropMoves appends the drops available from the reserve.
func (b *Board) GenerateDropMoves(moves []chess.Move, pieceType int) []chess.Move {
	pieces := b.reserve[b.side]
	if len(pieces) == 0 {
		return moves
	}
	if pieceType == chess.NoPieceType {
		for t := 1; t < len(pieces); t++ {
			if pieces[t] > 0 {
				moves = b.GenerateMovesForPiece(moves, t, 0)
			}
		}
	} else if pieceType < len(pieces) && pieces[pieceType] > 0 {
		moves = b.GenerateMovesForPiece(moves, pieceType, 0)
	}
	return moves
}

// GenerateMovesForPiece appends the pseudo-legal moves of one piece.
// A square of 0 asks for drops of pieceType.
func (b *Board) GenerateMovesForPiece(moves []chess.Move, pieceType, square int) []chess.Move {
	if b.rules.GenerateMovesForPiece != nil {
		return b.rules.GenerateMovesForPiece(b, moves, pieceType, square)
	}
	return WesternMovesForPiece(b, moves, pieceType, square)
}

// WesternMovesForPiece generates moves for the orthodox pieces and for
// any piece described by its movement bits.
func WesternMovesForPiece(b *Board, moves []chess.Move, pieceType, square int) []chess.Move {
	if square == 0 {
		return moves
	}
	switch pieceType {
	case Pawn:
		return b.GeneratePawnMoves(moves, square)
	case King:
		moves = b.GenerateHoppingMoves(moves, square, b.bishopOffsets)
		moves = b.GenerateHoppingMoves(moves, square, b.rookOffsets)
		return b.GenerateCastlingMoves(moves)
	}
	return b.GenerateMovementMoves(moves, pieceType, square)
}

// GenerateMovementMoves generates the moves given by the movement bits
// of the piece on square.
func (b *Board) GenerateMovementMoves(moves []chess.Move, pieceType, square int) []chess.Move {
	pc := chess.NewPiece(b.side, pieceType)
	if b.PieceHasMovement(pc, square, KnightMovement) {
		moves = b.GenerateHoppingMoves(moves, square, b.knightOffsets)
	}
	if b.PieceHasMovement(pc, square, BishopMovement) {
		moves = b.GenerateSlidingMoves(moves, square, b.bishopOffsets)
	}
	if b.PieceHasMovement(pc, square, RookMovement) {
		moves = b.GenerateSlidingMoves(moves, square, b.rookOffsets)
	}
	if b.PieceHasMovement(pc, square, FerzMovement) {
		moves = b.GenerateHoppingMoves(moves, square, b.bishopOffsets)
	}
	if b.PieceHasMovement(pc, square, WazirMovement) {
		moves = b.GenerateHoppingMoves(moves, square, b.rookOffsets)
	}
	if b.PieceHasMovement(pc, square, AlfilMovement) {
		moves = b.GenerateHoppingMoves(moves, square, b.AlfilOffsets())
	}
	if b.PieceHasMovement(pc, square, SilverMovement) {
		moves = b.GenerateHoppingMoves(moves, square, b.SilverOffsets(b.side))
	}
	return moves
}

// AlfilOffsets returns the two-square diagonal leaps.
func (b *Board) AlfilOffsets() []int {
	out := make([]int, len(b.bishopOffsets))
	for i, o := range b.bishopOffsets {
		out[i] = 2 * o
	}
	return out
}

// SilverOffsets returns the silver general's steps for side: the four
// diagonals plus one step forward.
func (b *Board) SilverOffsets(side chess.Side) []int {
	forward := -b.arwidth
	if side == chess.Black {
		forward = b.arwidth
	}
	return append(append([]int(nil), b.bishopOffsets...), forward)
}

// GenerateHoppingMoves appends one-step leaps along offsets. Targets
// must be empty or hold an enemy piece.
func (b *Board) GenerateHoppingMoves(moves []chess.Move, source int, offsets []int) []chess.Move {
	opSide := b.side.Opposite()
	for _, offset := range offsets {
		target := source + offset
		if target < 0 || target >= len(b.squares) {
			continue
		}
		capture := b.squares[target]
		if capture.IsEmpty() || capture.Side() == opSide {
			moves = append(moves, chess.NewMove(source, target, 0))
		}
	}
	return moves
}

// GenerateSlidingMoves appends rides along offsets. A ride stops at the
// wall, before a friendly piece or on the first enemy piece.
func (b *Board) GenerateSlidingMoves(moves []chess.Move, source int, offsets []int) []chess.Move {
	for _, offset := range offsets {
		target := source + offset
		for {
			capture := b.squares[target]
			if capture.IsWall() || capture.Side() == b.side {
				break
			}
			moves = append(moves, chess.NewMove(source, target, 0))
			if !capture.IsEmpty() {
				break
			}
			target += offset
		}
	}
	return moves
}

// MoveExists reports whether m is among the pseudo-legal moves of the
// side to move.
func (b *Board) MoveExists(m chess.Move) bool {
	if m.IsNull() {
		return false
	}
	var moves []chess.Move
	source := m.Source()
	if source == 0 {
		moves = b.GenerateDropMoves(moves, m.Promotion())
	} else {
		if source >= len(b.squares) {
			return false
		}
		pc := b.squares[source]
		if pc.Side() != b.side {
			return false
		}
		moves = b.GenerateMovesForPiece(moves, pc.Type(), source)
	}
	for _, mv := range moves {
		if mv == m {
			return true
		}
	}
	return false
}

// CaptureType returns the type of the piece m captures, or
// chess.NoPieceType.
func (b *Board) CaptureType(m chess.Move) int {
	if b.rules.CaptureType != nil {
		return b.rules.CaptureType(b, m)
	}
	return WesternCaptureType(b, m)
}

// WesternCaptureType counts en passant captures as pawn captures.
func WesternCaptureType(b *Board, m chess.Move) int {
	if m.Source() != 0 && b.squares[m.Source()].Type() == Pawn && m.Target() == b.enpassantSquare {
		return Pawn
	}
	return BasicCaptureType(b, m)
}

// BasicCaptureType returns the type of the enemy piece on the target.
func BasicCaptureType(b *Board, m chess.Move) int {
	pc := b.squares[m.Target()]
	if pc.Side() == b.side.Opposite() {
		return pc.Type()
	}
	return chess.NoPieceType
}
