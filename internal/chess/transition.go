package chess

// BoardTransition describes what a move changed on the board. Moves and
// drops can be used to animate the move; Squares and Reserve list every
// square and reserve slot whose content changed.
type BoardTransition struct {
	Moves   []TransitionMove
	Drops   []TransitionDrop
	Squares []Square
	Reserve []Piece
}

// TransitionMove is a piece moving from Source to Target.
type TransitionMove struct {
	Source Square
	Target Square
}

// TransitionDrop is a piece entering the board from a reserve.
type TransitionDrop struct {
	Piece  Piece
	Target Square
}

// IsEmpty reports whether nothing was recorded.
func (t *BoardTransition) IsEmpty() bool {
	return len(t.Moves) == 0 && len(t.Drops) == 0 &&
		len(t.Squares) == 0 && len(t.Reserve) == 0
}

// Clear empties the transition.
func (t *BoardTransition) Clear() {
	*t = BoardTransition{}
}

// AddMove records a piece movement and marks both squares changed.
func (t *BoardTransition) AddMove(source, target Square) {
	t.Moves = append(t.Moves, TransitionMove{Source: source, Target: target})
	t.AddSquare(source)
	t.AddSquare(target)
}

// AddDrop records a drop and marks the target square changed.
func (t *BoardTransition) AddDrop(piece Piece, target Square) {
	t.Drops = append(t.Drops, TransitionDrop{Piece: piece, Target: target})
	t.AddSquare(target)
	t.AddReservePiece(piece)
}

// AddSquare marks square changed. Duplicates are ignored.
func (t *BoardTransition) AddSquare(square Square) {
	for _, sq := range t.Squares {
		if sq == square {
			return
		}
	}
	t.Squares = append(t.Squares, square)
}

// AddReservePiece marks a reserve slot changed. Duplicates are ignored.
func (t *BoardTransition) AddReservePiece(piece Piece) {
	for _, p := range t.Reserve {
		if p == piece {
			return
		}
	}
	t.Reserve = append(t.Reserve, piece)
}
