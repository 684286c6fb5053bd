package game

// Move places a piece at a column with a rotation. Swap plays the swap
// target instead of the current piece: the held piece when one is stored,
// otherwise the piece at the front of the queue.
type Move struct {
	Col      int
	Rotation int
	Swap     bool
}

// LegalMoves enumerates every candidate placement for the current piece and
// the swap target. The slice order is deterministic and doubles as the
// tie-break order during search. Symmetric pieces produce equivalent
// rotations more than once; the duplicates cost a little search work but are
// harmless.
func (p *Position) LegalMoves() []Move {
	swapTarget := p.Pocket
	if swapTarget == 0 && len(p.NextPieces) > 0 {
		swapTarget = p.NextPieces[0]
	}

	var moves []Move
	for rotation := 0; rotation < 4; rotation++ {
		width := len(Shape(p.CurrentPiece, rotation)[0])
		for col := 0; col <= BoardWidth-width; col++ {
			moves = append(moves, Move{Col: col, Rotation: rotation})
		}
		if swapTarget == 0 {
			continue
		}
		width = len(Shape(swapTarget, rotation)[0])
		for col := 0; col <= BoardWidth-width; col++ {
			moves = append(moves, Move{Col: col, Rotation: rotation, Swap: true})
		}
	}
	return moves
}
