package eval

import "github.com/chrisfishbob/Talia/pkg/board"

// OrderingPriority scores a pseudo-legal move for move ordering (spec.md
// §4.4.1): captures score by MVV-LVA with a capture bonus, promotions add the
// promoted kind's value, and every move gets a PST delta that prefers
// positionally improving moves. mover is the piece occupying m.From before
// the move is made.
func OrderingPriority(mover board.Piece, moverColor board.Color, m board.Move) board.MovePriority {
	var score int32

	if m.IsCapture() {
		captured := m.Captured
		if m.Flag == board.EnPassant {
			captured = board.Pawn
		}
		score += 10*int32(captured.Value()) - int32(mover.Value())
	}
	if m.IsPromotion() {
		score += int32(m.Promoted.Value())
	}

	score += int32(pstValue(mover, moverColor, m.To)) - int32(pstValue(mover, moverColor, m.From))

	return board.MovePriority(score)
}
