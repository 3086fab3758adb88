package search

import (
	"github.com/chrisfishbob/Talia/pkg/board"
	"github.com/chrisfishbob/Talia/pkg/eval"
)

// orderingFor returns the move-ordering priority function for moves made from
// pos by the side to move (spec.md §4.4.1).
func orderingFor(pos *board.Position) board.MovePriorityFn {
	side := pos.SideToMove()
	return func(m board.Move) board.MovePriority {
		mover, _, _ := pos.PieceAt(m.From)
		return eval.OrderingPriority(mover, side, m)
	}
}

// isQuiescenceMove reports whether m should be explored by quiesce: captures,
// en passant, and capture-promotions only (spec.md §4.4).
func isQuiescenceMove(m board.Move) bool {
	return m.Flag == board.Capture || m.Flag == board.EnPassant || m.Flag == board.CapturePromote
}
