package search

import (
	"github.com/chrisfishbob/Talia/pkg/board"
	"github.com/chrisfishbob/Talia/pkg/eval"
)

// quiesce performs a capture-only search to quiet the position before
// evaluating, avoiding the horizon effect on hanging captures (spec.md §4.4).
func (s *run) quiesce(pos *board.Position, alpha, beta board.Score) board.Score {
	s.nodes++

	stand := eval.Evaluate(pos)
	if stand >= beta {
		return beta
	}
	alpha = board.Max(alpha, stand)

	gen := board.NewMoveGenerator(pos)
	var captures []board.Move
	for _, m := range gen.GenerateLegalMoves() {
		if isQuiescenceMove(m) {
			captures = append(captures, m)
		}
	}

	list := board.NewMoveList(captures, orderingFor(pos))
	for {
		m, ok := list.Next()
		if !ok {
			break
		}

		pos.MakeMove(m)
		v := -s.quiesce(pos, -beta, -alpha)
		_ = pos.UnmakeMove(m)

		if v >= beta {
			return beta
		}
		alpha = board.Max(alpha, v)
	}
	return alpha
}
