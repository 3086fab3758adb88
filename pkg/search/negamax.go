package search

import "github.com/chrisfishbob/Talia/pkg/board"

// run holds the mutable node counter for one find-best-move invocation. It is
// not safe for concurrent use, matching the single-threaded ownership model
// of Position (spec.md §5): one run owns pos exclusively for its duration.
type run struct {
	nodes uint64
}

// negamax returns the score of pos at depth, from the perspective of the side
// to move, using fail-hard alpha-beta pruning (spec.md §4.4).
func (s *run) negamax(pos *board.Position, depth int, alpha, beta board.Score) board.Score {
	if depth == 0 {
		return s.quiesce(pos, alpha, beta)
	}

	gen := board.NewMoveGenerator(pos)
	moves := gen.GenerateLegalMoves()
	if len(moves) == 0 {
		if gen.IsInCheck(pos.SideToMove()) {
			return board.NegInf
		}
		return board.Draw
	}

	s.nodes++

	list := board.NewMoveList(moves, orderingFor(pos))
	for {
		m, ok := list.Next()
		if !ok {
			break
		}

		pos.MakeMove(m)
		v := -s.negamax(pos, depth-1, -beta, -alpha)
		_ = pos.UnmakeMove(m)

		if v >= beta {
			return beta
		}
		alpha = board.Max(alpha, v)
	}
	return alpha
}
