package search

import (
	"context"
	"time"

	"github.com/chrisfishbob/Talia/pkg/board"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// FindBestMove runs iterative deepening from depth 1 up to opt.DepthLimit (or
// until the deadline elapses), returning the best move found and its score
// from pos's side-to-move perspective (spec.md §4.4). It owns pos exclusively
// for the call's duration: make/unmake is balanced on every return path.
//
// Callers that want a tablebase consulted first should call it before
// FindBestMove and only fall through to search on a cache miss or error; see
// pkg/engine for that wiring (spec.md §4.4 step 1).
func FindBestMove(ctx context.Context, pos *board.Position, opt Options) (board.Move, board.Score, PV) {
	gen := board.NewMoveGenerator(pos)
	roots := gen.GenerateLegalMoves()
	if len(roots) == 0 {
		return board.Move{}, board.Draw, PV{}
	}

	var best board.Move
	var bestScore board.Score
	var bestPV PV

	depthLimit := 64
	if v, ok := opt.DepthLimit.V(); ok && v > 0 {
		depthLimit = v
	}

	for depth := 1; depth <= depthLimit; depth++ {
		if opt.expired(time.Now()) {
			logw.Debugf(ctx, "talia: deadline reached before depth %v, returning depth %v result", depth, depth-1)
			break
		}
		if contextx.IsCancelled(ctx) {
			logw.Debugf(ctx, "talia: context cancelled before depth %v, returning depth %v result", depth, depth-1)
			break
		}

		start := time.Now()
		s := &run{}

		alpha, beta := board.NegInf, board.Inf
		list := board.NewMoveList(roots, board.First(best, orderingFor(pos)))

		var depthBest board.Move
		depthAlpha := board.NegInf
		completedAny := false

		for {
			m, ok := list.Next()
			if !ok {
				break
			}

			pos.MakeMove(m)
			v := -s.negamax(pos, depth-1, -beta, -alpha)
			_ = pos.UnmakeMove(m)

			if v > depthAlpha {
				depthAlpha = v
				depthBest = m
				alpha = v
			}
			completedAny = true

			if depthAlpha >= board.Inf {
				break // forced mate found; shallower depths would have found a faster one first
			}
		}

		if !completedAny {
			break
		}

		best = depthBest
		bestScore = depthAlpha
		bestPV = PV{Depth: depth, Move: best, Score: bestScore, Nodes: s.nodes, Time: time.Since(start)}
		logw.Debugf(ctx, "talia: %v", bestPV)

		if bestScore >= board.Inf {
			break
		}
	}

	return best, bestScore, bestPV
}
