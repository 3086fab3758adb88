// Package search implements negamax alpha-beta search with quiescence and
// iterative deepening over a board.Position.
package search

import (
	"fmt"
	"time"

	"github.com/chrisfishbob/Talia/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
)

// PV is the principal variation produced by one completed iteration of
// iterative deepening.
type PV struct {
	Depth int
	Move  board.Move
	Score board.Score
	Nodes uint64
	Time  time.Duration
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v move=%v score=%v nodes=%v time=%v", p.Depth, p.Move, p.Score, p.Nodes, p.Time)
}

// Options bounds a search. DepthLimit, if set, caps iterative deepening.
// Deadline, if set, is a soft wall-clock limit checked between iterations
// (spec.md §5): the search returns the best move from the last iteration
// completed before the deadline.
type Options struct {
	DepthLimit lang.Optional[int]
	Deadline   time.Time
}

func (o Options) hasDeadline() bool {
	return !o.Deadline.IsZero()
}

func (o Options) expired(now time.Time) bool {
	return o.hasDeadline() && !now.Before(o.Deadline)
}
