package board

import (
	"container/heap"
	"fmt"
	"math"
	"sort"
)

// MovePriority represents a move ordering priority. Higher sorts first.
type MovePriority int32

// MovePriorityFn assigns an ordering priority to a move. It must be a total
// function so that sorting is deterministic for a fixed move set.
type MovePriorityFn func(move Move) MovePriority

// First forces the given move to sort ahead of all others (used to try a
// previous best move, such as the prior iteration's root move, before the rest
// of the ordering heuristic runs).
func First(first Move, fn MovePriorityFn) MovePriorityFn {
	return func(m Move) MovePriority {
		if first.Equals(m) {
			return math.MaxInt32
		}
		return fn(m)
	}
}

// SortByPriority sorts moves by descending priority, preserving relative order
// for moves of equal priority (a stable total order, per the move-ordering
// heuristic's requirement).
func SortByPriority(moves []Move, fn MovePriorityFn) {
	sort.SliceStable(moves, func(i, j int) bool {
		return fn(moves[i]) > fn(moves[j])
	})
}

// MoveList is a move priority queue used to drive move ordering during search
// without materializing a fully sorted slice up front.
type MoveList struct {
	h moveHeap
}

// NewMoveList returns a new move list ordered by the given priority function.
func NewMoveList(moves []Move, fn MovePriorityFn) *MoveList {
	h := make(moveHeap, len(moves))
	for i, m := range moves {
		h[i] = elm{m: m, val: fn(m), seq: i}
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

// Next returns the next-highest-priority move, if any remain.
func (ml *MoveList) Next() (Move, bool) {
	if ml.Size() == 0 {
		return Move{}, false
	}
	ret := heap.Pop(&ml.h).(elm)
	return ret.m, true
}

func (ml *MoveList) Size() int {
	return ml.h.Len()
}

func (ml *MoveList) String() string {
	if ml.Size() == 0 {
		return "[size=0]"
	}
	return fmt.Sprintf("[top=%v, size=%v]", ml.h[0].m, ml.Size())
}

type elm struct {
	m   Move
	val MovePriority
	seq int // insertion order: breaks ties deterministically
}

type moveHeap []elm

func (h moveHeap) Len() int { return len(h) }

func (h moveHeap) Less(i, j int) bool {
	if h[i].val != h[j].val {
		return h[i].val > h[j].val
	}
	return h[i].seq < h[j].seq
}

func (h moveHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *moveHeap) Push(x interface{}) {
	*h = append(*h, x.(elm))
}

func (h *moveHeap) Pop() interface{} {
	old := *h
	n := len(old)
	ret := old[n-1]
	*h = old[0 : n-1]
	return ret
}
