package search

import (
	"fmt"
	"time"

	"github.com/chrisfishbob/Talia/pkg/board"
)

// TimeControl describes the remaining clock for both sides. Limits derives a
// soft deadline for the side to move: after it elapses, iterative deepening
// should not start a new depth (spec.md §5 permits a soft deadline, checked
// between iterations, not mid-node).
type TimeControl struct {
	White, Black time.Duration
	MovesToGo    int // 0 means "rest of game"
}

// Limits returns the soft and hard budget for the side to move. The hard
// budget is informational only: Talia's search has no mid-node cancellation,
// so only the soft budget is consulted by iterative deepening.
func (t TimeControl) Limits(c board.Color) (soft, hard time.Duration) {
	remaining := t.White
	if c == board.Black {
		remaining = t.Black
	}

	moves := time.Duration(40)
	if t.MovesToGo > 0 {
		moves = time.Duration(t.MovesToGo) + 1
	}

	soft = remaining / (2 * moves)
	hard = 3 * soft
	return soft, hard
}

func (t TimeControl) String() string {
	if t.MovesToGo == 0 {
		return fmt.Sprintf("%.1fs<>%.1fs", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1fs<>%.1fs[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.MovesToGo)
}

// Deadline returns the wall-clock soft deadline for a search started now for
// color, given a clock-based time control.
func (t TimeControl) Deadline(now time.Time, color board.Color) time.Time {
	soft, _ := t.Limits(color)
	return now.Add(soft)
}
