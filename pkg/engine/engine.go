// Package engine wires Position, move generation, evaluation, search, and the
// tablebase client into a single-threaded game-playing session (spec.md §5).
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisfishbob/Talia/pkg/board"
	"github.com/chrisfishbob/Talia/pkg/board/fen"
	"github.com/chrisfishbob/Talia/pkg/search"
	"github.com/chrisfishbob/Talia/pkg/tablebase"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Options are engine creation and per-move search options.
type Options struct {
	// DepthLimit, if set, caps iterative deepening. Unset means no explicit
	// cap (search.FindBestMove still stops at its internal ceiling of 64).
	DepthLimit lang.Optional[int]
	// DefaultBudget is used when a "go" command carries neither movetime nor
	// a side clock (spec.md §6 default: 3000ms).
	DefaultBudget time.Duration
	// TablebaseURL is the base URL of the tablebase service. Empty disables
	// tablebase lookups entirely.
	TablebaseURL string
	// TablebaseTimeout bounds each tablebase HTTP call.
	TablebaseTimeout time.Duration
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, budget=%v, tablebase=%q}", o.DepthLimit, o.DefaultBudget, o.TablebaseURL)
}

// DefaultOptions returns sensible defaults: no depth cap, a 3s default move
// budget, and no tablebase (empty URL).
func DefaultOptions() Options {
	return Options{DefaultBudget: 3000 * time.Millisecond, TablebaseTimeout: 5 * time.Second}
}

// Engine encapsulates one game: the position under play, its move generator,
// and the configured search/tablebase boundary. Not safe for concurrent use;
// callers serialize access, matching Position's single-threaded contract.
type Engine struct {
	name, author string
	opts         Options

	pos *board.Position
	tb  *tablebase.Client
}

// New returns an Engine set to the standard starting position.
func New(ctx context.Context, name, author string, opts Options) *Engine {
	e := &Engine{name: name, author: author, opts: opts}
	if opts.TablebaseURL != "" {
		e.tb = tablebase.NewClient(opts.TablebaseURL, opts.TablebaseTimeout)
	}

	_ = e.Reset(ctx, fen.Initial)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the configured author string.
func (e *Engine) Author() string {
	return e.author
}

// Position returns the current position as a FEN string.
func (e *Engine) Position() string {
	return fen.Encode(e.pos)
}

// Reset sets the position to the given FEN record.
func (e *Engine) Reset(ctx context.Context, record string) error {
	pos, err := fen.Decode(record)
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	e.pos = pos

	logw.Infof(ctx, "Reset to %v", record)
	return nil
}

// Move applies move (UCI notation) to the current position, as the
// opponent's or a replayed move. Returns board.ErrIllegalMove wrapped with
// context if move does not match any currently legal move.
func (e *Engine) Move(ctx context.Context, move string) error {
	candidate, err := board.ParseUCI(move)
	if err != nil {
		return fmt.Errorf("move %q: %w", move, err)
	}

	gen := board.NewMoveGenerator(e.pos)
	resolved, err := gen.ResolveUCI(candidate)
	if err != nil {
		return fmt.Errorf("move %q: %w", move, err)
	}

	e.pos.MakeMove(resolved)
	logw.Debugf(ctx, "Move %v: %v", resolved, e.Position())
	return nil
}

// FindBestMove searches the current position under budget and returns the
// chosen move and its score from the side-to-move's perspective. It consults
// the tablebase first when fewer than tablebase.MaxPieces remain on the
// board, falling back to the standard search on any tablebase error
// (spec.md §4.4 step 1, §7).
func (e *Engine) FindBestMove(ctx context.Context, budget time.Duration) (board.Move, board.Score, search.PV, error) {
	if e.tb != nil && tablebase.ShouldConsult(e.pos) {
		tctx, cancel := context.WithTimeout(ctx, e.opts.TablebaseTimeout)
		m, score, err := e.tb.ProbeRoot(tctx, e.pos)
		cancel()

		if err == nil {
			logw.Infof(ctx, "Tablebase hit: %v (%v)", m, score)
			return m, score, search.PV{Move: m, Score: score}, nil
		}
		logw.Debugf(ctx, "Tablebase miss, falling back to search: %v", err)
	}

	opt := search.Options{DepthLimit: e.opts.DepthLimit}
	if budget > 0 {
		opt.Deadline = time.Now().Add(budget)
	}

	m, score, pv := search.FindBestMove(ctx, e.pos, opt)
	if m.Equals(board.Move{}) {
		return board.Move{}, score, pv, fmt.Errorf("no legal move available")
	}
	return m, score, pv, nil
}

// Budget computes the move time budget from UCI "go" clock parameters per
// spec.md §6: movetime wins outright; otherwise a side clock is divided by
// 60 in the opening (full-move number < 10) or by 30 afterward; with
// neither, DefaultBudget applies.
func (e *Engine) Budget(movetime time.Duration, sideClock time.Duration) time.Duration {
	if movetime > 0 {
		return movetime
	}
	if sideClock > 0 {
		divisor := time.Duration(30)
		if e.pos.FullMoveNumber() < 10 {
			divisor = 60
		}
		return sideClock / divisor
	}
	return e.opts.DefaultBudget
}
