// Package uci implements the engine-facing subset of the Universal Chess
// Interface protocol (spec.md §6). The driver is synchronous: a "go" command
// blocks until the search returns, which is consistent with the core's
// single-threaded, no-suspension-point design (spec.md §5).
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chrisfishbob/Talia/pkg/engine"
	"github.com/seekerror/logw"
)

// Driver runs the UCI command loop against an Engine, reading commands from
// in and writing protocol responses to out.
type Driver struct {
	e   *engine.Engine
	out io.Writer
}

// NewDriver returns a driver for e.
func NewDriver(e *engine.Engine, out io.Writer) *Driver {
	return &Driver{e: e, out: out}
}

// Run reads UCI commands from in until EOF or a "quit" command.
func (d *Driver) Run(ctx context.Context, in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		logw.Debugf(ctx, "uci << %v", line)

		if !d.dispatch(ctx, line) {
			return
		}
	}
}

func (d *Driver) send(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	fmt.Fprintln(d.out, line)
}

// dispatch handles one command line. It returns false to terminate Run.
func (d *Driver) dispatch(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch strings.ToLower(cmd) {
	case "uci":
		d.send("id name %v", d.e.Name())
		d.send("id author %v", d.e.Author())
		d.send("uciok")

	case "isready":
		d.send("readyok")

	case "ucinewgame":
		_ = d.e.Reset(ctx, engineInitialFEN)

	case "position":
		d.handlePosition(ctx, args)

	case "go":
		d.handleGo(ctx, args)

	case "stop":
		// No-op: search has no mid-node cancellation (spec.md §5); a "go" has
		// already completed synchronously by the time "stop" could arrive.

	case "quit":
		return false

	default:
		logw.Debugf(ctx, "uci: ignoring unrecognized command %q", cmd)
	}
	return true
}

const engineInitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func (d *Driver) handlePosition(ctx context.Context, args []string) {
	if len(args) == 0 {
		return
	}

	idx := 1
	position := engineInitialFEN
	if args[0] == "fen" {
		if len(args) < 7 {
			logw.Errorf(ctx, "uci: malformed position fen command")
			return
		}
		position = strings.Join(args[1:7], " ")
		idx = 7
	}

	if err := d.e.Reset(ctx, position); err != nil {
		logw.Errorf(ctx, "uci: invalid position %q: %v", position, err)
		return
	}

	if idx < len(args) && args[idx] == "moves" {
		for _, mv := range args[idx+1:] {
			if err := d.e.Move(ctx, mv); err != nil {
				logw.Errorf(ctx, "uci: invalid move %q: %v", mv, err)
				return
			}
		}
	}
}

func (d *Driver) handleGo(ctx context.Context, args []string) {
	var movetime, wtime, btime time.Duration

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "movetime", "wtime", "btime":
			if i+1 >= len(args) {
				logw.Errorf(ctx, "uci: missing argument for %v", args[i])
				return
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				logw.Errorf(ctx, "uci: invalid argument for %v: %v", args[i], err)
				return
			}
			switch args[i] {
			case "movetime":
				movetime = time.Duration(n) * time.Millisecond
			case "wtime":
				wtime = time.Duration(n) * time.Millisecond
			case "btime":
				btime = time.Duration(n) * time.Millisecond
			}
			i++
		default:
			// depth, nodes, infinite, ponder, searchmoves, etc.: not modeled
			// by the boundary surface in spec.md §6; silently ignored.
		}
	}

	sideClock := wtime
	if strings.Contains(d.e.Position(), " b ") {
		sideClock = btime
	}

	budget := d.e.Budget(movetime, sideClock)
	m, score, _, err := d.e.FindBestMove(ctx, budget)
	if err != nil {
		logw.Errorf(ctx, "uci: search failed: %v", err)
		d.send("bestmove 0000")
		return
	}

	logw.Debugf(ctx, "uci: bestmove %v score=%v", m, score)
	d.send("bestmove %v", m)
}
