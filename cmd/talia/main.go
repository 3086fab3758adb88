// talia is a UCI chess engine: move generation, negamax search with
// quiescence, and an optional endgame tablebase lookup.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/chrisfishbob/Talia/pkg/engine"
	"github.com/chrisfishbob/Talia/pkg/engine/uci"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var (
	depth            = flag.Int("depth", 0, "Search depth limit (0 = no limit, bounded by time budget)")
	defaultBudget    = flag.Duration("budget", 3*time.Second, "Default move time budget when the GUI gives none")
	tablebaseURL     = flag.String("tablebase", "", "Tablebase service base URL (empty disables lookups)")
	tablebaseTimeout = flag.Duration("tablebase-timeout", 5*time.Second, "Tablebase request timeout")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	var depthLimit lang.Optional[int]
	if *depth > 0 {
		depthLimit = lang.Some(*depth)
	}

	opts := engine.Options{
		DepthLimit:       depthLimit,
		DefaultBudget:    *defaultBudget,
		TablebaseURL:     *tablebaseURL,
		TablebaseTimeout: *tablebaseTimeout,
	}
	e := engine.New(ctx, "Talia", "chrisfishbob", opts)

	logw.Infof(ctx, "talia: starting UCI loop, options=%v", opts)

	d := uci.NewDriver(e, os.Stdout)
	d.Run(ctx, os.Stdin)
}
