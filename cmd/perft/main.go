// perft is a move generator debugging tool. See:
// https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/chrisfishbob/Talia/pkg/board"
	"github.com/chrisfishbob/Talia/pkg/board/fen"
	"github.com/seekerror/logw"
)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	position = flag.String("fen", "", "Start position (default to standard)")
	divide   = flag.Bool("divide", false, "Divide counts by initial move, at the deepest depth")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	record := *position
	if record == "" {
		record = fen.Initial
	}

	pos, err := fen.Decode(record)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen %q: %v", record, err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()

		if *divide && i == *depth {
			for m, count := range board.PerftDivide(pos, i) {
				fmt.Printf("%v: %v\n", m, count)
			}
		}

		nodes := board.Perft(pos, i)
		fmt.Printf("perft,%v,%v,%v,%v\n", record, i, nodes, time.Since(start).Microseconds())
	}
}
