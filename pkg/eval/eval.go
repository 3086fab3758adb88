// Package eval contains static position evaluation: material balance plus
// piece-square tables, scored from the side-to-move's perspective.
package eval

import "github.com/chrisfishbob/Talia/pkg/board"

// Evaluate returns pos's score from the perspective of the side to move:
// positive favors the side to move. It sums material_value(kind) +
// pst_value(kind, color, square) over every piece, White minus Black, then
// negates the result if Black is to move (spec.md §4.3).
func Evaluate(pos *board.Position) board.Score {
	var total board.Score

	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		kind, color, ok := pos.PieceAt(sq)
		if !ok {
			continue
		}

		value := board.Score(kind.Value()) + pstValue(kind, color, sq)
		if color == board.White {
			total += value
		} else {
			total -= value
		}
	}

	if pos.SideToMove() == board.Black {
		total = -total
	}
	return total
}

// pstValue looks up the positional bonus for a piece of the given kind and
// color standing on sq. Tables are authored from White's perspective with
// rank 0 as White's own back rank; Black's lookup mirrors the square
// vertically (rank := 7 - rank).
func pstValue(kind board.Piece, color board.Color, sq board.Square) board.Score {
	table := pieceSquareTables[kind]

	r, f := int(sq.Rank()), int(sq.File())
	if color == board.Black {
		r = 7 - r
	}
	return board.Score(table[r*8+f])
}
