package board

import "fmt"

// Builder constructs a Position by piece placement, the base construction path
// that PositionBuilder's FEN decoding (see pkg/board/fen) also funnels through.
// It validates obvious structural invariants at Build time rather than on every
// Place call, so pieces may be placed in any order.
type Builder struct {
	pos *Position
}

// NewBuilder returns a builder seeded with an empty board, White to move, no
// castling rights, no en passant target, a zero halfmove clock and full-move 1.
func NewBuilder() *Builder {
	return &Builder{pos: NewEmptyPosition()}
}

// Place puts a piece of the given kind and color on sq.
func (b *Builder) Place(sq Square, kind Piece, color Color) *Builder {
	b.pos.PutPiece(sq, kind, color)
	return b
}

// SideToMove sets the side to move.
func (b *Builder) SideToMove(c Color) *Builder {
	b.pos.sideToMove = c
	return b
}

// Castling sets the castling rights.
func (b *Builder) Castling(c Castling) *Builder {
	b.pos.cur.Castling = c
	return b
}

// EnPassant sets the en passant target square.
func (b *Builder) EnPassant(sq Square) *Builder {
	b.pos.cur.EnPassant = sq
	return b
}

// HalfmoveClock sets the halfmove (fifty-move-rule) clock.
func (b *Builder) HalfmoveClock(n int) *Builder {
	b.pos.cur.HalfmoveClock = n
	return b
}

// FullMoveNumber sets the full-move counter.
func (b *Builder) FullMoveNumber(n int) *Builder {
	b.pos.fullMoveNumber = n
	return b
}

// Build validates and returns the constructed Position. It enforces invariant 1
// (exactly one king per color) and rejects adjacent kings, which can never
// arise in a legal game.
func (b *Builder) Build() (*Position, error) {
	var whiteKings, blackKings int
	var whiteKingSq, blackKingSq Square

	for sq := ZeroSquare; sq < NumSquares; sq++ {
		kind, color, ok := b.pos.PieceAt(sq)
		if !ok || kind != King {
			continue
		}
		if color == White {
			whiteKings++
			whiteKingSq = sq
		} else {
			blackKings++
			blackKingSq = sq
		}
	}

	if whiteKings != 1 || blackKings != 1 {
		return nil, fmt.Errorf("invalid position: expected exactly one king per side, found white=%d black=%d", whiteKings, blackKings)
	}
	if whiteKingSq.Distance(blackKingSq) <= 1 {
		return nil, fmt.Errorf("invalid position: kings cannot be adjacent")
	}

	return b.pos, nil
}
