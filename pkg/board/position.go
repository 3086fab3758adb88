package board

import (
	"errors"
	"fmt"
)

// ErrNoHistory indicates UnmakeMove was called with no moves left to undo. It is a
// programmer error: a make/unmake imbalance upstream.
var ErrNoHistory = errors.New("no history to unmake")

// content is the occupant of a single square: either empty (Piece == NoPiece) or
// exactly one (kind, color) pair.
type content struct {
	Piece Piece
	Color Color
}

// state is the undo-sensitive subset of Position: everything MakeMove mutates
// that cannot be reconstructed from the move alone, and that UnmakeMove must
// restore verbatim from history.
type state struct {
	Castling      Castling
	EnPassant     Square // NoSquare if unset
	HalfmoveClock int
}

// Position is mutable chess game state with reversible make/unmake of moves. It
// is not safe for concurrent use: callers must serialize make/unmake pairs, per
// spec.md §5.
type Position struct {
	squares        [NumSquares]content
	sideToMove     Color
	fullMoveNumber int

	cur     state
	history []state
}

// NewEmptyPosition returns an empty board with White to move, no castling
// rights, no en passant target, a zero halfmove clock, and full-move 1. Callers
// typically populate it via PutPiece or go through PositionBuilder.
func NewEmptyPosition() *Position {
	return &Position{
		sideToMove:     White,
		fullMoveNumber: 1,
		cur: state{
			Castling:      NoCastling,
			EnPassant:     NoSquare,
			HalfmoveClock: 0,
		},
	}
}

// Clone returns an independent deep copy. The Search owns and mutates a clone at
// the root, never the caller's original Position.
func (p *Position) Clone() *Position {
	ret := *p
	ret.history = append([]state(nil), p.history...)
	return &ret
}

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color {
	return p.sideToMove
}

// FullMoveNumber returns the full-move counter (starts at 1, increments after
// each Black move).
func (p *Position) FullMoveNumber() int {
	return p.fullMoveNumber
}

// CastlingRights returns the current castling rights.
func (p *Position) CastlingRights() Castling {
	return p.cur.Castling
}

// EnPassantTarget returns the en passant target square and whether one is set.
func (p *Position) EnPassantTarget() (Square, bool) {
	return p.cur.EnPassant, p.cur.EnPassant != NoSquare
}

// HalfmoveClock returns the number of halfmoves since the last pawn move or
// capture (fifty-move-rule counter; the engine itself does not adjudicate on it).
func (p *Position) HalfmoveClock() int {
	return p.cur.HalfmoveClock
}

// HistoryLen returns the number of moves made since this Position (or its root
// ancestor) was created. Every UnmakeMove pops exactly one entry.
func (p *Position) HistoryLen() int {
	return len(p.history)
}

// PutPiece places a piece of the given kind and color on sq, overwriting any
// existing occupant. Used by PositionBuilder; not used mid-search.
func (p *Position) PutPiece(sq Square, kind Piece, color Color) {
	p.squares[sq] = content{Piece: kind, Color: color}
}

// ClearSquare empties a square.
func (p *Position) ClearSquare(sq Square) {
	p.squares[sq] = content{}
}

// PieceAt returns the occupant of sq, if any.
func (p *Position) PieceAt(sq Square) (kind Piece, color Color, ok bool) {
	c := p.squares[sq]
	if c.Piece == NoPiece {
		return NoPiece, 0, false
	}
	return c.Piece, c.Color, true
}

// IsPieceAt reports whether sq holds a piece of the given kind and color.
func (p *Position) IsPieceAt(sq Square, kind Piece, color Color) bool {
	c := p.squares[sq]
	return c.Piece == kind && c.Color == color
}

// IsEmpty reports whether sq holds no piece.
func (p *Position) IsEmpty(sq Square) bool {
	return p.squares[sq].Piece == NoPiece
}

// KingSquare returns the square of color's king. Panics if the position has no
// king of that color, which indicates malformed setup upstream (PositionBuilder
// validates this).
func (p *Position) KingSquare(color Color) Square {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if p.IsPieceAt(sq, King, color) {
			return sq
		}
	}
	panic(fmt.Sprintf("no %v king on board", color))
}

// rookHomeRight maps a rook's home square to the castling right it guards, or
// NoCastling if sq is not one of the four home squares.
func rookHomeRight(sq Square) Castling {
	switch sq {
	case H1:
		return WhiteKingSide
	case A1:
		return WhiteQueenSide
	case H8:
		return BlackKingSide
	case A8:
		return BlackQueenSide
	default:
		return NoCastling
	}
}

// MakeMove mutates the position to reflect m. m is assumed pseudo-legal and
// well-formed (e.g. EnPassant only set when a matching target exists); malformed
// input is a programmer error. See spec.md §4.1 for the exact step order.
func (p *Position) MakeMove(m Move) {
	mover := p.sideToMove
	movingKind, _, _ := p.PieceAt(m.From)

	// (1) push current state for unmake.
	p.history = append(p.history, p.cur)

	// (2) clear en passant; re-set below only for DoublePush.
	p.cur.EnPassant = NoSquare

	// (3) halfmove clock: reset on pawn move or any capture, else increment.
	if movingKind == Pawn || m.IsCapture() {
		p.cur.HalfmoveClock = 0
	} else {
		p.cur.HalfmoveClock++
	}

	// (4) double push sets the en passant target behind the pawn.
	if m.Flag == DoublePush {
		if mover == White {
			p.cur.EnPassant = m.From + 8
		} else {
			p.cur.EnPassant = m.From - 8
		}
	}

	// (5) en passant capture removes the opposing pawn from the square that is
	// on the moving side's fifth rank, same file as the destination.
	if m.Flag == EnPassant {
		var capSq Square
		if mover == White {
			capSq = m.To - 8
		} else {
			capSq = m.To + 8
		}
		p.ClearSquare(capSq)
	}

	// (6) castling: move king and rook, clear rights, flip side, return early.
	if m.IsCastle() {
		p.applyCastle(mover, m.Flag)

		king, queen := RightsFor(mover)
		p.cur.Castling = p.cur.Castling.Clear(king).Clear(queen)

		p.flipSideAndFullMove()
		return
	}

	// (7) castling rights updates for non-castle moves.
	if movingKind == King {
		king, queen := RightsFor(mover)
		p.cur.Castling = p.cur.Castling.Clear(king).Clear(queen)
	}
	if right := rookHomeRight(m.From); right != NoCastling {
		p.cur.Castling = p.cur.Castling.Clear(right)
	}
	if right := rookHomeRight(m.To); right != NoCastling {
		p.cur.Castling = p.cur.Castling.Clear(right)
	}

	// (8) place the piece on `to` (promoted kind if promoting), (9) clear `from`.
	placed := movingKind
	if m.IsPromotion() {
		placed = m.Promoted
	}
	p.PutPiece(m.To, placed, mover)
	p.ClearSquare(m.From)

	// (10) flip side to move, update full-move counter.
	p.flipSideAndFullMove()
}

func (p *Position) applyCastle(mover Color, flag MoveFlag) {
	rank := Rank1
	if mover == Black {
		rank = Rank8
	}

	kingFrom := NewSquare(FileE, rank)
	var kingTo, rookFrom, rookTo Square
	if flag == CastleShort {
		kingTo = NewSquare(FileG, rank)
		rookFrom = NewSquare(FileH, rank)
		rookTo = NewSquare(FileF, rank)
	} else {
		kingTo = NewSquare(FileC, rank)
		rookFrom = NewSquare(FileA, rank)
		rookTo = NewSquare(FileD, rank)
	}

	p.ClearSquare(kingFrom)
	p.ClearSquare(rookFrom)
	p.PutPiece(kingTo, King, mover)
	p.PutPiece(rookTo, Rook, mover)
}

func (p *Position) flipSideAndFullMove() {
	p.sideToMove = p.sideToMove.Opponent()
	if p.sideToMove == White {
		p.fullMoveNumber++
	}
}

// UnmakeMove reverses the effect of m, which must be the most recently made move.
// Returns ErrNoHistory if there is nothing to unmake.
func (p *Position) UnmakeMove(m Move) error {
	if len(p.history) == 0 {
		return ErrNoHistory
	}

	// Pop state first; the mover is whoever is about to become side to move again.
	n := len(p.history) - 1
	p.cur = p.history[n]
	p.history = p.history[:n]

	p.sideToMove = p.sideToMove.Opponent()
	mover := p.sideToMove
	if mover == Black {
		p.fullMoveNumber--
	}

	if m.IsCastle() {
		p.undoCastle(mover, m.Flag)
		return nil
	}

	switch m.Flag {
	case Capture:
		movedKind, _, _ := p.PieceAt(m.To)
		p.PutPiece(m.From, movedKind, mover)
		p.PutPiece(m.To, m.Captured, mover.Opponent())
	case EnPassant:
		p.PutPiece(m.From, Pawn, mover)
		p.ClearSquare(m.To)
		var capSq Square
		if mover == White {
			capSq = m.To - 8
		} else {
			capSq = m.To + 8
		}
		p.PutPiece(capSq, Pawn, mover.Opponent())
	case Promote:
		p.PutPiece(m.From, Pawn, mover)
		p.ClearSquare(m.To)
	case CapturePromote:
		p.PutPiece(m.From, Pawn, mover)
		p.PutPiece(m.To, m.Captured, mover.Opponent())
	default: // Quiet, DoublePush
		movedKind, _, _ := p.PieceAt(m.To)
		p.PutPiece(m.From, movedKind, mover)
		p.ClearSquare(m.To)
	}
	return nil
}

func (p *Position) undoCastle(mover Color, flag MoveFlag) {
	rank := Rank1
	if mover == Black {
		rank = Rank8
	}

	kingFrom := NewSquare(FileE, rank)
	var kingTo, rookFrom, rookTo Square
	if flag == CastleShort {
		kingTo = NewSquare(FileG, rank)
		rookFrom = NewSquare(FileH, rank)
		rookTo = NewSquare(FileF, rank)
	} else {
		kingTo = NewSquare(FileC, rank)
		rookFrom = NewSquare(FileA, rank)
		rookTo = NewSquare(FileD, rank)
	}

	p.ClearSquare(kingTo)
	p.ClearSquare(rookTo)
	p.PutPiece(kingFrom, King, mover)
	p.PutPiece(rookFrom, Rook, mover)
}

func (p *Position) String() string {
	var out [64 + 8 - 1]byte
	idx := 0
	for r := int(Rank8); r >= 0; r-- {
		for f := ZeroFile; f < NumFiles; f++ {
			sq := NewSquare(f, Rank(r))
			if kind, color, ok := p.PieceAt(sq); ok {
				out[idx] = printPiece(color, kind)
			} else {
				out[idx] = '-'
			}
			idx++
		}
		if r > 0 {
			out[idx] = '/'
			idx++
		}
	}
	return fmt.Sprintf("%v %v %v ep=%v half=%v full=%v", string(out[:idx]), p.sideToMove, p.cur.Castling, p.cur.EnPassant, p.cur.HalfmoveClock, p.fullMoveNumber)
}

func printPiece(c Color, p Piece) byte {
	s := p.String()[0]
	if c == White {
		return s - ('a' - 'A')
	}
	return s
}
