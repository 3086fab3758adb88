// Package fen contains utilities for reading and writing positions in
// Forsyth-Edwards Notation.
package fen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/chrisfishbob/Talia/pkg/board"
)

// ErrFenParse indicates a malformed FEN string. Wrap with fmt.Errorf("...: %w",
// ErrFenParse) style explanations when returning it.
var ErrFenParse = errors.New("invalid FEN")

// Initial is the FEN of the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a complete 6-field FEN record into a Position.
func Decode(s string) (*board.Position, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 6 {
		return nil, fmt.Errorf("%w: expected 6 space-separated fields, got %d: %q", ErrFenParse, len(parts), s)
	}

	b := board.NewBuilder()

	if err := decodePlacement(b, parts[0]); err != nil {
		return nil, err
	}

	side, ok := parseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("%w: invalid active color %q", ErrFenParse, parts[1])
	}
	b.SideToMove(side)

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("%w: invalid castling availability %q", ErrFenParse, parts[2])
	}
	b.Castling(castling)

	ep := board.NoSquare
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid en passant square %q: %v", ErrFenParse, parts[3], err)
		}
		ep = sq
	}
	b.EnPassant(ep)

	half, err := strconv.Atoi(parts[4])
	if err != nil || half < 0 {
		return nil, fmt.Errorf("%w: invalid halfmove clock %q", ErrFenParse, parts[4])
	}
	b.HalfmoveClock(half)

	full, err := strconv.Atoi(parts[5])
	if err != nil || full < 1 {
		return nil, fmt.Errorf("%w: invalid full move number %q", ErrFenParse, parts[5])
	}
	b.FullMoveNumber(full)

	pos, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFenParse, err)
	}
	return pos, nil
}

func decodePlacement(b *board.Builder, placement string) error {
	rank := board.Rank8
	file := board.FileA

	for _, r := range placement {
		switch {
		case r == '/':
			if file != board.NumFiles {
				return fmt.Errorf("%w: rank did not fill 8 files in %q", ErrFenParse, placement)
			}
			if rank == board.ZeroRank {
				return fmt.Errorf("%w: too many ranks in %q", ErrFenParse, placement)
			}
			rank--
			file = board.FileA

		case unicode.IsDigit(r):
			n := int(r - '0')
			if n < 1 || n > 8 {
				return fmt.Errorf("%w: invalid run length in %q", ErrFenParse, placement)
			}
			file = board.File(int(file) + n)

		case unicode.IsLetter(r):
			color, piece, ok := parsePiece(r)
			if !ok {
				return fmt.Errorf("%w: invalid piece %q in %q", ErrFenParse, string(r), placement)
			}
			if file >= board.NumFiles {
				return fmt.Errorf("%w: rank overflowed 8 files in %q", ErrFenParse, placement)
			}
			b.Place(board.NewSquare(file, rank), piece, color)
			file++

		default:
			return fmt.Errorf("%w: unexpected character %q in %q", ErrFenParse, string(r), placement)
		}
	}
	if file != board.NumFiles || rank != board.ZeroRank {
		return fmt.Errorf("%w: incomplete piece placement %q", ErrFenParse, placement)
	}
	return nil
}

// Encode writes a position as a complete 6-field FEN record. The en passant
// field is always emitted when the target is set, matching the classic FEN
// convention rather than the modern "only if actually capturable" convention
// (spec.md §9 Open Question (a): either is acceptable provided it is applied
// consistently on both encode and decode, which it is here).
func Encode(pos *board.Position) string {
	var sb strings.Builder
	for r := int(board.Rank8); r >= 0; r-- {
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			sq := board.NewSquare(f, board.Rank(r))
			kind, color, ok := pos.PieceAt(sq)
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(color, kind))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r > 0 {
			sb.WriteString("/")
		}
	}

	ep := "-"
	if sq, ok := pos.EnPassantTarget(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%s %v %v %v %d %d", sb.String(), pos.SideToMove(), pos.CastlingRights(), ep, pos.HalfmoveClock(), pos.FullMoveNumber())
}

func parseCastling(s string) (board.Castling, bool) {
	if s == "-" {
		return board.NoCastling, true
	}

	var c board.Castling
	for _, r := range s {
		switch r {
		case 'K':
			c |= board.WhiteKingSide
		case 'Q':
			c |= board.WhiteQueenSide
		case 'k':
			c |= board.BlackKingSide
		case 'q':
			c |= board.BlackQueenSide
		default:
			return 0, false
		}
	}
	return c, true
}

func parseColor(s string) (board.Color, bool) {
	switch s {
	case "w":
		return board.White, true
	case "b":
		return board.Black, true
	default:
		return 0, false
	}
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	kind, ok := board.ParsePiece(r)
	if !ok {
		return 0, 0, false
	}
	if unicode.IsUpper(r) {
		return board.White, kind, true
	}
	return board.Black, kind, true
}

func printPiece(c board.Color, p board.Piece) rune {
	s := []rune(p.String())[0]
	if c == board.White {
		return unicode.ToUpper(s)
	}
	return s
}
