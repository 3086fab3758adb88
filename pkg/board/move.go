package board

import "fmt"

// MoveFlag tags the kind of a Move. Exactly one of these applies to any Move; the
// Capture and Promotion fields on Move carry the payload for the variants that
// need it (Capture, Promote, CapturePromote).
type MoveFlag uint8

const (
	Quiet MoveFlag = iota
	DoublePush
	EnPassant
	CastleShort
	CastleLong
	Capture
	Promote
	CapturePromote
)

func (f MoveFlag) String() string {
	switch f {
	case Quiet:
		return "quiet"
	case DoublePush:
		return "double-push"
	case EnPassant:
		return "en-passant"
	case CastleShort:
		return "O-O"
	case CastleLong:
		return "O-O-O"
	case Capture:
		return "capture"
	case Promote:
		return "promote"
	case CapturePromote:
		return "capture-promote"
	default:
		return "?"
	}
}

// Move is an immutable description of a move: the (from, to) squares plus a flag
// that determines how Position.MakeMove interprets it. The captured piece kind
// (for Capture/CapturePromote) and the promotion piece kind (for
// Promote/CapturePromote) are carried on the move itself so that UnmakeMove can
// restore the board without reconstructing lost information.
type Move struct {
	From, To Square
	Flag     MoveFlag
	Captured Piece // set iff Flag is Capture or CapturePromote (never Pawn for en passant; see EnPassant)
	Promoted Piece // set iff Flag is Promote or CapturePromote
}

// IsCapture reports whether the move removes an enemy piece from the board,
// including en passant.
func (m Move) IsCapture() bool {
	return m.Flag == Capture || m.Flag == CapturePromote || m.Flag == EnPassant
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Flag == Promote || m.Flag == CapturePromote
}

// IsCastle reports whether the move is a castling move.
func (m Move) IsCastle() bool {
	return m.Flag == CastleShort || m.Flag == CastleLong
}

// Equals reports whether two moves describe the same transition, ignoring Score
// bookkeeping that callers might otherwise attach.
func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Flag == o.Flag && m.Promoted == o.Promoted
}

// ParseUCI parses a move in UCI's pure algebraic coordinate notation, e.g. "e2e4"
// or "a7a8q". The result carries no contextual flag information (Quiet by
// default with the promotion piece set, if any); callers must resolve it against
// a generated move list to recover the true flag — see
// MoveGenerator.ResolveUCI.
func ParseUCI(str string) (Move, error) {
	runes := []rune(str)
	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("invalid move: %q", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid from square in %q: %w", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid to square in %q: %w", str, err)
	}

	m := Move{From: from, To: to}
	if len(runes) == 5 {
		promo, ok := ParsePiece(runes[4])
		if !ok || promo == Pawn || promo == King {
			return Move{}, fmt.Errorf("invalid promotion in %q", str)
		}
		m.Promoted = promo
	}
	return m, nil
}

func (m Move) String() string {
	if m.IsPromotion() {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promoted)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}
