package board_test

import (
	"testing"

	"github.com/chrisfishbob/Talia/pkg/board"
	"github.com/chrisfishbob/Talia/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMakeUnmakeRoundTrip is property P1: make(m); unmake(m) restores every
// field except that history must also match in length and contents.
func TestMakeUnmakeRoundTrip(t *testing.T) {
	positions := []string{
		fen.Initial,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1",
		"4k3/8/8/8/8/8/P7/4K3 w - - 0 1",
	}

	for _, p := range positions {
		pos, err := fen.Decode(p)
		require.NoError(t, err)

		before := fen.Encode(pos)
		beforeHistory := pos.HistoryLen()

		gen := board.NewMoveGenerator(pos)
		for _, m := range gen.GenerateLegalMoves() {
			pos.MakeMove(m)
			require.Equal(t, beforeHistory+1, pos.HistoryLen())

			require.NoError(t, pos.UnmakeMove(m))
			assert.Equal(t, before, fen.Encode(pos), "round trip of %v from %v", m, p)
			assert.Equal(t, beforeHistory, pos.HistoryLen())
		}
	}
}

func TestUnmakeWithEmptyHistoryFails(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	err = pos.UnmakeMove(board.Move{From: board.E2, To: board.E4, Flag: board.DoublePush})
	assert.ErrorIs(t, err, board.ErrNoHistory)
}

func TestCastlingRightsClearedByKingAndRookMoves(t *testing.T) {
	pos, err := fen.Decode("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	pos.MakeMove(board.Move{From: board.H1, To: board.H2, Flag: board.Quiet})
	assert.False(t, pos.CastlingRights().Has(board.WhiteKingSide))
	assert.True(t, pos.CastlingRights().Has(board.WhiteQueenSide))

	pos.MakeMove(board.Move{From: board.E8, To: board.E7, Flag: board.Quiet})
	assert.False(t, pos.CastlingRights().Has(board.BlackKingSide))
	assert.False(t, pos.CastlingRights().Has(board.BlackQueenSide))
}

func TestCastlingRightsClearedByRookCapture(t *testing.T) {
	pos, err := fen.Decode("r3k3/8/8/8/8/8/8/R3K2R w KQq - 0 1")
	require.NoError(t, err)

	// White rook captures black's rook on a8, removing black's queen-side right.
	pos.MakeMove(board.Move{From: board.A1, To: board.A8, Flag: board.Capture, Captured: board.Rook})
	assert.False(t, pos.CastlingRights().Has(board.BlackQueenSide))
}

func TestEnPassantCaptureRemovesPawn(t *testing.T) {
	pos, err := fen.Decode("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	require.NoError(t, err)

	pos.MakeMove(board.Move{From: board.E5, To: board.D6, Flag: board.EnPassant})
	assert.True(t, pos.IsEmpty(board.D5))
	_, color, ok := pos.PieceAt(board.D6)
	assert.True(t, ok)
	assert.Equal(t, board.White, color)
}

func TestBuilderRejectsMissingOrAdjacentKings(t *testing.T) {
	_, err := board.NewBuilder().Build()
	assert.Error(t, err)

	_, err = board.NewBuilder().
		Place(board.E1, board.King, board.White).
		Place(board.E2, board.King, board.Black).
		Build()
	assert.Error(t, err)
}
