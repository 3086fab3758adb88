package board_test

import (
	"testing"

	"github.com/chrisfishbob/Talia/pkg/board"
	"github.com/chrisfishbob/Talia/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPerftInitialPosition is property P5: known-good node counts from the
// standard starting position at increasing depth.
func TestPerftInitialPosition(t *testing.T) {
	if testing.Short() {
		t.Skip("perft to depth 5 is slow under -short")
	}

	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	cases := []struct {
		depth int
		want  int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		{5, 4865609},
	}
	for _, tt := range cases {
		got := board.Perft(pos, tt.depth)
		assert.Equal(t, tt.want, got, "perft(%d)", tt.depth)
	}
}

// TestPerftKiwipete is property P6: the "kiwipete" stress position exercises
// castling, en passant, and promotions together.
func TestPerftKiwipete(t *testing.T) {
	pos, err := fen.Decode("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	cases := []struct {
		depth int
		want  int64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}
	for _, tt := range cases {
		got := board.Perft(pos, tt.depth)
		assert.Equal(t, tt.want, got, "perft(%d)", tt.depth)
	}
}

func TestPerftKiwipeteDepth4(t *testing.T) {
	if testing.Short() {
		t.Skip("perft to depth 4 on kiwipete is slow under -short")
	}
	pos, err := fen.Decode("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	assert.Equal(t, int64(4085603), board.Perft(pos, 4))
}

func TestCastlingThroughCheckIsIllegal(t *testing.T) {
	// Black rook on e8-file... use a rook on f8 attacking the f1 transit square.
	pos, err := fen.Decode("4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)
	gen := board.NewMoveGenerator(pos)
	moves := gen.GenerateLegalMoves()
	assertContainsCastle(t, moves, board.CastleShort, true)
	assertContainsCastle(t, moves, board.CastleLong, true)

	blocked, err := fen.Decode("4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)
	gen2 := board.NewMoveGenerator(blocked)
	moves2 := gen2.GenerateLegalMoves()
	assertContainsCastle(t, moves2, board.CastleShort, false)
}

func assertContainsCastle(t *testing.T, moves []board.Move, flag board.MoveFlag, want bool) {
	t.Helper()
	found := false
	for _, m := range moves {
		if m.Flag == flag {
			found = true
		}
	}
	assert.Equal(t, want, found)
}

func TestKingInCheckMustEscape(t *testing.T) {
	// White king on e1 in check from black rook on e8; only legal moves escape check.
	pos, err := fen.Decode("k3r3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	gen := board.NewMoveGenerator(pos)
	require.True(t, gen.IsInCheck(board.White))

	for _, m := range gen.GenerateLegalMoves() {
		assert.NotEqual(t, board.E2, m.To, "Ke2 stays on the checking file/rank and must be filtered")
	}
}

func TestPawnPushDoesNotCountAsAttack(t *testing.T) {
	// White pawn on e2 can push to e3/e4 but does not attack either square.
	pos, err := fen.Decode("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)
	gen := board.NewMoveGenerator(pos)
	assert.False(t, gen.IsInCheck(board.Black)) // sanity: unrelated check

	// Put a black king on e3 - if push counted as attack, it would be (incorrectly) in check.
	pos2, err := fen.Decode("8/8/8/8/8/4k3/4P3/4K3 b - - 0 1")
	require.NoError(t, err)
	gen2 := board.NewMoveGenerator(pos2)
	assert.False(t, gen2.IsInCheck(board.Black), "a pawn's forward push does not threaten the square ahead of it")
}

func TestEnPassantResolvesViaUCI(t *testing.T) {
	pos, err := fen.Decode("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	require.NoError(t, err)
	gen := board.NewMoveGenerator(pos)

	uci, err := board.ParseUCI("e5d6")
	require.NoError(t, err)

	resolved, err := gen.ResolveUCI(uci)
	require.NoError(t, err)
	assert.Equal(t, board.EnPassant, resolved.Flag)
}

func TestPromotionGeneratesAllFourKinds(t *testing.T) {
	pos, err := fen.Decode("8/4P3/8/8/8/8/k7/4K3 w - - 0 1")
	require.NoError(t, err)
	gen := board.NewMoveGenerator(pos)

	kinds := map[board.Piece]bool{}
	for _, m := range gen.GenerateLegalMoves() {
		if m.From == board.E7 && m.To == board.E8 {
			kinds[m.Promoted] = true
		}
	}
	assert.Len(t, kinds, 4)
	for _, k := range []board.Piece{board.Queen, board.Rook, board.Bishop, board.Knight} {
		assert.True(t, kinds[k], "missing promotion to %v", k)
	}
}
