package board_test

import (
	"testing"

	"github.com/chrisfishbob/Talia/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquareCorners(t *testing.T) {
	assert.Equal(t, board.A1, board.NewSquare(board.FileA, board.Rank1))
	assert.Equal(t, board.H1, board.NewSquare(board.FileH, board.Rank1))
	assert.Equal(t, board.A8, board.NewSquare(board.FileA, board.Rank8))
	assert.Equal(t, board.H8, board.NewSquare(board.FileH, board.Rank8))

	assert.EqualValues(t, 0, board.A1)
	assert.EqualValues(t, 7, board.H1)
	assert.EqualValues(t, 56, board.A8)
	assert.EqualValues(t, 63, board.H8)
}

func TestParseSquareStr(t *testing.T) {
	sq, err := board.ParseSquareStr("e4")
	require.NoError(t, err)
	assert.Equal(t, board.E4, sq)
	assert.Equal(t, "e4", sq.String())

	_, err = board.ParseSquareStr("i4")
	assert.Error(t, err)

	_, err = board.ParseSquareStr("e9")
	assert.Error(t, err)
}
