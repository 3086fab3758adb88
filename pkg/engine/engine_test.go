package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/chrisfishbob/Talia/pkg/board"
	"github.com/chrisfishbob/Talia/pkg/board/fen"
	"github.com/chrisfishbob/Talia/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetAndPositionRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "Talia", "test", engine.DefaultOptions())
	assert.Equal(t, fen.Initial, e.Position())

	require.NoError(t, e.Reset(ctx, "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1"))
	assert.Equal(t, "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1", e.Position())
}

func TestMoveRejectsIllegalMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "Talia", "test", engine.DefaultOptions())

	err := e.Move(ctx, "e2e5")
	assert.ErrorIs(t, err, board.ErrIllegalMove)
}

func TestMoveAppliesLegalMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "Talia", "test", engine.DefaultOptions())

	require.NoError(t, e.Move(ctx, "e2e4"))
	assert.Contains(t, e.Position(), " b ")
}

func TestFindBestMoveReturnsLegalMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "Talia", "test", engine.DefaultOptions())

	m, _, _, err := e.FindBestMove(ctx, 50*time.Millisecond)
	require.NoError(t, err)
	assert.NotEqual(t, board.Move{}, m)
}

func TestBudgetPrefersMovetimeThenClockThenDefault(t *testing.T) {
	ctx := context.Background()
	opts := engine.DefaultOptions()
	opts.DefaultBudget = 3 * time.Second
	e := engine.New(ctx, "Talia", "test", opts)

	assert.Equal(t, 500*time.Millisecond, e.Budget(500*time.Millisecond, 10*time.Second))
	assert.Equal(t, 60*time.Second/60, e.Budget(0, 60*time.Second)) // opening: /60
	assert.Equal(t, 3*time.Second, e.Budget(0, 0))
}
