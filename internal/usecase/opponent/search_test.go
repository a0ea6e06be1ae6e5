package opponent

import (
	"context"
	"testing"

	"github.com/kiryu-dev/tactics-and-toes/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDecide_CrissCrossTakesImmediateWin(t *testing.T) {
	var e domain.Cell
	// Given: two full marks in the top row and a half-mark completing it
	state := opponentTurn(domain.CrissCross, domain.Board{
		x, o, domain.HalfMark(domain.First),
		e, e, e,
		e, e, e,
	})

	// When: the search runs
	move, err := New(fixedRandom{}, zap.NewNop()).Decide(context.Background(), state)

	// Then: the promotion that wins is chosen
	require.NoError(t, err)
	assert.Equal(t, 2, move)
}

func TestDecide_CrissCrossAvoidsHandingOverWin(t *testing.T) {
	var e domain.Cell
	// Given: two full marks in the top row and an empty cell completing it
	state := opponentTurn(domain.CrissCross, domain.Board{
		x, o, e,
		e, e, e,
		e, e, e,
	})

	// When: the search runs
	move, err := New(fixedRandom{}, zap.NewNop()).Decide(context.Background(), state)

	// Then: a half-mark on 2 would let the human promote it, so it is not played
	require.NoError(t, err)
	assert.NotEqual(t, 2, move)
	assert.True(t, state.Board[move].IsEmpty())
}

func TestDecide_CrissCrossCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(fixedRandom{}, zap.NewNop()).Decide(ctx, opponentTurn(domain.CrissCross, domain.Board{}))

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestMinimax_Scores(t *testing.T) {
	var e domain.Cell
	ctx := context.Background()
	won := domain.Board{x, o, x, e, e, e, e, e, e}

	t.Run("opponent completed a line", func(t *testing.T) {
		score, err := minimax(ctx, won, domain.Second, true, 2)
		require.NoError(t, err)
		assert.Equal(t, -98, score)
	})

	t.Run("searching side completed a line", func(t *testing.T) {
		score, err := minimax(ctx, won, domain.Second, false, 3)
		require.NoError(t, err)
		assert.Equal(t, 97, score)
	})

	t.Run("depth limit", func(t *testing.T) {
		score, err := minimax(ctx, domain.Board{}, domain.Second, true, 0)
		require.NoError(t, err)
		assert.Zero(t, score)
	})
}

func TestFallback(t *testing.T) {
	var e domain.Cell
	u := New(fixedRandom{index: 1}, zap.NewNop())

	t.Run("promotion that completes a line", func(t *testing.T) {
		board := domain.Board{
			e, e, e,
			o, x, domain.Cell{Kind: domain.Half},
			e, e, e,
		}
		assert.Equal(t, 5, u.fallback(board))
	})

	t.Run("random half-mark", func(t *testing.T) {
		board := domain.Board{
			domain.HalfMark(domain.First), e, e,
			e, e, domain.Cell{Kind: domain.Half},
			e, e, e,
		}
		assert.Equal(t, 5, u.fallback(board))
	})

	t.Run("random empty cell", func(t *testing.T) {
		board := domain.Board{
			x, e, o,
			e, e, e,
			e, e, e,
		}
		assert.Equal(t, 3, u.fallback(board))
	})
}

func TestCrissCrossCandidates(t *testing.T) {
	var e domain.Cell
	board := domain.Board{
		domain.Cell{Kind: domain.Half}, x, e,
		e, domain.HalfMark(domain.Second), o,
		e, e, x,
	}

	assert.Equal(t, []int{2, 3, 6, 7, 0, 4}, crissCrossCandidates(board))
}
