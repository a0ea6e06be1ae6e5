package game

import (
	"math/rand/v2"
	"testing"

	"github.com/kiryu-dev/tactics-and-toes/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlace_PoofEvictsOldestOwnMark(t *testing.T) {
	// Given: X already has three marks at 0, 3 and 6
	var (
		board   domain.Board
		history domain.History
	)
	for _, index := range []int{0, 3, 6} {
		board, history = Place(domain.Poof, board, history, index, domain.First)
	}
	require.Equal(t, []int{0, 3, 6}, history.First.Items())

	// When: X places a fourth mark at 8
	board, history = Place(domain.Poof, board, history, 8, domain.First)

	// Then: the mark at 0 disappears and the queue slides
	assert.True(t, board[0].IsEmpty())
	assert.Equal(t, domain.FullMark(domain.First), board[8])
	assert.Equal(t, []int{3, 6, 8}, history.First.Items())
	assert.Zero(t, history.Second.Len)
}

func TestSubmitMove_PoofEvictionDuringGame(t *testing.T) {
	// Given: both players have three marks on the board
	state := play(t, mustNewGame(t, domain.Poof, domain.PlayerVsPlayer), 0, 1, 2, 4, 5, 3)
	require.Equal(t, []int{0, 2, 5}, state.History.First.Items())
	require.Equal(t, []int{1, 4, 3}, state.History.Second.Items())

	// When: X plays a fourth mark
	state = play(t, state, 7)

	// Then: X's oldest mark is gone and O is untouched
	assert.True(t, state.Board[0].IsEmpty())
	assert.Equal(t, []int{2, 5, 7}, state.History.First.Items())
	assert.Equal(t, []int{1, 4, 3}, state.History.Second.Items())
	assert.Equal(t, domain.FullMark(domain.Second), state.Board[1])
	assert.Equal(t, domain.InProgress, state.Outcome.Status)
}

func TestApply_CrissCrossPromotion(t *testing.T) {
	// Given: A half-marks 0, then B half-marks 1
	state := mustNewGame(t, domain.CrissCross, domain.PlayerVsPlayer)
	state = Apply(state, 0, domain.First)
	state = Apply(state, 1, domain.Second)

	// Then: A's half-mark is spent and B's is live
	assert.True(t, state.Board[0].IsSpentHalf())
	assert.Equal(t, domain.HalfMark(domain.Second), state.Board[1])

	// When: B promotes index 1
	state = Apply(state, 1, domain.Second)

	// Then: the cell is B's full mark and no half-mark is live
	assert.Equal(t, domain.FullMark(domain.Second), state.Board[1])
	assert.True(t, state.Board[0].IsSpentHalf())
	assert.Zero(t, countLiveHalves(state.Board))
}

func TestApply_CrissCrossSpentHalfCanBePromoted(t *testing.T) {
	// Given: a spent half-mark at 0
	state := play(t, mustNewGame(t, domain.CrissCross, domain.PlayerVsPlayer), 0, 1)
	require.True(t, state.Board[0].IsSpentHalf())

	// When: the first player plays it
	state = play(t, state, 0)

	// Then: it becomes the first player's full mark and 1 stays live
	assert.Equal(t, domain.FullMark(domain.First), state.Board[0])
	assert.True(t, state.Board[1].IsLiveHalf())
}

func TestApply_CrissCrossWinIsClaimedByMover(t *testing.T) {
	// Given: full marks in mixed colours at 0 and 1, a live half-mark at 2
	state := play(t, mustNewGame(t, domain.CrissCross, domain.PlayerVsPlayer),
		0, 0, // second player promotes the first player's half-mark
		1, 3, 1, // first player promotes its own spent half-mark
		2, // second player's half-mark
	)
	require.Equal(t, domain.First, state.Turn.Current)

	// When: the first player promotes 2
	state = play(t, state, 2)

	// Then: the first player wins the top row
	assert.Equal(t, domain.Won, state.Outcome.Status)
	assert.Equal(t, domain.First, state.Outcome.Winner)
	assert.Equal(t, domain.Line{0, 1, 2}, state.Outcome.Line)
}

func TestApply_BumpsVersionAndFlipsTurn(t *testing.T) {
	state := mustNewGame(t, domain.Classic, domain.PlayerVsPlayer)

	next := Apply(state, 4, domain.First)

	assert.Equal(t, state.Version+1, next.Version)
	assert.Equal(t, domain.Second, next.Turn.Current)
	assert.Equal(t, 4, next.LastMove)
	assert.True(t, state.Board[4].IsEmpty(), "input state must not change")
}

func TestRandomPlay_PoofQueueInvariants(t *testing.T) {
	rnd := rand.New(rand.NewPCG(7, 11))
	for trial := 0; trial < 200; trial++ {
		state := mustNewGame(t, domain.Poof, domain.PlayerVsPlayer)
		for ply := 0; ply < 50 && !state.Outcome.IsTerminal(); ply++ {
			moves := AvailableMoves(state.Variant, state.Board)
			require.NotEmpty(t, moves)

			var err error
			state, err = SubmitMove(state, moves[rnd.IntN(len(moves))])
			require.NoError(t, err)

			assert.NotEqual(t, domain.Draw, state.Outcome.Status)
			marks := 0
			for _, cell := range state.Board {
				if cell.Kind == domain.Full {
					marks++
				}
			}
			assert.Equal(t, state.History.First.Len+state.History.Second.Len, marks)
			for _, player := range []domain.Player{domain.First, domain.Second} {
				queue := state.History.Of(player)
				assert.LessOrEqual(t, queue.Len, domain.MaxPoofMarks)
				for _, index := range queue.Items() {
					assert.Equal(t, domain.FullMark(player), state.Board[index])
				}
			}
		}
	}
}

func TestRandomPlay_CrissCrossSingleLiveHalf(t *testing.T) {
	rnd := rand.New(rand.NewPCG(3, 5))
	for trial := 0; trial < 200; trial++ {
		state := mustNewGame(t, domain.CrissCross, domain.PlayerVsPlayer)
		for !state.Outcome.IsTerminal() {
			moves := AvailableMoves(state.Variant, state.Board)
			require.NotEmpty(t, moves, "a non-terminal crisscross game always has a move")

			var err error
			state, err = SubmitMove(state, moves[rnd.IntN(len(moves))])
			require.NoError(t, err)
			assert.LessOrEqual(t, countLiveHalves(state.Board), 1)
		}
		assert.Equal(t, domain.Won, state.Outcome.Status)
	}
}

func countLiveHalves(board domain.Board) int {
	n := 0
	for _, cell := range board {
		if cell.IsLiveHalf() {
			n++
		}
	}
	return n
}
