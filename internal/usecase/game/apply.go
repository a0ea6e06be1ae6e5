package game

import (
	"github.com/kiryu-dev/tactics-and-toes/internal/domain"
)

// Apply plays an already validated move and returns the next snapshot.
func Apply(state domain.GameState, index int, player domain.Player) domain.GameState {
	next := state
	next.Board, next.History = Place(state.Variant, state.Board, state.History, index, player)
	next.Outcome = Evaluate(next.Variant, next.Board, player)
	next.Turn.Current = player.Opponent()
	next.LastMove = index
	next.Version++
	return next
}

// Place applies only the board side effects of a move.
func Place(variant domain.Variant, board domain.Board, history domain.History,
	index int, player domain.Player) (domain.Board, domain.History) {
	switch variant {
	case domain.Poof:
		queue, evicted := history.Of(player).Push(index)
		if evicted != domain.NoMove {
			board[evicted] = domain.Cell{}
		}
		board[index] = domain.FullMark(player)
		history = history.With(player, queue)
	case domain.CrissCross:
		board = placeCrissCross(board, index, player)
	default:
		board[index] = domain.FullMark(player)
	}
	return board, history
}

func placeCrissCross(board domain.Board, index int, player domain.Player) domain.Board {
	if board[index].Kind == domain.Half {
		board[index] = domain.FullMark(player)
		return board
	}
	for i, cell := range board {
		if cell.IsLiveHalf() {
			board[i].Owner = domain.NoPlayer
		}
	}
	board[index] = domain.HalfMark(player)
	return board
}
