package opponent

import (
	"slices"

	"github.com/kiryu-dev/tactics-and-toes/internal/domain"
	"github.com/kiryu-dev/tactics-and-toes/internal/usecase/game"
)

const (
	center      = 4
	ignoreBlock = 0.5
)

var (
	corners = []int{0, 2, 6, 8}
	sides   = []int{1, 3, 5, 7}
)

// heuristic walks the priority ladder used for classic and poof.
func (u *useCase) heuristic(state domain.GameState) int {
	me, human := state.Turn.Automated, state.Turn.Human
	empty := game.AvailableMoves(state.Variant, state.Board)
	if len(empty) == 0 {
		return domain.NoMove
	}
	for _, i := range empty {
		next := game.Apply(state, i, me)
		if next.Outcome.Status == domain.Won && next.Outcome.Winner == me {
			return i
		}
	}
	if i, ok := u.block(state, empty, human); ok {
		return i
	}
	if slices.Contains(empty, center) {
		return center
	}
	if i := u.pick(intersect(corners, empty)); i != domain.NoMove {
		return i
	}
	return u.pick(intersect(sides, empty))
}

// block finds a cell that completes a line for human. In poof a threat built
// on the human's oldest mark vanishes on their next move, so it is ignored
// half of the time.
func (u *useCase) block(state domain.GameState, empty []int, human domain.Player) (int, bool) {
	oldest, hasOldest := state.History.Of(human).Oldest()
	for _, i := range empty {
		board := state.Board
		board[i] = domain.FullMark(human)
		line, ok := game.DetectWinner(board, game.SameOwner)
		if !ok || board[line[0]].Owner != human {
			continue
		}
		if state.Variant == domain.Poof && hasOldest && oldest != i &&
			slices.Contains(line[:], oldest) && u.float64() < ignoreBlock {
			continue
		}
		return i, true
	}
	return domain.NoMove, false
}

func intersect(candidates, available []int) []int {
	result := make([]int, 0, len(candidates))
	for _, c := range candidates {
		if slices.Contains(available, c) {
			result = append(result, c)
		}
	}
	return result
}
