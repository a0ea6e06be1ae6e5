package opponent

import (
	"context"

	"github.com/kiryu-dev/tactics-and-toes/internal/domain"
	"github.com/kiryu-dev/tactics-and-toes/internal/usecase/game"
	"golang.org/x/sync/errgroup"
)

const winScore = 100

// search runs a depth-limited minimax for crisscross. Root candidates are
// scored concurrently and reduced in candidate order, so the result does
// not depend on scheduling.
func (u *useCase) search(ctx context.Context, state domain.GameState) (int, error) {
	me := state.Turn.Automated
	candidates := crissCrossCandidates(state.Board)
	scores := make([]int, len(candidates))
	g, gCtx := errgroup.WithContext(ctx)
	for i, index := range candidates {
		g.Go(func() error {
			board := place(state.Board, index, me)
			score, err := minimax(gCtx, board, me, false, u.depth-1)
			if err != nil {
				return err
			}
			scores[i] = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.NoMove, err
	}
	var (
		best     = -winScore
		bestMove = domain.NoMove
	)
	for i, score := range scores {
		if score > best {
			best, bestMove = score, candidates[i]
		}
	}
	if bestMove != domain.NoMove {
		return bestMove, nil
	}
	return u.fallback(state.Board), nil
}

// minimax scores board from me's point of view. maximizing tells whose turn
// it is on board: me when true.
func minimax(ctx context.Context, board domain.Board, me domain.Player, maximizing bool, depth int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if _, ok := game.DetectWinner(board, game.AnyFullMark); ok {
		/* the side that just moved has completed the line */
		if maximizing {
			return -winScore + depth, nil
		}
		return winScore - depth, nil
	}
	if allFull(board) || depth == 0 {
		return 0, nil
	}
	mover, best := me, -winScore
	if !maximizing {
		mover, best = me.Opponent(), winScore
	}
	for _, index := range crissCrossCandidates(board) {
		score, err := minimax(ctx, place(board, index, mover), me, !maximizing, depth-1)
		if err != nil {
			return 0, err
		}
		if maximizing && score > best || !maximizing && score < best {
			best = score
		}
	}
	return best, nil
}

// fallback is used when the search yields nothing.
func (u *useCase) fallback(board domain.Board) int {
	halves := halfMarks(board)
	/* a completing promotion wins for whoever plays it, so it also blocks the human */
	for _, i := range halves {
		if _, ok := game.DetectWinner(place(board, i, domain.First), game.AnyFullMark); ok {
			return i
		}
	}
	if i := u.pick(halves); i != domain.NoMove {
		return i
	}
	return u.pick(emptyCells(board))
}

func place(board domain.Board, index int, player domain.Player) domain.Board {
	next, _ := game.Place(domain.CrissCross, board, domain.History{}, index, player)
	return next
}

// crissCrossCandidates lists empty cells ascending, then half-marks ascending.
func crissCrossCandidates(board domain.Board) []int {
	return append(emptyCells(board), halfMarks(board)...)
}

func emptyCells(board domain.Board) []int {
	cells := make([]int, 0, domain.BoardSize)
	for i, cell := range board {
		if cell.IsEmpty() {
			cells = append(cells, i)
		}
	}
	return cells
}

func halfMarks(board domain.Board) []int {
	cells := make([]int, 0, domain.BoardSize)
	for i, cell := range board {
		if cell.Kind == domain.Half {
			cells = append(cells, i)
		}
	}
	return cells
}

func allFull(board domain.Board) bool {
	for _, cell := range board {
		if cell.Kind != domain.Full {
			return false
		}
	}
	return true
}
