package game

import (
	"github.com/kiryu-dev/tactics-and-toes/internal/domain"
	"github.com/pkg/errors"
)

// Validate decides whether the human may play index in state.
func Validate(state domain.GameState, index int) error {
	automated := state.Mode == domain.PlayerVsAutomated
	if automated && !state.Turn.Human.Valid() {
		return domain.ErrOpponentSymbolNotChosen
	}
	if state.Outcome.IsTerminal() {
		return domain.ErrGameAlreadyTerminal
	}
	if automated && state.Turn.Current != state.Turn.Human {
		return domain.ErrNotPlayersTurn
	}
	return validateCell(state, index)
}

func validateCell(state domain.GameState, index int) error {
	if index < 0 || index >= domain.BoardSize {
		return errors.WithMessagef(domain.ErrInvalidCell, "position '%d' is out of board", index)
	}
	if !Available(state.Variant, state.Board[index]) {
		return errors.WithMessagef(domain.ErrCellUnavailable, "cell in position '%d' is already taken", index)
	}
	return nil
}

// Available reports whether a move may target cell. In crisscross any cell
// that is not yet a full mark can be played, spent half-marks included.
func Available(variant domain.Variant, cell domain.Cell) bool {
	if variant == domain.CrissCross {
		return cell.Kind != domain.Full
	}
	return cell.IsEmpty()
}

// AvailableMoves lists the playable indices in ascending order.
func AvailableMoves(variant domain.Variant, board domain.Board) []int {
	moves := make([]int, 0, domain.BoardSize)
	for i, cell := range board {
		if Available(variant, cell) {
			moves = append(moves, i)
		}
	}
	return moves
}
