package game

import (
	"github.com/kiryu-dev/tactics-and-toes/internal/domain"
)

// Evaluate classifies board after mover's move. In crisscross a line can only
// be completed by a promotion, so the mover is the winner whatever the colours.
func Evaluate(variant domain.Variant, board domain.Board, mover domain.Player) domain.Outcome {
	if line, ok := DetectWinner(board, RuleFor(variant)); ok {
		winner := board[line[0]].Owner
		if variant == domain.CrissCross {
			winner = mover
		}
		return domain.Outcome{
			Status: domain.Won,
			Winner: winner,
			Line:   line,
		}
	}
	if isDraw(variant, board) {
		return domain.Outcome{Status: domain.Draw}
	}
	return domain.Outcome{Status: domain.InProgress}
}

func isDraw(variant domain.Variant, board domain.Board) bool {
	switch variant {
	case domain.Poof:
		/* cells keep vanishing, a full board is unreachable */
		return false
	case domain.CrissCross:
		for _, cell := range board {
			if cell.Kind != domain.Full {
				return false
			}
		}
		return true
	default:
		for _, cell := range board {
			if cell.IsEmpty() {
				return false
			}
		}
		return true
	}
}
