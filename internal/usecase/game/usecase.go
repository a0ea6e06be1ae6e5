package game

import (
	"github.com/kiryu-dev/tactics-and-toes/internal/domain"
	"github.com/pkg/errors"
)

func NewGame(variant domain.Variant, mode domain.Mode) (domain.GameState, error) {
	switch variant {
	case domain.Classic, domain.Poof, domain.CrissCross:
	default:
		return domain.GameState{}, errors.WithMessagef(domain.ErrUnknownVariant, "variant '%d'", variant)
	}
	return newState(variant, mode, 0), nil
}

func newState(variant domain.Variant, mode domain.Mode, version uint64) domain.GameState {
	return domain.GameState{
		Variant:  variant,
		Mode:     mode,
		Turn:     domain.TurnState{Current: domain.First},
		LastMove: domain.NoMove,
		Version:  version,
	}
}

// SelectMark assigns player to the human. The first player always moves
// first, so picking the second one hands the opening move to the opponent.
func SelectMark(state domain.GameState, player domain.Player) (domain.GameState, error) {
	if state.Mode != domain.PlayerVsAutomated {
		return state, domain.ErrNotAutomatedMode
	}
	if state.Turn.Human != domain.NoPlayer {
		return state, domain.ErrAlreadySelected
	}
	if !player.Valid() {
		return state, errors.WithMessagef(domain.ErrInvalidPlayer, "player '%d'", player)
	}
	next := state
	next.Turn.Human = player
	next.Turn.Automated = player.Opponent()
	next.Version++
	return next, nil
}

// SubmitMove plays the human's move. On rejection the input state is
// returned untouched together with the reason.
func SubmitMove(state domain.GameState, index int) (domain.GameState, error) {
	if err := Validate(state, index); err != nil {
		return state, err
	}
	return Apply(state, index, state.Turn.Current), nil
}

// ApplyOpponentMove plays the automated player's decision, skipping the
// human turn-ownership check.
func ApplyOpponentMove(state domain.GameState, index int) (domain.GameState, error) {
	switch PhaseOf(state) {
	case domain.OpponentTurn:
	case domain.Terminal:
		return state, domain.ErrGameAlreadyTerminal
	case domain.AwaitingMarkSelection:
		return state, domain.ErrOpponentSymbolNotChosen
	default:
		return state, domain.ErrNotPlayersTurn
	}
	if err := validateCell(state, index); err != nil {
		return state, err
	}
	return Apply(state, index, state.Turn.Automated), nil
}

func Reset(state domain.GameState) domain.GameState {
	return newState(state.Variant, state.Mode, state.Version+1)
}

// SwitchMode toggles between hot-seat and automated play and starts over.
func SwitchMode(state domain.GameState) domain.GameState {
	mode := domain.PlayerVsAutomated
	if state.Mode == domain.PlayerVsAutomated {
		mode = domain.PlayerVsPlayer
	}
	return newState(state.Variant, mode, state.Version+1)
}

func PhaseOf(state domain.GameState) domain.Phase {
	if state.Outcome.IsTerminal() {
		return domain.Terminal
	}
	if state.Mode == domain.PlayerVsAutomated {
		if !state.Turn.Human.Valid() {
			return domain.AwaitingMarkSelection
		}
		if state.Turn.Current == state.Turn.Automated {
			return domain.OpponentTurn
		}
	}
	return domain.HumanTurn
}
