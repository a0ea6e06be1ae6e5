package domain

import (
	"github.com/pkg/errors"
)

// Rejections. None of them mutates a GameState.
var (
	ErrGameAlreadyTerminal     = errors.New("game is already terminal")
	ErrNotPlayersTurn          = errors.New("it's not the player's turn")
	ErrCellUnavailable         = errors.New("cell is unavailable")
	ErrOpponentSymbolNotChosen = errors.New("opponent symbol is not chosen")
	ErrAlreadySelected         = errors.New("mark is already selected")
	ErrInvalidCell             = errors.New("invalid cell index")
	ErrNotAutomatedMode        = errors.New("game is not in automated opponent mode")
	ErrUnknownVariant          = errors.New("unknown game variant")
	ErrInvalidPlayer           = errors.New("invalid player")
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrEmptyMessage     = errors.New("empty message")
	ErrUnknownMessage   = errors.New("unknown message type")
	ErrBadPayload       = errors.New("malformed message payload")
)

var rejectionReasons = []struct {
	err    error
	reason string
}{
	{ErrGameAlreadyTerminal, "game_already_terminal"},
	{ErrNotPlayersTurn, "not_players_turn"},
	{ErrCellUnavailable, "cell_unavailable"},
	{ErrOpponentSymbolNotChosen, "opponent_symbol_not_chosen"},
	{ErrAlreadySelected, "already_selected"},
	{ErrInvalidCell, "invalid_cell"},
	{ErrNotAutomatedMode, "not_automated_mode"},
	{ErrUnknownVariant, "unknown_variant"},
	{ErrInvalidPlayer, "invalid_player"},
	{ErrUnknownMessage, "unknown_message"},
	{ErrBadPayload, "bad_payload"},
}

// RejectionReason maps err to the stable code sent to clients.
func RejectionReason(err error) string {
	for _, r := range rejectionReasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return "internal_error"
}
